package timeline

import (
	"sort"

	"hairdo-backend/internal/timemath"
)

const (
	// DefaultPixelsPerMinute is the vertical scale of the day view.
	DefaultPixelsPerMinute = 2.0

	// MinRenderMinutes keeps very short appointments legible: anything
	// shorter is drawn as if it lasted 30 minutes.
	MinRenderMinutes = 30

	// laneWidthRatio shrinks each box inside its column to leave a
	// visual gap between side-by-side appointments.
	laneWidthRatio = 0.9
)

// Entry is one same-day appointment to place on the timeline.
type Entry struct {
	ID          string
	StartMin    int
	DurationMin int
}

// Box is the derived rendering geometry for one appointment. It is
// recomputed from scratch whenever the day's appointments or store
// hours change; nothing here is persisted.
type Box struct {
	ID     string
	Top    float64
	Height float64
	Left   float64
	Width  float64
	Lane   int
}

// Layout maps a day's appointments to pixel geometry. Vertically,
// top = (start - open) * pxPerMin clamped at 0 and height honours the
// 30-minute render floor. Horizontally, entries are sorted by start
// time and each takes a lane equal to the number of earlier-placed
// entries it overlaps; columns divide the available width evenly.
//
// The lane assignment is an incremental partitioning, not an optimal
// interval coloring: two entries that never overlap each other can end
// up in different lanes when both overlap a third. That looser packing
// is acceptable for the day view.
func Layout(entries []Entry, openMin int, width, pxPerMin float64) []Box {
	if pxPerMin <= 0 {
		pxPerMin = DefaultPixelsPerMinute
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartMin != sorted[j].StartMin {
			return sorted[i].StartMin < sorted[j].StartMin
		}
		return sorted[i].ID < sorted[j].ID
	})

	boxes := make([]Box, len(sorted))
	maxLane := 0
	for i, e := range sorted {
		end := e.StartMin + e.DurationMin
		lane := 0
		for j := 0; j < i; j++ {
			prev := sorted[j]
			prevEnd := prev.StartMin + prev.DurationMin
			if prev.StartMin < end && prevEnd > e.StartMin {
				lane++
			}
		}
		if lane > maxLane {
			maxLane = lane
		}

		top := float64(e.StartMin-openMin) * pxPerMin
		if top < 0 {
			top = 0
		}
		renderMin := e.DurationMin
		if renderMin < MinRenderMinutes {
			renderMin = MinRenderMinutes
		}

		boxes[i] = Box{
			ID:     e.ID,
			Top:    top,
			Height: float64(renderMin) * pxPerMin,
			Lane:   lane,
		}
	}

	column := width / float64(maxLane+1)
	for i := range boxes {
		boxes[i].Left = float64(boxes[i].Lane) * column
		boxes[i].Width = column * laneWidthRatio
	}

	return boxes
}

// HourSlot is one hour row of the day view.
type HourSlot struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
}

// HourSlots returns a row for every hour from opening to closing,
// closing hour included, labelled in 12-hour form.
func HourSlots(openMin, closeMin int) []HourSlot {
	slots := make([]HourSlot, 0)
	for hour := openMin / 60; hour <= closeMin/60; hour++ {
		slots = append(slots, HourSlot{Hour: hour, Label: timemath.To12Hour(hour, 0)})
	}
	return slots
}
