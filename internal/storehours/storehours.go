package storehours

import (
	"math"

	"hairdo-backend/internal/timemath"
)

// Fallback timeline range used when no weekday has configured hours.
const (
	FallbackOpenMinutes  = 6 * 60
	FallbackCloseMinutes = 22 * 60
)

// DayHours is a single weekday's opening window in decimal hours
// (9.5 = 9:30). Open must be strictly before Close.
type DayHours struct {
	Open  float64
	Close float64
}

// Week holds per-weekday opening hours, indexed Sunday = 0. A nil day
// means the shop is closed that day.
type Week struct {
	days [7]*DayHours
}

// NewWeek builds a Week from a weekday -> hours map. Entries with
// weekday outside 0..6 or with Open >= Close are ignored.
func NewWeek(entries map[int]DayHours) Week {
	var w Week
	for weekday, hours := range entries {
		if weekday < 0 || weekday > 6 {
			continue
		}
		if hours.Open >= hours.Close {
			continue
		}
		h := hours
		w.days[weekday] = &h
	}
	return w
}

// ExactMinutes returns the opening window for a weekday at decimal-hour
// precision, in minutes since midnight. This is the boundary the booking
// flow must use: a 9.5 open really means nothing before 9:30.
func (w Week) ExactMinutes(weekday int) (openMin, closeMin int, ok bool) {
	d := w.day(weekday)
	if d == nil {
		return 0, 0, false
	}
	return timemath.DecimalHourToMinutes(d.Open), timemath.DecimalHourToMinutes(d.Close), true
}

// HourBounds returns the opening window widened to whole hours:
// floor(open) and ceil(close). The day grid and timeline render whole
// hour rows, so a 9.5-18.25 day paints 9:00 through 19:00. Callers that
// validate bookings must use ExactMinutes instead.
func (w Week) HourBounds(weekday int) (openMin, closeMin int, ok bool) {
	d := w.day(weekday)
	if d == nil {
		return 0, 0, false
	}
	return int(math.Floor(d.Open)) * 60, int(math.Ceil(d.Close)) * 60, true
}

// TimelineRange returns the earliest hour-bounded open and the latest
// hour-bounded close across all configured weekdays. With no
// configuration at all it falls back to 06:00-22:00.
func (w Week) TimelineRange() (earliestOpenMin, latestCloseMin int) {
	earliest, latest := -1, -1
	for weekday := range w.days {
		open, close, ok := w.HourBounds(weekday)
		if !ok {
			continue
		}
		if earliest == -1 || open < earliest {
			earliest = open
		}
		if latest == -1 || close > latest {
			latest = close
		}
	}
	if earliest == -1 {
		return FallbackOpenMinutes, FallbackCloseMinutes
	}
	return earliest, latest
}

func (w Week) day(weekday int) *DayHours {
	if weekday < 0 || weekday > 6 {
		return nil
	}
	return w.days[weekday]
}
