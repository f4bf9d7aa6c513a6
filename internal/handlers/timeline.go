package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"hairdo-backend/internal/schedule"
	"hairdo-backend/internal/timeline"
	"hairdo-backend/internal/timemath"
	"hairdo-backend/internal/transport"
)

const defaultTimelineWidth = 600.0

type timelineQuery struct {
	Date string `validate:"required,date"`
}

type timelineBox struct {
	ID     string  `json:"id"`
	Start  string  `json:"start"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Lane   int     `json:"lane"`
}

// AdminGetTimeline renders the day view: one positioned box per
// appointment plus the hour gutter. Geometry is derived fresh on every
// request; only raw appointments are stored.
func (s *Server) AdminGetTimeline(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := timelineQuery{Date: r.URL.Query().Get("date")}
	if err := s.Val.Struct(q); err != nil {
		log.Warn("admin timeline: invalid query")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "invalid query", details)
		return
	}

	width := defaultTimelineWidth
	if raw := r.URL.Query().Get("width"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			log.Warn("admin timeline: invalid width")
			transport.WriteError(w, http.StatusBadRequest, "invalid width", nil)
			return
		}
		width = parsed
	}

	date, err := schedule.ParseDate(q.Date, s.Cfg.Timezone)
	if err != nil {
		log.Warn("admin timeline: invalid date", slog.String("date", q.Date))
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	week, err := s.Settings.Week(ctx)
	if err != nil {
		log.Error("admin timeline: store hours error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	// The day view uses whole-hour bounds so the gutter lines up with
	// the grid even when the salon opens on a half hour. Closed days
	// fall back to the widest configured window.
	openMin, closeMin, open := week.HourBounds(int(date.Weekday()))
	if !open {
		openMin, closeMin = week.TimelineRange()
	}

	appointments, err := s.Appointments.ListByDate(ctx, q.Date)
	if err != nil {
		log.Error("admin timeline: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	entries := make([]timeline.Entry, 0, len(appointments))
	starts := make(map[string]int, len(appointments))
	for _, appt := range appointments {
		startMin, err := timemath.ToMinutes(appt.StartTime)
		if err != nil {
			continue
		}
		entries = append(entries, timeline.Entry{
			ID:          appt.ID,
			StartMin:    startMin,
			DurationMin: appt.Duration,
		})
		starts[appt.ID] = startMin
	}

	boxes := timeline.Layout(entries, openMin, width, timeline.DefaultPixelsPerMinute)
	views := make([]timelineBox, 0, len(boxes))
	for _, box := range boxes {
		views = append(views, timelineBox{
			ID:     box.ID,
			Start:  timemath.MinutesToClock(starts[box.ID]),
			Top:    box.Top,
			Height: box.Height,
			Left:   box.Left,
			Width:  box.Width,
			Lane:   box.Lane,
		})
	}

	log.Info("admin timeline: ok", slog.String("date", q.Date), slog.Int("count", len(views)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"date":         q.Date,
		"open":         open,
		"boxes":        views,
		"hours":        timeline.HourSlots(openMin, closeMin),
		"appointments": appointments,
	})
}
