package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"hairdo-backend/internal/schedule"
	"hairdo-backend/internal/timemath"
	"hairdo-backend/internal/transport"
)

type availabilityQuery struct {
	EmployeeID string `validate:"required"`
	Date       string `validate:"required,date"`
}

type slotView struct {
	Start   string `json:"start"`
	Start12 string `json:"start12"`
	End     string `json:"end"`
}

// GetAvailability lists every free 15-minute-aligned start for one
// employee and date where a duration-long booking fits inside opening
// hours. Responses are cached per date/duration/employee and dropped
// whenever that date's book changes.
func (s *Server) GetAvailability(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := availabilityQuery{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Date:       r.URL.Query().Get("date"),
	}
	if err := s.Val.Struct(q); err != nil {
		log.Warn("availability: invalid query")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "invalid query", details)
		return
	}

	duration, err := parseDurationParam(r.URL.Query().Get("duration"), schedule.SlotStepMinutes)
	if err != nil {
		log.Warn("availability: invalid duration")
		transport.WriteError(w, http.StatusBadRequest, "invalid duration", nil)
		return
	}

	cacheKey := "availability:" + q.Date + ":" + strconv.Itoa(duration) + ":" + q.EmployeeID
	if s.Cache != nil {
		if cached, ok, err := s.Cache.Get(r.Context(), cacheKey); err == nil && ok {
			log.Info("availability: cache hit", slog.String("date", q.Date))
			transport.WriteCached(w, http.StatusOK, cached)
			return
		}
	}

	past, err := schedule.IsDatePast(q.Date, s.Cfg.Timezone, time.Now())
	if err != nil {
		log.Warn("availability: invalid date", slog.String("date", q.Date))
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if past {
		log.Warn("availability: date in the past", slog.String("date", q.Date))
		transport.WriteError(w, http.StatusBadRequest, "date in the past", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	slots, err := s.computeAvailableSlots(ctx, q.EmployeeID, q.Date, duration, time.Now())
	if err != nil {
		log.Error("availability: compute error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "availability error", nil)
		return
	}

	response := map[string]interface{}{
		"employeeId": q.EmployeeID,
		"date":       q.Date,
		"timezone":   s.Cfg.Timezone.String(),
		"duration":   duration,
		"slots":      slots,
	}

	if payload, err := encodeJSON(response); err == nil && s.Cache != nil {
		_ = s.Cache.Set(r.Context(), cacheKey, payload, time.Duration(s.Cfg.CacheTTLSeconds)*time.Second)
	}

	log.Info("availability: ok",
		slog.String("employee_id", q.EmployeeID),
		slog.String("date", q.Date),
		slog.Int("duration", duration),
		slog.Int("slots", len(slots)),
	)
	transport.WriteJSON(w, http.StatusOK, response)
}

// GetNextSlot returns the earliest start that fits the requested
// duration. A fully booked day is not an error: the response carries
// found=false with the opening time so callers can still render a
// default.
func (s *Server) GetNextSlot(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := availabilityQuery{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Date:       r.URL.Query().Get("date"),
	}
	if err := s.Val.Struct(q); err != nil {
		log.Warn("availability next: invalid query")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "invalid query", details)
		return
	}

	duration, err := parseDurationParam(r.URL.Query().Get("duration"), schedule.SlotStepMinutes)
	if err != nil {
		log.Warn("availability next: invalid duration")
		transport.WriteError(w, http.StatusBadRequest, "invalid duration", nil)
		return
	}

	date, err := schedule.ParseDate(q.Date, s.Cfg.Timezone)
	if err != nil {
		log.Warn("availability next: invalid date", slog.String("date", q.Date))
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	week, err := s.Settings.Week(ctx)
	if err != nil {
		log.Error("availability next: store hours error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "availability error", nil)
		return
	}
	openMin, closeMin, ok := week.ExactMinutes(int(date.Weekday()))
	if !ok {
		log.Info("availability next: closed", slog.String("date", q.Date))
		transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"date":  q.Date,
			"found": false,
			"open":  false,
		})
		return
	}

	appointments, err := s.Appointments.ListByEmployeeAndDate(ctx, q.EmployeeID, q.Date)
	if err != nil {
		log.Error("availability next: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "availability error", nil)
		return
	}

	now := time.Now()
	start, found := schedule.FindNextSlot(
		bookedIntervals(appointments),
		openMin, closeMin, duration,
		schedule.MinutesOfDay(now, s.Cfg.Timezone),
		schedule.IsSameDay(q.Date, s.Cfg.Timezone, now),
	)

	log.Info("availability next: ok",
		slog.String("employee_id", q.EmployeeID),
		slog.String("date", q.Date),
		slog.String("start", timemath.MinutesToClock(start)),
		slog.Bool("found", found),
	)
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employeeId": q.EmployeeID,
		"date":       q.Date,
		"duration":   duration,
		"open":       true,
		"found":      found,
		"start":      timemath.MinutesToClock(start),
		"start12":    timemath.Clock12(start),
	})
}

// computeAvailableSlots is shared by the availability listing and the
// booking flow's post-create refresh.
func (s *Server) computeAvailableSlots(ctx context.Context, employeeID, date string, duration int, now time.Time) ([]slotView, error) {
	parsed, err := schedule.ParseDate(date, s.Cfg.Timezone)
	if err != nil {
		return nil, err
	}

	week, err := s.Settings.Week(ctx)
	if err != nil {
		return nil, err
	}
	openMin, closeMin, ok := week.ExactMinutes(int(parsed.Weekday()))
	if !ok {
		return []slotView{}, nil
	}

	appointments, err := s.Appointments.ListByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	starts := schedule.AvailableStarts(
		bookedIntervals(appointments),
		openMin, closeMin, duration,
		schedule.MinutesOfDay(now, s.Cfg.Timezone),
		schedule.IsSameDay(date, s.Cfg.Timezone, now),
	)

	slots := make([]slotView, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, slotView{
			Start:   timemath.MinutesToClock(start),
			Start12: timemath.Clock12(start),
			End:     timemath.MinutesToClock(start + duration),
		})
	}
	return slots, nil
}
