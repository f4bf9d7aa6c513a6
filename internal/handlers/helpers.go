package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"hairdo-backend/internal/models"
	"hairdo-backend/internal/policy"
	"hairdo-backend/internal/schedule"
	"hairdo-backend/internal/store"
	"hairdo-backend/internal/timemath"

	"github.com/go-playground/validator/v10"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func encodeJSON(payload interface{}) ([]byte, error) {
	return json.Marshal(payload)
}

func validationDetails(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field()] = err.Tag()
	}
	return details
}

func parseDurationParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	duration, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if duration < schedule.SlotStepMinutes || duration > 240 || duration%schedule.SlotStepMinutes != 0 {
		return 0, errors.New("duration off the slot grid")
	}
	return duration, nil
}

// fetchPolicy reads the booking policy, falling back to the documented
// defaults when the settings document is missing or unreadable. A
// policy miss is never allowed to fail a booking.
func (s *Server) fetchPolicy(ctx context.Context, log *slog.Logger) models.BookingPolicy {
	p, err := s.Settings.GetBookingPolicy(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn("policy: read failed, using defaults", slog.String("error", err.Error()))
		}
		return policy.Default()
	}
	return p
}

// bookedIntervals converts an employee's day sheet into the conflict
// detector's input, statuses included.
func bookedIntervals(appointments []models.Appointment) []schedule.Booked {
	booked := make([]schedule.Booked, 0, len(appointments))
	for _, appt := range appointments {
		start, err := timemath.ToMinutes(appt.StartTime)
		if err != nil {
			continue
		}
		booked = append(booked, schedule.Booked{
			Interval: schedule.Interval{Start: start, End: start + appt.Duration},
			Status:   appt.Status,
		})
	}
	return booked
}
