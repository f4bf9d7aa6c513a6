package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"hairdo-backend/internal/models"
	"hairdo-backend/internal/schedule"
	"hairdo-backend/internal/store"
	"hairdo-backend/internal/timemath"
	"hairdo-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

type AdminStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed checked-in in-service completed cancelled no-show"`
}

type AdminRescheduleRequest struct {
	Date      string `json:"date" validate:"required,date"`
	StartTime string `json:"startTime" validate:"required,clock"`
}

type AdminPolicyRequest struct {
	MaxAdvanceDays        int `json:"maxAdvanceDays" validate:"gte=0"`
	CancellationHours     int `json:"cancellationHours" validate:"gte=0"`
	DepositPercentage     int `json:"depositPercentage" validate:"gte=0,lte=100"`
	ReminderMinutesBefore int `json:"reminderMinutesBefore" validate:"gte=0"`
	WaitlistMax           int `json:"waitlistMax" validate:"gte=0"`
}

type AdminStoreHoursRequest struct {
	Entries []AdminStoreHoursEntry `json:"entries" validate:"required,dive"`
}

type AdminStoreHoursEntry struct {
	Weekday int     `json:"weekday" validate:"gte=0,lte=6"`
	Open    float64 `json:"open" validate:"gte=0,lt=24"`
	Close   float64 `json:"close" validate:"gt=0,lte=24"`
}

// AdminUpdateAppointmentStatus moves an appointment along its lifecycle.
// Terminal appointments stay terminal.
func (s *Server) AdminUpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("admin appointments status: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req AdminStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin appointments status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin appointments status: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("admin appointments status: not found", slog.String("appointment_id", id))
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
			return
		}
		log.Error("admin appointments status: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if models.StatusIsTerminal(appt.Status) && req.Status != appt.Status {
		log.Warn("admin appointments status: already terminal",
			slog.String("appointment_id", id), slog.String("status", appt.Status))
		transport.WriteError(w, http.StatusConflict, "appointment already closed", nil)
		return
	}

	updated, err := s.Appointments.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		log.Error("admin appointments status: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if s.Cache != nil {
		_ = s.Cache.DeletePrefix(r.Context(), "availability:"+appt.Date+":")
	}

	log.Info("admin appointments status: ok", slog.String("appointment_id", id), slog.String("status", req.Status))
	transport.WriteJSON(w, http.StatusOK, updated)
}

// AdminRescheduleAppointment moves a non-terminal appointment to a new
// date and start, re-running the same hours and conflict checks as a
// fresh booking. The policy snapshot travels with the appointment
// unchanged: rescheduling never reprices the deposit or moves the
// cancel-by deadline.
func (s *Server) AdminRescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("admin appointments reschedule: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req AdminRescheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin appointments reschedule: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin appointments reschedule: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	past, err := schedule.IsDatePast(req.Date, s.Cfg.Timezone, time.Now())
	if err != nil {
		log.Warn("admin appointments reschedule: invalid date", slog.String("date", req.Date))
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if past {
		log.Warn("admin appointments reschedule: date in the past", slog.String("date", req.Date))
		transport.WriteError(w, http.StatusBadRequest, "date in the past", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("admin appointments reschedule: not found", slog.String("appointment_id", id))
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
			return
		}
		log.Error("admin appointments reschedule: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if models.StatusIsTerminal(appt.Status) {
		log.Warn("admin appointments reschedule: already terminal",
			slog.String("appointment_id", id), slog.String("status", appt.Status))
		transport.WriteError(w, http.StatusConflict, "appointment already closed", nil)
		return
	}

	startMin, err := timemath.ToMinutes(req.StartTime)
	if err != nil {
		log.Warn("admin appointments reschedule: invalid time", slog.String("time", req.StartTime))
		transport.WriteError(w, http.StatusBadRequest, "invalid time", nil)
		return
	}
	if startMin%schedule.SlotStepMinutes != 0 {
		log.Warn("admin appointments reschedule: off the slot grid", slog.String("time", req.StartTime))
		transport.WriteError(w, http.StatusBadRequest, "start time off the slot grid", nil)
		return
	}
	endMin, sameDay := schedule.EndOfBooking(startMin, appt.Duration)
	if !sameDay {
		log.Warn("admin appointments reschedule: past midnight", slog.String("time", req.StartTime))
		transport.WriteError(w, http.StatusBadRequest, "booking would run past midnight", nil)
		return
	}

	date, err := schedule.ParseDate(req.Date, s.Cfg.Timezone)
	if err != nil {
		log.Warn("admin appointments reschedule: invalid date", slog.String("date", req.Date))
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}

	week, err := s.Settings.Week(ctx)
	if err != nil {
		log.Error("admin appointments reschedule: store hours error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	openMin, closeMin, open := week.ExactMinutes(int(date.Weekday()))
	if !open {
		log.Warn("admin appointments reschedule: salon closed", slog.String("date", req.Date))
		transport.WriteError(w, http.StatusBadRequest, "salon is closed that day", nil)
		return
	}
	if startMin < openMin || endMin > closeMin {
		log.Warn("admin appointments reschedule: outside opening hours", slog.String("time", req.StartTime))
		transport.WriteError(w, http.StatusBadRequest, "outside opening hours", nil)
		return
	}

	existing, err := s.Appointments.ListByEmployeeAndDate(ctx, appt.EmployeeID, req.Date)
	if err != nil {
		log.Error("admin appointments reschedule: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	candidate := schedule.Interval{Start: startMin, End: endMin}
	booked := make([]schedule.Booked, 0, len(existing))
	for _, other := range existing {
		if other.ID == appt.ID {
			continue
		}
		otherStart, err := timemath.ToMinutes(other.StartTime)
		if err != nil {
			continue
		}
		booked = append(booked, schedule.Booked{
			Interval: schedule.Interval{Start: otherStart, End: otherStart + other.Duration},
			Status:   other.Status,
		})
	}
	if schedule.HasConflict(candidate, booked) {
		log.Warn("admin appointments reschedule: slot overlap",
			slog.String("date", req.Date), slog.String("time", req.StartTime))
		transport.WriteError(w, http.StatusConflict, "slot not available", nil)
		return
	}

	updated, err := s.Appointments.Reschedule(ctx, id, req.Date,
		timemath.MinutesToClock(startMin), timemath.MinutesToClock(endMin), appt.Duration)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Warn("admin appointments reschedule: lost the slot race",
				slog.String("date", req.Date), slog.String("time", req.StartTime))
			transport.WriteError(w, http.StatusConflict, "slot already booked", nil)
			return
		}
		log.Error("admin appointments reschedule: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if s.Cache != nil {
		_ = s.Cache.DeletePrefix(r.Context(), "availability:"+appt.Date+":")
		if req.Date != appt.Date {
			_ = s.Cache.DeletePrefix(r.Context(), "availability:"+req.Date+":")
		}
	}

	log.Info("admin appointments reschedule: ok",
		slog.String("appointment_id", id),
		slog.String("date", req.Date),
		slog.String("time", updated.StartTime),
	)
	transport.WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) AdminGetPolicy(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p := s.fetchPolicy(ctx, log)
	log.Info("admin policy get: ok")
	transport.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) AdminUpdatePolicy(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminPolicyRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin policy update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin policy update: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	updated, err := s.Settings.UpdateBookingPolicy(ctx, models.BookingPolicy{
		MaxAdvanceDays:        req.MaxAdvanceDays,
		CancellationHours:     req.CancellationHours,
		DepositPercentage:     req.DepositPercentage,
		ReminderMinutesBefore: req.ReminderMinutesBefore,
		WaitlistMax:           req.WaitlistMax,
	})
	if err != nil {
		log.Error("admin policy update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin policy update: ok")
	transport.WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) AdminGetStoreHours(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entries, err := s.Settings.ListStoreHours(ctx)
	if err != nil {
		log.Error("admin store hours get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin store hours get: ok", slog.Int("count", len(entries)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// AdminUpdateStoreHours replaces the whole weekly schedule. Omitting a
// weekday closes the salon that day.
func (s *Server) AdminUpdateStoreHours(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminStoreHoursRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin store hours update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin store hours update: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	seen := make(map[int]bool, len(req.Entries))
	entries := make([]models.StoreHoursEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		if e.Open >= e.Close {
			log.Warn("admin store hours update: inverted window", slog.Int("weekday", e.Weekday))
			transport.WriteError(w, http.StatusBadRequest, "open must be before close", nil)
			return
		}
		if seen[e.Weekday] {
			log.Warn("admin store hours update: duplicate weekday", slog.Int("weekday", e.Weekday))
			transport.WriteError(w, http.StatusBadRequest, "duplicate weekday", nil)
			return
		}
		seen[e.Weekday] = true
		entries = append(entries, models.StoreHoursEntry{Weekday: e.Weekday, Open: e.Open, Close: e.Close})
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.Settings.ReplaceStoreHours(ctx, entries); err != nil {
		log.Error("admin store hours update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if s.Cache != nil {
		_ = s.Cache.DeletePrefix(r.Context(), "availability:")
	}

	log.Info("admin store hours update: ok", slog.Int("count", len(entries)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
