package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"hairdo-backend/internal/models"
	"hairdo-backend/internal/policy"
	"hairdo-backend/internal/schedule"
	"hairdo-backend/internal/store"
	"hairdo-backend/internal/timemath"
	"hairdo-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

type CreateAppointmentRequest struct {
	EmployeeID    string `json:"employeeId" validate:"required"`
	ServiceID     string `json:"serviceId" validate:"required"`
	CustomerID    string `json:"customerId" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
	Date          string `json:"date" validate:"required,date"`
	StartTime     string `json:"startTime" validate:"required,clock"`
}

func (s *Server) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req CreateAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("appointments create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := s.Val.Struct(req); err != nil {
		log.Warn("appointments create: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	now := time.Now()
	past, err := schedule.IsDatePast(req.Date, s.Cfg.Timezone, now)
	if err != nil {
		log.Warn("appointments create: invalid date", slog.String("date", req.Date))
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if past {
		log.Warn("appointments create: date in the past", slog.String("date", req.Date))
		transport.WriteError(w, http.StatusBadRequest, "date in the past", nil)
		return
	}

	startMin, err := timemath.ToMinutes(req.StartTime)
	if err != nil {
		log.Warn("appointments create: invalid time", slog.String("time", req.StartTime))
		transport.WriteError(w, http.StatusBadRequest, "invalid time", nil)
		return
	}
	if startMin%schedule.SlotStepMinutes != 0 {
		log.Warn("appointments create: off the slot grid", slog.String("time", req.StartTime))
		transport.WriteError(w, http.StatusBadRequest, "start time off the slot grid", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	service, err := s.Catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("appointments create: service not found", slog.String("service_id", req.ServiceID))
			transport.WriteError(w, http.StatusBadRequest, "service not found", nil)
			return
		}
		log.Error("appointments create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if _, err := s.Catalog.GetEmployee(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("appointments create: employee not found", slog.String("employee_id", req.EmployeeID))
			transport.WriteError(w, http.StatusBadRequest, "employee not found", nil)
			return
		}
		log.Error("appointments create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	endMin, sameDay := schedule.EndOfBooking(startMin, service.Duration)
	if !sameDay {
		log.Warn("appointments create: past midnight", slog.String("time", req.StartTime), slog.Int("duration", service.Duration))
		transport.WriteError(w, http.StatusBadRequest, "booking would run past midnight", nil)
		return
	}

	bookingPolicy := s.fetchPolicy(ctx, log)
	date, err := schedule.ParseDate(req.Date, s.Cfg.Timezone)
	if err != nil {
		log.Warn("appointments create: invalid date", slog.String("date", req.Date))
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if !policy.WithinAdvanceWindow(date, now.In(s.Cfg.Timezone), bookingPolicy.MaxAdvanceDays) {
		log.Warn("appointments create: beyond booking window", slog.String("date", req.Date))
		transport.WriteError(w, http.StatusBadRequest, "date beyond the booking window", nil)
		return
	}

	week, err := s.Settings.Week(ctx)
	if err != nil {
		log.Error("appointments create: store hours error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	openMin, closeMin, open := week.ExactMinutes(int(date.Weekday()))
	if !open {
		log.Warn("appointments create: salon closed", slog.String("date", req.Date))
		transport.WriteError(w, http.StatusBadRequest, "salon is closed that day", nil)
		return
	}
	if startMin < openMin || endMin > closeMin {
		log.Warn("appointments create: outside opening hours", slog.String("time", req.StartTime))
		transport.WriteError(w, http.StatusBadRequest, "outside opening hours", nil)
		return
	}

	existing, err := s.Appointments.ListByEmployeeAndDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		log.Error("appointments create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	candidate := schedule.Interval{Start: startMin, End: endMin}
	if schedule.HasConflict(candidate, bookedIntervals(existing)) {
		log.Warn("appointments create: slot overlap", slog.String("date", req.Date), slog.String("time", req.StartTime))
		transport.WriteError(w, http.StatusConflict, "slot not available", nil)
		return
	}

	appt := models.Appointment{
		BusinessID:    s.Cfg.BusinessID,
		EmployeeID:    req.EmployeeID,
		CustomerID:    req.CustomerID,
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Date:          req.Date,
		StartTime:     timemath.MinutesToClock(startMin),
		EndTime:       timemath.MinutesToClock(endMin),
		Duration:      service.Duration,
		Status:        models.AppointmentStatusPending,
		Price:         service.Price,
	}

	start, err := schedule.ParseDateTime(req.Date, appt.StartTime, s.Cfg.Timezone)
	if err != nil {
		log.Warn("appointments create: invalid time", slog.String("time", req.StartTime))
		transport.WriteError(w, http.StatusBadRequest, "invalid time", nil)
		return
	}
	policy.Apply(&appt, policy.Compute(start, bookingPolicy, service.Price, now.In(s.Cfg.Timezone)))

	created, err := s.Appointments.Create(ctx, appt)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Warn("appointments create: lost the slot race", slog.String("date", req.Date), slog.String("time", req.StartTime))
			transport.WriteError(w, http.StatusConflict, "slot already booked", nil)
			return
		}
		log.Error("appointments create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if s.Cache != nil {
		_ = s.Cache.DeletePrefix(r.Context(), "availability:"+req.Date+":")
	}

	if s.Mailer != nil && created.CustomerEmail != "" {
		go s.sendConfirmationEmail(log, created, service)
	}

	log.Info("appointments create: booked",
		slog.String("appointment_id", created.ID),
		slog.String("employee_id", created.EmployeeID),
		slog.String("date", created.Date),
		slog.String("time", created.StartTime),
	)
	transport.WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) sendConfirmationEmail(log *slog.Logger, appt models.Appointment, service models.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	messageID, err := s.Mailer.SendAppointmentConfirmation(ctx, appt, service)
	if err != nil {
		log.Warn("appointments email: send failed",
			slog.String("appointment_id", appt.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	log.Info("appointments email: sent",
		slog.String("appointment_id", appt.ID),
		slog.String("message_id", messageID),
	)
}

func (s *Server) GetAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("appointments get: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("appointments get: not found", slog.String("appointment_id", id))
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
			return
		}
		log.Error("appointments get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("appointments get: ok", slog.String("appointment_id", id))
	transport.WriteJSON(w, http.StatusOK, appt)
}

type listAppointmentsQuery struct {
	Date string `validate:"required,date"`
}

func (s *Server) ListAppointments(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := listAppointmentsQuery{Date: r.URL.Query().Get("date")}
	if err := s.Val.Struct(q); err != nil {
		log.Warn("appointments list: invalid query")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "invalid query", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := s.Appointments.ListByDate(ctx, q.Date)
	if err != nil {
		log.Error("appointments list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("appointments list: ok", slog.String("date", q.Date), slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"appointments": items})
}

// CancelAppointment flips the status to cancelled and reports whether
// the deposit is kept. The late/free decision reads the cancel-by
// deadline frozen onto the appointment at booking time, not the policy
// in force today.
func (s *Server) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("appointments cancel: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("appointments cancel: not found", slog.String("appointment_id", id))
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
			return
		}
		log.Error("appointments cancel: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if models.StatusIsTerminal(appt.Status) {
		log.Warn("appointments cancel: already terminal", slog.String("appointment_id", id), slog.String("status", appt.Status))
		transport.WriteError(w, http.StatusConflict, "appointment already closed", nil)
		return
	}

	late := policy.IsLateCancellation(time.Now().In(s.Cfg.Timezone), appt.CancelBy)

	updated, err := s.Appointments.UpdateStatus(ctx, id, models.AppointmentStatusCancelled)
	if err != nil {
		log.Error("appointments cancel: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if s.Cache != nil {
		_ = s.Cache.DeletePrefix(r.Context(), "availability:"+appt.Date+":")
	}

	log.Info("appointments cancel: ok",
		slog.String("appointment_id", id),
		slog.Bool("late", late),
	)
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"appointment":    updated,
		"late":           late,
		"depositKept":    late,
		"depositAmount":  appt.DepositAmount,
		"cancelDeadline": appt.CancelBy,
	})
}
