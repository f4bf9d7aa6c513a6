package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"hairdo-backend/internal/store"
	"hairdo-backend/internal/transport"

	"github.com/google/uuid"
)

type DepositIntentRequest struct {
	AppointmentID string `json:"appointmentId" validate:"required"`
}

type DepositIntentResponse struct {
	IntentID string  `json:"intentId"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CreateDepositIntent issues a placeholder payment intent for the
// deposit frozen onto the appointment. No charge is attempted; a real
// processor would slot in behind the same response shape.
func (s *Server) CreateDepositIntent(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req DepositIntentRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("payments intent: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("payments intent: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	appt, err := s.Appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("payments intent: not found", slog.String("appointment_id", req.AppointmentID))
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
			return
		}
		log.Error("payments intent: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if appt.DepositAmount <= 0 {
		transport.WriteJSON(w, http.StatusOK, DepositIntentResponse{
			Status:   "not_required",
			Amount:   0,
			Currency: "CAD",
		})
		return
	}

	resp := DepositIntentResponse{
		IntentID: uuid.NewString(),
		Status:   "created",
		Amount:   appt.DepositAmount,
		Currency: "CAD",
	}

	log.Info("payments intent: created",
		slog.String("appointment_id", appt.ID),
		slog.String("intent_id", resp.IntentID),
	)
	transport.WriteJSON(w, http.StatusOK, resp)
}
