package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"hairdo-backend/internal/auth"
	"hairdo-backend/internal/cache"
	"hairdo-backend/internal/config"
	"hairdo-backend/internal/middleware"
	"hairdo-backend/internal/models"
	"hairdo-backend/internal/store"
	"hairdo-backend/internal/validation"
)

type AppointmentMailer interface {
	SendAppointmentConfirmation(ctx context.Context, appt models.Appointment, service models.Service) (string, error)
}

type Server struct {
	Cfg    *config.Config
	Val    *validation.Validator
	Log    *slog.Logger
	Cache  cache.Cache
	Mailer AppointmentMailer

	Appointments *store.AppointmentRepository
	Settings     *store.SettingsRepository
	Catalog      *store.CatalogRepository
	Users        *store.UserRepository
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}

func (s *Server) jwtManager() *auth.Manager {
	if s.Cfg.JWTSecret == "" {
		return nil
	}
	return &auth.Manager{
		Secret:     []byte(s.Cfg.JWTSecret),
		AccessTTL:  time.Duration(s.Cfg.AccessTTLMinutes) * time.Minute,
		RefreshTTL: time.Duration(s.Cfg.RefreshTTLMinutes) * time.Minute,
		Issuer:     "hairdo-backend",
	}
}
