package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"hairdo-backend/internal/auth"
	"hairdo-backend/internal/models"
	"hairdo-backend/internal/store"
	"hairdo-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

type AdminUserCreateRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type AdminRegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
	SetupKey string `json:"setupKey" validate:"required"`
}

type AdminUserPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// AdminRegister bootstraps the first admin account. It is gated by a
// deployment-time setup key rather than an existing session.
func (s *Server) AdminRegister(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminRegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin register: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req.Username, req.Email = normalizeUserIdentity(req.Username, req.Email)
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin register: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}
	if s.Cfg.AdminSetupKey == "" {
		log.Warn("admin register: setup key missing")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin registration not configured", nil)
		return
	}
	manager := s.jwtManager()
	if manager == nil {
		log.Warn("admin register: jwt secret missing")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.SetupKey), []byte(s.Cfg.AdminSetupKey)) != 1 {
		log.Warn("admin register: invalid setup key", slog.String("username", req.Username))
		transport.WriteError(w, http.StatusUnauthorized, "invalid setup key", nil)
		return
	}

	user, status, msg := s.createAdminUser(r.Context(), log, "admin register", req.Username, req.Email, req.Password)
	if msg != "" {
		transport.WriteError(w, status, msg, nil)
		return
	}

	if err := s.issueAdminSession(w, manager); err != nil {
		log.Error("admin register: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}
	log.Info("admin register: ok", slog.String("user_id", user.ID), slog.String("username", user.Username))
	transport.WriteJSON(w, http.StatusCreated, user)
}

func (s *Server) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminUserCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin users create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req.Username, req.Email = normalizeUserIdentity(req.Username, req.Email)
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin users create: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	user, status, msg := s.createAdminUser(r.Context(), log, "admin users create", req.Username, req.Email, req.Password)
	if msg != "" {
		transport.WriteError(w, status, msg, nil)
		return
	}

	log.Info("admin users create: ok", slog.String("user_id", user.ID), slog.String("username", user.Username))
	transport.WriteJSON(w, http.StatusCreated, user)
}

func (s *Server) AdminUpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("admin users password: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req AdminUserPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin users password: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin users password: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error("admin users password: hash error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "password error", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.Users.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("admin users password: not found", slog.String("user_id", id))
			transport.WriteError(w, http.StatusNotFound, "user not found", nil)
			return
		}
		log.Error("admin users password: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin users password: ok", slog.String("user_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) createAdminUser(ctx context.Context, log *slog.Logger, area, username, email, password string) (models.User, int, string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error(area+": hash error", slog.String("error", err.Error()))
		return models.User{}, http.StatusInternalServerError, "password error"
	}

	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := s.Users.Create(opCtx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Warn(area+": duplicate", slog.String("username", username))
			return models.User{}, http.StatusConflict, "username already exists"
		}
		log.Error(area+": database error", slog.String("error", err.Error()))
		return models.User{}, http.StatusInternalServerError, "database error"
	}
	return user, 0, ""
}

func normalizeUserIdentity(username, email string) (string, string) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if strings.Contains(username, "@") {
		username = strings.ToLower(username)
	}
	email = strings.ToLower(email)
	return username, email
}
