package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"hairdo-backend/internal/models"
	"hairdo-backend/internal/store"
	"hairdo-backend/internal/transport"
	"hairdo-backend/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
)

type AdminServiceRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category"`
	Duration int     `json:"duration" validate:"required,minutes15"`
	Price    float64 `json:"price" validate:"gte=0"`
	Slug     string  `json:"slug"`
}

type AdminEmployeeRequest struct {
	Name       string   `json:"name" validate:"required"`
	Role       string   `json:"role"`
	ServiceIDs []string `json:"serviceIds" validate:"omitempty,dive,required"`
}

func (s *Server) GetServices(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := s.Catalog.ListServices(ctx)
	if err != nil {
		log.Error("services list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("services list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"services": items})
}

func (s *Server) GetEmployees(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := s.Catalog.ListEmployees(ctx)
	if err != nil {
		log.Error("employees list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("employees list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": items})
}

func (s *Server) AdminCreateService(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin services create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin services create: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := s.Catalog.CreateService(ctx, models.Service{
		Name:     req.Name,
		Slug:     slug,
		Category: req.Category,
		Duration: req.Duration,
		Price:    req.Price,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Warn("admin services create: slug exists", slog.String("slug", slug))
			transport.WriteError(w, http.StatusConflict, "slug already exists", nil)
			return
		}
		log.Error("admin services create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin services create: ok", slog.String("service_id", created.ID), slog.String("slug", slug))
	transport.WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) AdminUpdateService(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("admin services update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req AdminServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin services update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin services update: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	updated, err := s.Catalog.UpdateService(ctx, id, bson.M{
		"name":     req.Name,
		"slug":     slug,
		"category": req.Category,
		"duration": req.Duration,
		"price":    req.Price,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("admin services update: not found", slog.String("service_id", id))
			transport.WriteError(w, http.StatusNotFound, "service not found", nil)
			return
		}
		if errors.Is(err, store.ErrDuplicate) {
			log.Warn("admin services update: slug exists", slog.String("slug", slug))
			transport.WriteError(w, http.StatusConflict, "slug already exists", nil)
			return
		}
		log.Error("admin services update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin services update: ok", slog.String("service_id", id))
	transport.WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) AdminDeleteService(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("admin services delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := s.Catalog.DeleteService(ctx, id)
	if err != nil {
		log.Error("admin services delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	if !deleted {
		log.Warn("admin services delete: not found", slog.String("service_id", id))
		transport.WriteError(w, http.StatusNotFound, "service not found", nil)
		return
	}

	log.Info("admin services delete: ok", slog.String("service_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) AdminCreateEmployee(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin employees create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin employees create: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := s.Catalog.CreateEmployee(ctx, models.Employee{
		Name:       req.Name,
		Role:       req.Role,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		log.Error("admin employees create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin employees create: ok", slog.String("employee_id", created.ID))
	transport.WriteJSON(w, http.StatusCreated, created)
}
