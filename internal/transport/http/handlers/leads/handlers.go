package leadshandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffsync/internal/domain/auth"
	"staffsync/internal/domain/leads"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/middleware"
	"staffsync/internal/transport/http/shared"
)

type Handler struct {
	Service *leads.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *leads.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

type createRequest struct {
	Name       string `json:"name" validate:"required"`
	LastRemark string `json:"lastRemark"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
}

type updateRequest struct {
	Name       *string `json:"name"`
	LastRemark *string `json:"lastRemark"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone"`
	Status     *string `json:"status"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leads", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeadsRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermLeadsWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermLeadsRead, h.Perms)).Get("/{leadID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermLeadsWrite, h.Perms)).Patch("/{leadID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermLeadsWrite, h.Perms)).Delete("/{leadID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "lead_list_failed", "failed to list leads", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload createRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	lead, err := h.Service.Create(r.Context(), leads.Lead{
		Name:       payload.Name,
		LastRemark: payload.LastRemark,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Status:     payload.Status,
	})
	if err != nil {
		failLead(w, err, reqID, "lead_create_failed", "failed to create lead")
		return
	}
	api.Created(w, lead, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	lead, err := h.Service.Get(r.Context(), chi.URLParam(r, "leadID"))
	if err != nil {
		failLead(w, err, reqID, "lead_lookup_failed", "failed to load lead")
		return
	}
	api.Success(w, lead, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload updateRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	lead, err := h.Service.Update(r.Context(), chi.URLParam(r, "leadID"), leads.Update{
		Name:       payload.Name,
		LastRemark: payload.LastRemark,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Status:     payload.Status,
	})
	if err != nil {
		failLead(w, err, reqID, "lead_update_failed", "failed to update lead")
		return
	}
	api.Success(w, lead, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id := chi.URLParam(r, "leadID")
	if err := h.Service.Delete(r.Context(), id); err != nil {
		failLead(w, err, reqID, "lead_delete_failed", "failed to delete lead")
		return
	}
	api.Success(w, map[string]string{"id": id}, reqID)
}

func failLead(w http.ResponseWriter, err error, reqID, code, message string) {
	switch {
	case errors.Is(err, leads.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "lead not found", reqID)
	case errors.Is(err, leads.ErrInvalidStatus):
		api.Fail(w, http.StatusBadRequest, "invalid_status", "invalid lead status", reqID)
	case errors.Is(err, leads.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid lead details", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, reqID)
	}
}
