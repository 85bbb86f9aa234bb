package dashboardhandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffsync/internal/domain/activity"
	"staffsync/internal/domain/auth"
	"staffsync/internal/domain/dashboard"
	"staffsync/internal/domain/employees"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/middleware"
)

type Handler struct {
	Service  *dashboard.Service
	Activity *activity.Service
	Perms    middleware.PermissionStore
}

func NewHandler(service *dashboard.Service, activitySvc *activity.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Activity: activitySvc, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermDashboardEmployee, h.Perms)).Get("/dashboard/employee", h.handleEmployee)
	r.With(middleware.RequirePermission(auth.PermDashboardHR, h.Perms)).Get("/dashboard/hr", h.handleHR)
	r.With(middleware.RequirePermission(auth.PermDashboardEmployee, h.Perms)).Get("/activity", h.handleActivity)
}

func (h *Handler) handleEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := middleware.EmployeeID(r.Context())
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee is signed in", reqID)
		return
	}
	view, err := h.Service.Employee(r.Context(), id)
	if err != nil {
		if errors.Is(err, employees.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		slog.Warn("employee dashboard load failed", "employeeId", id, "err", err)
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to load dashboard", reqID)
		return
	}
	api.Success(w, view, reqID)
}

func (h *Handler) handleHR(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	view, err := h.Service.HR(r.Context())
	if err != nil {
		slog.Warn("hr dashboard load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to load dashboard", reqID)
		return
	}
	api.Success(w, view, reqID)
}

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := middleware.EmployeeID(r.Context())
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee is signed in", reqID)
		return
	}
	summary, err := h.Activity.Weekly(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "activity_failed", "failed to load activity", reqID)
		return
	}
	api.Success(w, summary, reqID)
}
