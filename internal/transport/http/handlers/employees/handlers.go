package employeeshandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffsync/internal/domain/auth"
	"staffsync/internal/domain/employees"
	"staffsync/internal/platform/metrics"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/middleware"
	"staffsync/internal/transport/http/shared"
)

type Handler struct {
	Service *employees.Service
	Perms   middleware.PermissionStore
	Metrics *metrics.Collector
}

func NewHandler(service *employees.Service, perms middleware.PermissionStore, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Metrics: collector}
}

type registerRequest struct {
	Name   string  `json:"name" validate:"required"`
	Email  string  `json:"email" validate:"required,email"`
	Salary float64 `json:"salary" validate:"gte=0"`
}

type registerResponse struct {
	Employee employees.Employee `json:"employee"`
	Links    employees.Links    `json:"links"`
}

type updateRequest struct {
	Name   *string  `json:"name"`
	Email  *string  `json:"email" validate:"omitempty,email"`
	Status *string  `json:"status"`
	Salary *float64 `json:"salary" validate:"omitempty,gte=0"`
}

type salariesRequest struct {
	Changes []employees.SalaryChange `json:"changes" validate:"required,min=1,dive"`
}

type deleteEmployeeRequest struct {
	EmployeeID string `json:"employeeId"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleRegister)
		r.With(middleware.RequireUser).Get("/me", h.handleMe)
		r.With(middleware.RequirePermission(auth.PermEmployeesCheckIn, h.Perms)).Post("/me/check-in", h.handleCheckIn)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Put("/salaries", h.handleUpdateSalaries)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Patch("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermEmployeesDelete, h.Perms)).Delete("/{employeeID}", h.handleDelete)
	})
}

// RegisterLegacyRoutes mounts the bare /api endpoints used by the portal
// before the versioned API existed.
func (h *Handler) RegisterLegacyRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermEmployeesDelete, h.Perms)).Post("/delete-employee", h.HandleDeleteEmployee)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload registerRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	emp, links, err := h.Service.Register(r.Context(), employees.NewEmployee{
		Name:   payload.Name,
		Email:  payload.Email,
		Role:   employees.RoleEmployee,
		Salary: payload.Salary,
	})
	switch {
	case err == nil:
		api.Created(w, registerResponse{Employee: emp, Links: links}, reqID)
	case errors.Is(err, employees.ErrEmailInUse):
		api.Fail(w, http.StatusConflict, "email_in_use", "an employee with this email already exists", reqID)
	case errors.Is(err, employees.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid employee details", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to add employee", reqID)
	}
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := middleware.EmployeeID(r.Context())
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee is signed in", reqID)
		return
	}
	emp, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.failLookup(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := middleware.EmployeeID(r.Context())
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee is signed in", reqID)
		return
	}
	emp, err := h.Service.ToggleCheckIn(r.Context(), id)
	if err != nil {
		h.failLookup(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleUpdateSalaries(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload salariesRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	err := h.Service.UpdateSalaries(r.Context(), payload.Changes)
	switch {
	case err == nil:
		api.Success(w, map[string]int{"updated": len(payload.Changes)}, reqID)
	case errors.Is(err, employees.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "every change needs an id and a non-negative salary", reqID)
	case errors.Is(err, employees.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "salary_update_failed", "failed to update salaries", reqID)
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.failLookup(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
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
	if payload.Name != nil {
		v.Required("name", *payload.Name, "must not be empty")
	}
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Service.Update(r.Context(), chi.URLParam(r, "employeeID"), employees.Update{
		Name:   payload.Name,
		Email:  payload.Email,
		Status: payload.Status,
		Salary: payload.Salary,
	})
	switch {
	case err == nil:
		api.Success(w, emp, reqID)
	case errors.Is(err, employees.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid employee details", reqID)
	default:
		h.failLookup(w, err, reqID)
	}
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id := chi.URLParam(r, "employeeID")
	err := h.Service.DeleteCascade(r.Context(), id)
	switch {
	case err == nil:
		h.recordDelete()
		api.Success(w, map[string]string{"id": id}, reqID)
	case errors.Is(err, employees.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	default:
		slog.Warn("cascade delete failed", "employeeId", id, "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee data", reqID)
	}
}

// HandleDeleteEmployee serves POST /api/delete-employee with the plain
// {message} / {error} bodies.
func (h *Handler) HandleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	var payload deleteEmployeeRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		slog.Warn("delete employee: unreadable body", "err", err)
		api.Problem(w, http.StatusInternalServerError, "Failed to delete employee data")
		return
	}
	id := strings.TrimSpace(payload.EmployeeID)
	if id == "" {
		api.Problem(w, http.StatusBadRequest, "Employee ID is required")
		return
	}

	err := h.Service.DeleteCascade(r.Context(), id)
	switch {
	case err == nil:
		h.recordDelete()
		api.Message(w, http.StatusOK, "Employee data deleted successfully")
	case errors.Is(err, employees.ErrNotFound):
		api.Problem(w, http.StatusNotFound, "Employee not found")
	default:
		slog.Warn("cascade delete failed", "employeeId", id, "err", err)
		api.Problem(w, http.StatusInternalServerError, "Failed to delete employee data")
	}
}

func (h *Handler) recordDelete() {
	if h.Metrics != nil {
		h.Metrics.RecordCascadeDelete()
	}
}

func (h *Handler) failLookup(w http.ResponseWriter, err error, reqID string) {
	if errors.Is(err, employees.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	api.Fail(w, http.StatusInternalServerError, "employee_lookup_failed", "failed to load employee", reqID)
}
