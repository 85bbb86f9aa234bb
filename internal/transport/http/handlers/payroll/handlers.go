package payrollhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"staffsync/internal/domain/auth"
	"staffsync/internal/domain/employees"
	"staffsync/internal/domain/payroll"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/middleware"
)

type Handler struct {
	Service *payroll.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *payroll.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/summary", h.handleSummary)
		r.With(middleware.RequireUser).Get("/statements/{employeeID}", h.handleStatement)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_summary_failed", "failed to load payroll summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

// handleStatement streams the salary statement PDF. HR may fetch any
// employee's statement, employees only their own.
func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	if !user.IsHR() {
		own, ok := middleware.EmployeeID(r.Context())
		if !ok || own != employeeID {
			api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", reqID)
			return
		}
	}

	pdf, err := h.Service.Statement(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employees.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		slog.Warn("salary statement failed", "employeeId", employeeID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "statement_failed", "failed to render salary statement", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=salary-statement-"+employeeID+".pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("write salary statement failed", "err", err)
	}
}
