package leavehandler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"staffsync/internal/domain/auth"
	"staffsync/internal/domain/employees"
	"staffsync/internal/domain/leave"
	"staffsync/internal/domain/notifications"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/middleware"
	"staffsync/internal/transport/http/shared"
)

const decisionDateLayout = "Jan 2"

type Handler struct {
	Service   *leave.Service
	Employees *employees.Service
	Notify    *notifications.Service
	Perms     middleware.PermissionStore
	Location  *time.Location
}

func NewHandler(service *leave.Service, employeesSvc *employees.Service, notify *notifications.Service, perms middleware.PermissionStore, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{Service: service, Employees: employeesSvc, Notify: notify, Perms: perms, Location: loc}
}

type submitRequest struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason" validate:"required"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests", h.handleListRequests)
		r.With(middleware.RequirePermission(auth.PermLeaveRequest, h.Perms)).Post("/requests", h.handleCreateRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveRequest, h.Perms)).Post("/requests/clear-history", h.handleClearHistory)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Post("/requests/{requestID}/approve", h.handleApproveRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Post("/requests/{requestID}/reject", h.handleRejectRequest)
	})
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var (
		list []leave.LeaveRequest
		err  error
	)
	if user.IsHR() {
		list, err = h.Service.List(r.Context())
	} else {
		id, ok := middleware.EmployeeID(r.Context())
		if !ok {
			api.Fail(w, http.StatusForbidden, "forbidden", "no employee is signed in", reqID)
			return
		}
		list, err = h.Service.ListForEmployee(r.Context(), id)
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_requests_failed", "failed to list leave requests", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := middleware.EmployeeID(r.Context())
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee is signed in", reqID)
		return
	}

	var payload submitRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	start, _ := shared.ParseDateIn(strings.TrimSpace(payload.StartDate), h.Location)
	if payload.StartDate != "" && start.IsZero() {
		v.Add("startDate", "must be a valid date in YYYY-MM-DD format")
	}
	var end time.Time
	if strings.TrimSpace(payload.EndDate) != "" {
		parsed, err := shared.ParseDateIn(strings.TrimSpace(payload.EndDate), h.Location)
		if err != nil {
			v.Add("endDate", "must be a valid date in YYYY-MM-DD format")
		}
		end = parsed
	}
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Employees.Get(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employees.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "leave_request_create_failed", "failed to submit leave request", reqID)
		return
	}

	req, err := h.Service.Submit(r.Context(), leave.NewRequest{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		StartDate:    start,
		EndDate:      end,
		Reason:       payload.Reason,
	})
	switch {
	case err == nil:
	case errors.Is(err, leave.ErrInvalidRange), errors.Is(err, leave.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid leave dates", reqID)
		return
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_request_create_failed", "failed to submit leave request", reqID)
		return
	}

	h.notify(r.Context(), notifications.HR(), fmt.Sprintf("%s has requested leave.", emp.Name), notifications.TypeLeaveRequest)
	api.Created(w, req, reqID)
}

func (h *Handler) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusApproved)
}

func (h *Handler) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusRejected)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, status string) {
	reqID := middleware.GetRequestID(r.Context())
	req, err := h.Service.Decide(r.Context(), chi.URLParam(r, "requestID"), status)
	switch {
	case err == nil:
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", reqID)
		return
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_decision_failed", "failed to update leave request", reqID)
		return
	}

	msg := fmt.Sprintf("Your leave request for %s has been %s.", req.StartDate.In(h.Location).Format(decisionDateLayout), strings.ToLower(status))
	h.notify(r.Context(), notifications.Employee(req.EmployeeID), msg, notifications.TypeLeaveStatus)
	api.Success(w, req, reqID)
}

func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := middleware.EmployeeID(r.Context())
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee is signed in", reqID)
		return
	}
	if err := h.Service.ClearHistory(r.Context(), employeeID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_clear_failed", "failed to clear leave history", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "cleared"}, reqID)
}

func (h *Handler) notify(ctx context.Context, to notifications.Recipient, message, ntype string) {
	if _, err := h.Notify.Create(ctx, to, message, ntype); err != nil {
		slog.Warn("notification create failed", "to", to.String(), "type", ntype, "err", err)
	}
}
