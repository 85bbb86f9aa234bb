package notificationshandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"staffsync/internal/domain/auth"
	"staffsync/internal/domain/notifications"
	"staffsync/internal/platform/email"
	"staffsync/internal/platform/metrics"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/middleware"
	"staffsync/internal/transport/http/shared"
)

type Handler struct {
	Service *notifications.Service
	Perms   middleware.PermissionStore
	Metrics *metrics.Collector
}

func NewHandler(service *notifications.Service, perms middleware.PermissionStore, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Metrics: collector}
}

type sendEmailRequest struct {
	To              string `json:"to"`
	Name            string `json:"name"`
	TaskTitle       string `json:"taskTitle"`
	TaskDescription string `json:"taskDescription"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermNotificationsRead, h.Perms))
		r.Get("/", h.handleList)
		r.Post("/read-all", h.handleMarkAllRead)
		r.Delete("/{notificationID}", h.handleDelete)
	})
}

// RegisterLegacyRoutes mounts the bare /api/send-email endpoint.
func (h *Handler) RegisterLegacyRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermEmailSend, h.Perms)).Post("/send-email", h.HandleSendEmail)
}

// recipient maps the caller onto the notification owner: the shared HR
// inbox for HR users, the signed-in employee otherwise.
func recipient(r *http.Request) (notifications.Recipient, bool) {
	user, _ := middleware.GetUser(r.Context())
	if user.IsHR() {
		return notifications.HR(), true
	}
	id, ok := middleware.EmployeeID(r.Context())
	if !ok {
		return notifications.Recipient{}, false
	}
	return notifications.Employee(id), true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	to, ok := recipient(r)
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee is signed in", reqID)
		return
	}

	items, err := h.Service.List(r.Context(), to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_list_failed", "failed to list notifications", reqID)
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	w.Header().Set("X-Total-Count", strconv.Itoa(len(items)))
	api.Success(w, shared.Page(items, page), reqID)
}

func (h *Handler) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	to, ok := recipient(r)
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee is signed in", reqID)
		return
	}
	updated, err := h.Service.MarkAllRead(r.Context(), to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_update_failed", "failed to update notifications", reqID)
		return
	}
	api.Success(w, map[string]int{"updated": updated}, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	to, ok := recipient(r)
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee is signed in", reqID)
		return
	}

	id := chi.URLParam(r, "notificationID")
	note, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "notification not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "notification_lookup_failed", "failed to load notification", reqID)
		return
	}
	if note.UserID != to.Key() {
		api.Fail(w, http.StatusNotFound, "not_found", "notification not found", reqID)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_delete_failed", "failed to delete notification", reqID)
		return
	}
	api.Success(w, map[string]string{"id": id}, reqID)
}

// HandleSendEmail serves POST /api/send-email. It answers with the provider
// response or a plain {error} body.
func (h *Handler) HandleSendEmail(w http.ResponseWriter, r *http.Request) {
	var payload sendEmailRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Problem(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	id, err := h.Service.SendTaskEmail(r.Context(), notifications.TaskEmail{
		To:              payload.To,
		Name:            payload.Name,
		TaskTitle:       payload.TaskTitle,
		TaskDescription: payload.TaskDescription,
	})
	if !errors.Is(err, email.ErrNotConfigured) && h.Metrics != nil {
		h.Metrics.RecordEmail(err)
	}
	switch {
	case err == nil:
		api.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
	case errors.Is(err, email.ErrNotConfigured):
		api.Problem(w, http.StatusInternalServerError, "Email service is not configured.")
	case errors.Is(err, notifications.ErrInvalidInput):
		api.Problem(w, http.StatusInternalServerError, "An unexpected error occurred")
	default:
		slog.Warn("send task email failed", "err", err)
		api.Problem(w, http.StatusInternalServerError, "Error sending email")
	}
}
