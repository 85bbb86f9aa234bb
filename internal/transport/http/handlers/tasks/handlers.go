package taskshandler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"staffsync/internal/domain/activity"
	"staffsync/internal/domain/auth"
	"staffsync/internal/domain/employees"
	"staffsync/internal/domain/leads"
	"staffsync/internal/domain/notifications"
	"staffsync/internal/domain/tasks"
	"staffsync/internal/platform/jobs"
	"staffsync/internal/platform/metrics"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/middleware"
	"staffsync/internal/transport/http/shared"
)

type Handler struct {
	Service   *tasks.Service
	Employees *employees.Service
	Leads     *leads.Service
	Notify    *notifications.Service
	Activity  *activity.Service
	Jobs      *jobs.Service
	Metrics   *metrics.Collector
	Perms     middleware.PermissionStore
	Location  *time.Location
}

func NewHandler(
	service *tasks.Service,
	employeesSvc *employees.Service,
	leadsSvc *leads.Service,
	notify *notifications.Service,
	activitySvc *activity.Service,
	jobsSvc *jobs.Service,
	collector *metrics.Collector,
	perms middleware.PermissionStore,
	loc *time.Location,
) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		Service:   service,
		Employees: employeesSvc,
		Leads:     leadsSvc,
		Notify:    notify,
		Activity:  activitySvc,
		Jobs:      jobsSvc,
		Metrics:   collector,
		Perms:     perms,
		Location:  loc,
	}
}

type createRequest struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description"`
	AssignedTo       string `json:"assignedTo" validate:"required"`
	Status           string `json:"status"`
	DueDate          string `json:"dueDate"`
	Type             string `json:"type" validate:"omitempty,oneof=General CRM"`
	LeadID           string `json:"leadId"`
	Instructions     string `json:"instructions"`
	NextFollowUpDate string `json:"nextFollowUpDate"`
}

type updateRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Status           *string `json:"status"`
	DueDate          *string `json:"dueDate"`
	Instructions     *string `json:"instructions"`
	NextFollowUpDate *string `json:"nextFollowUpDate"`
}

type progressRequest struct {
	Status           *string `json:"status"`
	Remarks          *string `json:"remarks"`
	NextFollowUpDate *string `json:"nextFollowUpDate"`
	LeadStatus       *string `json:"leadStatus"`
	LastRemark       *string `json:"lastRemark"`
}

type progressResponse struct {
	Task     tasks.Task        `json:"task"`
	Activity *activity.Summary `json:"activity,omitempty"`
}

type batchDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Get("/follow-ups", h.handleFollowUps)
		r.With(middleware.RequirePermission(auth.PermTasksWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermTasksWrite, h.Perms)).Post("/batch-delete", h.handleBatchDelete)
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Post("/clear-completed", h.handleClearCompleted)
		r.With(middleware.RequirePermission(auth.PermTasksWrite, h.Perms)).Patch("/{taskID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermTasksProgress, h.Perms)).Post("/{taskID}/progress", h.handleProgress)
		r.With(middleware.RequirePermission(auth.PermTasksProgress, h.Perms)).Post("/{taskID}/reset", h.handleReset)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var (
		list []tasks.Task
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
		api.Fail(w, http.StatusInternalServerError, "task_list_failed", "failed to list tasks", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleFollowUps(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	day := time.Now().In(h.Location)
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := shared.ParseDateIn(raw, h.Location)
		if err != nil {
			shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "date", Reason: "must be a valid date in YYYY-MM-DD format"}})
			return
		}
		day = parsed
	}

	list, err := h.Service.FollowUpsOn(r.Context(), day, h.Location)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "follow_up_list_failed", "failed to list follow-ups", reqID)
		return
	}
	if !user.IsHR() {
		id, _ := middleware.EmployeeID(r.Context())
		own := make([]tasks.Task, 0, len(list))
		for _, task := range list {
			if task.AssignedTo == id {
				own = append(own, task)
			}
		}
		list = own
	}
	api.Success(w, list, reqID)
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
	due := v.OptionalDate("dueDate", payload.DueDate)
	next := v.OptionalDate("nextFollowUpDate", payload.NextFollowUpDate)
	if payload.Type == tasks.TypeCRM {
		v.Required("leadId", payload.LeadID, "is required for CRM tasks")
	}
	if v.Reject(w, reqID) {
		return
	}

	assignee, err := h.Employees.Get(r.Context(), payload.AssignedTo)
	if err != nil {
		if errors.Is(err, employees.ErrNotFound) {
			api.Fail(w, http.StatusBadRequest, "invalid_assignee", "assigned employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "task_create_failed", "failed to create task", reqID)
		return
	}

	in := tasks.NewTask{
		Title:          payload.Title,
		Description:    payload.Description,
		AssignedTo:     assignee.ID,
		AssignedToName: assignee.Name,
		Status:         payload.Status,
		DueDate:        due,
		Type:           payload.Type,
		LeadID:         payload.LeadID,
		Instructions:   payload.Instructions,
	}
	if !next.IsZero() {
		in.NextFollowUpDate = &next
	}
	task, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.failTask(w, err, reqID, "task_create_failed", "failed to create task")
		return
	}

	h.notify(r.Context(), notifications.Employee(assignee.ID), fmt.Sprintf("You have a new task: \"%s\"", task.Title), notifications.TypeNewTask)
	h.enqueueTaskEmail(assignee, task)
	api.Created(w, task, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload updateRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	upd := tasks.Update{
		Title:        payload.Title,
		Description:  payload.Description,
		Status:       payload.Status,
		Instructions: payload.Instructions,
	}
	if payload.DueDate != nil {
		if due, ok := v.Date("dueDate", *payload.DueDate); ok {
			upd.DueDate = &due
		}
	}
	if payload.NextFollowUpDate != nil {
		if next, ok := v.Date("nextFollowUpDate", *payload.NextFollowUpDate); ok {
			upd.NextFollowUpDate = &next
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	change, err := h.Service.Update(r.Context(), chi.URLParam(r, "taskID"), upd)
	if err != nil {
		h.failTask(w, err, reqID, "task_update_failed", "failed to update task")
		return
	}
	api.Success(w, change.After, reqID)
}

// handleProgress is the employee side of a task update. For CRM tasks the
// lead is updated before the task itself.
func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload progressRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	upd := tasks.Update{Status: payload.Status, Remarks: payload.Remarks}
	if payload.NextFollowUpDate != nil && strings.TrimSpace(*payload.NextFollowUpDate) != "" {
		if next, ok := v.Date("nextFollowUpDate", *payload.NextFollowUpDate); ok {
			upd.NextFollowUpDate = &next
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	task, employeeID, ok := h.ownTask(w, r, reqID)
	if !ok {
		return
	}

	if task.IsCRM() && task.LeadID != "" && (payload.LeadStatus != nil || payload.LastRemark != nil) {
		_, err := h.Leads.Update(r.Context(), task.LeadID, leads.Update{Status: payload.LeadStatus, LastRemark: payload.LastRemark})
		switch {
		case err == nil:
		case errors.Is(err, leads.ErrInvalidStatus):
			api.Fail(w, http.StatusBadRequest, "invalid_status", "invalid lead status", reqID)
			return
		case errors.Is(err, leads.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "lead not found", reqID)
			return
		default:
			api.Fail(w, http.StatusInternalServerError, "lead_update_failed", "failed to update lead", reqID)
			return
		}
	}

	change, err := h.Service.Update(r.Context(), task.ID, upd)
	if err != nil {
		h.failTask(w, err, reqID, "task_update_failed", "failed to update task")
		return
	}

	out := progressResponse{Task: change.After}
	if change.NewlyCompleted() {
		name := h.employeeName(r.Context(), employeeID, task.AssignedToName)
		h.notify(r.Context(), notifications.HR(), fmt.Sprintf("%s completed the task: \"%s\"", name, change.After.Title), notifications.TypeTaskCompleted)
	}
	if change.After.Status == tasks.StatusCompleted && h.Activity != nil {
		summary, err := h.Activity.Weekly(r.Context(), employeeID)
		if err != nil {
			slog.Warn("activity refresh failed", "employeeId", employeeID, "err", err)
		} else {
			out.Activity = &summary
		}
	}
	api.Success(w, out, reqID)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	task, employeeID, ok := h.ownTask(w, r, reqID)
	if !ok {
		return
	}
	change, err := h.Service.Reset(r.Context(), task.ID)
	if err != nil {
		h.failTask(w, err, reqID, "task_reset_failed", "failed to reset task")
		return
	}
	name := h.employeeName(r.Context(), employeeID, task.AssignedToName)
	h.notify(r.Context(), notifications.HR(), fmt.Sprintf("%s has reset the task: \"%s\"", name, change.After.Title), notifications.TypeTaskCompleted)
	api.Success(w, change.After, reqID)
}

func (h *Handler) handleBatchDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload batchDeleteRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}
	if err := h.Service.DeleteBatch(r.Context(), payload.IDs); err != nil {
		h.failTask(w, err, reqID, "task_delete_failed", "failed to delete tasks")
		return
	}
	api.Success(w, map[string]int{"deleted": len(payload.IDs)}, reqID)
}

// handleClearCompleted removes completed tasks: all of them for HR, the
// caller's own otherwise.
func (h *Handler) handleClearCompleted(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	scope := ""
	if !user.IsHR() {
		id, ok := middleware.EmployeeID(r.Context())
		if !ok {
			api.Fail(w, http.StatusForbidden, "forbidden", "no employee is signed in", reqID)
			return
		}
		scope = id
	}
	if err := h.Service.ClearCompleted(r.Context(), scope); err != nil {
		api.Fail(w, http.StatusInternalServerError, "task_clear_failed", "failed to clear completed tasks", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "cleared"}, reqID)
}

func (h *Handler) ownTask(w http.ResponseWriter, r *http.Request, reqID string) (tasks.Task, string, bool) {
	employeeID, ok := middleware.EmployeeID(r.Context())
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee is signed in", reqID)
		return tasks.Task{}, "", false
	}
	task, err := h.Service.Get(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		h.failTask(w, err, reqID, "task_lookup_failed", "failed to load task")
		return tasks.Task{}, "", false
	}
	if task.AssignedTo != employeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "task is assigned to another employee", reqID)
		return tasks.Task{}, "", false
	}
	return task, employeeID, true
}

func (h *Handler) employeeName(ctx context.Context, id, fallback string) string {
	emp, err := h.Employees.Get(ctx, id)
	if err != nil || emp.Name == "" {
		return fallback
	}
	return emp.Name
}

func (h *Handler) notify(ctx context.Context, to notifications.Recipient, message, ntype string) {
	if _, err := h.Notify.Create(ctx, to, message, ntype); err != nil {
		slog.Warn("notification create failed", "to", to.String(), "type", ntype, "err", err)
	}
}

func (h *Handler) enqueueTaskEmail(assignee employees.Employee, task tasks.Task) {
	if h.Jobs == nil || h.Notify.Mailer == nil || !h.Notify.Mailer.Configured() {
		return
	}
	msg := notifications.TaskEmail{
		To:              assignee.Email,
		Name:            assignee.Name,
		TaskTitle:       task.Title,
		TaskDescription: task.Description,
	}
	h.Jobs.Enqueue(jobs.JobTaskEmail, task.ID, func(ctx context.Context) error {
		_, err := h.Notify.SendTaskEmail(ctx, msg)
		if h.Metrics != nil {
			h.Metrics.RecordEmail(err)
		}
		return err
	})
}

func (h *Handler) failTask(w http.ResponseWriter, err error, reqID, code, message string) {
	switch {
	case errors.Is(err, tasks.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "task not found", reqID)
	case errors.Is(err, tasks.ErrInvalidStatus):
		api.Fail(w, http.StatusBadRequest, "invalid_status", "invalid task status", reqID)
	case errors.Is(err, tasks.ErrLeadRequired):
		api.Fail(w, http.StatusBadRequest, "lead_required", "CRM tasks require a lead", reqID)
	case errors.Is(err, tasks.ErrInvalidInput), errors.Is(err, tasks.ErrNothingToClear):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid task details", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, reqID)
	}
}
