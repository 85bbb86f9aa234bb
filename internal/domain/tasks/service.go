package tasks

import (
	"context"
	"strings"
	"time"

	"staffsync/internal/platform/docstore"
)

type Service struct {
	store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, Now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Task, error) {
	return s.store.List(ctx)
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID string) ([]Task, error) {
	return s.store.List(ctx, docstore.Where(FieldAssignedTo, employeeID))
}

func (s *Service) ListCompletedForEmployee(ctx context.Context, employeeID string) ([]Task, error) {
	return s.store.List(ctx, docstore.Where(FieldAssignedTo, employeeID), docstore.Where(FieldStatus, StatusCompleted))
}

func (s *Service) Get(ctx context.Context, id string) (Task, error) {
	return s.store.Get(ctx, id)
}

// Create stores a task. General tasks never carry leadId or instructions;
// CRM tasks must reference a lead.
func (s *Service) Create(ctx context.Context, in NewTask) (Task, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.AssignedTo) == "" {
		return Task{}, ErrInvalidInput
	}
	if in.Type == "" {
		in.Type = TypeGeneral
	}
	if in.Type != TypeGeneral && in.Type != TypeCRM {
		return Task{}, ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = StatusToDo
	}
	if !validStatus(in.Status) {
		return Task{}, ErrInvalidStatus
	}

	task := Task{
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		AssignedTo:     in.AssignedTo,
		AssignedToName: in.AssignedToName,
		Status:         in.Status,
		DueDate:        in.DueDate.UTC(),
		Type:           in.Type,
	}
	fields := docstore.Fields{
		"title":          task.Title,
		"description":    task.Description,
		FieldAssignedTo:  task.AssignedTo,
		"assignedToName": task.AssignedToName,
		FieldStatus:      task.Status,
		"dueDate":        task.DueDate,
		"type":           task.Type,
	}

	if task.IsCRM() {
		if strings.TrimSpace(in.LeadID) == "" {
			return Task{}, ErrLeadRequired
		}
		task.LeadID = in.LeadID
		fields["leadId"] = in.LeadID
		if in.Instructions != "" {
			task.Instructions = in.Instructions
			fields["instructions"] = in.Instructions
		}
		if in.NextFollowUpDate != nil {
			next := in.NextFollowUpDate.UTC()
			task.NextFollowUpDate = &next
			fields["nextFollowUpDate"] = next
		}
	}
	if task.Status == StatusCompleted {
		now := s.Now().UTC()
		task.CompletedAt = &now
		fields[FieldCompletedAt] = now
	}

	id, err := s.store.Create(ctx, fields)
	if err != nil {
		return Task{}, err
	}
	task.ID = id
	return task, nil
}

// Update applies a partial change. Moving into Completed stamps completedAt.
func (s *Service) Update(ctx context.Context, id string, upd Update) (Change, error) {
	before, err := s.store.Get(ctx, id)
	if err != nil {
		return Change{}, err
	}

	fields := docstore.Fields{}
	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return Change{}, ErrInvalidInput
		}
		fields["title"] = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.DueDate != nil {
		fields["dueDate"] = upd.DueDate.UTC()
	}
	if upd.Remarks != nil {
		fields["remarks"] = *upd.Remarks
	}
	if upd.NextFollowUpDate != nil {
		fields["nextFollowUpDate"] = upd.NextFollowUpDate.UTC()
	}
	if before.IsCRM() && upd.Instructions != nil {
		fields["instructions"] = *upd.Instructions
	}
	if upd.Status != nil {
		if !validStatus(*upd.Status) {
			return Change{}, ErrInvalidStatus
		}
		fields[FieldStatus] = *upd.Status
		if *upd.Status == StatusCompleted && before.Status != StatusCompleted {
			fields[FieldCompletedAt] = s.Now().UTC()
		}
	}
	if len(fields) == 0 {
		return Change{Before: before, After: before}, nil
	}

	if err := s.store.Update(ctx, id, fields); err != nil {
		return Change{}, err
	}
	after, err := s.store.Get(ctx, id)
	if err != nil {
		return Change{}, err
	}
	return Change{Before: before, After: after}, nil
}

// Reset reopens a task: status In Progress and completedAt removed.
func (s *Service) Reset(ctx context.Context, id string) (Change, error) {
	before, err := s.store.Get(ctx, id)
	if err != nil {
		return Change{}, err
	}
	err = s.store.Update(ctx, id, docstore.Fields{
		FieldStatus:      StatusInProgress,
		FieldCompletedAt: docstore.DeleteField,
	})
	if err != nil {
		return Change{}, err
	}
	after, err := s.store.Get(ctx, id)
	if err != nil {
		return Change{}, err
	}
	return Change{Before: before, After: after}, nil
}

func (s *Service) DeleteBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return ErrNothingToClear
	}
	return s.store.DeleteBatch(ctx, ids)
}

// ClearCompleted deletes completed tasks, for one assignee when employeeID
// is set and across everyone otherwise.
func (s *Service) ClearCompleted(ctx context.Context, employeeID string) error {
	filters := []docstore.Filter{docstore.Where(FieldStatus, StatusCompleted)}
	if employeeID != "" {
		filters = append(filters, docstore.Where(FieldAssignedTo, employeeID))
	}
	return s.store.DeleteWhere(ctx, filters...)
}

// FollowUpsOn returns CRM tasks whose next follow-up falls on day in loc.
func (s *Service) FollowUpsOn(ctx context.Context, day time.Time, loc *time.Location) ([]Task, error) {
	all, err := s.store.List(ctx, docstore.Where("type", TypeCRM))
	if err != nil {
		return nil, err
	}
	y, m, d := day.In(loc).Date()
	out := make([]Task, 0)
	for _, task := range all {
		if task.NextFollowUpDate == nil {
			continue
		}
		ty, tm, td := task.NextFollowUpDate.In(loc).Date()
		if ty == y && tm == m && td == d {
			out = append(out, task)
		}
	}
	return out, nil
}

func validStatus(status string) bool {
	switch status {
	case StatusToDo, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}
