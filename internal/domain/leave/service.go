package leave

import (
	"context"
	"strings"

	"staffsync/internal/platform/docstore"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]LeaveRequest, error) {
	return s.store.List(ctx)
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	return s.store.List(ctx, docstore.Where(FieldEmployeeID, employeeID))
}

func (s *Service) Get(ctx context.Context, id string) (LeaveRequest, error) {
	return s.store.Get(ctx, id)
}

// Submit stores a Pending request. A zero end date makes it a single-day
// request.
func (s *Service) Submit(ctx context.Context, in NewRequest) (LeaveRequest, error) {
	if strings.TrimSpace(in.EmployeeID) == "" || in.StartDate.IsZero() {
		return LeaveRequest{}, ErrInvalidInput
	}
	end := in.EndDate
	if end.IsZero() {
		end = in.StartDate
	}
	if _, err := CalculateDays(truncateDay(in.StartDate), truncateDay(end)); err != nil {
		return LeaveRequest{}, err
	}

	req := LeaveRequest{
		EmployeeID:   in.EmployeeID,
		EmployeeName: in.EmployeeName,
		StartDate:    in.StartDate.UTC(),
		EndDate:      end.UTC(),
		Reason:       strings.TrimSpace(in.Reason),
		Status:       StatusPending,
	}
	id, err := s.store.Create(ctx, req)
	if err != nil {
		return LeaveRequest{}, err
	}
	req.ID = id
	return req, nil
}

// Decide sets Approved or Rejected and returns the updated request.
func (s *Service) Decide(ctx context.Context, id, status string) (LeaveRequest, error) {
	if status != StatusApproved && status != StatusRejected {
		return LeaveRequest{}, ErrInvalidStatus
	}
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return LeaveRequest{}, err
	}
	return s.store.Get(ctx, id)
}

// ClearHistory deletes every request of the employee in one batch.
func (s *Service) ClearHistory(ctx context.Context, employeeID string) error {
	if strings.TrimSpace(employeeID) == "" {
		return ErrInvalidInput
	}
	return s.store.DeleteForEmployee(ctx, employeeID)
}
