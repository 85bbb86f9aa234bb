package leave

import (
	"context"

	"staffsync/internal/platform/docstore"
)

type StoreAPI interface {
	List(ctx context.Context, filters ...docstore.Filter) ([]LeaveRequest, error)
	Get(ctx context.Context, id string) (LeaveRequest, error)
	Create(ctx context.Context, req LeaveRequest) (string, error)
	UpdateStatus(ctx context.Context, id, status string) error
	DeleteForEmployee(ctx context.Context, employeeID string) error
}

var _ StoreAPI = (*Store)(nil)
