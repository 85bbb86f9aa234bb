package employees

import (
	"context"

	"staffsync/internal/platform/docstore"
)

type StoreAPI interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	GetByEmailAndRole(ctx context.Context, email, role string) (Employee, error)
	Create(ctx context.Context, emp Employee) (string, error)
	Update(ctx context.Context, id string, upd Update) error
	UpdateSalaries(ctx context.Context, changes []SalaryChange) error
	GetHRUser(ctx context.Context, id string) (HRUser, error)
	TouchHRUser(ctx context.Context, id string, fields docstore.Fields) error
	Commit(ctx context.Context, batch *docstore.Batch) error
}

var _ StoreAPI = (*Store)(nil)
