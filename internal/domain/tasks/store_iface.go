package tasks

import (
	"context"

	"staffsync/internal/platform/docstore"
)

type StoreAPI interface {
	List(ctx context.Context, filters ...docstore.Filter) ([]Task, error)
	Get(ctx context.Context, id string) (Task, error)
	Create(ctx context.Context, fields docstore.Fields) (string, error)
	Update(ctx context.Context, id string, fields docstore.Fields) error
	DeleteBatch(ctx context.Context, ids []string) error
	DeleteWhere(ctx context.Context, filters ...docstore.Filter) error
}

var _ StoreAPI = (*Store)(nil)
