package leads

import (
	"context"

	"staffsync/internal/platform/docstore"
)

type StoreAPI interface {
	List(ctx context.Context) ([]Lead, error)
	Get(ctx context.Context, id string) (Lead, error)
	Create(ctx context.Context, lead Lead) (string, error)
	Update(ctx context.Context, id string, fields docstore.Fields) error
	Delete(ctx context.Context, id string) error
}

var _ StoreAPI = (*Store)(nil)
