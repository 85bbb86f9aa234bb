package notifications

import (
	"context"
	"time"

	"staffsync/internal/platform/docstore"
)

type StoreAPI interface {
	Create(ctx context.Context, userID, message, ntype string, at time.Time) (string, error)
	List(ctx context.Context, filters ...docstore.Filter) ([]Notification, error)
	MarkRead(ctx context.Context, userID string) (int, error)
	Get(ctx context.Context, id string) (Notification, error)
	Delete(ctx context.Context, id string) error
}

var _ StoreAPI = (*Store)(nil)
