package auth

import (
	"context"
	"time"
)

type StoreAPI interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	Create(ctx context.Context, acct Account) (string, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
}

var _ StoreAPI = (*Store)(nil)
