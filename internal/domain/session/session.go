package session

import (
	"context"
	"errors"
)

// KeyLoggedInEmployee names the per-session pointer to the employee that is
// signed in on the employee portal.
const KeyLoggedInEmployee = "loggedInEmployeeId"

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId,omitempty"`
}

func (s Session) HasEmployee() bool {
	return s.EmployeeID != ""
}

type Store interface {
	Get(ctx context.Context, sessionID string) (Session, error)
	SetEmployee(ctx context.Context, sessionID, employeeID string) error
	Clear(ctx context.Context, sessionID string) error
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
