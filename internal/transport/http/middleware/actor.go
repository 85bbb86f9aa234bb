package middleware

import (
	"context"

	"staffsync/internal/domain/session"
)

// EmployeeID returns the employee the caller acts as. The session's
// logged-in employee pointer wins over the token claim.
func EmployeeID(ctx context.Context) (string, bool) {
	if sess, ok := session.FromContext(ctx); ok && sess.HasEmployee() {
		return sess.EmployeeID, true
	}
	user, ok := GetUser(ctx)
	if !ok || user.EmployeeID == "" {
		return "", false
	}
	return user.EmployeeID, true
}
