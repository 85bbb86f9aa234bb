package auth

import "staffsync/internal/domain/employees"

const (
	RoleHR       = employees.RoleHR
	RoleEmployee = employees.RoleEmployee
)

// Portal selects which side of the application a login is for.
type Portal string

const (
	PortalHR       Portal = "hr"
	PortalEmployee Portal = "employee"
)

func (p Portal) Valid() bool {
	return p == PortalHR || p == PortalEmployee
}

// UserContext is the authenticated caller as carried in the request context.
type UserContext struct {
	UserID     string
	Email      string
	Role       string
	SessionID  string
	EmployeeID string
}

func (u UserContext) IsHR() bool {
	return u.Role == RoleHR
}
