package auth

import "time"

const (
	Collection = "auth_accounts"
	FieldEmail = "email"
)

const minPasswordLength = 6

// Account is an identity record. It is independent of the employees and
// hr_users profiles, which reference it by email or id.
type Account struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"passwordHash"`
	DisplayName  string     `json:"displayName"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      string    `json:"role"`
	UserID    string    `json:"userId"`
	// EmployeeID is set for employee portal logins.
	EmployeeID string `json:"employeeId,omitempty"`
	Name       string `json:"name"`
}
