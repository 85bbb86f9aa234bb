package employees

import "time"

const (
	Collection   = "employees"
	HRCollection = "hr_users"

	FieldEmail = "email"
	FieldRole  = "role"
)

const (
	RoleHR       = "HR"
	RoleEmployee = "Employee"
)

const (
	StatusCheckedIn  = "Checked In"
	StatusCheckedOut = "Checked Out"
	StatusOnLeave    = "On Leave"
)

const DefaultHRName = "HR Manager"

type Employee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	LastActivity time.Time `json:"lastActivity"`
	Salary       float64   `json:"salary"`
	SalaryEnc    string    `json:"salaryEnc,omitempty"`
}

type HRUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	LastActivity time.Time `json:"lastActivity"`
}

type NewEmployee struct {
	Name   string
	Email  string
	Role   string
	Salary float64
}

// Update is a partial change; nil fields are left untouched.
type Update struct {
	Name         *string
	Email        *string
	Status       *string
	Salary       *float64
	LastActivity *time.Time
}

type SalaryChange struct {
	ID     string  `json:"id"`
	Salary float64 `json:"salary"`
}

type Links struct {
	RegistrationURL string `json:"registrationUrl"`
	QRCodeURL       string `json:"qrCodeUrl"`
}
