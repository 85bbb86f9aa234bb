package payroll

import "time"

// Summary is the monthly payroll across all employees.
type Summary struct {
	Employees int     `json:"employees"`
	Total     float64 `json:"total"`
	Average   float64 `json:"average"`
	Currency  string  `json:"currency"`
}

type StatementData struct {
	EmployeeID string
	Name       string
	Email      string
	Status     string
	Salary     float64
	Currency   string
	IssuedAt   time.Time
	Period     time.Time
}
