package leave

import "time"

const (
	Collection = "leaveRequests"

	FieldEmployeeID = "employeeId"
	FieldStatus     = "status"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type LeaveRequest struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
}

// Days is the inclusive calendar day count of the request.
func (r LeaveRequest) Days() float64 {
	days, err := CalculateDays(truncateDay(r.StartDate), truncateDay(r.EndDate))
	if err != nil {
		return 0
	}
	return days
}

type NewRequest struct {
	EmployeeID   string
	EmployeeName string
	StartDate    time.Time
	// EndDate zero means a single-day request.
	EndDate time.Time
	Reason  string
}
