package dashboard

import (
	"staffsync/internal/domain/activity"
	"staffsync/internal/domain/employees"
	"staffsync/internal/domain/leads"
	"staffsync/internal/domain/leave"
	"staffsync/internal/domain/notifications"
	"staffsync/internal/domain/payroll"
	"staffsync/internal/domain/tasks"
)

const unknownEmployee = "Unknown"

type EmployeeView struct {
	Employee      employees.Employee           `json:"employee"`
	Tasks         []tasks.Task                 `json:"tasks"`
	Leads         []leads.Lead                 `json:"leads"`
	LeaveRequests []leave.LeaveRequest         `json:"leaveRequests"`
	Activity      activity.Summary             `json:"activity"`
	Notifications []notifications.Notification `json:"notifications"`
}

// TaskGroup collects the General tasks assigned to one employee.
type TaskGroup struct {
	EmployeeID    string         `json:"employeeId"`
	EmployeeName  string         `json:"employeeName"`
	TaskCount     int            `json:"taskCount"`
	Tasks         []tasks.Task   `json:"tasks"`
	StatusSummary map[string]int `json:"statusSummary"`
}

type HRView struct {
	Employees     []employees.Employee         `json:"employees"`
	Tasks         []tasks.Task                 `json:"tasks"`
	LeaveRequests []leave.LeaveRequest         `json:"leaveRequests"`
	Leads         []leads.Lead                 `json:"leads"`
	Notifications []notifications.Notification `json:"notifications"`
	TaskGroups    []TaskGroup                  `json:"taskGroups"`
	Payroll       payroll.Summary              `json:"payroll"`
}
