package auth

import "context"

const (
	PermEmployeesRead     = "employees.read"
	PermEmployeesWrite    = "employees.write"
	PermEmployeesDelete   = "employees.delete"
	PermEmployeesCheckIn  = "employees.checkin"
	PermTasksRead         = "tasks.read"
	PermTasksWrite        = "tasks.write"
	PermTasksProgress     = "tasks.progress"
	PermLeaveRead         = "leave.read"
	PermLeaveRequest      = "leave.request"
	PermLeaveApprove      = "leave.approve"
	PermLeadsRead         = "leads.read"
	PermLeadsWrite        = "leads.write"
	PermNotificationsRead = "notifications.read"
	PermEmailSend         = "email.send"
	PermPayrollRead       = "payroll.read"
	PermPayrollWrite      = "payroll.write"
	PermDashboardHR       = "dashboard.hr"
	PermDashboardEmployee = "dashboard.employee"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermEmployeesDelete,
	PermEmployeesCheckIn,
	PermTasksRead,
	PermTasksWrite,
	PermTasksProgress,
	PermLeaveRead,
	PermLeaveRequest,
	PermLeaveApprove,
	PermLeadsRead,
	PermLeadsWrite,
	PermNotificationsRead,
	PermEmailSend,
	PermPayrollRead,
	PermPayrollWrite,
	PermDashboardHR,
	PermDashboardEmployee,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesCheckIn,
		PermTasksRead,
		PermTasksProgress,
		PermLeaveRead,
		PermLeaveRequest,
		PermLeadsRead,
		PermNotificationsRead,
		PermDashboardEmployee,
	},
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermEmployeesDelete,
		PermTasksRead,
		PermTasksWrite,
		PermLeaveRead,
		PermLeaveApprove,
		PermLeadsRead,
		PermLeadsWrite,
		PermNotificationsRead,
		PermEmailSend,
		PermPayrollRead,
		PermPayrollWrite,
		PermDashboardHR,
	},
}

// StaticPermissions answers permission checks from RolePermissions.
type StaticPermissions struct {
	byRole map[string]map[string]struct{}
}

func NewStaticPermissions() *StaticPermissions {
	byRole := make(map[string]map[string]struct{}, len(RolePermissions))
	for role, perms := range RolePermissions {
		set := make(map[string]struct{}, len(perms))
		for _, perm := range perms {
			set[perm] = struct{}{}
		}
		byRole[role] = set
	}
	return &StaticPermissions{byRole: byRole}
}

func (p *StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	_, ok := p.byRole[role][permission]
	return ok, nil
}
