package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"staffsync/internal/domain/activity"
	"staffsync/internal/domain/employees"
	"staffsync/internal/domain/leads"
	"staffsync/internal/domain/leave"
	"staffsync/internal/domain/notifications"
	"staffsync/internal/domain/payroll"
	"staffsync/internal/domain/tasks"
)

type EmployeeSource interface {
	List(ctx context.Context) ([]employees.Employee, error)
	Get(ctx context.Context, id string) (employees.Employee, error)
}

type TaskSource interface {
	List(ctx context.Context) ([]tasks.Task, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]tasks.Task, error)
}

type LeadSource interface {
	List(ctx context.Context) ([]leads.Lead, error)
}

type LeaveSource interface {
	List(ctx context.Context) ([]leave.LeaveRequest, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error)
}

type NotificationSource interface {
	List(ctx context.Context, to notifications.Recipient) ([]notifications.Notification, error)
}

type ActivitySource interface {
	Weekly(ctx context.Context, employeeID string) (activity.Summary, error)
}

type Sources struct {
	Employees     EmployeeSource
	Tasks         TaskSource
	Leads         LeadSource
	Leave         LeaveSource
	Notifications NotificationSource
	Activity      ActivitySource
}

type Service struct {
	src Sources
}

func NewService(src Sources) *Service {
	return &Service{src: src}
}

// Employee loads everything the employee dashboard shows. The first failing
// fetch cancels the others.
func (s *Service) Employee(ctx context.Context, employeeID string) (EmployeeView, error) {
	var out EmployeeView
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		emp, err := s.src.Employees.Get(ctx, employeeID)
		out.Employee = emp
		return err
	})
	g.Go(func() error {
		list, err := s.src.Tasks.ListForEmployee(ctx, employeeID)
		out.Tasks = list
		return err
	})
	g.Go(func() error {
		list, err := s.src.Leads.List(ctx)
		out.Leads = list
		return err
	})
	g.Go(func() error {
		list, err := s.src.Leave.ListForEmployee(ctx, employeeID)
		out.LeaveRequests = list
		return err
	})
	g.Go(func() error {
		summary, err := s.src.Activity.Weekly(ctx, employeeID)
		out.Activity = summary
		return err
	})
	g.Go(func() error {
		list, err := s.src.Notifications.List(ctx, notifications.Employee(employeeID))
		out.Notifications = list
		return err
	})

	if err := g.Wait(); err != nil {
		return EmployeeView{}, err
	}
	return out, nil
}

func (s *Service) HR(ctx context.Context) (HRView, error) {
	var out HRView
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.src.Employees.List(ctx)
		out.Employees = list
		return err
	})
	g.Go(func() error {
		list, err := s.src.Tasks.List(ctx)
		out.Tasks = list
		return err
	})
	g.Go(func() error {
		list, err := s.src.Leave.List(ctx)
		out.LeaveRequests = list
		return err
	})
	g.Go(func() error {
		list, err := s.src.Leads.List(ctx)
		out.Leads = list
		return err
	})
	g.Go(func() error {
		list, err := s.src.Notifications.List(ctx, notifications.HR())
		out.Notifications = list
		return err
	})

	if err := g.Wait(); err != nil {
		return HRView{}, err
	}
	out.TaskGroups = GroupGeneralTasks(out.Tasks, out.Employees)
	out.Payroll = payroll.Totals(out.Employees)
	return out, nil
}

// GroupGeneralTasks groups General tasks by assignee in first-seen order.
// Groups for HR accounts are left out.
func GroupGeneralTasks(list []tasks.Task, staff []employees.Employee) []TaskGroup {
	byID := make(map[string]employees.Employee, len(staff))
	for _, emp := range staff {
		byID[emp.ID] = emp
	}

	index := map[string]int{}
	var groups []TaskGroup
	for _, task := range list {
		if task.Type != tasks.TypeGeneral {
			continue
		}
		if emp, ok := byID[task.AssignedTo]; ok && emp.Role == employees.RoleHR {
			continue
		}
		i, ok := index[task.AssignedTo]
		if !ok {
			name := unknownEmployee
			if emp, found := byID[task.AssignedTo]; found {
				name = emp.Name
			}
			groups = append(groups, TaskGroup{
				EmployeeID:   task.AssignedTo,
				EmployeeName: name,
				StatusSummary: map[string]int{
					tasks.StatusToDo:       0,
					tasks.StatusInProgress: 0,
					tasks.StatusCompleted:  0,
				},
			})
			i = len(groups) - 1
			index[task.AssignedTo] = i
		}
		groups[i].TaskCount++
		groups[i].Tasks = append(groups[i].Tasks, task)
		groups[i].StatusSummary[task.Status]++
	}
	return groups
}
