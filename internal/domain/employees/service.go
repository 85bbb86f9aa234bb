package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Service struct {
	store StoreAPI
	Links LinkBuilder
	Now   func() time.Time
}

func NewService(store StoreAPI, links LinkBuilder) *Service {
	return &Service{store: store, Links: links, Now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Employee, error) {
	return s.store.GetByEmail(ctx, email)
}

// Register creates an employee checked out with lastActivity set to now.
func (s *Service) Register(ctx context.Context, in NewEmployee) (Employee, Links, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Salary < 0 {
		return Employee{}, Links{}, ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = RoleEmployee
	}

	_, err := s.store.GetByEmail(ctx, email)
	if err == nil {
		return Employee{}, Links{}, ErrEmailInUse
	}
	if !errors.Is(err, ErrNotFound) {
		return Employee{}, Links{}, err
	}

	emp := Employee{
		Name:         name,
		Email:        email,
		Role:         role,
		Status:       StatusCheckedOut,
		LastActivity: s.Now().UTC(),
		Salary:       in.Salary,
	}
	id, err := s.store.Create(ctx, emp)
	if err != nil {
		return Employee{}, Links{}, fmt.Errorf("create employee: %w", err)
	}
	emp.ID = id
	return emp, s.Links.Registration(email), nil
}

func (s *Service) Update(ctx context.Context, id string, upd Update) (Employee, error) {
	if upd.Status != nil && !validStatus(*upd.Status) {
		return Employee{}, ErrInvalidInput
	}
	if upd.Salary != nil && *upd.Salary < 0 {
		return Employee{}, ErrInvalidInput
	}
	if err := s.store.Update(ctx, id, upd); err != nil {
		return Employee{}, err
	}
	return s.store.Get(ctx, id)
}

// ToggleCheckIn flips Checked In and Checked Out. Any other status checks in.
func (s *Service) ToggleCheckIn(ctx context.Context, id string) (Employee, error) {
	emp, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	next := StatusCheckedIn
	if emp.Status == StatusCheckedIn {
		next = StatusCheckedOut
	}
	now := s.Now().UTC()
	return s.Update(ctx, id, Update{Status: &next, LastActivity: &now})
}

func (s *Service) UpdateSalaries(ctx context.Context, changes []SalaryChange) error {
	if len(changes) == 0 {
		return nil
	}
	for _, change := range changes {
		if strings.TrimSpace(change.ID) == "" || change.Salary < 0 {
			return ErrInvalidInput
		}
	}
	return s.store.UpdateSalaries(ctx, changes)
}

func validStatus(status string) bool {
	switch status {
	case StatusCheckedIn, StatusCheckedOut, StatusOnLeave:
		return true
	default:
		return false
	}
}
