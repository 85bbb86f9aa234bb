package employees

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"staffsync/internal/platform/crypto"
	"staffsync/internal/platform/docstore"
)

const (
	fieldSalary    = "salary"
	fieldSalaryEnc = "salaryEnc"
)

type Store struct {
	Docs   docstore.Store
	Crypto *crypto.Service
}

func NewStore(docs docstore.Store, crypto *crypto.Service) *Store {
	return &Store{Docs: docs, Crypto: crypto}
}

// List returns employee-role records only; HR accounts live in hr_users.
func (s *Store) List(ctx context.Context) ([]Employee, error) {
	docs, err := s.Docs.Find(ctx, Collection, docstore.Where(FieldRole, RoleEmployee))
	if err != nil {
		return nil, err
	}
	return s.decodeAll(docs)
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	doc, err := s.Docs.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return s.decode(doc)
}

// GetByEmail returns the first employees document with the email, any role.
func (s *Store) GetByEmail(ctx context.Context, email string) (Employee, error) {
	docs, err := s.Docs.Find(ctx, Collection, docstore.Where(FieldEmail, normalizeEmail(email)))
	if err != nil {
		return Employee{}, err
	}
	if len(docs) == 0 {
		return Employee{}, ErrNotFound
	}
	return s.decode(docs[0])
}

func (s *Store) GetByEmailAndRole(ctx context.Context, email, role string) (Employee, error) {
	docs, err := s.Docs.Find(ctx, Collection,
		docstore.Where(FieldEmail, normalizeEmail(email)),
		docstore.Where(FieldRole, role),
	)
	if err != nil {
		return Employee{}, err
	}
	if len(docs) == 0 {
		return Employee{}, ErrNotFound
	}
	return s.decode(docs[0])
}

func (s *Store) Create(ctx context.Context, emp Employee) (string, error) {
	fields, err := s.fields(emp)
	if err != nil {
		return "", err
	}
	return s.Docs.Add(ctx, Collection, fields)
}

func (s *Store) Update(ctx context.Context, id string, upd Update) error {
	fields, err := s.updateFields(upd)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	err = s.Docs.Update(ctx, Collection, id, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// UpdateSalaries writes every change in one atomic batch.
func (s *Store) UpdateSalaries(ctx context.Context, changes []SalaryChange) error {
	batch := docstore.NewBatch()
	for _, change := range changes {
		salary := change.Salary
		fields, err := s.updateFields(Update{Salary: &salary})
		if err != nil {
			return err
		}
		batch.Update(Collection, change.ID, fields)
	}
	err := s.Docs.Commit(ctx, batch)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Store) GetHRUser(ctx context.Context, id string) (HRUser, error) {
	doc, err := s.Docs.Get(ctx, HRCollection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return HRUser{}, ErrNotFound
	}
	if err != nil {
		return HRUser{}, err
	}
	var out HRUser
	if err := docstore.Decode(doc, &out); err != nil {
		return HRUser{}, err
	}
	return out, nil
}

func (s *Store) TouchHRUser(ctx context.Context, id string, fields docstore.Fields) error {
	err := s.Docs.Update(ctx, HRCollection, id, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Store) Commit(ctx context.Context, batch *docstore.Batch) error {
	return s.Docs.Commit(ctx, batch)
}

func (s *Store) fields(emp Employee) (docstore.Fields, error) {
	fields := docstore.Fields{
		"name":         emp.Name,
		FieldEmail:     normalizeEmail(emp.Email),
		FieldRole:      emp.Role,
		"status":       emp.Status,
		"lastActivity": emp.LastActivity,
	}
	if err := s.putSalary(fields, emp.Salary, false); err != nil {
		return nil, err
	}
	return fields, nil
}

func (s *Store) updateFields(upd Update) (docstore.Fields, error) {
	fields := docstore.Fields{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Email != nil {
		fields[FieldEmail] = normalizeEmail(*upd.Email)
	}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.LastActivity != nil {
		fields["lastActivity"] = *upd.LastActivity
	}
	if upd.Salary != nil {
		if err := s.putSalary(fields, *upd.Salary, true); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

// putSalary stores salary sealed when a key is configured. On update the
// other representation is removed so only one copy exists.
func (s *Store) putSalary(fields docstore.Fields, salary float64, update bool) error {
	if !s.Crypto.Configured() {
		fields[fieldSalary] = salary
		if update {
			fields[fieldSalaryEnc] = docstore.DeleteField
		}
		return nil
	}
	sealed, err := s.Crypto.SealFloat(salary)
	if err != nil {
		return err
	}
	fields[fieldSalaryEnc] = sealed
	if update {
		fields[fieldSalary] = docstore.DeleteField
	}
	return nil
}

func (s *Store) decode(doc docstore.Document) (Employee, error) {
	var emp Employee
	if err := docstore.Decode(doc, &emp); err != nil {
		return Employee{}, err
	}
	if emp.SalaryEnc != "" {
		salary, err := s.Crypto.OpenFloat(emp.SalaryEnc)
		if err != nil {
			slog.Warn("salary decrypt failed", "employeeId", emp.ID, "err", err)
		} else {
			emp.Salary = salary
		}
		emp.SalaryEnc = ""
	}
	return emp, nil
}

func (s *Store) decodeAll(docs []docstore.Document) ([]Employee, error) {
	out := make([]Employee, 0, len(docs))
	for _, doc := range docs {
		emp, err := s.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
