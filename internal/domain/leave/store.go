package leave

import (
	"context"
	"errors"

	"staffsync/internal/platform/docstore"
)

type Store struct {
	Docs docstore.Store
}

func NewStore(docs docstore.Store) *Store {
	return &Store{Docs: docs}
}

func (s *Store) List(ctx context.Context, filters ...docstore.Filter) ([]LeaveRequest, error) {
	docs, err := s.Docs.Find(ctx, Collection, filters...)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[LeaveRequest](docs)
}

func (s *Store) Get(ctx context.Context, id string) (LeaveRequest, error) {
	doc, err := s.Docs.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return LeaveRequest{}, ErrNotFound
	}
	if err != nil {
		return LeaveRequest{}, err
	}
	var out LeaveRequest
	if err := docstore.Decode(doc, &out); err != nil {
		return LeaveRequest{}, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, req LeaveRequest) (string, error) {
	return s.Docs.Add(ctx, Collection, docstore.Fields{
		FieldEmployeeID: req.EmployeeID,
		"employeeName":  req.EmployeeName,
		"startDate":     req.StartDate,
		"endDate":       req.EndDate,
		"reason":        req.Reason,
		FieldStatus:     req.Status,
	})
}

func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	err := s.Docs.Update(ctx, Collection, id, docstore.Fields{FieldStatus: status})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Store) DeleteForEmployee(ctx context.Context, employeeID string) error {
	return s.Docs.Commit(ctx, docstore.NewBatch().DeleteWhere(Collection, docstore.Where(FieldEmployeeID, employeeID)))
}
