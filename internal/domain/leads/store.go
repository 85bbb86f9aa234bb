package leads

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

func (s *Store) List(ctx context.Context) ([]Lead, error) {
	docs, err := s.Docs.Find(ctx, Collection)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[Lead](docs)
}

func (s *Store) Get(ctx context.Context, id string) (Lead, error) {
	doc, err := s.Docs.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	var out Lead
	if err := docstore.Decode(doc, &out); err != nil {
		return Lead{}, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, lead Lead) (string, error) {
	return s.Docs.Add(ctx, Collection, docstore.Fields{
		"name":       lead.Name,
		"lastRemark": lead.LastRemark,
		"email":      lead.Email,
		"phone":      lead.Phone,
		"status":     lead.Status,
	})
}

func (s *Store) Update(ctx context.Context, id string, fields docstore.Fields) error {
	err := s.Docs.Update(ctx, Collection, id, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.Docs.Delete(ctx, Collection, id)
}
