package tasks

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

func (s *Store) List(ctx context.Context, filters ...docstore.Filter) ([]Task, error) {
	docs, err := s.Docs.Find(ctx, Collection, filters...)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[Task](docs)
}

func (s *Store) Get(ctx context.Context, id string) (Task, error) {
	doc, err := s.Docs.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
	}
	var out Task
	if err := docstore.Decode(doc, &out); err != nil {
		return Task{}, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, fields docstore.Fields) (string, error) {
	return s.Docs.Add(ctx, Collection, fields)
}

func (s *Store) Update(ctx context.Context, id string, fields docstore.Fields) error {
	err := s.Docs.Update(ctx, Collection, id, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Store) DeleteBatch(ctx context.Context, ids []string) error {
	batch := docstore.NewBatch()
	for _, id := range ids {
		batch.Delete(Collection, id)
	}
	return s.Docs.Commit(ctx, batch)
}

func (s *Store) DeleteWhere(ctx context.Context, filters ...docstore.Filter) error {
	return s.Docs.Commit(ctx, docstore.NewBatch().DeleteWhere(Collection, filters...))
}
