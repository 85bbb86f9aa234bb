package notifications

import (
	"context"
	"errors"
	"time"

	"staffsync/internal/platform/docstore"
)

type Store struct {
	Docs docstore.Store
}

func NewStore(docs docstore.Store) *Store {
	return &Store{Docs: docs}
}

func (s *Store) Create(ctx context.Context, userID, message, ntype string, at time.Time) (string, error) {
	return s.Docs.Add(ctx, Collection, docstore.Fields{
		FieldUserID:    userID,
		"message":      message,
		FieldTimestamp: at,
		FieldRead:      false,
		"type":         ntype,
	})
}

func (s *Store) List(ctx context.Context, filters ...docstore.Filter) ([]Notification, error) {
	docs, err := s.Docs.Find(ctx, Collection, filters...)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[Notification](docs)
}

// MarkRead flips every unread notification of userID in one batch and
// returns how many were updated.
func (s *Store) MarkRead(ctx context.Context, userID string) (int, error) {
	docs, err := s.Docs.Find(ctx, Collection, docstore.Where(FieldUserID, userID), docstore.Where(FieldRead, false))
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	batch := docstore.NewBatch()
	for _, doc := range docs {
		batch.Update(Collection, doc.ID, docstore.Fields{FieldRead: true})
	}
	if err := s.Docs.Commit(ctx, batch); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (s *Store) Get(ctx context.Context, id string) (Notification, error) {
	doc, err := s.Docs.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return Notification{}, ErrNotFound
	}
	if err != nil {
		return Notification{}, err
	}
	var out Notification
	if err := docstore.Decode(doc, &out); err != nil {
		return Notification{}, err
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.Docs.Delete(ctx, Collection, id)
}
