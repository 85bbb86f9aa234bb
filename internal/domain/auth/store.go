package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"staffsync/internal/platform/docstore"
)

type Store struct {
	Docs docstore.Store
}

func NewStore(docs docstore.Store) *Store {
	return &Store{Docs: docs}
}

func (s *Store) GetByEmail(ctx context.Context, email string) (Account, error) {
	docs, err := s.Docs.Find(ctx, Collection, docstore.Where(FieldEmail, normalizeEmail(email)))
	if err != nil {
		return Account{}, err
	}
	if len(docs) == 0 {
		return Account{}, ErrAccountNotFound
	}
	var out Account
	if err := docstore.Decode(docs[0], &out); err != nil {
		return Account{}, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, acct Account) (string, error) {
	return s.Docs.Add(ctx, Collection, docstore.Fields{
		FieldEmail:     normalizeEmail(acct.Email),
		"passwordHash": acct.PasswordHash,
		"displayName":  acct.DisplayName,
		"role":         acct.Role,
		"createdAt":    acct.CreatedAt,
	})
}

func (s *Store) TouchLogin(ctx context.Context, id string, at time.Time) error {
	err := s.Docs.Update(ctx, Collection, id, docstore.Fields{"lastLogin": at})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
