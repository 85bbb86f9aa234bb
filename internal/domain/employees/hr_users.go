package employees

import (
	"context"
	"errors"
	"strings"

	"staffsync/internal/platform/docstore"
)

// GetOrCreateHRUser resolves the HR profile for an identity account.
// An existing profile gets its lastActivity refreshed. Otherwise an
// employees record with the same email and role HR is moved into hr_users
// under the account id, keeping its lastActivity. Failing both, a fresh profile is created.
func (s *Service) GetOrCreateHRUser(ctx context.Context, accountID, email, displayName string) (HRUser, error) {
	now := s.Now().UTC()

	_, err := s.store.GetHRUser(ctx, accountID)
	if err == nil {
		if err := s.store.TouchHRUser(ctx, accountID, docstore.Fields{"lastActivity": now}); err != nil {
			return HRUser{}, err
		}
		return s.store.GetHRUser(ctx, accountID)
	}
	if !errors.Is(err, ErrNotFound) {
		return HRUser{}, err
	}

	user := HRUser{
		ID:           accountID,
		Name:         strings.TrimSpace(displayName),
		Email:        normalizeEmail(email),
		Role:         RoleHR,
		LastActivity: now,
	}
	if user.Name == "" {
		user.Name = DefaultHRName
	}

	batch := docstore.NewBatch()
	legacy, err := s.store.GetByEmailAndRole(ctx, email, RoleHR)
	switch {
	case err == nil:
		if legacy.Name != "" {
			user.Name = legacy.Name
		}
		if !legacy.LastActivity.IsZero() {
			user.LastActivity = legacy.LastActivity.UTC()
		}
		batch.Delete(Collection, legacy.ID)
	case err != nil && !errors.Is(err, ErrNotFound):
		return HRUser{}, err
	}

	batch.Set(HRCollection, accountID, docstore.Fields{
		"name":         user.Name,
		FieldEmail:     user.Email,
		FieldRole:      user.Role,
		"lastActivity": user.LastActivity,
	})
	if err := s.store.Commit(ctx, batch); err != nil {
		return HRUser{}, err
	}
	return user, nil
}
