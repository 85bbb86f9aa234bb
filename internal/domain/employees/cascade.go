package employees

import (
	"context"
	"fmt"
	"log/slog"

	"staffsync/internal/domain/leave"
	"staffsync/internal/domain/notifications"
	"staffsync/internal/domain/tasks"
	"staffsync/internal/platform/docstore"
)

// DeleteCascade removes the employee with every task, leave request and
// notification referencing it in one atomic commit. The dependent queries
// are evaluated inside the commit. A missing employee fails with
// ErrNotFound before anything is written.
func (s *Service) DeleteCascade(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}

	batch := docstore.NewBatch().
		Delete(Collection, id).
		DeleteWhere(tasks.Collection, docstore.Where(tasks.FieldAssignedTo, id)).
		DeleteWhere(leave.Collection, docstore.Where(leave.FieldEmployeeID, id)).
		DeleteWhere(notifications.Collection, docstore.Where(notifications.FieldUserID, id))
	if err := s.store.Commit(ctx, batch); err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}

	// Identity accounts belong to the auth provider and are left in place.
	slog.Warn("employee deleted; identity account retained", "employeeId", id)
	return nil
}
