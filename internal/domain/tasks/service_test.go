package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffsync/internal/platform/docstore"
)

var fixedNow = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

func newTestService() (*Service, *docstore.Memory) {
	mem := docstore.NewMemory()
	svc := NewService(NewStore(mem))
	svc.Now = func() time.Time { return fixedNow }
	return svc, mem
}

func TestCreateGeneralTaskStripsCRMFields(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()

	task, err := svc.Create(ctx, NewTask{
		Title:        "Prepare report",
		AssignedTo:   "e1",
		Type:         TypeGeneral,
		LeadID:       "lead-1",
		Instructions: "call twice",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Status != StatusToDo {
		t.Fatalf("expected default status To Do, got %q", task.Status)
	}

	doc, err := mem.Get(ctx, Collection, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	for _, field := range []string{"leadId", "instructions", "nextFollowUpDate"} {
		if _, ok := doc.Fields[field]; ok {
			t.Fatalf("general task persisted %s", field)
		}
	}
}

func TestCreateCRMTaskRequiresLead(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), NewTask{Title: "Call", AssignedTo: "e1", Type: TypeCRM})
	if !errors.Is(err, ErrLeadRequired) {
		t.Fatalf("expected ErrLeadRequired, got %v", err)
	}
}

func TestCreateCRMTaskKeepsLead(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	task, err := svc.Create(ctx, NewTask{Title: "Call", AssignedTo: "e1", Type: TypeCRM, LeadID: "lead-1", Instructions: "be nice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LeadID != "lead-1" || got.Instructions != "be nice" {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestUpdateToCompletedStampsCompletedAt(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	task, _ := svc.Create(ctx, NewTask{Title: "Report", AssignedTo: "e1"})

	completed := StatusCompleted
	change, err := svc.Update(ctx, task.ID, Update{Status: &completed})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !change.NewlyCompleted() {
		t.Fatal("expected transition into Completed")
	}
	if change.After.CompletedAt == nil || !change.After.CompletedAt.Equal(fixedNow) {
		t.Fatalf("expected completedAt %v, got %v", fixedNow, change.After.CompletedAt)
	}

	again, err := svc.Update(ctx, task.ID, Update{Status: &completed})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if again.NewlyCompleted() {
		t.Fatal("repeat completion must not count as a transition")
	}
}

func TestUpdateGeneralTaskKeepsFollowUpOnly(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()
	task, _ := svc.Create(ctx, NewTask{Title: "Report", AssignedTo: "e1"})

	next := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	notes := "bring slides"
	change, err := svc.Update(ctx, task.ID, Update{NextFollowUpDate: &next, Instructions: &notes})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if change.After.NextFollowUpDate == nil || !change.After.NextFollowUpDate.Equal(next) {
		t.Fatalf("expected follow-up %v, got %v", next, change.After.NextFollowUpDate)
	}
	doc, err := mem.Get(ctx, Collection, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := doc.Fields["instructions"]; ok {
		t.Fatal("general task persisted instructions")
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	task, _ := svc.Create(ctx, NewTask{Title: "Report", AssignedTo: "e1"})
	bad := "Done"
	if _, err := svc.Update(ctx, task.ID, Update{Status: &bad}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestResetClearsCompletedAt(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()
	task, _ := svc.Create(ctx, NewTask{Title: "Report", AssignedTo: "e1", Status: StatusCompleted})

	change, err := svc.Reset(ctx, task.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if change.After.Status != StatusInProgress || change.After.CompletedAt != nil {
		t.Fatalf("unexpected task after reset: %+v", change.After)
	}
	doc, _ := mem.Get(ctx, Collection, task.ID)
	if _, ok := doc.Fields[FieldCompletedAt]; ok {
		t.Fatal("expected completedAt field removed from the document")
	}
}

func TestUpdateMissingTask(t *testing.T) {
	svc, _ := newTestService()
	title := "x"
	if _, err := svc.Update(context.Background(), "missing", Update{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClearCompleted(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, _ = svc.Create(ctx, NewTask{Title: "a", AssignedTo: "e1", Status: StatusCompleted})
	_, _ = svc.Create(ctx, NewTask{Title: "b", AssignedTo: "e2", Status: StatusCompleted})
	open, _ := svc.Create(ctx, NewTask{Title: "c", AssignedTo: "e1"})

	if err := svc.ClearCompleted(ctx, "e1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	all, _ := svc.List(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 tasks left, got %d", len(all))
	}

	if err := svc.ClearCompleted(ctx, ""); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	all, _ = svc.List(ctx)
	if len(all) != 1 || all[0].ID != open.ID {
		t.Fatalf("expected only open task left, got %+v", all)
	}
}

func TestDeleteBatchRequiresIDs(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.DeleteBatch(context.Background(), nil); !errors.Is(err, ErrNothingToClear) {
		t.Fatalf("expected ErrNothingToClear, got %v", err)
	}
}

func TestFollowUpsOn(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	today := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	match, _ := svc.Create(ctx, NewTask{Title: "a", AssignedTo: "e1", Type: TypeCRM, LeadID: "l1", NextFollowUpDate: &today})
	_, _ = svc.Create(ctx, NewTask{Title: "b", AssignedTo: "e1", Type: TypeCRM, LeadID: "l2", NextFollowUpDate: &tomorrow})
	_, _ = svc.Create(ctx, NewTask{Title: "c", AssignedTo: "e1"})

	got, err := svc.FollowUpsOn(ctx, today, time.UTC)
	if err != nil {
		t.Fatalf("follow ups: %v", err)
	}
	if len(got) != 1 || got[0].ID != match.ID {
		t.Fatalf("unexpected follow ups: %+v", got)
	}
}
