package notifications

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"staffsync/internal/platform/config"
	"staffsync/internal/platform/docstore"
	"staffsync/internal/platform/email"
)

type captureMailer struct {
	mu       sync.Mutex
	messages []email.Message
}

func (m *captureMailer) Send(_ context.Context, msg email.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return "msg-1", nil
}

func (m *captureMailer) Configured() bool { return true }

func newTestService(mailer email.Mailer) *Service {
	svc := New(NewStore(docstore.NewMemory()), mailer, "onboarding@resend.dev", "https://app.example.com/employee/login")
	tick := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	return svc
}

func TestParseRecipient(t *testing.T) {
	cases := []struct {
		raw     string
		wantHR  bool
		wantKey string
		wantErr bool
	}{
		{raw: "hr", wantHR: true, wantKey: "hr"},
		{raw: "HR", wantHR: true, wantKey: "hr"},
		{raw: " e1 ", wantKey: "e1"},
		{raw: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseRecipient(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidRecipient) {
					t.Fatalf("expected ErrInvalidRecipient, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got.IsHR() != tc.wantHR || got.Key() != tc.wantKey {
				t.Fatalf("unexpected recipient %+v", got)
			}
		})
	}
}

func TestEmptyEmployeeRecipientIsInvalid(t *testing.T) {
	svc := newTestService(nil)
	if _, err := svc.Create(context.Background(), Employee(""), "hello", TypeNewTask); !errors.Is(err, ErrInvalidRecipient) {
		t.Fatalf("expected ErrInvalidRecipient, got %v", err)
	}
}

func TestCreateDefaultsUnread(t *testing.T) {
	svc := newTestService(nil)
	n, err := svc.Create(context.Background(), Employee("e1"), `You have a new task: "Report"`, TypeNewTask)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.Read || n.UserID != "e1" || n.Timestamp.IsZero() {
		t.Fatalf("unexpected notification %+v", n)
	}
	if _, err := svc.Create(context.Background(), HR(), "x", "unknown-type"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	first, _ := svc.Create(ctx, HR(), "first", TypeLeaveRequest)
	second, _ := svc.Create(ctx, HR(), "second", TypeLeaveRequest)
	_, _ = svc.Create(ctx, Employee("e1"), "other", TypeNewTask)

	got, err := svc.List(ctx, HR())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestMarkAllReadOnlyTouchesRecipient(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	_, _ = svc.Create(ctx, HR(), "a", TypeTaskCompleted)
	_, _ = svc.Create(ctx, HR(), "b", TypeLeaveRequest)
	_, _ = svc.Create(ctx, Employee("e1"), "c", TypeNewTask)

	updated, err := svc.MarkAllRead(ctx, HR())
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 updated, got %d", updated)
	}

	hr, _ := svc.List(ctx, HR())
	for _, n := range hr {
		if !n.Read {
			t.Fatalf("expected hr notification %s read", n.ID)
		}
	}
	emp, _ := svc.List(ctx, Employee("e1"))
	if len(emp) != 1 || emp[0].Read {
		t.Fatalf("employee notification must stay unread: %+v", emp)
	}

	again, err := svc.MarkAllRead(ctx, HR())
	if err != nil || again != 0 {
		t.Fatalf("expected no-op second pass, got %d %v", again, err)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	n, _ := svc.Create(ctx, HR(), "a", TypeTaskCompleted)
	if err := svc.Delete(ctx, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, n.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSendTaskEmailUnconfigured(t *testing.T) {
	svc := newTestService(email.New(config.Config{}))
	_, err := svc.SendTaskEmail(context.Background(), TaskEmail{To: "ana@example.com"})
	if !errors.Is(err, email.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSendTaskEmailRendersTemplate(t *testing.T) {
	mailer := &captureMailer{}
	svc := newTestService(mailer)
	id, err := svc.SendTaskEmail(context.Background(), TaskEmail{
		To:              "ana@example.com",
		Name:            "Ana",
		TaskTitle:       "Prepare report",
		TaskDescription: "Quarterly numbers",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "msg-1" || len(mailer.messages) != 1 {
		t.Fatalf("expected one message, got %q %d", id, len(mailer.messages))
	}
	msg := mailer.messages[0]
	if msg.From != "onboarding@resend.dev" || msg.Subject != email.TaskAssignedSubject {
		t.Fatalf("unexpected envelope %+v", msg)
	}
	if !strings.Contains(msg.HTML, "Prepare report") || !strings.Contains(msg.HTML, "https://app.example.com/employee/login") {
		t.Fatalf("unexpected body %q", msg.HTML)
	}
}
