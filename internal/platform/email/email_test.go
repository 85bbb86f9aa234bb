package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"staffsync/internal/platform/config"
)

func TestNewReturnsNoopWhenDisabled(t *testing.T) {
	mailer := New(config.Config{EmailEnabled: false, SMTPHost: "smtp.example.com"})
	if mailer.Configured() {
		t.Fatal("expected unconfigured mailer")
	}
	if _, err := mailer.Send(context.Background(), Message{To: "a@example.com"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestRenderTaskAssignedEscapesInput(t *testing.T) {
	body, err := RenderTaskAssigned(TaskAssigned{
		Name:            "Ana",
		TaskTitle:       "Quarterly <report>",
		TaskDescription: "Collect numbers",
		DashboardURL:    "https://staffsync.example.com/employee/login",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"Hi Ana,",
		"Quarterly &lt;report&gt;",
		"Collect numbers",
		`href="https://staffsync.example.com/employee/login"`,
		"Go to Dashboard",
		"This is an automated notification from StaffSync Pro.",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q", want)
		}
	}
}

func TestBuildMessageHeaders(t *testing.T) {
	raw := string(buildMessage("abc", "smtp.example.com", Message{
		From:    "onboarding@resend.dev",
		To:      "ana@example.com",
		Subject: TaskAssignedSubject,
		HTML:    "<p>hi</p>",
	}))
	for _, want := range []string{
		"Message-ID: <abc@smtp.example.com>",
		"Subject: New Task Assigned to You",
		"Content-Type: text/html",
		"\r\n\r\n<p>hi</p>",
	} {
		if !strings.Contains(raw, want) {
			t.Fatalf("expected message to contain %q, got %q", want, raw)
		}
	}
}
