package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffsync/internal/domain/employees"
	"staffsync/internal/domain/session"
	"staffsync/internal/platform/docstore"
)

const testSecret = "test-secret"

type fixture struct {
	svc       *Service
	employees *employees.Service
	sessions  *session.MemoryStore
	docs      docstore.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	docs := docstore.NewMemory()
	empSvc := employees.NewService(employees.NewStore(docs, nil), employees.LinkBuilder{BaseURL: "http://localhost:8080"})
	sessions := session.NewMemoryStore(time.Hour)
	return fixture{
		svc:       NewService(NewStore(docs), empSvc, sessions, testSecret, time.Hour),
		employees: empSvc,
		sessions:  sessions,
		docs:      docs,
	}
}

func TestRegisterRequiresPreRegistration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Register(ctx, "ana@example.com", "secret1", "secret2"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if _, err := f.svc.Register(ctx, "ana@example.com", "secret1", "secret1"); !errors.Is(err, ErrNotPreRegistered) {
		t.Fatalf("expected ErrNotPreRegistered, got %v", err)
	}

	if _, _, err := f.employees.Register(ctx, employees.NewEmployee{Name: "Ana", Email: "ana@example.com", Salary: 3000}); err != nil {
		t.Fatalf("register employee: %v", err)
	}
	acct, err := f.svc.Register(ctx, "Ana@Example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if acct.ID == "" || acct.Email != "ana@example.com" || acct.Role != RoleEmployee {
		t.Fatalf("unexpected account %+v", acct)
	}
	if _, err := f.svc.Register(ctx, "ana@example.com", "secret1", "secret1"); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestEmployeeLoginSetsSessionPointer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	emp, _, err := f.employees.Register(ctx, employees.NewEmployee{Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("register employee: %v", err)
	}
	if _, err := f.svc.Register(ctx, "ana@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := f.svc.Login(ctx, PortalEmployee, "ana@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	res, err := f.svc.Login(ctx, PortalEmployee, "ana@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.EmployeeID != emp.ID || res.Role != RoleEmployee || res.Name != "Ana" {
		t.Fatalf("unexpected result %+v", res)
	}

	claims, err := ParseToken(testSecret, res.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sess, err := f.sessions.Get(ctx, claims.SessionID)
	if err != nil || sess.EmployeeID != emp.ID {
		t.Fatalf("expected session pointer to %s, got %+v %v", emp.ID, sess, err)
	}

	if err := f.svc.Logout(ctx, claims.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := f.sessions.Get(ctx, claims.SessionID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected cleared pointer, got %v", err)
	}
}

func TestEmployeeLoginWithoutEmployeeRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, _, err := f.svc.EnsureHRAccount(ctx, "hr@example.com", "secret1", "Harriet"); err != nil {
		t.Fatalf("ensure hr: %v", err)
	}
	if _, err := f.svc.Login(ctx, PortalEmployee, "hr@example.com", "secret1"); !errors.Is(err, ErrNoEmployeeAccount) {
		t.Fatalf("expected ErrNoEmployeeAccount, got %v", err)
	}
}

func TestHRLoginCreatesProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acct, created, err := f.svc.EnsureHRAccount(ctx, "hr@example.com", "secret1", "Harriet")
	if err != nil || !created {
		t.Fatalf("ensure hr: created=%v err=%v", created, err)
	}
	if _, created, _ := f.svc.EnsureHRAccount(ctx, "hr@example.com", "other", "x"); created {
		t.Fatal("expected existing account to be reused")
	}

	res, err := f.svc.Login(ctx, PortalHR, "hr@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Role != RoleHR || res.Name != "Harriet" || res.EmployeeID != "" {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, err := f.docs.Get(ctx, employees.HRCollection, acct.ID); err != nil {
		t.Fatalf("expected hr_users profile: %v", err)
	}
}

func TestEmployeeCannotUseHRPortal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, _, err := f.employees.Register(ctx, employees.NewEmployee{Name: "Ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("register employee: %v", err)
	}
	if _, err := f.svc.Register(ctx, "ana@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.svc.Login(ctx, PortalHR, "ana@example.com", "secret1"); !errors.Is(err, ErrWrongPortal) {
		t.Fatalf("expected ErrWrongPortal, got %v", err)
	}
	if _, err := f.svc.Login(ctx, Portal("admin"), "ana@example.com", "secret1"); !errors.Is(err, ErrInvalidPortal) {
		t.Fatalf("expected ErrInvalidPortal, got %v", err)
	}
}
