package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"staffsync/internal/domain/auth"
	"staffsync/internal/domain/session"
	"staffsync/internal/platform/metrics"
)

func TestRequirePermission(t *testing.T) {
	perms := auth.NewStaticPermissions()
	guarded := RequirePermission(auth.PermLeaveApprove, perms)(noContent())

	cases := []struct {
		name string
		ctx  context.Context
		want int
	}{
		{"anonymous", context.Background(), http.StatusUnauthorized},
		{"employee", WithUser(context.Background(), auth.UserContext{UserID: "u1", Role: auth.RoleEmployee}), http.StatusForbidden},
		{"hr", WithUser(context.Background(), auth.UserContext{UserID: "u2", Role: auth.RoleHR}), http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil).WithContext(tc.ctx)
			rec := httptest.NewRecorder()
			guarded.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestSessionMiddlewareResolvesPointer(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	_ = store.SetEmployee(context.Background(), "sid-1", "e1")

	var got session.Session
	handler := Session(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = session.FromContext(r.Context())
	}))

	ctx := WithUser(context.Background(), auth.UserContext{UserID: "u1", SessionID: "sid-1"})
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	if got.EmployeeID != "e1" {
		t.Fatalf("expected pointer to e1, got %+v", got)
	}

	ctx = WithUser(context.Background(), auth.UserContext{UserID: "u1", SessionID: "sid-2"})
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	if got.ID != "sid-2" || got.HasEmployee() {
		t.Fatalf("expected empty session, got %+v", got)
	}
}

func TestMetricsMiddlewareRecordsStatus(t *testing.T) {
	collector := metrics.New()
	handler := Metrics(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	snap := collector.Snapshot()
	if snap["requestsTotal"] != uint64(1) || snap["clientErrorsTotal"] != uint64(1) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecureHeaders(true)(noContent()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Frame-Options") != "DENY" || rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatalf("missing security headers: %v", rec.Header())
	}
}

func TestBodyLimit(t *testing.T) {
	handler := BodyLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		_, err := r.Body.Read(buf)
		for err == nil {
			_, err = r.Body.Read(buf)
		}
		if err.Error() != "http: request body too large" {
			t.Fatalf("expected body limit error, got %v", err)
		}
	}))
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789abcdef"))
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestEmployeeIDPrefersSessionPointer(t *testing.T) {
	ctx := WithUser(context.Background(), auth.UserContext{UserID: "u1", EmployeeID: "from-claim"})
	if got, ok := EmployeeID(ctx); !ok || got != "from-claim" {
		t.Fatalf("expected claim fallback, got %q %v", got, ok)
	}

	ctx = session.WithSession(ctx, session.Session{ID: "sid", EmployeeID: "from-session"})
	if got, _ := EmployeeID(ctx); got != "from-session" {
		t.Fatalf("expected session pointer, got %q", got)
	}

	if _, ok := EmployeeID(context.Background()); ok {
		t.Fatal("expected no employee for anonymous caller")
	}
}
