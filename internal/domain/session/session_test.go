package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()
	key := "staffsync:session:sid-1:loggedInEmployeeId"

	mock.ExpectSet(key, "e1", time.Hour).SetVal("OK")
	mock.ExpectGet(key).SetVal("e1")
	mock.ExpectDel(key).SetVal(1)
	mock.ExpectGet(key).RedisNil()

	if err := store.SetEmployee(ctx, "sid-1", "e1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.EmployeeID != "e1" || got.ID != "sid-1" {
		t.Fatalf("unexpected session %+v", got)
	}
	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Get(ctx, "sid-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet redis expectations: %v", err)
	}
}

func TestRedisStorePropagatesErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Minute)
	mock.ExpectGet(store.Key("sid-2")).SetErr(errors.New("connection refused"))

	_, err := store.Get(context.Background(), "sid-2")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	ctx := context.Background()

	_ = store.SetEmployee(ctx, "sid", "e1")
	if got, err := store.Get(ctx, "sid"); err != nil || got.EmployeeID != "e1" {
		t.Fatalf("expected pointer, got %+v %v", got, err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := store.Get(ctx, "sid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := WithSession(context.Background(), Session{ID: "sid", EmployeeID: "e1"})
	got, ok := FromContext(ctx)
	if !ok || !got.HasEmployee() {
		t.Fatalf("unexpected session %+v", got)
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("expected no session in empty context")
	}
}
