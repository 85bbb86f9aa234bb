package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	employeeID string
	expires    time.Time
}

// MemoryStore keeps session pointers in process. Entries expire after ttl.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: map[string]memoryEntry{}, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[sessionID]
	if !ok {
		return Session{}, ErrNotFound
	}
	if s.ttl > 0 && s.now().After(entry.expires) {
		delete(s.entries, sessionID)
		return Session{}, ErrNotFound
	}
	return Session{ID: sessionID, EmployeeID: entry.employeeID}, nil
}

func (s *MemoryStore) SetEmployee(_ context.Context, sessionID, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{employeeID: employeeID, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
