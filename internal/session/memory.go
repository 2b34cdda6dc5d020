package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. It backs single-node
// deployments without Redis, and the tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (m *MemoryStore) Get(_ context.Context, sid string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[sid]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(m.entries, sid)
		return &Session{}, nil
	}

	s := entry.session.clone()
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, sid string, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[sid] = memoryEntry{
		session:   s.clone(),
		expiresAt: time.Now().Add(m.ttl),
	}

	// Expired entries are swept opportunistically on write.
	now := time.Now()
	for id, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, id)
		}
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sid)
	return nil
}
