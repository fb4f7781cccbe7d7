package session

import (
	"context"
	"sync"
	"time"
)

// TokenStore persists the session token so it survives a process restart
// (the equivalent of a full page reload). The token is the only state that
// is ever persisted; it must be clearable on logout.
type TokenStore interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// MemoryTokenStore keeps the session in process memory with an optional TTL.
// Useful for tests and for callers that do not want persistence.
type MemoryTokenStore struct {
	mu        sync.RWMutex
	session   Session
	expiresAt time.Time
	ttl       time.Duration
}

// NewMemoryTokenStore creates an in-memory token store.
// A non-positive ttl disables expiry.
func NewMemoryTokenStore(ttl time.Duration) *MemoryTokenStore {
	return &MemoryTokenStore{ttl: ttl}
}

// Load returns the stored session, or a zero session when absent or expired
func (m *MemoryTokenStore) Load(ctx context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.expiresAt.IsZero() && time.Now().After(m.expiresAt) {
		return Session{}, nil
	}
	return m.session, nil
}

// Save stores the session, restarting the TTL clock
func (m *MemoryTokenStore) Save(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = s
	if m.ttl > 0 {
		m.expiresAt = time.Now().Add(m.ttl)
	} else {
		m.expiresAt = time.Time{}
	}
	return nil
}

// Clear drops the stored session
func (m *MemoryTokenStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = Session{}
	m.expiresAt = time.Time{}
	return nil
}
