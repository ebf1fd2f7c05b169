package memory

import (
	"sync"
	"time"

	"chat-relay/configs"
	"chat-relay/internal/domain"
	"chat-relay/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore struct - Output adapter for in-memory session storage
// Uses sync.Map for thread-safe concurrent access to conversation sessions.
// Sessions live only as long as the process.
type MemorySessionStore struct {
	sessions    sync.Map
	idleTimeout time.Duration
}

// NewMemorySessionStore creates a new in-memory session store.
// idleTimeout: Duration without access after which sessions expire; values <= 0 use the default
func NewMemorySessionStore(idleTimeout time.Duration) *MemorySessionStore {
	if idleTimeout <= 0 {
		idleTimeout = configs.DefaultSessionIdleTimeout
	}
	return &MemorySessionStore{
		idleTimeout: idleTimeout,
	}
}

// GetIdleTimeout returns the configured idle timeout
func (m *MemorySessionStore) GetIdleTimeout() time.Duration {
	return m.idleTimeout
}

// GetSession retrieves a conversation session by session token.
// Returns nil if the session does not exist or has expired.
// Expired sessions are deleted (lazy cleanup).
func (m *MemorySessionStore) GetSession(sessionID string) (*domain.Session, error) {
	value, exists := m.sessions.Load(sessionID)
	if !exists {
		return nil, nil
	}

	session, ok := value.(*domain.Session)
	if !ok {
		// If data is malformed, delete and return nil
		m.sessions.Delete(sessionID)
		return nil, nil
	}

	if session.IsIdleFor(m.idleTimeout) {
		m.sessions.Delete(sessionID)
		return nil, nil
	}

	session.Touch()

	return session, nil
}

// UpdateSession creates or updates a conversation session under its current token
func (m *MemorySessionStore) UpdateSession(session *domain.Session) error {
	session.Touch()
	m.sessions.Store(session.ID(), session)
	return nil
}

// DeleteSession removes a conversation session by token.
// This operation is idempotent - deleting a non-existent session does not return an error.
func (m *MemorySessionStore) DeleteSession(sessionID string) error {
	m.sessions.Delete(sessionID)
	return nil
}

// Sweep removes every expired session and returns how many were dropped.
// Lazy cleanup only catches sessions that are looked up again.
func (m *MemorySessionStore) Sweep() int {
	removed := 0
	m.sessions.Range(func(key, value any) bool {
		session, ok := value.(*domain.Session)
		if !ok || session.IsIdleFor(m.idleTimeout) {
			m.sessions.Delete(key)
			removed++
		}
		return true
	})
	if removed > 0 {
		logrus.Debugf("Swept %d expired sessions", removed)
	}
	return removed
}

// Len returns the number of stored sessions, expired or not
func (m *MemorySessionStore) Len() int {
	n := 0
	m.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
