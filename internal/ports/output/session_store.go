package output

import "chat-relay/internal/domain"

// SessionStore interface - Output port
// Defines what the application needs for holding conversation sessions.
// Sessions are keyed by their current session token and are isolated from
// each other. Implementations must be thread-safe for concurrent access.
type SessionStore interface {
	// GetSession retrieves a conversation session by session token.
	// Returns nil if the session does not exist or has expired.
	// Implementations should perform lazy cleanup of expired sessions and
	// record the access for valid sessions.
	// Returns an error only if there is a storage access failure.
	GetSession(sessionID string) (*domain.Session, error)

	// UpdateSession creates or updates a conversation session under its current token.
	// Returns an error if the session cannot be stored.
	UpdateSession(session *domain.Session) error

	// DeleteSession removes a conversation session by token.
	// This operation is idempotent - deleting a non-existent session
	// should not return an error.
	DeleteSession(sessionID string) error
}
