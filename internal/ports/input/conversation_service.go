package input

import (
	"context"

	"chat-relay/internal/domain"
)

// ConversationService interface - Input port (use case)
// Defines what the presentation layer can do with a conversation session.
// Every call returns the resulting session state so callers decide how to redraw.
type ConversationService interface {
	// StartSession allocates a fresh session awaiting an identity
	StartSession(ctx context.Context) (*domain.SessionView, error)

	// GetSession returns the transcript, busy flag, state and last notice
	GetSession(ctx context.Context, sessionID string) (*domain.SessionView, error)

	// AcceptIdentity passes the identity gate for the session
	AcceptIdentity(ctx context.Context, sessionID, identity string) (*domain.SessionView, error)

	// SubmitMessage relays one user message to the workflow and records the reply.
	// Input submitted while a dispatch is in flight is ignored, not queued.
	SubmitMessage(ctx context.Context, sessionID, message string) (*domain.TurnResult, error)

	// ResetSession starts a new chat: new token, empty transcript, identity cleared
	ResetSession(ctx context.Context, sessionID string) (*domain.SessionView, error)

	// Health reports whether the service dependencies are reachable
	Health(ctx context.Context) error
}
