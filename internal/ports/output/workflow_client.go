package output

import (
	"context"

	"chat-relay/internal/domain"
)

// WorkflowClient interface - Output port
// Defines what the application needs from the remote automation workflow.
type WorkflowClient interface {
	// Send posts one user message to the workflow and returns the parsed reply body.
	// It performs a single attempt bounded by the configured timeout.
	// Every failure is returned as a *domain.WorkflowError carrying its FailureKind
	// and the user-visible detail.
	Send(ctx context.Context, request domain.OutboundRequest) (domain.JSONValue, error)
}
