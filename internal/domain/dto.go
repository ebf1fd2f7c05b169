package domain

import "time"

// DTOs (Data Transfer Objects) - Domain layer request/response structures

// TimestampLayout is the ISO-8601 layout sent to the workflow
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

type (
	// OutboundRequest struct - Body posted to the remote workflow, built fresh per call
	OutboundRequest struct {
		Message   string  `json:"message"`
		SessionID string  `json:"session_id"`
		UserEmail *string `json:"user_email"`
		Timestamp string  `json:"timestamp"`
	}

	// SessionView struct - Read-only copy of a session for callers
	SessionView struct {
		ID       string       `json:"session_id"`
		Identity *string      `json:"user_email"`
		State    SessionState `json:"state"`
		Busy     bool         `json:"busy"`
		Turns    []Turn       `json:"turns"`
		Notice   string       `json:"notice,omitempty"`
	}

	// TurnResult struct - Outcome of submitting one user message
	TurnResult struct {
		Session SessionView
		Reply   string
		Notice  string
		Ignored bool
	}

	// ArchivedTurn struct - Completed turn handed to the transcript archive
	ArchivedTurn struct {
		SessionID string
		UserEmail *string
		Position  int
		Role      TurnRole
		Content   string
		CreatedAt time.Time
	}

	// LineWebhookRequest struct - Domain LINE webhook request DTO
	LineWebhookRequest struct {
		Events []LineWebhookEvent
	}

	// LineReplyMessageRequest struct - Domain LINE reply message request DTO
	LineReplyMessageRequest struct {
		ReplyToken string
		Messages   []LineOutgoingMessage
	}

	// LineOutgoingMessage struct - Domain LINE outgoing message DTO
	LineOutgoingMessage struct {
		Type LineMessageType
		Text string
	}

	// LineMessageResponse struct - Domain LINE API response DTO
	LineMessageResponse struct {
		Status  string
		Message string
	}
)
