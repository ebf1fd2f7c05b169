package output

import "chat-relay/internal/domain"

// LineClient interface - Output port
// Defines what the LINE channel needs from the LINE messaging platform
type LineClient interface {
	// ReplyMessage sends reply messages to LINE user via reply token
	ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)
}
