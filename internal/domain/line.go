package domain

import "time"

// LineEventType represents the type of webhook event from LINE
type LineEventType string

const (
	// LineEventTypeMessage - Message event
	LineEventTypeMessage LineEventType = "message"
	// LineEventTypeFollow - Follow event
	LineEventTypeFollow LineEventType = "follow"
	// LineEventTypeUnfollow - Unfollow event
	LineEventTypeUnfollow LineEventType = "unfollow"
)

// LineMessageType represents the type of message
type LineMessageType string

const (
	// LineMessageTypeText - Text message
	LineMessageTypeText LineMessageType = "text"
	// LineMessageTypeImage - Image message
	LineMessageTypeImage LineMessageType = "image"
	// LineMessageTypeSticker - Sticker message
	LineMessageTypeSticker LineMessageType = "sticker"
)

// LineWebhookEvent represents a LINE webhook event (domain entity)
type LineWebhookEvent struct {
	Type       LineEventType
	Timestamp  time.Time
	UserID     string
	ReplyToken string
	Message    *LineMessage
}

// LineMessage represents an incoming message from LINE
type LineMessage struct {
	ID   string
	Type LineMessageType
	Text string
}
