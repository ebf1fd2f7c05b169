package line

import (
	"errors"
	"fmt"

	"chat-relay/internal/domain"
	"chat-relay/internal/ports/output"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure LineClientAdapter implements LineClient interface
var _ output.LineClient = (*LineClientAdapter)(nil)

// maxTextLength is the LINE limit for one text message
const maxTextLength = 5000

// maxReplyMessages is the LINE limit for messages per reply token
const maxReplyMessages = 5

// ErrNoMessages is returned when a reply carries nothing LINE can deliver
var ErrNoMessages = errors.New("no valid messages to send")

// messagingAPI is the part of the LINE SDK the adapter calls
type messagingAPI interface {
	ReplyMessage(replyMessageRequest *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error)
}

// LineClientAdapter struct - Output adapter for LINE messaging platform
type LineClientAdapter struct {
	client messagingAPI
}

// NewLineClientAdapter func - Creates new LINE client adapter
func NewLineClientAdapter(channelToken string) (*LineClientAdapter, error) {
	client, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE messaging API client: %w", err)
	}

	return &LineClientAdapter{
		client: client,
	}, nil
}

// ReplyMessage - Sends reply messages to LINE user via reply token
func (a *LineClientAdapter) ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	messages := toLineMessages(request.Messages)
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	req := &messaging_api.ReplyMessageRequest{
		ReplyToken: request.ReplyToken,
		Messages:   messages,
	}

	if _, err := a.client.ReplyMessage(req); err != nil {
		return nil, fmt.Errorf("failed to send reply message: %w", err)
	}

	logrus.Infof("Successfully sent %d reply message(s)", len(messages))

	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Reply message sent successfully",
	}, nil
}

// toLineMessages converts domain messages, skipping unsupported ones and
// truncating to the platform limits
func toLineMessages(outgoing []domain.LineOutgoingMessage) []messaging_api.MessageInterface {
	messages := make([]messaging_api.MessageInterface, 0, len(outgoing))

	for _, msg := range outgoing {
		if len(messages) == maxReplyMessages {
			logrus.Warnf("Dropping reply messages beyond the first %d", maxReplyMessages)
			break
		}

		lineMsg, err := convertToLineMessage(msg)
		if err != nil {
			logrus.Errorf("Failed to convert message: %v", err)
			continue
		}
		messages = append(messages, lineMsg)
	}

	return messages
}

// convertToLineMessage - Helper function to convert domain message to LINE SDK message
func convertToLineMessage(msg domain.LineOutgoingMessage) (messaging_api.MessageInterface, error) {
	switch msg.Type {
	case domain.LineMessageTypeText:
		if msg.Text == "" {
			return nil, errors.New("empty text message")
		}
		return &messaging_api.TextMessage{
			Text: truncateText(msg.Text),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported message type: %s", msg.Type)
	}
}

func truncateText(text string) string {
	runes := []rune(text)
	if len(runes) <= maxTextLength {
		return text
	}
	return string(runes[:maxTextLength-1]) + "…"
}
