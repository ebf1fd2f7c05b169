package http

import (
	"bytes"
	"net/http"
	"time"

	"chat-relay/internal/domain"
	"chat-relay/internal/ports/input"

	"github.com/gofiber/fiber/v2"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/sirupsen/logrus"
)

// LineWebhookHandler struct - Primary/Driving adapter for LINE webhook
type LineWebhookHandler struct {
	service       input.LineWebhookService
	channelSecret string
}

// NewLineWebhookHandler func - Creates new LINE webhook handler
func NewLineWebhookHandler(service input.LineWebhookService, channelSecret string) *LineWebhookHandler {
	return &LineWebhookHandler{
		service:       service,
		channelSecret: channelSecret,
	}
}

// HandleWebhook func - Handles incoming LINE webhook requests
// @Summary LINE Webhook
// @Description Handles webhook events from LINE Messaging API
// @Tags LINE
// @Accept application/json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /webhook/line [post]
func (h *LineWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	// The LINE SDK verifies signatures on a net/http request
	httpReq, err := http.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader(c.Body()))
	if err != nil {
		logrus.Errorf("Failed to create http request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal error",
		})
	}

	c.Request().Header.VisitAll(func(key, value []byte) {
		httpReq.Header.Set(string(key), string(value))
	})

	cb, err := webhook.ParseRequest(h.channelSecret, httpReq)
	if err != nil {
		logrus.Errorf("Failed to parse webhook request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid signature or request",
		})
	}

	domainEvents := make([]domain.LineWebhookEvent, 0, len(cb.Events))
	for _, event := range cb.Events {
		if domainEvent := convertToDomainEvent(event); domainEvent != nil {
			domainEvents = append(domainEvents, *domainEvent)
		}
	}

	webhookReq := domain.LineWebhookRequest{
		Events: domainEvents,
	}

	if err := h.service.HandleWebhook(c.UserContext(), webhookReq); err != nil {
		logrus.Errorf("Failed to handle webhook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to process webhook",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
	})
}

// convertToDomainEvent - Converts LINE SDK event to domain event
func convertToDomainEvent(event webhook.EventInterface) *domain.LineWebhookEvent {
	switch e := event.(type) {
	case webhook.MessageEvent:
		return convertMessageEvent(e)
	case webhook.FollowEvent:
		return &domain.LineWebhookEvent{
			Type:       domain.LineEventTypeFollow,
			Timestamp:  eventTime(e.Timestamp),
			UserID:     sourceUserID(e.Source),
			ReplyToken: e.ReplyToken,
		}
	case webhook.UnfollowEvent:
		return &domain.LineWebhookEvent{
			Type:      domain.LineEventTypeUnfollow,
			Timestamp: eventTime(e.Timestamp),
			UserID:    sourceUserID(e.Source),
		}
	default:
		logrus.Warnf("Unsupported event type: %T", event)
		return nil
	}
}

func convertMessageEvent(event webhook.MessageEvent) *domain.LineWebhookEvent {
	domainEvent := &domain.LineWebhookEvent{
		Type:       domain.LineEventTypeMessage,
		Timestamp:  eventTime(event.Timestamp),
		UserID:     sourceUserID(event.Source),
		ReplyToken: event.ReplyToken,
	}

	switch msg := event.Message.(type) {
	case webhook.TextMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeText,
			Text: msg.Text,
		}
	case webhook.StickerMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeSticker,
		}
	case webhook.ImageMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeImage,
		}
	default:
		logrus.Warnf("Unsupported message type: %T", msg)
		return nil
	}

	return domainEvent
}

// sourceUserID - The sending user; group and room chats are keyed by the speaker
func sourceUserID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}

func eventTime(millis int64) time.Time {
	if millis == 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}
