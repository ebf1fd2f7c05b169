package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"chat-relay/internal/domain"
	"chat-relay/internal/ports/input"
	"chat-relay/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure LineWebhookService implements LineWebhookService input port
var _ input.LineWebhookService = (*LineWebhookService)(nil)

// LINE channel replies
const (
	lineWelcomeText   = "Welcome! Please enter your email address to begin."
	lineInvalidEmail  = "Please enter a valid email address"
	lineIdentityOK    = "Thanks! You can start chatting now.\n\nType /new to start a new chat."
	lineNewChatText   = "Started a new chat. Please enter your email address to begin."
	lineStillWorking  = "I'm still working on your previous message. Please wait."
	lineHelpText      = "Available commands:\n/help - Show this message\n/new - Start a new chat\n/clear - Same as /new"
	lineNoticePrefix  = "❌ "
	lineEmptyReply    = "(empty reply)"
	lineUnknownFormat = "Unknown command: %s\nType /help for available commands"
)

// LineWebhookService struct - Application service relaying LINE chats through the conversation use cases.
// Each LINE user is bound to one conversation session.
type LineWebhookService struct {
	lineClient    output.LineClient
	conversations input.ConversationService

	// LINE user id -> session id
	sessions sync.Map
}

// NewLineWebhookService func - Creates new LINE webhook service
func NewLineWebhookService(lineClient output.LineClient, conversations input.ConversationService) *LineWebhookService {
	return &LineWebhookService{
		lineClient:    lineClient,
		conversations: conversations,
	}
}

// HandleWebhook func - Use case: Handle incoming webhook events from LINE
func (s *LineWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error {
	for _, event := range request.Events {
		logrus.Infof("Received LINE event: type=%s, userID=%s", event.Type, event.UserID)

		switch event.Type {
		case domain.LineEventTypeMessage:
			if err := s.handleMessageEvent(ctx, event); err != nil {
				logrus.Errorf("Failed to handle message event: %v", err)
				return err
			}

		case domain.LineEventTypeFollow:
			if err := s.handleFollowEvent(ctx, event); err != nil {
				logrus.Errorf("Failed to handle follow event: %v", err)
				return err
			}

		case domain.LineEventTypeUnfollow:
			s.handleUnfollowEvent(event)

		default:
			logrus.Infof("Unhandled event type: %s", event.Type)
		}
	}

	return nil
}

// SessionID reports the session currently bound to a LINE user
func (s *LineWebhookService) SessionID(userID string) (string, bool) {
	id, ok := s.sessions.Load(userID)
	if !ok {
		return "", false
	}
	return id.(string), true
}

func (s *LineWebhookService) handleMessageEvent(ctx context.Context, event domain.LineWebhookEvent) error {
	if event.Message == nil {
		return nil
	}

	if event.Message.Type != domain.LineMessageTypeText {
		logrus.Infof("Ignoring non-text message: type=%s", event.Message.Type)
		return nil
	}

	text := strings.TrimSpace(event.Message.Text)
	if text == "" {
		return nil
	}

	var (
		replyMessages []domain.LineOutgoingMessage
		err           error
	)
	if strings.HasPrefix(text, "/") {
		replyMessages, err = s.handleCommand(ctx, text, event.UserID)
	} else {
		replyMessages, err = s.handleText(ctx, text, event.UserID)
	}
	if err != nil {
		return err
	}

	return s.reply(event.ReplyToken, replyMessages)
}

// handleText passes the identity gate on the first message, then relays chat
func (s *LineWebhookService) handleText(ctx context.Context, text, userID string) ([]domain.LineOutgoingMessage, error) {
	session, err := s.sessionFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if session.State == domain.SessionStateAwaitingIdentity {
		_, err := s.conversations.AcceptIdentity(ctx, session.ID, text)
		if errors.Is(err, domain.ErrValidation) {
			return textMessages(lineInvalidEmail), nil
		}
		if err != nil {
			return nil, err
		}
		return textMessages(lineIdentityOK), nil
	}

	result, err := s.conversations.SubmitMessage(ctx, session.ID, text)
	if err != nil {
		return nil, err
	}
	if result.Ignored {
		return textMessages(lineStillWorking), nil
	}

	reply := result.Reply
	if reply == "" {
		reply = lineEmptyReply
	}
	if result.Notice != "" {
		return textMessages(lineNoticePrefix+result.Notice, reply), nil
	}
	return textMessages(reply), nil
}

func (s *LineWebhookService) handleCommand(ctx context.Context, text, userID string) ([]domain.LineOutgoingMessage, error) {
	parts := strings.Fields(text)
	command := strings.ToLower(parts[0])

	switch command {
	case "/help":
		return textMessages(lineHelpText), nil

	case "/new", "/clear":
		if err := s.resetSession(ctx, userID); err != nil {
			return nil, err
		}
		return textMessages(lineNewChatText), nil

	default:
		return textMessages(fmt.Sprintf(lineUnknownFormat, command)), nil
	}
}

func (s *LineWebhookService) handleFollowEvent(ctx context.Context, event domain.LineWebhookEvent) error {
	logrus.Infof("User followed: userID=%s", event.UserID)

	if err := s.resetSession(ctx, event.UserID); err != nil {
		return err
	}
	return s.reply(event.ReplyToken, textMessages(lineWelcomeText))
}

func (s *LineWebhookService) handleUnfollowEvent(event domain.LineWebhookEvent) {
	logrus.Infof("User unfollowed: userID=%s", event.UserID)
	s.sessions.Delete(event.UserID)
}

// sessionFor returns the user's session, starting a new one when none is bound
// or the bound one has expired
func (s *LineWebhookService) sessionFor(ctx context.Context, userID string) (*domain.SessionView, error) {
	id, bound := s.SessionID(userID)
	if bound {
		view, err := s.conversations.GetSession(ctx, id)
		if err == nil {
			return view, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		logrus.Infof("Session expired for userID=%s, starting a new one", userID)
	}

	view, err := s.conversations.StartSession(ctx)
	if err != nil {
		return nil, err
	}
	if bound {
		if s.sessions.CompareAndSwap(userID, id, view.ID) {
			return view, nil
		}
	} else if _, loaded := s.sessions.LoadOrStore(userID, view.ID); !loaded {
		return view, nil
	}

	// A concurrent event bound the user first; the unused session expires idle
	logrus.Debugf("Lost session binding race for userID=%s", userID)
	return s.sessionFor(ctx, userID)
}

func (s *LineWebhookService) resetSession(ctx context.Context, userID string) error {
	id, ok := s.SessionID(userID)
	if !ok {
		_, err := s.sessionFor(ctx, userID)
		return err
	}

	view, err := s.conversations.ResetSession(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.sessions.Delete(userID)
		_, err = s.sessionFor(ctx, userID)
		return err
	}
	if err != nil {
		return err
	}
	s.sessions.Store(userID, view.ID)
	return nil
}

func (s *LineWebhookService) reply(replyToken string, messages []domain.LineOutgoingMessage) error {
	if len(messages) == 0 || replyToken == "" {
		return nil
	}

	replyReq := domain.LineReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	}
	if _, err := s.lineClient.ReplyMessage(replyReq); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// textMessages builds text replies; LINE rejects empty texts so they are skipped
func textMessages(texts ...string) []domain.LineOutgoingMessage {
	messages := make([]domain.LineOutgoingMessage, 0, len(texts))
	for _, text := range texts {
		if text == "" {
			continue
		}
		messages = append(messages, domain.LineOutgoingMessage{
			Type: domain.LineMessageTypeText,
			Text: text,
		})
	}
	return messages
}
