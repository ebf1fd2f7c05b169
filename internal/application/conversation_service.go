package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chat-relay/internal/domain"
	"chat-relay/internal/ports/input"
	"chat-relay/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure ConversationService implements ConversationService input port
var _ input.ConversationService = (*ConversationService)(nil)

// ConversationService struct - Application service implementing the conversation use cases
type ConversationService struct {
	store    output.SessionStore
	workflow output.WorkflowClient
	archive  output.TranscriptArchive
	now      func() time.Time
}

// NewConversationService func - Creates new conversation service
func NewConversationService(store output.SessionStore, workflow output.WorkflowClient, archive output.TranscriptArchive) *ConversationService {
	return &ConversationService{
		store:    store,
		workflow: workflow,
		archive:  archive,
		now:      time.Now,
	}
}

// StartSession func - Use case: open a new conversation awaiting identity
func (s *ConversationService) StartSession(ctx context.Context) (*domain.SessionView, error) {
	session := domain.NewSession()
	if err := s.store.UpdateSession(session); err != nil {
		logrus.Errorf("Failed to store new session: %v", err)
		return nil, err
	}

	view := session.Snapshot()
	logrus.WithField("session_id", view.ID).Info("Session started")
	return &view, nil
}

// GetSession func - Use case: read transcript, busy flag and last notice
func (s *ConversationService) GetSession(ctx context.Context, sessionID string) (*domain.SessionView, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	view := session.Snapshot()
	return &view, nil
}

// AcceptIdentity func - Use case: pass the identity gate
func (s *ConversationService) AcceptIdentity(ctx context.Context, sessionID, identity string) (*domain.SessionView, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.AcceptIdentity(identity); err != nil {
		return nil, err
	}
	if err := s.store.UpdateSession(session); err != nil {
		return nil, err
	}

	view := session.Snapshot()
	logrus.WithField("session_id", view.ID).Info("Identity accepted")
	return &view, nil
}

// SubmitMessage func - Use case: relay one user message to the workflow and record the reply.
// Input arriving while a dispatch is in flight is ignored, not queued.
func (s *ConversationService) SubmitMessage(ctx context.Context, sessionID, message string) (*domain.TurnResult, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	dispatch, err := session.BeginDispatch(message)
	if errors.Is(err, domain.ErrSessionBusy) {
		logrus.WithField("session_id", sessionID).Info("Session busy, input ignored")
		return &domain.TurnResult{Session: session.Snapshot(), Ignored: true}, nil
	}
	if err != nil {
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{
		"session_id": dispatch.SessionID,
		"position":   dispatch.Position,
	})

	request := domain.OutboundRequest{
		Message:   dispatch.Message,
		SessionID: dispatch.SessionID,
		UserEmail: dispatch.Identity,
		Timestamp: s.now().Format(domain.TimestampLayout),
	}

	reply, notice := s.relay(ctx, request)
	if notice != "" {
		log.Warnf("Turn completed with notice: %s", notice)
	}

	if !session.CompleteDispatch(dispatch, reply, notice) {
		log.Info("Session was reset during dispatch, reply dropped")
		return &domain.TurnResult{Session: session.Snapshot(), Ignored: true}, nil
	}

	s.archiveTurns(ctx, dispatch, reply)

	if err := s.store.UpdateSession(session); err != nil {
		log.Errorf("Failed to store session after turn: %v", err)
		return nil, err
	}

	return &domain.TurnResult{
		Session: session.Snapshot(),
		Reply:   reply,
		Notice:  notice,
	}, nil
}

// ResetSession func - Use case: start a new chat from any state
func (s *ConversationService) ResetSession(ctx context.Context, sessionID string) (*domain.SessionView, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	previousID := session.ID()
	session.Reset()

	if err := s.store.DeleteSession(previousID); err != nil {
		return nil, err
	}
	if err := s.store.UpdateSession(session); err != nil {
		return nil, err
	}

	view := session.Snapshot()
	logrus.WithFields(logrus.Fields{
		"previous_session_id": previousID,
		"session_id":          view.ID,
	}).Info("Session reset")
	return &view, nil
}

// Health func - Use case: report whether backing services are reachable
func (s *ConversationService) Health(ctx context.Context) error {
	return s.archive.Ping(ctx)
}

func (s *ConversationService) lookup(sessionID string) (*domain.Session, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return session, nil
}

// relay calls the workflow and turns the outcome into the assistant reply plus an optional notice.
// The call is detached from ctx so a started dispatch always completes.
func (s *ConversationService) relay(ctx context.Context, request domain.OutboundRequest) (reply, notice string) {
	payload, err := s.send(context.WithoutCancel(ctx), request)
	if err != nil {
		var wErr *domain.WorkflowError
		if !errors.As(err, &wErr) {
			wErr = domain.NewUnknownError(err)
		}
		return FallbackErrorReply, wErr.Detail
	}

	reply, err = NormalizeReply(payload)
	if err != nil {
		return reply, fmt.Sprintf("Error parsing response: %v", err)
	}
	return reply, ""
}

func (s *ConversationService) send(ctx context.Context, request domain.OutboundRequest) (payload domain.JSONValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.NewUnknownError(fmt.Errorf("%v", r))
		}
	}()
	return s.workflow.Send(ctx, request)
}

// archiveTurns records the completed user and assistant turns.
// Archive failures are logged and never affect the conversation.
func (s *ConversationService) archiveTurns(ctx context.Context, dispatch domain.Dispatch, reply string) {
	ctx = context.WithoutCancel(ctx)
	now := s.now()

	turns := []domain.ArchivedTurn{
		{
			SessionID: dispatch.SessionID,
			UserEmail: dispatch.Identity,
			Position:  dispatch.Position,
			Role:      domain.TurnRoleUser,
			Content:   dispatch.Message,
			CreatedAt: now,
		},
		{
			SessionID: dispatch.SessionID,
			UserEmail: dispatch.Identity,
			Position:  dispatch.Position + 1,
			Role:      domain.TurnRoleAssistant,
			Content:   reply,
			CreatedAt: now,
		},
	}

	for _, turn := range turns {
		if err := s.archive.ArchiveTurn(ctx, turn); err != nil {
			logrus.WithField("session_id", turn.SessionID).Errorf("Failed to archive turn: %v", err)
		}
	}
}
