package domain

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionState is the orchestrator state derived from a session
type SessionState string

const (
	// SessionStateAwaitingIdentity - no identity accepted yet
	SessionStateAwaitingIdentity SessionState = "awaiting_identity"
	// SessionStateReady - identity accepted, input enabled
	SessionStateReady SessionState = "ready"
	// SessionStateDispatching - a message is in flight, input disabled
	SessionStateDispatching SessionState = "dispatching"
)

var newSessionID = func() string {
	return uuid.NewString()
}

// Session represents one user's isolated conversation.
// All mutations are serialized by the session's own lock.
type Session struct {
	mu sync.Mutex

	id             string
	identity       *string
	turns          []Turn
	busy           bool
	notice         string
	generation     uint64
	lastAccessTime time.Time
}

// Dispatch identifies one in-flight message for a session generation
type Dispatch struct {
	SessionID  string
	Identity   *string
	Message    string
	Position   int
	generation uint64
}

// NewSession creates a session with a fresh id, empty transcript and no identity
func NewSession() *Session {
	return &Session{
		id:             newSessionID(),
		turns:          make([]Turn, 0),
		lastAccessTime: time.Now(),
	}
}

// ID returns the current session token
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Reset regenerates the id and clears the transcript, identity and busy flag.
// A dispatch started before the reset can no longer complete into this session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = newSessionID()
	s.identity = nil
	s.turns = make([]Turn, 0)
	s.busy = false
	s.notice = ""
	s.generation++
	s.lastAccessTime = time.Now()
}

// AcceptIdentity passes the identity gate.
// Fails with ErrValidation for a bad identity and ErrInvalidState if one is already accepted.
func (s *Session) AcceptIdentity(identity string) error {
	identity, err := ValidateIdentity(identity)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity != nil {
		return fmt.Errorf("%w: identity already accepted", ErrInvalidState)
	}
	s.identity = &identity
	return nil
}

// AppendTurn adds a turn to the transcript.
// Fails with ErrInvalidState while no identity has been accepted.
func (s *Session) AppendTurn(role TurnRole, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendTurn(role, content)
}

func (s *Session) appendTurn(role TurnRole, content string) error {
	if s.identity == nil {
		return fmt.Errorf("%w: no identity accepted", ErrInvalidState)
	}
	if !role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	s.turns = append(s.turns, Turn{Role: role, Content: content})
	return nil
}

// SetBusy sets the busy flag and nothing else
func (s *Session) SetBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = busy
}

// BeginDispatch moves the session into Dispatching: it marks the session busy,
// clears the previous notice and appends the user turn before the outbound call.
// Returns ErrInvalidState without identity and ErrSessionBusy while another dispatch runs.
func (s *Session) BeginDispatch(message string) (Dispatch, error) {
	if strings.TrimSpace(message) == "" {
		return Dispatch{}, fmt.Errorf("%w: message must not be empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return Dispatch{}, fmt.Errorf("%w: no identity accepted", ErrInvalidState)
	}
	if s.busy {
		return Dispatch{}, ErrSessionBusy
	}

	if err := s.appendTurn(TurnRoleUser, message); err != nil {
		return Dispatch{}, err
	}
	s.busy = true
	s.notice = ""
	s.lastAccessTime = time.Now()

	identity := *s.identity
	return Dispatch{
		SessionID:  s.id,
		Identity:   &identity,
		Message:    message,
		Position:   len(s.turns) - 1,
		generation: s.generation,
	}, nil
}

// CompleteDispatch appends the assistant turn, records the notice and clears busy.
// Returns false when the session was reset while the dispatch was in flight;
// the reply is then dropped.
func (s *Session) CompleteDispatch(d Dispatch, reply, notice string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.generation != s.generation {
		return false
	}

	s.turns = append(s.turns, Turn{Role: TurnRoleAssistant, Content: reply})
	s.notice = notice
	s.busy = false
	s.lastAccessTime = time.Now()
	return true
}

// Touch records an access for idle expiry
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccessTime = time.Now()
}

// IsIdleFor reports whether the session has not been accessed for longer than timeout.
// A busy session is never idle.
func (s *Session) IsIdleFor(timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.busy && time.Since(s.lastAccessTime) > timeout
}

// Snapshot returns a copy of the session state for the presentation layer
func (s *Session) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)

	var identity *string
	if s.identity != nil {
		v := *s.identity
		identity = &v
	}

	return SessionView{
		ID:       s.id,
		Identity: identity,
		State:    s.state(),
		Busy:     s.busy,
		Turns:    turns,
		Notice:   s.notice,
	}
}

// State derives the orchestrator state
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() SessionState {
	switch {
	case s.identity == nil:
		return SessionStateAwaitingIdentity
	case s.busy:
		return SessionStateDispatching
	default:
		return SessionStateReady
	}
}
