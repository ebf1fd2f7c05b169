package http

import (
	"net/http"

	"chat-relay/internal/domain"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// Created response
	Created = Status{Code: http.StatusCreated, Message: []string{"Created"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Session not found or expired"}}
	// Conflict response
	Conflict = Status{Code: http.StatusConflict, Message: []string{"Sorry, The session is not in the right state"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
	// ServiceUnavailable response
	ServiceUnavailable = Status{Code: http.StatusServiceUnavailable, Message: []string{"Service Unavailable"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

// withMessage returns a copy of the status carrying a specific message
func (s Status) withMessage(message string) Status {
	return Status{Code: s.Code, Message: []string{message}}
}

type (
	// TurnResponse struct - HTTP response DTO for one transcript entry
	TurnResponse struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	// SessionResponse struct - HTTP response DTO for session state
	SessionResponse struct {
		SessionID string         `json:"session_id"`
		UserEmail *string        `json:"user_email"`
		State     string         `json:"state"`
		Busy      bool           `json:"busy"`
		Turns     []TurnResponse `json:"turns"`
		Notice    string         `json:"notice,omitempty"`
	}

	// MessageResponse struct - HTTP response DTO for a submitted message
	MessageResponse struct {
		Session SessionResponse `json:"session"`
		Reply   string          `json:"reply,omitempty"`
		Notice  string          `json:"notice,omitempty"`
		Ignored bool            `json:"ignored"`
	}
)

func toSessionResponse(view *domain.SessionView) SessionResponse {
	turns := make([]TurnResponse, 0, len(view.Turns))
	for _, turn := range view.Turns {
		turns = append(turns, TurnResponse{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	return SessionResponse{
		SessionID: view.ID,
		UserEmail: view.Identity,
		State:     string(view.State),
		Busy:      view.Busy,
		Turns:     turns,
		Notice:    view.Notice,
	}
}

func toMessageResponse(result *domain.TurnResult) MessageResponse {
	return MessageResponse{
		Session: toSessionResponse(&result.Session),
		Reply:   result.Reply,
		Notice:  result.Notice,
		Ignored: result.Ignored,
	}
}
