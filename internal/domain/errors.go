package domain

import (
	"errors"
	"fmt"
)

// Conversation error types

var (
	// ErrValidation indicates caller input was rejected (bad identity, blank message)
	ErrValidation = errors.New("validation error")

	// ErrInvalidState indicates an operation was attempted in the wrong session state
	ErrInvalidState = errors.New("invalid session state")

	// ErrSessionNotFound indicates the session token is unknown or has expired
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionBusy indicates a dispatch is already in flight for the session
	ErrSessionBusy = errors.New("session busy")
)

// FailureKind classifies why a workflow call failed
type FailureKind string

const (
	// FailureTimeout - the call exceeded the configured timeout
	FailureTimeout FailureKind = "timeout"
	// FailureTransport - connection, DNS or non-2xx HTTP status
	FailureTransport FailureKind = "transport"
	// FailureMalformed - the reply body was not valid JSON
	FailureMalformed FailureKind = "malformed"
	// FailureUnknown - anything else that went wrong during the call
	FailureUnknown FailureKind = "unknown"
)

// User-facing failure details, one per FailureKind
const (
	TimeoutDetail   = "Request timed out. Please try again."
	MalformedDetail = "Invalid response format from server."
	OversizeDetail  = "Response from server is too large."
)

// WorkflowError is the failure half of a workflow call result.
// Detail is the user-visible notice; Err keeps the underlying cause.
type WorkflowError struct {
	Kind   FailureKind
	Detail string
	Err    error
}

func (e *WorkflowError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("workflow %s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("workflow %s: %s: %v", e.Kind, e.Detail, e.Err)
}

func (e *WorkflowError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewTimeoutError wraps a timeout cause
func NewTimeoutError(err error) *WorkflowError {
	return &WorkflowError{Kind: FailureTimeout, Detail: TimeoutDetail, Err: err}
}

// NewTransportError wraps a connection or HTTP status failure
func NewTransportError(err error) *WorkflowError {
	return &WorkflowError{Kind: FailureTransport, Detail: fmt.Sprintf("Connection error: %v", err), Err: err}
}

// NewMalformedError wraps a reply decoding failure
func NewMalformedError(err error) *WorkflowError {
	return &WorkflowError{Kind: FailureMalformed, Detail: MalformedDetail, Err: err}
}

// NewOversizeError wraps a reply that exceeded the read cap.
// It is classified as malformed since the body cannot be decoded whole.
func NewOversizeError(err error) *WorkflowError {
	return &WorkflowError{Kind: FailureMalformed, Detail: OversizeDetail, Err: err}
}

// NewUnknownError wraps any unclassified failure
func NewUnknownError(err error) *WorkflowError {
	return &WorkflowError{Kind: FailureUnknown, Detail: fmt.Sprintf("Unexpected error: %v", err), Err: err}
}
