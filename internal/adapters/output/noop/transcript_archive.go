package noop

import (
	"context"

	"chat-relay/internal/domain"
	"chat-relay/internal/ports/output"
)

// Compile-time check to ensure TranscriptArchive implements TranscriptArchive interface
var _ output.TranscriptArchive = (*TranscriptArchive)(nil)

// TranscriptArchive struct - Archive used when no database is configured
type TranscriptArchive struct{}

// NewTranscriptArchive func
func NewTranscriptArchive() *TranscriptArchive {
	return &TranscriptArchive{}
}

// ArchiveTurn discards the turn
func (a *TranscriptArchive) ArchiveTurn(ctx context.Context, turn domain.ArchivedTurn) error {
	return nil
}

// Ping always succeeds
func (a *TranscriptArchive) Ping(ctx context.Context) error {
	return nil
}
