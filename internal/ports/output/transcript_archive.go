package output

import (
	"context"

	"chat-relay/internal/domain"
)

// TranscriptArchive interface - Output port
// Append-only audit sink for completed turns. Archived turns are never read
// back into sessions.
type TranscriptArchive interface {
	// ArchiveTurn records one turn of a completed dispatch
	ArchiveTurn(ctx context.Context, turn domain.ArchivedTurn) error

	// Ping reports whether the archive backend is reachable
	Ping(ctx context.Context) error
}
