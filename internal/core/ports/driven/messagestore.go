package driven

import (
	"context"
	"time"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
)

// MessageStore persists messages and their embeddings.
// Backed by SQLite for local storage.
type MessageStore interface {
	// SaveMessage stores or updates a message. Saving a message with a
	// changed body clears any stored embedding so it is re-indexed.
	SaveMessage(ctx context.Context, msg *domain.Message) error

	// GetMessage retrieves a message by ID.
	GetMessage(ctx context.Context, id string) (*domain.Message, error)

	// ListBodies returns the body text of every stored message,
	// used for corpus statistics rebuilds.
	ListBodies(ctx context.Context) ([]string, error)

	// ListPending returns messages lacking an embedding or carrying a
	// stale embedding version.
	ListPending(ctx context.Context, currentVersion string) ([]domain.Message, error)

	// FetchCandidates returns a batch of scan candidates ordered by ID,
	// starting at offset. A batch shorter than limit ends the scan.
	FetchCandidates(ctx context.Context, offset, limit int) ([]domain.MessageCandidate, error)

	// UpdateEmbedding atomically writes embedding, version and
	// last-indexed timestamp for a message. A concurrent reader sees
	// either all three fields or none of them.
	UpdateEmbedding(ctx context.Context, id, embedding, version string, indexedAt time.Time) error

	// Counts returns total and embedded message counts.
	Counts(ctx context.Context) (total, embedded int, err error)

	// Close releases resources.
	Close() error
}
