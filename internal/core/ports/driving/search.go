package driving

import (
	"context"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
)

// SearchService answers semantic queries over the stored message history.
type SearchService interface {
	// Search finds messages similar in meaning to the query, ordered by
	// descending similarity. Options are normalised before use; an
	// unindexable query yields an empty result set, not an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
