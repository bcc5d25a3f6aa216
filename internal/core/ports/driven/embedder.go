package driven

import "github.com/murmur-chat/murmur-cli/internal/core/domain"

// Embedder generates fixed-dimension vector embeddings from message text.
// Implementations must be deterministic: the same (text, stats) pair
// always yields the same vector, across processes and platforms.
//
// Unlike a remote embedding provider there is no error path; text with
// no indexable tokens embeds to the all-zero vector.
type Embedder interface {
	// Embed generates a unit-norm vector for the given text, weighting
	// terms by the supplied corpus statistics snapshot. Returns the
	// all-zero vector when the text has no indexable tokens.
	Embed(text string, stats *domain.CorpusStats) []float32

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// Version returns the algorithm generation tag written alongside
	// stored vectors.
	Version() string
}
