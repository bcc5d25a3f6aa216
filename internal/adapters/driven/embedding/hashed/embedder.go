// Package hashed provides a fully local, deterministic embedder built on
// TF-IDF weighted feature hashing. No model files, no network: every
// vector is computed from the message text and a corpus statistics
// snapshot alone, which keeps embedding available on-device under the
// host application's no-network constraint.
package hashed

import (
	"hash/fnv"
	"math"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driven"
	"github.com/murmur-chat/murmur-cli/internal/tokenizer"
)

// Ensure Embedder implements the interface.
var _ driven.Embedder = (*Embedder)(nil)

// Embedder generates 384-dimension unit vectors from message text.
//
// Each token's TF-IDF weight is accumulated into the bucket selected by
// a stable hash of the token. Unrelated terms occasionally share a
// bucket; that collision is the dimensionality-reduction tradeoff of
// feature hashing, bounded by vocabulary size over the dimension count,
// and not something callers need to handle.
type Embedder struct{}

// New creates a hashed embedder.
func New() *Embedder {
	return &Embedder{}
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return domain.EmbeddingDim
}

// Version returns the algorithm generation tag for stored vectors.
func (e *Embedder) Version() string {
	return domain.EmbeddingVersion
}

// Embed generates the vector for a text against a corpus snapshot.
//
// Identical (text, stats) inputs always produce an identical vector:
// tokenization, FNV-1a hashing and the accumulation order are all
// deterministic and platform-independent. Text with no indexable tokens
// embeds to the all-zero vector; everything else is L2-normalised to
// unit length.
func (e *Embedder) Embed(text string, stats *domain.CorpusStats) []float32 {
	vec := make([]float32, domain.EmbeddingDim)

	tokens := tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	// Each occurrence contributes idf/totalTokens to its bucket, so a
	// term's summed contribution equals tf × idf. Accumulating in token
	// order keeps float rounding identical across calls.
	totalTokens := float64(len(tokens))
	for _, token := range tokens {
		weight := stats.IDF(token) / totalTokens
		vec[bucket(token)] += float32(weight)
	}

	normalize(vec)
	return vec
}

// bucket maps a token to its vector index via FNV-1a, which hashes the
// token bytes rather than any process-local identity.
func bucket(token string) int {
	h := fnv.New32a()
	h.Write([]byte(token)) //nolint:errcheck // fnv never fails
	return int(h.Sum32() % domain.EmbeddingDim)
}

// normalize scales the vector to unit L2 norm in place. A zero vector
// is left untouched.
func normalize(vec []float32) {
	var sumSquares float64
	for _, f := range vec {
		sumSquares += float64(f) * float64(f)
	}
	if sumSquares == 0 {
		return
	}

	norm := math.Sqrt(sumSquares)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}
