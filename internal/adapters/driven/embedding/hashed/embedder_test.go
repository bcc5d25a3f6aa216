package hashed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/core/services"
)

// l2Norm computes the Euclidean norm of a vector.
func l2Norm(v []float32) float64 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	return math.Sqrt(sum)
}

// TestEmbedder_DimensionAndNorm tests the core vector invariants
func TestEmbedder_DimensionAndNorm(t *testing.T) {
	e := New()
	stats := domain.EmptyCorpusStats()

	tests := []struct {
		name     string
		text     string
		wantZero bool
	}{
		{"plain sentence", "discuss roof repair budget", false},
		{"numeric tokens", "gate code is 4521", false},
		{"single token", "hello", false},
		{"empty string", "", true},
		{"only stop words and short tokens", "the and is to of", true},
		{"punctuation only", "!!! ... ???", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec := e.Embed(tt.text, stats)
			require.Len(t, vec, domain.EmbeddingDim)

			if tt.wantZero {
				assert.Zero(t, l2Norm(vec))
			} else {
				assert.InDelta(t, 1.0, l2Norm(vec), 1e-6)
			}
		})
	}
}

// TestEmbedder_Deterministic tests repeated calls yield identical vectors
func TestEmbedder_Deterministic(t *testing.T) {
	e := New()
	stats := services.BuildCorpusStats([]string{
		"gate code is 4521",
		"discuss roof repair budget",
		"thanks for dinner",
	})

	text := "what is the gate code for the roof"
	first := e.Embed(text, stats)
	second := e.Embed(text, stats)

	assert.Equal(t, first, second)
}

// TestEmbedder_StatsChangeVector tests that corpus weights matter
func TestEmbedder_StatsChangeVector(t *testing.T) {
	e := New()

	empty := domain.EmptyCorpusStats()
	weighted := domain.NewCorpusStats(10, map[string]float64{"gate": 3.0})

	a := e.Embed("gate code", empty)
	b := e.Embed("gate code", weighted)

	assert.NotEqual(t, a, b)
}

// TestEmbedder_SimilarTextsCloser tests relative similarity behaviour
func TestEmbedder_SimilarTextsCloser(t *testing.T) {
	e := New()
	stats := services.BuildCorpusStats([]string{
		"gate code is 4521",
		"discuss roof repair budget",
		"thanks for dinner",
	})

	query := e.Embed("what is the gate code", stats)
	related := e.Embed("gate code is 4521", stats)
	unrelated := e.Embed("thanks for dinner", stats)

	assert.Greater(t,
		domain.CosineSimilarity(query, related),
		domain.CosineSimilarity(query, unrelated))
}

// TestEmbedder_CollisionSeparation tests unrelated terms stay separable.
// With a small vocabulary relative to 384 buckets, unrelated single-term
// vectors should be near-orthogonal most of the time; occasional
// collisions are expected and tolerated.
func TestEmbedder_CollisionSeparation(t *testing.T) {
	e := New()
	stats := domain.EmptyCorpusStats()

	terms := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliett", "kilo", "lima",
		"mike", "november", "oscar", "papa", "quebec", "romeo",
		"sierra", "tango", "uniform", "victor", "whiskey", "xray",
	}

	vectors := make([][]float32, len(terms))
	for i, term := range terms {
		vectors[i] = e.Embed(term, stats)
	}

	collisions := 0
	pairs := 0
	for i := range vectors {
		for j := i + 1; j < len(vectors); j++ {
			pairs++
			if domain.CosineSimilarity(vectors[i], vectors[j]) > 0.99 {
				collisions++
			}
		}
	}

	// Expected collision rate is roughly len(terms)/384 per pair.
	assert.Less(t, float64(collisions), 0.25*float64(pairs),
		"too many hash collisions between unrelated terms")
}

// TestEmbedder_VersionAndDimensions tests the port metadata
func TestEmbedder_VersionAndDimensions(t *testing.T) {
	e := New()

	assert.Equal(t, domain.EmbeddingDim, e.Dimensions())
	assert.Equal(t, domain.EmbeddingVersion, e.Version())
}

// TestEmbedder_StorageRoundTrip tests encode/decode of generated vectors
func TestEmbedder_StorageRoundTrip(t *testing.T) {
	e := New()
	stats := domain.EmptyCorpusStats()

	vec := e.Embed("remember the gate code", stats)
	decoded, ok := domain.DecodeVector(domain.EncodeVector(vec))

	require.True(t, ok)
	assert.Equal(t, vec, decoded)
}
