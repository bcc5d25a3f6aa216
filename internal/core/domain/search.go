package domain

import "time"

// Search option bounds. MaxResults is clamped into [MinSearchResults,
// MaxSearchResults]; Threshold into (0, 1]. Out-of-range values from the
// surrounding dispatch layer are corrected, not rejected.
const (
	MinSearchResults     = 1
	MaxSearchResults     = 20
	DefaultSearchResults = 5
	DefaultThreshold     = 0.15
)

// SearchOptions configures a semantic search query.
type SearchOptions struct {
	// MaxResults is the maximum number of results to return.
	// Non-positive means DefaultSearchResults.
	MaxResults int

	// Threshold is the minimum cosine similarity for a hit.
	// Non-positive means DefaultThreshold.
	Threshold float64
}

// Normalize converts loosely supplied options into the validated form the
// core operates on: defaults applied, then clamped into range. Callers at
// the boundary normalise before handing options to the search service, so
// the core never sees out-of-range values.
func (o SearchOptions) Normalize() SearchOptions {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultSearchResults
	}
	if o.MaxResults < MinSearchResults {
		o.MaxResults = MinSearchResults
	}
	if o.MaxResults > MaxSearchResults {
		o.MaxResults = MaxSearchResults
	}

	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Threshold > 1 {
		o.Threshold = 1
	}
	return o
}

// SearchResult represents a single semantic search hit.
// Results are ephemeral: created per query, never persisted.
type SearchResult struct {
	// MessageID is the matched message.
	MessageID string

	// ThreadID is the conversation the message belongs to.
	ThreadID string

	// Sender is the message author.
	Sender string

	// Timestamp is when the message was sent or received.
	Timestamp time.Time

	// Snippet is a short excerpt of the message body.
	Snippet string

	// Similarity is the cosine similarity to the query, in [0, 1].
	Similarity float64
}
