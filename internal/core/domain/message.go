package domain

import "time"

// EmbeddingVersion tags stored vectors with the algorithm generation that
// produced them. Bumping it marks every stored embedding stale, so the next
// indexing run regenerates the whole corpus.
const EmbeddingVersion = "hashed-tfidf-v1"

// EmbeddingDim is the fixed dimensionality of every stored vector.
const EmbeddingDim = 384

// Message represents a single message from the local history.
// The message itself is owned by the host messaging application; Murmur
// stores a copy with the fields needed for semantic retrieval.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// ThreadID groups messages into a conversation.
	ThreadID string

	// Sender is the display identity of the message author.
	Sender string

	// Body is the raw text content.
	Body string

	// Timestamp is when the message was sent or received.
	Timestamp time.Time

	// Embedding is the serialized vector, empty until indexed.
	// Present iff LastIndexedAt is set.
	Embedding string

	// EmbeddingVersion records which algorithm generation produced
	// the stored embedding.
	EmbeddingVersion string

	// LastIndexedAt is when the embedding was last written.
	LastIndexedAt *time.Time
}

// NeedsIndexing reports whether this message lacks a usable embedding:
// either it was never indexed or its stored vector predates the current
// embedding algorithm.
func (m *Message) NeedsIndexing() bool {
	if m.LastIndexedAt == nil || m.Embedding == "" {
		return true
	}
	return m.EmbeddingVersion != EmbeddingVersion
}

// MessageCandidate is the slim projection streamed during a similarity
// scan: identity, ranking metadata and the stored vector, without the
// full body.
type MessageCandidate struct {
	// ID is the message identifier.
	ID string

	// ThreadID is the conversation the message belongs to.
	ThreadID string

	// Sender is the message author.
	Sender string

	// Timestamp is when the message was sent or received.
	Timestamp time.Time

	// Snippet is a short body excerpt for result display.
	Snippet string

	// Embedding is the serialized stored vector, possibly empty.
	Embedding string
}

// SnippetLength is the maximum rune length of a result snippet.
const SnippetLength = 160

// MakeSnippet returns a short display excerpt of a message body.
func MakeSnippet(body string) string {
	runes := []rune(body)
	if len(runes) <= SnippetLength {
		return body
	}
	return string(runes[:SnippetLength]) + "..."
}
