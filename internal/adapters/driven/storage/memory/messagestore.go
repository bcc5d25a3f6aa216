// Package memory provides in-memory implementations of driven port
// interfaces, used by tests and as a lightweight store for ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driven"
)

// Ensure MessageStore implements the interface.
var _ driven.MessageStore = (*MessageStore)(nil)

// MessageStore is an in-memory implementation of driven.MessageStore.
type MessageStore struct {
	mu       sync.RWMutex
	messages map[string]domain.Message
}

// NewMessageStore creates a new in-memory message store.
func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages: make(map[string]domain.Message),
	}
}

// SaveMessage stores or updates a message. A changed body clears the
// stored embedding so the message is picked up by the next indexing run.
func (s *MessageStore) SaveMessage(_ context.Context, msg *domain.Message) error {
	if msg.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *msg
	if existing, ok := s.messages[msg.ID]; ok && existing.Body != msg.Body {
		stored.Embedding = ""
		stored.EmbeddingVersion = ""
		stored.LastIndexedAt = nil
	}
	s.messages[msg.ID] = stored
	return nil
}

// GetMessage retrieves a message by ID.
func (s *MessageStore) GetMessage(_ context.Context, id string) (*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &msg, nil
}

// ListBodies returns every stored message body.
func (s *MessageStore) ListBodies(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bodies := make([]string, 0, len(s.messages))
	for _, id := range s.sortedIDs() {
		bodies = append(bodies, s.messages[id].Body)
	}
	return bodies, nil
}

// ListPending returns messages lacking an embedding or carrying a stale
// embedding version, ordered by ID.
func (s *MessageStore) ListPending(_ context.Context, currentVersion string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []domain.Message
	for _, id := range s.sortedIDs() {
		msg := s.messages[id]
		if msg.LastIndexedAt == nil || msg.Embedding == "" || msg.EmbeddingVersion != currentVersion {
			pending = append(pending, msg)
		}
	}
	return pending, nil
}

// FetchCandidates returns a batch of scan candidates ordered by ID.
func (s *MessageStore) FetchCandidates(_ context.Context, offset, limit int) ([]domain.MessageCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.sortedIDs()
	if offset >= len(ids) {
		return []domain.MessageCandidate{}, nil
	}

	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}

	candidates := make([]domain.MessageCandidate, 0, end-offset)
	for _, id := range ids[offset:end] {
		msg := s.messages[id]
		candidates = append(candidates, domain.MessageCandidate{
			ID:        msg.ID,
			ThreadID:  msg.ThreadID,
			Sender:    msg.Sender,
			Timestamp: msg.Timestamp,
			Snippet:   domain.MakeSnippet(msg.Body),
			Embedding: msg.Embedding,
		})
	}
	return candidates, nil
}

// UpdateEmbedding atomically writes embedding, version and last-indexed
// timestamp for a message.
func (s *MessageStore) UpdateEmbedding(_ context.Context, id, embedding, version string, indexedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return domain.ErrNotFound
	}

	msg.Embedding = embedding
	msg.EmbeddingVersion = version
	msg.LastIndexedAt = &indexedAt
	s.messages[id] = msg
	return nil
}

// Counts returns total and embedded message counts.
func (s *MessageStore) Counts(_ context.Context) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	embedded := 0
	for _, msg := range s.messages {
		if msg.Embedding != "" {
			embedded++
		}
	}
	return len(s.messages), embedded, nil
}

// Close releases resources.
func (s *MessageStore) Close() error {
	return nil
}

// sortedIDs returns message IDs in ascending order for deterministic
// iteration. Callers must hold at least a read lock.
func (s *MessageStore) sortedIDs() []string {
	ids := make([]string, 0, len(s.messages))
	for id := range s.messages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
