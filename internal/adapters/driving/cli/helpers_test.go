package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/murmur-chat/murmur-cli/internal/adapters/driven/config/file"
	"github.com/murmur-chat/murmur-cli/internal/adapters/driven/embedding/hashed"
	"github.com/murmur-chat/murmur-cli/internal/adapters/driven/storage/memory"
	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/core/services"
)

// setupTestServices wires real services over in-memory storage and
// returns the store plus a cleanup restoring the previous wiring.
func setupTestServices(t *testing.T) (*memory.MessageStore, func()) {
	t.Helper()

	oldSearch := searchService
	oldIndexer := indexer
	oldSettings := settingsService
	oldStore := messageStore

	store := memory.NewMessageStore()
	embedder := hashed.New()
	cache := services.NewCorpusCache()

	configStore, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	SetSearchService(services.NewSearchService(store, embedder, cache))
	SetIndexer(services.NewIndexer(store, embedder, cache))
	SetSettingsService(services.NewSettingsService(configStore))
	SetMessageStore(store)

	return store, func() {
		searchService = oldSearch
		indexer = oldIndexer
		settingsService = oldSettings
		messageStore = oldStore
	}
}

// seedStore saves bodies as unindexed messages.
func seedStore(t *testing.T, store *memory.MessageStore, bodies map[string]string) {
	t.Helper()
	at := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	for id, body := range bodies {
		require.NoError(t, store.SaveMessage(context.Background(), &domain.Message{
			ID:        id,
			ThreadID:  "thread-1",
			Sender:    "ana",
			Body:      body,
			Timestamp: at,
		}))
	}
}
