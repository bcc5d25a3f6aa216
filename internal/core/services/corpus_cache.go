package services

import (
	"sync"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
)

// CorpusCache holds the most recent corpus statistics snapshot, shared
// between the indexer (which publishes one per run) and the search
// service (which embeds queries against it). It replaces any ambient
// global lookup with an explicit, injected value.
//
// Search relevance can drift between indexing runs because queries reuse
// the last published snapshot rather than recomputing statistics; that
// staleness window is how the system is meant to behave. Before the
// first run the cache serves an empty snapshot, so query embedding
// degenerates to hashed term frequency.
type CorpusCache struct {
	mu    sync.RWMutex
	stats *domain.CorpusStats
}

// NewCorpusCache creates a cache primed with an empty snapshot.
func NewCorpusCache() *CorpusCache {
	return &CorpusCache{stats: domain.EmptyCorpusStats()}
}

// Publish replaces the cached snapshot.
func (c *CorpusCache) Publish(stats *domain.CorpusStats) {
	if stats == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = stats
}

// Current returns the last published snapshot. Never nil.
func (c *CorpusCache) Current() *domain.CorpusStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
