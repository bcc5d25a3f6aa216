package driving

import (
	"context"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
)

// Indexer keeps every stored message embedded.
type Indexer interface {
	// Run executes one indexing pass: scan for pending messages, rebuild
	// corpus statistics, embed and persist in batches. Returns the
	// terminal state of the run. Cancellation via ctx is cooperative and
	// yields partial success; work persisted by completed batches is
	// kept. A second Run while one is active returns
	// domain.ErrIndexingInProgress.
	Run(ctx context.Context) (domain.RunState, error)

	// Progress returns a snapshot of the active or most recent run.
	Progress() domain.IndexingProgress
}

// ProgressObserver receives indexing progress reports. Implemented by
// callers (the CLI progress line, host application hooks); invoked from
// the indexing goroutine, at least every domain.ProgressInterval
// processed items and at every batch boundary.
type ProgressObserver interface {
	// OnProgress delivers a progress report. The final report of a run
	// carries a terminal state.
	OnProgress(p domain.IndexingProgress)
}

// ProgressObserverFunc adapts a function to the ProgressObserver interface.
type ProgressObserverFunc func(p domain.IndexingProgress)

// OnProgress calls f(p).
func (f ProgressObserverFunc) OnProgress(p domain.IndexingProgress) {
	f(p)
}
