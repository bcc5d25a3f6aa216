package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driven"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driving"
	"github.com/murmur-chat/murmur-cli/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.Indexer = (*Indexer)(nil)

// Indexer is the background pipeline that keeps every message embedded.
//
// A run walks the state machine SCANNING → CORPUS_REBUILD →
// BATCH_PROCESSING and ends COMPLETED, CANCELLED or FAILED. Per-message
// failures are logged and skipped so one bad message never aborts a run;
// only a failure to enumerate the corpus at all is fatal. Embeddings are
// persisted per message, so a cancelled run keeps everything written by
// the batches that finished.
type Indexer struct {
	msgStore driven.MessageStore
	embedder driven.Embedder
	corpus   *CorpusCache

	observer       driving.ProgressObserver
	limiter        *rate.Limiter
	writeBatchSize int

	// Run/progress tracking
	mu       sync.RWMutex
	active   bool
	progress domain.IndexingProgress
}

// NewIndexer creates an indexer. The corpus cache is shared with the
// search service; each run publishes a fresh snapshot to it.
func NewIndexer(
	msgStore driven.MessageStore,
	embedder driven.Embedder,
	corpus *CorpusCache,
) *Indexer {
	return &Indexer{
		msgStore:       msgStore,
		embedder:       embedder,
		corpus:         corpus,
		writeBatchSize: domain.WriteBatchSize,
		progress:       domain.IndexingProgress{State: domain.RunStateIdle},
	}
}

// SetObserver installs a progress observer. Pass nil to remove it.
func (x *Indexer) SetObserver(observer driving.ProgressObserver) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.observer = observer
}

// SetWriteBatchSize overrides the embed-and-persist batch size.
// Values below 1 are ignored.
func (x *Indexer) SetWriteBatchSize(size int) {
	if size > 0 {
		x.writeBatchSize = size
	}
}

// SetRateLimit throttles indexing to at most perSecond messages per
// second so a run does not monopolise the device. Zero or negative
// removes the throttle.
func (x *Indexer) SetRateLimit(perSecond float64) {
	if perSecond > 0 {
		x.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	} else {
		x.limiter = nil
	}
}

// Progress returns a snapshot of the active or most recent run.
func (x *Indexer) Progress() domain.IndexingProgress {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.progress
}

// Run executes one indexing pass. Returns the terminal state; the error
// is non-nil only for FAILED runs. Cancellation yields partial success:
// state CANCELLED and a nil error.
func (x *Indexer) Run(ctx context.Context) (domain.RunState, error) {
	if err := x.acquire(); err != nil {
		return domain.RunStateFailed, err
	}
	defer x.release()

	logger.Section("Indexing Run")

	// SCANNING: find messages lacking a current embedding
	x.report(domain.RunStateScanning, 0, 0, "scanning for unindexed messages")

	pending, err := x.msgStore.ListPending(ctx, x.embedder.Version())
	if err != nil {
		return x.fail(fmt.Errorf("%w: list pending: %w", domain.ErrCorpusRead, err))
	}
	if len(pending) == 0 {
		logger.Info("Nothing to index")
		x.report(domain.RunStateCompleted, 0, 0, "index is up to date")
		return domain.RunStateCompleted, nil
	}
	total := len(pending)
	logger.Info("Found %d messages to index", total)

	// CORPUS_REBUILD: statistics over the whole corpus, not just pending
	x.report(domain.RunStateCorpusRebuild, 0, total, "rebuilding corpus statistics")

	bodies, err := x.msgStore.ListBodies(ctx)
	if err != nil {
		return x.fail(fmt.Errorf("%w: list bodies: %w", domain.ErrCorpusRead, err))
	}
	stats := BuildCorpusStats(bodies)
	x.corpus.Publish(stats)
	logger.Debug("Corpus: %d documents, %d distinct terms", stats.DocumentCount, stats.TermCount())

	// BATCH_PROCESSING: embed and persist in batches
	processed, failed := 0, 0
	for start := 0; start < total; start += x.writeBatchSize {
		// Cancellation is cooperative, checked at batch boundaries.
		if ctx.Err() != nil {
			logger.Info("Run cancelled after %d of %d messages", processed, total)
			x.report(domain.RunStateCancelled, processed, total,
				fmt.Sprintf("cancelled after %d of %d messages", processed, total))
			return domain.RunStateCancelled, nil
		}

		end := start + x.writeBatchSize
		if end > total {
			end = total
		}

		for i := start; i < end; i++ {
			if err := x.indexOne(ctx, &pending[i], stats); err != nil {
				failed++
				logger.Warn("Failed to index %s: %v (will retry next run)", pending[i].ID, err)
				continue
			}
			processed++

			if (processed+failed)%domain.ProgressInterval == 0 {
				x.report(domain.RunStateBatchProcessing, processed, total,
					fmt.Sprintf("indexed %d of %d messages", processed, total))
			}
		}

		x.report(domain.RunStateBatchProcessing, processed, total,
			fmt.Sprintf("indexed %d of %d messages", processed, total))
	}

	message := fmt.Sprintf("indexed %d of %d messages", processed, total)
	if failed > 0 {
		message = fmt.Sprintf("indexed %d of %d messages (%d failed, will retry)", processed, total, failed)
	}
	logger.Info("Indexing complete: %d indexed, %d failed", processed, failed)
	x.report(domain.RunStateCompleted, processed, total, message)
	return domain.RunStateCompleted, nil
}

// indexOne embeds a single message and persists embedding, version and
// last-indexed timestamp as one atomic store write.
func (x *Indexer) indexOne(ctx context.Context, msg *domain.Message, stats *domain.CorpusStats) error {
	if x.limiter != nil {
		if err := x.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("throttle: %w", err)
		}
	}

	vec := x.embedder.Embed(msg.Body, stats)
	encoded := domain.EncodeVector(vec)

	if err := x.msgStore.UpdateEmbedding(ctx, msg.ID, encoded, x.embedder.Version(), time.Now().UTC()); err != nil {
		return fmt.Errorf("persist embedding: %w", err)
	}
	return nil
}

// fail records and reports a FAILED terminal state.
func (x *Indexer) fail(err error) (domain.RunState, error) {
	logger.Warn("Indexing run failed: %v", err)

	p := x.Progress()
	x.report(domain.RunStateFailed, p.Processed, p.Total, fmt.Sprintf("indexing failed: %v", err))
	return domain.RunStateFailed, err
}

// report updates the tracked progress and notifies the observer.
func (x *Indexer) report(state domain.RunState, processed, total int, message string) {
	p := domain.IndexingProgress{
		State:     state,
		Processed: processed,
		Total:     total,
		Message:   message,
	}

	x.mu.Lock()
	x.progress = p
	observer := x.observer
	x.mu.Unlock()

	if observer != nil {
		observer.OnProgress(p)
	}
}

// acquire marks a run active. Exactly one run may be active at a time;
// the upstream scheduler is expected to enforce this too, but the guard
// here makes a racing second caller fail fast instead of corrupting the
// shared corpus snapshot.
func (x *Indexer) acquire() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.active {
		return domain.ErrIndexingInProgress
	}
	x.active = true
	return nil
}

// release marks the run finished.
func (x *Indexer) release() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.active = false
}
