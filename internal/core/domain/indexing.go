package domain

// Batch sizing and progress cadence for the indexing pipeline. The batch
// sizes bound peak memory, not correctness, and are tunable via settings.
const (
	// ReadBatchSize is how many candidates a similarity scan fetches
	// per store round-trip.
	ReadBatchSize = 50

	// WriteBatchSize is how many pending messages an indexing run
	// embeds and persists per batch.
	WriteBatchSize = 100

	// ProgressInterval is the maximum number of processed items
	// between progress notifications.
	ProgressInterval = 10
)

// RunState identifies where an indexing run is in its lifecycle.
type RunState string

// Indexing run states. A run moves IDLE → SCANNING → CORPUS_REBUILD →
// BATCH_PROCESSING and ends in exactly one of the terminal states.
const (
	RunStateIdle            RunState = "idle"
	RunStateScanning        RunState = "scanning"
	RunStateCorpusRebuild   RunState = "corpus_rebuild"
	RunStateBatchProcessing RunState = "batch_processing"
	RunStateCompleted       RunState = "completed"
	RunStateCancelled       RunState = "cancelled"
	RunStateFailed          RunState = "failed"
)

// Terminal returns true if the state ends a run.
func (s RunState) Terminal() bool {
	switch s {
	case RunStateCompleted, RunStateCancelled, RunStateFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s RunState) String() string {
	return string(s)
}

// IndexingProgress is a point-in-time report of an indexing run,
// delivered to progress observers. Ephemeral, never persisted.
type IndexingProgress struct {
	// State is the run's current lifecycle state.
	State RunState

	// Processed is the number of messages embedded so far this run.
	Processed int

	// Total is the number of messages pending at the start of the run.
	Total int

	// Message is a human-readable status line.
	Message string
}
