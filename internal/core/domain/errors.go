package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexingInProgress indicates an indexing run is already active.
	// Exactly one run may be active at a time.
	ErrIndexingInProgress = errors.New("indexing in progress")

	// ErrCorpusRead indicates the message corpus could not be enumerated.
	// This is the only condition that fails an indexing run outright;
	// previously persisted embeddings are unaffected.
	ErrCorpusRead = errors.New("corpus read failed")
)
