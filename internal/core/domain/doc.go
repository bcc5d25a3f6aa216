// Package domain defines the core business entities for Murmur.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message: A message from the local history, with its stored embedding
//   - CorpusStats: An immutable snapshot of corpus-wide term statistics
//   - SearchOptions / SearchResult: The semantic search request and hit types
//   - IndexingProgress / RunState: Observable state of an indexing run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
