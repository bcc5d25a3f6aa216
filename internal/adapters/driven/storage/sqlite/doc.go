// Package sqlite provides a SQLite-based implementation of the
// MessageStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation for the devices
// Murmur runs on.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory and embedded at compile time.
//
// # Data Location
//
// By default, the database is stored at ~/.murmur/data/messages.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode. Embedding updates write their three
// fields in a single statement, so a concurrent reader never observes a
// half-written embedding.
package sqlite
