package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/murmur-chat/murmur-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed message store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.murmur/data/messages.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".murmur", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "messages.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// MessageStore returns a MessageStore interface backed by this store.
func (s *Store) MessageStore() driven.MessageStore {
	return &messageStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Message Store ====================

// messageStore implements driven.MessageStore.
type messageStore struct {
	store *Store
}

var _ driven.MessageStore = (*messageStore)(nil)

// SaveMessage stores or updates a message. When an update changes the
// body, the stored embedding is cleared in the same statement so the
// message is re-indexed by the next run.
func (s *messageStore) SaveMessage(ctx context.Context, msg *domain.Message) error {
	if msg.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO messages (id, thread_id, sender, body, timestamp, embedding, embedding_version, last_indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			thread_id = excluded.thread_id,
			sender = excluded.sender,
			embedding = CASE WHEN messages.body = excluded.body THEN messages.embedding ELSE '' END,
			embedding_version = CASE WHEN messages.body = excluded.body THEN messages.embedding_version ELSE '' END,
			last_indexed_at = CASE WHEN messages.body = excluded.body THEN messages.last_indexed_at ELSE NULL END,
			body = excluded.body,
			timestamp = excluded.timestamp
	`, msg.ID, msg.ThreadID, msg.Sender, msg.Body, msg.Timestamp.UTC(),
		msg.Embedding, msg.EmbeddingVersion, nullTime(msg.LastIndexedAt))

	if err != nil {
		return fmt.Errorf("saving message: %w", err)
	}
	return nil
}

// GetMessage retrieves a message by ID.
func (s *messageStore) GetMessage(ctx context.Context, id string) (*domain.Message, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, thread_id, sender, body, timestamp, embedding, embedding_version, last_indexed_at
		FROM messages WHERE id = ?
	`, id)

	var msg domain.Message
	var lastIndexed sql.NullTime
	if err := row.Scan(&msg.ID, &msg.ThreadID, &msg.Sender, &msg.Body,
		&msg.Timestamp, &msg.Embedding, &msg.EmbeddingVersion, &lastIndexed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning message: %w", err)
	}

	if lastIndexed.Valid {
		msg.LastIndexedAt = &lastIndexed.Time
	}

	return &msg, nil
}

// ListBodies returns the body of every stored message.
func (s *messageStore) ListBodies(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT body FROM messages ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying bodies: %w", err)
	}
	defer rows.Close()

	var bodies []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning body: %w", err)
		}
		bodies = append(bodies, body)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bodies: %w", err)
	}

	return bodies, nil
}

// ListPending returns messages lacking an embedding or carrying a stale
// embedding version.
func (s *messageStore) ListPending(ctx context.Context, currentVersion string) ([]domain.Message, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, thread_id, sender, body, timestamp, embedding, embedding_version, last_indexed_at
		FROM messages
		WHERE last_indexed_at IS NULL OR embedding = '' OR embedding_version != ?
		ORDER BY id
	`, currentVersion)
	if err != nil {
		return nil, fmt.Errorf("querying pending messages: %w", err)
	}
	defer rows.Close()

	var pending []domain.Message //nolint:prealloc // size unknown from query
	for rows.Next() {
		var msg domain.Message
		var lastIndexed sql.NullTime
		if err := rows.Scan(&msg.ID, &msg.ThreadID, &msg.Sender, &msg.Body,
			&msg.Timestamp, &msg.Embedding, &msg.EmbeddingVersion, &lastIndexed); err != nil {
			return nil, fmt.Errorf("scanning pending message: %w", err)
		}
		if lastIndexed.Valid {
			msg.LastIndexedAt = &lastIndexed.Time
		}
		pending = append(pending, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pending messages: %w", err)
	}

	return pending, nil
}

// FetchCandidates returns a batch of scan candidates ordered by ID.
func (s *messageStore) FetchCandidates(ctx context.Context, offset, limit int) ([]domain.MessageCandidate, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, thread_id, sender, timestamp, body, embedding
		FROM messages
		ORDER BY id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]domain.MessageCandidate, 0, limit)
	for rows.Next() {
		var c domain.MessageCandidate
		var body string
		if err := rows.Scan(&c.ID, &c.ThreadID, &c.Sender, &c.Timestamp, &body, &c.Embedding); err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}
		c.Snippet = domain.MakeSnippet(body)
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidates: %w", err)
	}

	return candidates, nil
}

// UpdateEmbedding atomically writes embedding, version and last-indexed
// timestamp in a single statement.
func (s *messageStore) UpdateEmbedding(ctx context.Context, id, embedding, version string, indexedAt time.Time) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE messages
		SET embedding = ?, embedding_version = ?, last_indexed_at = ?
		WHERE id = ?
	`, embedding, version, indexedAt.UTC(), id)
	if err != nil {
		return fmt.Errorf("updating embedding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Counts returns total and embedded message counts.
func (s *messageStore) Counts(ctx context.Context) (int, int, error) {
	var total, embedded int
	err := s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN embedding != '' THEN 1 ELSE 0 END), 0)
		FROM messages
	`).Scan(&total, &embedded)
	if err != nil {
		return 0, 0, fmt.Errorf("counting messages: %w", err)
	}
	return total, embedded, nil
}

// Close closes the underlying store.
func (s *messageStore) Close() error {
	return s.store.Close()
}

// nullTime converts an optional time to its SQL form.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
