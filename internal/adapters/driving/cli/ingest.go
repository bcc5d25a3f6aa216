package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/logger"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Import messages from JSONL export files",
	Long: `Imports messages from one or more JSONL files, one JSON object per
line:

  {"id": "m1", "thread_id": "t1", "sender": "ana", "body": "...", "timestamp": "2026-03-01T12:00:00Z"}

Messages without an id are assigned one. Re-importing an existing id
updates the message; if its body changed, it is re-indexed on the next
indexing run. Malformed lines are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

// ingestRecord is the wire form of one exported message.
type ingestRecord struct {
	ID        string `json:"id"`
	ThreadID  string `json:"thread_id"`
	Sender    string `json:"sender"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	if messageStore == nil {
		return errors.New("message store not configured")
	}

	ctx := context.Background()

	totalImported, totalSkipped := 0, 0
	for _, path := range args {
		imported, skipped, err := ingestFile(ctx, path)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}
		totalImported += imported
		totalSkipped += skipped
	}

	cmd.Printf("Imported %d messages (%d skipped).\n", totalImported, totalSkipped)
	if totalImported > 0 {
		cmd.Println("Run 'murmur index' to make them searchable.")
	}
	return nil
}

// ingestFile imports one JSONL file, returning imported and skipped
// line counts.
func ingestFile(ctx context.Context, path string) (imported, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Allow long message bodies
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec ingestRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			logger.Warn("Skipping malformed line %d: %v", lineNo, err)
			skipped++
			continue
		}

		msg, err := rec.toMessage()
		if err != nil {
			logger.Warn("Skipping line %d: %v", lineNo, err)
			skipped++
			continue
		}

		if err := messageStore.SaveMessage(ctx, msg); err != nil {
			return imported, skipped, fmt.Errorf("save message %s: %w", msg.ID, err)
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return imported, skipped, err
	}

	return imported, skipped, nil
}

// toMessage converts a wire record to a domain message, filling in an
// ID and timestamp when the export omits them.
func (r ingestRecord) toMessage() (*domain.Message, error) {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}

	at := time.Now().UTC()
	if r.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", r.Timestamp, err)
		}
		at = parsed
	}

	return &domain.Message{
		ID:        id,
		ThreadID:  r.ThreadID,
		Sender:    r.Sender,
		Body:      r.Body,
		Timestamp: at,
	}, nil
}
