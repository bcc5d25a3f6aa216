package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driving"
	"github.com/murmur-chat/murmur-cli/internal/logger"
)

var indexWatchDir string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index unembedded messages",
	Long: `Runs one indexing pass: rebuilds corpus statistics, then embeds
every message that has no up-to-date embedding. Interrupting with Ctrl-C
keeps everything indexed so far; the next run resumes where this one
stopped.

With --watch, keeps running and re-indexes whenever a .jsonl file in the
watched directory is created or modified.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexWatchDir, "watch", "", "directory to watch for new .jsonl message files")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexer == nil {
		return errors.New("indexer not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := indexWithProgress(ctx, cmd, indexer); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if indexWatchDir == "" {
		return nil
	}
	return watchAndIndex(ctx, cmd, indexWatchDir)
}

// indexWithProgress runs one pass while displaying progress updates.
func indexWithProgress(ctx context.Context, cmd *cobra.Command, ix driving.Indexer) error {
	resultCh := make(chan error, 1)
	stateCh := make(chan domain.RunState, 1)
	go func() {
		state, err := ix.Run(ctx)
		stateCh <- state
		resultCh <- err
	}()

	// Poll progress every 200ms
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	lastProcessed := -1
	for {
		select {
		case err := <-resultCh:
			state := <-stateCh
			if err != nil {
				return err
			}
			progress := ix.Progress()
			if lastProcessed >= 0 {
				cmd.Println()
			}
			switch state {
			case domain.RunStateCancelled:
				cmd.Printf("Indexing cancelled: %s\n", progress.Message)
			default:
				cmd.Printf("Indexing complete: %s\n", progress.Message)
			}
			return nil
		case <-ticker.C:
			progress := ix.Progress()
			if progress.State == domain.RunStateBatchProcessing && progress.Processed > lastProcessed {
				cmd.Printf("\rIndexing... %d of %d messages", progress.Processed, progress.Total)
				lastProcessed = progress.Processed
			}
		}
	}
}

// watchAndIndex re-ingests and re-indexes whenever a message export file
// changes in the watched directory, until ctx is cancelled.
func watchAndIndex(ctx context.Context, cmd *cobra.Command, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	cmd.Printf("Watching %s for message files. Press Ctrl-C to stop.\n", dir)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped watching.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".jsonl") {
				continue
			}

			logger.Debug("Watched file changed: %s", event.Name)
			imported, skipped, err := ingestFile(ctx, event.Name)
			if err != nil {
				logger.Warn("Failed to ingest %s: %v", event.Name, err)
				continue
			}
			cmd.Printf("Ingested %d messages from %s (%d skipped)\n", imported, filepath.Base(event.Name), skipped)

			if err := indexWithProgress(ctx, cmd, indexer); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Warn("Indexing run failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
