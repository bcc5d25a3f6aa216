package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if messageStore == nil {
		return errors.New("message store not configured")
	}

	total, embedded, err := messageStore.Counts(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read counts: %w", err)
	}

	cmd.Println("Index Status")
	cmd.Println("============")
	cmd.Printf("  Messages:  %d\n", total)
	cmd.Printf("  Indexed:   %d\n", embedded)
	cmd.Printf("  Pending:   %d\n", total-embedded)

	if indexer != nil {
		progress := indexer.Progress()
		if progress.State != domain.RunStateIdle {
			cmd.Printf("  Last run:  %s", progress.State)
			if progress.Message != "" {
				cmd.Printf(" (%s)", progress.Message)
			}
			cmd.Println()
		}
	}

	return nil
}
