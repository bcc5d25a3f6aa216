package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
)

var (
	searchLimit     int
	searchThreshold float64
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search messages by meaning",
	Long: `Performs semantic search across all indexed messages.
Messages are matched by meaning, so a search for "gate code" also finds
"the code for the gate is 4521". Results are ranked by similarity.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from settings)")
	searchCmd.Flags().Float64VarP(&searchThreshold, "threshold", "t", 0, "minimum similarity 0-1 (default from settings)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := searchOptions()
	if searchLimit > 0 {
		opts.MaxResults = searchLimit
	}
	if searchThreshold > 0 {
		opts.Threshold = searchThreshold
	}

	results, err := searchService.Search(context.Background(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

// searchOptions builds options from saved settings, falling back to
// defaults when no settings service is wired.
func searchOptions() domain.SearchOptions {
	if settingsService == nil {
		return domain.SearchOptions{}
	}

	settings, err := settingsService.Get()
	if err != nil {
		return domain.SearchOptions{}
	}
	return domain.SearchOptions{
		MaxResults: settings.Search.MaxResults,
		Threshold:  settings.Search.Threshold,
	}
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, results[i].Sender, results[i].Similarity)
		cmd.Printf("      %s\n", results[i].Timestamp.Format("2006-01-02 15:04"))
		if results[i].Snippet != "" {
			cmd.Printf("      %s\n", results[i].Snippet)
		}
		cmd.Println()
	}

	return nil
}
