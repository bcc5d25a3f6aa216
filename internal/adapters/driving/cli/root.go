// Package cli implements the command-line interface, the primary driving
// adapter. Commands hold no business logic; they parse flags, call the
// driving ports and format the output.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/murmur-chat/murmur-cli/internal/core/ports/driven"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driving"
	"github.com/murmur-chat/murmur-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are injected by the composition root before Execute.
var (
	searchService   driving.SearchService
	indexer         driving.Indexer
	settingsService driving.SettingsService
	messageStore    driven.MessageStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "murmur",
	Short: "On-device semantic search over your messages",
	Long: `Murmur searches your message history by meaning, not just keywords.

All indexing and search runs locally on this device. Message content
never leaves it.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetSearchService injects the search service.
func SetSearchService(s driving.SearchService) {
	searchService = s
}

// SetIndexer injects the indexing orchestrator.
func SetIndexer(i driving.Indexer) {
	indexer = i
}

// SetSettingsService injects the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetMessageStore injects the message store, used directly by commands
// that manage raw messages rather than going through a service.
func SetMessageStore(s driven.MessageStore) {
	messageStore = s
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
