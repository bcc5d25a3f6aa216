package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure search and indexing settings.

Settings are stored in ~/.murmur/config.toml. Out-of-range values fall
back to defaults.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting and persist it.

Available keys:
  threshold         minimum similarity for a search hit (0-1)
  max-results       default result cap (1-20)
  read-batch-size   candidate fetch size for similarity scans
  write-batch-size  embed-and-persist batch size
  rate-limit        max messages indexed per second (0 = unlimited)
  verbose           debug logging by default (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("[Search]")
	cmd.Printf("  Threshold:   %.2f\n", settings.Search.Threshold)
	cmd.Printf("  Max results: %d\n", settings.Search.MaxResults)
	cmd.Println()
	cmd.Println("[Indexing]")
	cmd.Printf("  Read batch size:  %d\n", settings.Indexing.ReadBatchSize)
	cmd.Printf("  Write batch size: %d\n", settings.Indexing.WriteBatchSize)
	if settings.Indexing.RateLimit > 0 {
		cmd.Printf("  Rate limit:       %.0f msg/s\n", settings.Indexing.RateLimit)
	} else {
		cmd.Printf("  Rate limit:       unlimited\n")
	}
	cmd.Println()
	cmd.Printf("Verbose: %t\n", settings.Verbose)

	return nil
}

func runSettingsSet(_ *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	key, value := args[0], args[1]
	switch key {
	case "threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid threshold %q: %w", value, err)
		}
		settings.Search.Threshold = f
	case "max-results":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max-results %q: %w", value, err)
		}
		settings.Search.MaxResults = n
	case "read-batch-size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid read-batch-size %q: %w", value, err)
		}
		settings.Indexing.ReadBatchSize = n
	case "write-batch-size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid write-batch-size %q: %w", value, err)
		}
		settings.Indexing.WriteBatchSize = n
	case "rate-limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid rate-limit %q: %w", value, err)
		}
		settings.Indexing.RateLimit = f
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid verbose %q: %w", value, err)
		}
		settings.Verbose = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings restored to defaults.")
	return nil
}
