package services

import (
	"fmt"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driven"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySearchThreshold  = "search.threshold"
	keySearchMaxResults = "search.max_results"
	keyIndexReadBatch   = "indexing.read_batch_size"
	keyIndexWriteBatch  = "indexing.write_batch_size"
	keyIndexRateLimit   = "indexing.rate_limit"
	keyVerbose          = "verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing keys fall back to
// defaults; out-of-range stored values are sanitised rather than
// surfaced, so a hand-edited config file cannot break the pipeline.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := domain.AppSettings{
		Search: domain.SearchSettings{
			Threshold:  s.getFloat(keySearchThreshold, defaults.Search.Threshold),
			MaxResults: s.getInt(keySearchMaxResults, defaults.Search.MaxResults),
		},
		Indexing: domain.IndexingSettings{
			ReadBatchSize:  s.getInt(keyIndexReadBatch, defaults.Indexing.ReadBatchSize),
			WriteBatchSize: s.getInt(keyIndexWriteBatch, defaults.Indexing.WriteBatchSize),
			RateLimit:      s.getFloat(keyIndexRateLimit, defaults.Indexing.RateLimit),
		},
		Verbose: s.configStore.GetBool(keyVerbose),
	}.Sanitize()

	return &settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	sanitised := settings.Sanitize()

	pairs := []struct {
		key   string
		value any
	}{
		{keySearchThreshold, sanitised.Search.Threshold},
		{keySearchMaxResults, sanitised.Search.MaxResults},
		{keyIndexReadBatch, sanitised.Indexing.ReadBatchSize},
		{keyIndexWriteBatch, sanitised.Indexing.WriteBatchSize},
		{keyIndexRateLimit, sanitised.Indexing.RateLimit},
		{keyVerbose, sanitised.Verbose},
	}

	for _, p := range pairs {
		if err := s.configStore.Set(p.key, p.value); err != nil {
			return fmt.Errorf("save setting %s: %w", p.key, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getFloat reads a float key, falling back to a default when absent.
func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetFloat(key)
}

// getInt reads an int key, falling back to a default when absent.
func (s *SettingsService) getInt(key string, fallback int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetInt(key)
}
