package domain

// AppSettings holds user-tunable application settings.
type AppSettings struct {
	// Search holds search tunables.
	Search SearchSettings

	// Indexing holds indexing pipeline tunables.
	Indexing IndexingSettings

	// Verbose enables debug logging to stderr.
	Verbose bool
}

// SearchSettings holds search tunables.
type SearchSettings struct {
	// Threshold is the default minimum similarity for a hit.
	Threshold float64

	// MaxResults is the default result cap.
	MaxResults int
}

// IndexingSettings holds indexing pipeline tunables.
type IndexingSettings struct {
	// ReadBatchSize is the candidate fetch size for similarity scans.
	ReadBatchSize int

	// WriteBatchSize is the embed-and-persist batch size.
	WriteBatchSize int

	// RateLimit caps indexed messages per second. Zero means unlimited.
	RateLimit float64
}

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			Threshold:  DefaultThreshold,
			MaxResults: DefaultSearchResults,
		},
		Indexing: IndexingSettings{
			ReadBatchSize:  ReadBatchSize,
			WriteBatchSize: WriteBatchSize,
			RateLimit:      0,
		},
	}
}

// Sanitize replaces out-of-range values with defaults so a hand-edited
// config file cannot break batching or filtering.
func (s AppSettings) Sanitize() AppSettings {
	defaults := DefaultAppSettings()

	if s.Search.Threshold <= 0 || s.Search.Threshold > 1 {
		s.Search.Threshold = defaults.Search.Threshold
	}
	if s.Search.MaxResults < MinSearchResults || s.Search.MaxResults > MaxSearchResults {
		s.Search.MaxResults = defaults.Search.MaxResults
	}
	if s.Indexing.ReadBatchSize <= 0 {
		s.Indexing.ReadBatchSize = defaults.Indexing.ReadBatchSize
	}
	if s.Indexing.WriteBatchSize <= 0 {
		s.Indexing.WriteBatchSize = defaults.Indexing.WriteBatchSize
	}
	if s.Indexing.RateLimit < 0 {
		s.Indexing.RateLimit = 0
	}
	return s
}
