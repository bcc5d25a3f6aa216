// murmur is an on-device semantic search tool for message history.
//
// This file is the composition root: it wires driven adapters (storage,
// embedding, config) into the core services and hands them to the CLI.
package main

import (
	"fmt"
	"os"

	"github.com/murmur-chat/murmur-cli/internal/adapters/driven/config/file"
	"github.com/murmur-chat/murmur-cli/internal/adapters/driven/embedding/hashed"
	"github.com/murmur-chat/murmur-cli/internal/adapters/driven/storage/sqlite"
	"github.com/murmur-chat/murmur-cli/internal/adapters/driving/cli"
	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driving"
	"github.com/murmur-chat/murmur-cli/internal/core/services"
	"github.com/murmur-chat/murmur-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run() error {
	// Config and settings come first so the rest of the wiring can be
	// tuned by them.
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	logger.SetVerbose(settings.Verbose)

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("failed to open message store: %w", err)
	}
	defer store.Close()
	logger.Debug("Message store: %s", store.Path())

	embedder := hashed.New()
	corpus := services.NewCorpusCache()

	searchService := services.NewSearchService(store.MessageStore(), embedder, corpus)
	searchService.SetReadBatchSize(settings.Indexing.ReadBatchSize)

	indexer := services.NewIndexer(store.MessageStore(), embedder, corpus)
	indexer.SetWriteBatchSize(settings.Indexing.WriteBatchSize)
	indexer.SetRateLimit(settings.Indexing.RateLimit)
	indexer.SetObserver(driving.ProgressObserverFunc(func(p domain.IndexingProgress) {
		logger.Debug("Indexing %s: %d/%d %s", p.State, p.Processed, p.Total, p.Message)
	}))

	cli.SetSearchService(searchService)
	cli.SetIndexer(indexer)
	cli.SetSettingsService(settingsService)
	cli.SetMessageStore(store.MessageStore())
	cli.SetVersion(version)

	return cli.Execute()
}
