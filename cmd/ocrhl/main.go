// Command ocrhl searches OCR-highlighted books and newspapers.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/ocrhl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ocrhl/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/ocrhl/internal/adapters/driven/solr"
	historymem "github.com/custodia-labs/ocrhl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ocrhl/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/cli"
	"github.com/custodia-labs/ocrhl/internal/core/ports/driven"
	"github.com/custodia-labs/ocrhl/internal/core/services"
	"github.com/custodia-labs/ocrhl/internal/logger"
)

// version is set via -ldflags at release time.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters into the core services.
func bootstrap(configDir string) (*cli.Services, error) {
	var store driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("Using built-in defaults, config unavailable: %v", err)
		store = memory.NewConfigStore(nil)
	} else {
		store = fileStore
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	client := solr.NewClient(solr.ConfigFrom(settings))

	// History lives next to the config file.
	var history driven.HistoryStore
	var closeDB func() error
	db, err := sqlite.NewStore(configDir)
	if err != nil {
		logger.Warn("Search history kept in memory only: %v", err)
		history = historymem.NewHistoryStore(sqlite.DefaultMaxEntries)
	} else {
		history = db.HistoryStore(sqlite.DefaultMaxEntries)
		closeDB = db.Close
	}

	searchService := services.NewSearchService(client, settingsService)
	searchService.SetHistory(history)

	svc := &cli.Services{
		Search:   searchService,
		Image:    services.NewImageService(settingsService),
		Settings: settingsService,
		History:  services.NewHistoryService(history),
		Close:    closeDB,
	}

	if watcher, ok := store.(driven.ConfigWatcher); ok {
		svc.Watch = func(ctx context.Context) error {
			return watcher.Watch(ctx, func() {
				current, err := settingsService.Get()
				if err != nil {
					logger.Warn("Reload settings: %v", err)
					return
				}
				client.Reconfigure(solr.ConfigFrom(current))
			})
		}
	}
	return svc, nil
}
