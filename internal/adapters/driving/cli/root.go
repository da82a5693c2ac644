// Package cli implements the ocrhl command line interface.
//
// Commands register themselves on rootCmd in init functions. The core
// services they run against are created lazily by the bootstrap function
// installed with SetBootstrap, once the global flags are parsed.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ocrhl/internal/core/ports/driving"
	"github.com/custodia-labs/ocrhl/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services are the core services shared by all commands.
type Services struct {
	Search   driving.SearchService
	Image    driving.ImageService
	Settings driving.SettingsService

	// History is optional; searches are not listed without it.
	History driving.HistoryService

	// Watch reloads the configuration on external edits until ctx is done.
	// It is optional and only started by long-running commands.
	Watch func(ctx context.Context) error

	// Close releases the resources behind the services, such as the
	// history database. It is optional and called once by Execute.
	Close func() error
}

// Bootstrap creates the services from the config directory given with
// --config-dir, or the default directory when empty.
type Bootstrap func(configDir string) (*Services, error)

var (
	bootstrap Bootstrap

	searchService   driving.SearchService
	imageService    driving.ImageService
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	watchConfig     func(ctx context.Context) error
	closeServices   func() error
)

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "ocrhl",
	Short: "Search OCR-highlighted books and newspapers",
	Long: `ocrhl searches a Solr index with OCR highlighting and shows matching
passages together with IIIF image links for the highlighted page regions.

Two corpora are supported:
  gbooks  - Google Books 1000 volumes
  lunion  - L'Union newspaper issues

Configuration is read from ~/.ocrhl/config.toml; see "ocrhl config".`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline details to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.ocrhl)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that creates the services.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices installs already created services, bypassing bootstrap.
func SetServices(s *Services) {
	if s == nil {
		searchService, imageService, settingsService, historyService, watchConfig = nil, nil, nil, nil, nil
		closeServices = nil
		return
	}
	searchService = s.Search
	imageService = s.Image
	settingsService = s.Settings
	historyService = s.History
	watchConfig = s.Watch
	closeServices = s.Close
}

// Execute runs the root command and then closes the services.
func Execute() error {
	err := rootCmd.Execute()
	if closeErr := shutdown(); closeErr != nil && err == nil {
		return closeErr
	}
	return err
}

// shutdown calls the close hook of the installed services at most once.
func shutdown() error {
	if closeServices == nil {
		return nil
	}
	closeFn := closeServices
	closeServices = nil
	if err := closeFn(); err != nil {
		logger.Warn("Close services: %v", err)
		return fmt.Errorf("close services: %w", err)
	}
	return nil
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if searchService != nil || bootstrap == nil {
		return nil
	}
	services, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(services)
	return nil
}

// startConfigWatch reloads the configuration in the background until the
// returned stop function is called.
func startConfigWatch(ctx context.Context) (stop func()) {
	if watchConfig == nil {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := watchConfig(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Config watch stopped: %v", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
