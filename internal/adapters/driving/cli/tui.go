package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/views/search"
)

var (
	tuiRenderWidth int
	tuiLimit       int
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Type a query and press enter. Results show highlighted titles and the first
matching passage; enter on a result lists all passages with their page
regions, IIIF image URLs and highlight positions.

Controls (results):
  ↑/k, ↓/j  Navigate results
  enter     Show passages
  1, 2      Toggle books / newspapers and search again
  +, -      More / fewer passages per document and search again
  /, esc    Edit the query
  ?         Help
  q         Quit

Changes to the configuration file are picked up while the TUI runs.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVarP(&tuiRenderWidth, "width", "w", 600, "pixel width region images are requested at (0 = full size)")
	tuiCmd.Flags().IntVarP(&tuiLimit, "limit", "n", search.DefaultLimit, "documents per search")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = errors.New("tui crashed")
		}
	}()

	if searchService == nil {
		return errors.New("search service not configured")
	}

	// Long-running: reload settings on config edits while the TUI is open.
	stop := startConfigWatch(cmd.Context())
	defer stop()

	app, err := tui.NewApp(tui.NewPorts(searchService, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).
		WithRenderWidth(tuiRenderWidth).
		WithLimit(tuiLimit)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
