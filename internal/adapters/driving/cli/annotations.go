package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var annotationsCmd = &cobra.Command{
	Use:   "annotations <doc-id> <query>",
	Short: "Print IIIF Content Search annotations for a document",
	Long: `Runs a query against a single document and prints every highlighted word
as a IIIF Content Search (0.9) annotation list in JSON, suitable for viewers
like Mirador or the Universal Viewer.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAnnotations,
}

func init() {
	rootCmd.AddCommand(annotationsCmd)
}

func runAnnotations(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	list, err := searchService.ContentSearch(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("content search failed: %w", err)
	}
	return printJSON(cmd, list)
}
