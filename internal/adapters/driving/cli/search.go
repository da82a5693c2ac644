package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

var (
	searchLimit    int
	searchOffset   int
	searchSnippets int
	searchSources  []string
	searchWidth    int
	searchJSON     bool
	searchImages   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search books and newspapers",
	Long: `Searches the selected corpora and prints matching documents with their
highlighted metadata and OCR passages.

Metadata fields (title, author, ...) and OCR passages are highlighted
separately; with --images every passage region is listed with its IIIF
image URL, requested at --width pixels (full size when 0).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of documents")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of documents to skip")
	searchCmd.Flags().IntVarP(&searchSnippets, "snippets", "s", 0,
		fmt.Sprintf("passages per document, %d-%d (default from config)", domain.MinSnippets, domain.MaxSnippets))
	searchCmd.Flags().StringSliceVar(&searchSources, "source", nil, "corpora to search: gbooks, lunion (default from config)")
	searchCmd.Flags().IntVarP(&searchWidth, "width", "w", 0, "image width in pixels for region URLs and overlays")
	searchCmd.Flags().BoolVar(&searchImages, "images", false, "list region image URLs")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}
	if searchSnippets != 0 && (searchSnippets < domain.MinSnippets || searchSnippets > domain.MaxSnippets) {
		return fmt.Errorf("--snippets must be between %d and %d", domain.MinSnippets, domain.MaxSnippets)
	}

	sources, err := selectedSources()
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{
		Limit:       searchLimit,
		Offset:      searchOffset,
		Sources:     sources,
		Snippets:    searchSnippets,
		RenderWidth: searchWidth,
	}

	results, err := searchService.Search(cmd.Context(), strings.Join(args, " "), opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}
	outputSearchResults(cmd, results)
	return nil
}

// selectedSources returns the corpora given with --source, falling back
// to the configured default.
func selectedSources() ([]domain.SourceKind, error) {
	if len(searchSources) == 0 {
		if settingsService == nil {
			return domain.AllSources(), nil
		}
		settings, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("failed to get settings: %w", err)
		}
		return settings.Sources, nil
	}

	sources := make([]domain.SourceKind, 0, len(searchSources))
	for _, tag := range searchSources {
		kind, err := domain.ParseSourceKind(strings.TrimSpace(tag))
		if err != nil {
			return nil, err
		}
		sources = append(sources, kind)
	}
	return sources, nil
}

func outputSearchResults(cmd *cobra.Command, results *domain.SearchResults) {
	if len(results.Hits) == 0 {
		cmd.Println("No results found.")
		return
	}

	p := newPrinter(cmd)
	cmd.Printf("%d documents found, showing %d\n\n", results.NumFound, len(results.Hits))

	for i, hit := range results.Hits {
		cmd.Printf("  [%d] %s %s\n", i+1, p.title(p.highlighted(hit.Document.DisplayTitle())), p.dim("("+hit.Source.Label()+")"))
		for _, line := range metadataLines(hit.Document) {
			cmd.Printf("      %s\n", p.highlighted(line))
		}
		cmd.Printf("      %s\n", p.dim(hit.ManifestURI))

		if hit.NumPassages > 0 {
			cmd.Printf("      %d matching passages\n", hit.NumPassages)
		}
		for _, passage := range hit.Passages {
			cmd.Printf("      > %s\n", p.highlighted(oneLine(passage.Text)))
			if !searchImages {
				continue
			}
			for _, region := range passage.Regions {
				if region.ImageURL != "" {
					cmd.Printf("          %s %s\n", p.dim(region.Page.ID), region.ImageURL)
				}
			}
		}
		cmd.Println()
	}
}

// metadataLines returns the secondary fields of a document for display.
func metadataLines(doc domain.Document) []string {
	var lines []string
	add := func(label string, values ...string) {
		var nonEmpty []string
		for _, v := range values {
			if v != "" {
				nonEmpty = append(nonEmpty, v)
			}
		}
		if len(nonEmpty) > 0 {
			lines = append(lines, label+": "+strings.Join(nonEmpty, "; "))
		}
	}

	switch d := doc.(type) {
	case *domain.BookDocument:
		add("Author", d.Author...)
		add("Published", d.Publisher, d.PublishedYear())
	case *domain.NewspaperDocument:
		add("Subtitle", d.Subtitle...)
		add("Part", d.NewspaperPart)
		add("Date", d.Date)
	}
	return lines
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
