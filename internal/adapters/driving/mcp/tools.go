package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/highlight"
)

// defaultLimit is the number of documents the search tool returns when the
// caller gives no limit.
const defaultLimit = 10

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query    string   `json:"query" jsonschema:"the full-text query"`
	Sources  []string `json:"sources,omitempty" jsonschema:"corpora to search: gbooks and/or lunion (default: configured corpora)"`
	Snippets int      `json:"snippets,omitempty" jsonschema:"passages per document, 1 to 50 (default: configured value)"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 10)"`
	Offset   int      `json:"offset,omitempty" jsonschema:"number of documents to skip"`
	Width    int      `json:"width,omitempty" jsonschema:"pixel width region images are requested at; enables overlay rectangles"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Query    string               `json:"query"`
	NumFound int                  `json:"num_found"`
	QTime    int                  `json:"qtime_ms"`
	Results  []SearchResultOutput `json:"results"`
	Count    int                  `json:"count"`
}

// SearchResultOutput represents a single matching document.
type SearchResultOutput struct {
	DocumentID  string          `json:"document_id"`
	Source      string          `json:"source"`
	Title       string          `json:"title"`
	Highlights  []string        `json:"highlights,omitempty"`
	Manifest    string          `json:"manifest,omitempty"`
	NumPassages int             `json:"num_passages"`
	Passages    []PassageOutput `json:"passages,omitempty"`
}

// PassageOutput is one matching passage with its page regions.
type PassageOutput struct {
	Text    string         `json:"text"`
	Matches []string       `json:"matches,omitempty"`
	Regions []RegionOutput `json:"regions"`
}

// RegionOutput is a page region of a passage.
type RegionOutput struct {
	Page       string      `json:"page"`
	Region     string      `json:"region"`
	ImageURL   string      `json:"image_url,omitempty"`
	Highlights []BoxOutput `json:"highlights,omitempty"`
}

// BoxOutput is a highlighted word within a region.
type BoxOutput struct {
	Text    string       `json:"text"`
	Box     string       `json:"box"`
	Overlay *domain.Rect `json:"overlay,omitempty"`
}

// ImageURLInput is the input schema for the image_url tool.
type ImageURLInput struct {
	Source     string  `json:"source" jsonschema:"corpus of the document: gbooks or lunion"`
	DocumentID string  `json:"document_id" jsonschema:"document id (issue id for newspapers)"`
	PageID     string  `json:"page_id" jsonschema:"page identifier, e.g. page_12 or P3"`
	ULX        float64 `json:"ulx" jsonschema:"region upper-left x"`
	ULY        float64 `json:"uly" jsonschema:"region upper-left y"`
	LRX        float64 `json:"lrx" jsonschema:"region lower-right x"`
	LRY        float64 `json:"lry" jsonschema:"region lower-right y"`
	Width      int     `json:"width,omitempty" jsonschema:"requested image width in pixels (default full size)"`
}

// ImageURLOutput is the output schema for the image_url tool.
type ImageURLOutput struct {
	URL      string `json:"url"`
	Manifest string `json:"manifest"`
}

// ContentSearchInput is the input schema for the content_search tool.
type ContentSearchInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document to search within"`
	Query      string `json:"query" jsonschema:"the full-text query"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search digitised books and newspapers; returns highlighted passages located on page images",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "image_url",
		Description: "Build the IIIF Image API URL showing a region of a document page",
	}, s.handleImageURL)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "content_search",
		Description: "List the highlighted words of one document as a IIIF Content Search annotation list",
	}, s.handleContentSearch)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	sources, err := s.sources(input.Sources)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	opts := domain.SearchOptions{
		Limit:       limit,
		Offset:      input.Offset,
		Sources:     sources,
		Snippets:    input.Snippets,
		RenderWidth: input.Width,
	}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Query:    results.Query,
		NumFound: results.NumFound,
		QTime:    results.QTime,
		Results:  make([]SearchResultOutput, len(results.Hits)),
		Count:    len(results.Hits),
	}
	for i := range results.Hits {
		output.Results[i] = hitOutput(results.Hits[i])
	}

	return nil, output, nil
}

// sources resolves the corpora of a search: the requested tags, or the
// configured defaults, or every corpus.
func (s *Server) sources(tags []string) ([]domain.SourceKind, error) {
	if len(tags) > 0 {
		kinds := make([]domain.SourceKind, 0, len(tags))
		for _, tag := range tags {
			kind, err := domain.ParseSourceKind(tag)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, kind)
		}
		return kinds, nil
	}

	if s.ports.Settings != nil {
		settings, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		if len(settings.Sources) > 0 {
			return settings.Sources, nil
		}
	}
	return domain.AllSources(), nil
}

func hitOutput(hit domain.SearchHit) SearchResultOutput {
	out := SearchResultOutput{
		Source:      hit.Source.String(),
		Manifest:    hit.ManifestURI,
		NumPassages: hit.NumPassages,
	}
	if hit.Document != nil {
		out.DocumentID = hit.Document.DocumentID()
		out.Title = highlight.Plain(hit.Document.DisplayTitle())
		out.Highlights = highlight.Spans(hit.Document.DisplayTitle())
	}

	for _, p := range hit.Passages {
		passage := PassageOutput{
			Text:    highlight.Plain(p.Text),
			Matches: highlight.Spans(p.Text),
			Regions: make([]RegionOutput, 0, len(p.Regions)),
		}
		for _, r := range p.Regions {
			region := RegionOutput{
				Page:     r.Page.ID,
				Region:   r.Region.String(),
				ImageURL: r.ImageURL,
			}
			for _, box := range r.Highlights {
				region.Highlights = append(region.Highlights, BoxOutput{
					Text:    box.Text,
					Box:     box.Region.String(),
					Overlay: box.Overlay,
				})
			}
			passage.Regions = append(passage.Regions, region)
		}
		out.Passages = append(out.Passages, passage)
	}
	return out
}

// handleImageURL handles the image_url tool invocation.
func (s *Server) handleImageURL(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ImageURLInput,
) (*mcp.CallToolResult, ImageURLOutput, error) {
	if s.ports.Image == nil {
		return nil, ImageURLOutput{}, ErrMissingImageService
	}

	kind, err := domain.ParseSourceKind(input.Source)
	if err != nil {
		return nil, ImageURLOutput{}, err
	}
	region := domain.Region{ULX: input.ULX, ULY: input.ULY, LRX: input.LRX, LRY: input.LRY}
	if err := region.Validate(); err != nil {
		return nil, ImageURLOutput{}, err
	}

	url, err := s.ports.Image.ImageURL(kind, input.DocumentID, domain.Page{ID: input.PageID}, region, input.Width)
	if err != nil {
		return nil, ImageURLOutput{}, fmt.Errorf("image url: %w", err)
	}
	manifest, err := s.ports.Image.ManifestURI(kind, input.DocumentID)
	if err != nil {
		return nil, ImageURLOutput{}, fmt.Errorf("manifest: %w", err)
	}

	return nil, ImageURLOutput{URL: url, Manifest: manifest}, nil
}

// handleContentSearch handles the content_search tool invocation.
func (s *Server) handleContentSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ContentSearchInput,
) (*mcp.CallToolResult, domain.AnnotationList, error) {
	if input.DocumentID == "" {
		return nil, domain.AnnotationList{}, fmt.Errorf("%w: document_id is required", domain.ErrInvalidInput)
	}

	list, err := s.ports.Search.ContentSearch(ctx, input.DocumentID, input.Query)
	if err != nil {
		return nil, domain.AnnotationList{}, err
	}
	return nil, *list, nil
}
