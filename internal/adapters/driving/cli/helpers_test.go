package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/ocrhl/internal/adapters/driven/config/memory"
	historymem "github.com/custodia-labs/ocrhl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/core/services"
)

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	results   *domain.SearchResults
	list      *domain.AnnotationList
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
	lastDocID string
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) (*domain.SearchResults, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.results != nil {
		return m.results, nil
	}
	return &domain.SearchResults{Seq: opts.Seq, Query: query, Hits: []domain.SearchHit{}}, nil
}

func (m *mockSearchService) ContentSearch(_ context.Context, docID, query string) (*domain.AnnotationList, error) {
	m.lastDocID = docID
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	entries   []domain.HistoryEntry
	err       error
	lastLimit int
	cleared   bool
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.lastLimit = limit
	return m.entries, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	m.cleared = true
	return m.err
}

func testResults() *domain.SearchResults {
	return &domain.SearchResults{
		Query:    "world",
		NumFound: 2,
		Hits: []domain.SearchHit{
			{
				Document: &domain.BookDocument{
					ID:        "vol-1",
					Title:     []string{"Hello <em>World</em>"},
					Author:    []string{"<em>Alpha</em>", "Beta"},
					Publisher: "Acme",
					Date:      "1850-01-01",
				},
				Source:      domain.SourceGoogleBooks,
				ManifestURI: "http://localhost:8181/iiif/presentation/gbooks:vol-1/manifest",
				NumPassages: 4,
				Passages: []domain.Passage{{
					Text: "the whole\n<em>world</em> over",
					Regions: []domain.PassageRegion{{
						Page:     domain.Page{ID: "page_12"},
						ImageURL: "https://img/gbooks:vol-1_0011/0,0,10,10/full/0/default.jpg",
					}},
				}},
			},
			{
				Document: &domain.NewspaperDocument{
					ID:            "news-1",
					IssueID:       "issue-1",
					Title:         []string{"L'Union"},
					NewspaperPart: "Feuilleton",
				},
				Source:      domain.SourceLUnion,
				ManifestURI: "http://localhost:8181/iiif/presentation/bnl:issue-1/manifest",
			},
		},
	}
}

// setupTestServices installs mock-backed services and returns a cleanup
// function restoring the previous state.
func setupTestServices() (*mockSearchService, func()) {
	search := &mockSearchService{}
	settings := services.NewSettingsService(memory.NewConfigStore(nil))

	SetServices(&Services{
		Search:   search,
		Image:    services.NewImageService(settings),
		Settings: settings,
		History:  services.NewHistoryService(historymem.NewHistoryStore(0)),
	})

	return search, func() {
		SetServices(nil)
		resetFlags()
	}
}

// resetFlags restores command flags, which persist between executions of
// the shared rootCmd.
func resetFlags() {
	searchLimit, searchOffset, searchSnippets, searchWidth = 10, 0, 0, 0
	searchSources = nil
	searchJSON, searchImages = false, false
	imageWidth, imageManifest = 0, false
	overlayImageWidth, overlayOffsetX, overlayOffsetY, overlayInset, overlayJSON = 0, 0, 0, 0, false
	historyLimit, historyJSON = 20, false
	verbose, configDir = false, ""
}

// execute runs rootCmd with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
