package mcp

import (
	"context"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results     *domain.SearchResults
	annotations *domain.AnnotationList
	err         error

	lastQuery string
	lastOpts  domain.SearchOptions
	lastDocID string
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResults, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.results == nil {
		return &domain.SearchResults{Query: query, Hits: []domain.SearchHit{}}, nil
	}
	return m.results, nil
}

func (m *mockSearchService) ContentSearch(_ context.Context, docID, query string) (*domain.AnnotationList, error) {
	m.lastDocID = docID
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	if m.annotations == nil {
		return &domain.AnnotationList{Type: "sc:AnnotationList"}, nil
	}
	return m.annotations, nil
}

// mockImageService is a mock implementation of driving.ImageService.
type mockImageService struct {
	url      string
	manifest string
	err      error

	lastKind   domain.SourceKind
	lastDocID  string
	lastPage   domain.Page
	lastRegion domain.Region
	lastWidth  int
}

func (m *mockImageService) ImageURL(
	kind domain.SourceKind, docID string, page domain.Page, region domain.Region, width int,
) (string, error) {
	m.lastKind = kind
	m.lastDocID = docID
	m.lastPage = page
	m.lastRegion = region
	m.lastWidth = width
	return m.url, m.err
}

func (m *mockImageService) ManifestURI(_ domain.SourceKind, _ string) (string, error) {
	return m.manifest, m.err
}

func (m *mockImageService) Overlay(_, _ domain.Region, _ *domain.RenderedImage) (domain.Rect, bool) {
	return domain.Rect{}, false
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	values   map[string]string
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		s := domain.DefaultSettings()
		return &s, nil
	}
	return m.settings, nil
}

func (m *mockSettingsService) Set(_, _ string) error { return m.err }

func (m *mockSettingsService) Value(key string) (string, error) {
	return m.values[key], m.err
}

func (m *mockSettingsService) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}

func (m *mockSettingsService) Path() string { return ":memory:" }

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries   []domain.HistoryEntry
	err       error
	lastLimit int
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.lastLimit = limit
	return m.entries, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error { return m.err }
