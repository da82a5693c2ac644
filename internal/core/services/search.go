package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/core/ports/driven"
	"github.com/custodia-labs/ocrhl/internal/core/ports/driving"
	"github.com/custodia-labs/ocrhl/internal/highlight"
	"github.com/custodia-labs/ocrhl/internal/iiif"
	"github.com/custodia-labs/ocrhl/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Request parameters for the OCR-highlighting Solr core.
const (
	ocrField        = "ocr_text"
	returnFields    = "id,source,issue_id,title,subtitle,newspaper_part,author,publisher,date,language"
	queryFields     = "title^20.0 subtitle^16.0 author^10.0 newspaper_part^5.0 publisher^5.0 ocr_text^0.3"
	highlightFields = "title,subtitle,author,publisher"

	// contentSearchSnippets asks for every passage of a single document.
	contentSearchSnippets = 4096
)

// SettingsProvider supplies the current settings. It is consulted on every
// request so configuration edits apply without a restart.
type SettingsProvider interface {
	Get() (*domain.Settings, error)
}

// SearchService runs highlighted searches and prepares the results for
// display: markers are merged into document fields and every passage
// region is mapped to a IIIF image.
type SearchService struct {
	engine   driven.SearchEngine
	settings SettingsProvider
	history  driven.HistoryStore
	newID    func() string
	now      func() time.Time
}

// NewSearchService creates a new search service.
func NewSearchService(engine driven.SearchEngine, settings SettingsProvider) *SearchService {
	return &SearchService{
		engine:   engine,
		settings: settings,
		now:      time.Now,
	}
}

// SetHistory records every successful search in store. A nil store
// disables recording.
func (s *SearchService) SetHistory(store driven.HistoryStore) {
	s.history = store
}

// SetIDGenerator replaces the random annotation identifiers used by
// ContentSearch.
func (s *SearchService) SetIDGenerator(fn func() string) {
	s.newID = fn
}

// Search queries the selected corpora.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchResults, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q (seq %d)", query, opts.Seq)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return &domain.SearchResults{Seq: opts.Seq, Hits: []domain.SearchHit{}}, nil
	}
	if len(opts.Sources) == 0 {
		return nil, domain.ErrNoSourcesSelected
	}
	for _, src := range opts.Sources {
		if !src.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSource, src)
		}
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	opts.Snippets = snippetCount(opts, settings)

	params := searchParams(query, opts, settings)
	logger.Debug("Params: %s", params.Encode())

	resp, err := s.engine.Select(ctx, params)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Info("Found %d documents (%d returned) in %dms",
		resp.Response.NumFound, len(resp.Response.Docs), resp.ResponseHeader.QTime)

	logger.Section("Highlight Merge")
	docs := highlight.MergeAll(resp.Response.Docs, resp.Highlighting)

	mapper := iiif.NewMapper(settings.ImageAPIBase, settings.AppBase)
	hits := make([]domain.SearchHit, 0, len(docs))
	for _, raw := range docs {
		doc, err := domain.NewDocument(raw)
		if err != nil {
			logger.Warn("Skipping document %q: %v", raw.ID(), err)
			continue
		}
		hits = append(hits, buildHit(mapper, doc, resp, opts.RenderWidth))
	}
	logger.Info("Final results: %d", len(hits))

	results := &domain.SearchResults{
		Seq:      opts.Seq,
		Query:    query,
		NumFound: resp.Response.NumFound,
		QTime:    resp.ResponseHeader.QTime,
		Hits:     hits,
	}
	s.record(ctx, results, opts)
	return results, nil
}

// record adds a search to the history. Failures are logged and never fail
// the search.
func (s *SearchService) record(ctx context.Context, results *domain.SearchResults, opts domain.SearchOptions) {
	if s.history == nil {
		return
	}
	entry := domain.HistoryEntry{
		ID:         uuid.New().String(),
		Query:      results.Query,
		Sources:    opts.Sources,
		Snippets:   opts.Snippets,
		NumFound:   results.NumFound,
		QTime:      results.QTime,
		SearchedAt: s.now().UTC(),
	}
	if err := s.history.Record(ctx, entry); err != nil {
		logger.Warn("Recording search history: %v", err)
	}
}

// ContentSearch returns the highlighted words of one document as a IIIF
// annotation list. Annotations are published below the application's
// presentation API.
func (s *SearchService) ContentSearch(ctx context.Context, docID, query string) (*domain.AnnotationList, error) {
	logger.Section("Content Search")

	docID = strings.TrimSpace(docID)
	query = strings.TrimSpace(query)
	if docID == "" || query == "" {
		return nil, fmt.Errorf("%w: document id and query are required", domain.ErrInvalidInput)
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	params := contentSearchParams(docID, query)
	logger.Debug("Params: %s", params.Encode())

	resp, err := s.engine.Select(ctx, params)
	if err != nil {
		logger.Warn("Content search failed: %v", err)
		return nil, fmt.Errorf("content search: %w", err)
	}

	searcher := iiif.NewContentSearcher(settings.AppBase + "/iiif/presentation")
	if s.newID != nil {
		searcher.NewID = s.newID
	}

	hl, _ := resp.OcrFor(docID, ocrField)
	list, err := searcher.Build(docID, query, hl)
	if err != nil {
		return nil, fmt.Errorf("build annotations for %s: %w", docID, err)
	}
	logger.Info("Annotations: %d in %d hits", len(list.Resources), len(list.Hits))
	return list, nil
}

// snippetCount returns the requested snippet count, or the configured
// default when none was requested.
func snippetCount(opts domain.SearchOptions, settings *domain.Settings) int {
	if opts.Snippets > 0 {
		return opts.Snippets
	}
	return settings.Snippets
}

// searchParams builds the select parameters of a corpus search.
func searchParams(query string, opts domain.SearchOptions, settings *domain.Settings) url.Values {
	snippets := snippetCount(opts, settings)

	params := url.Values{}
	params.Set("q", query)
	params.Set("defType", "edismax")
	params.Set("fl", returnFields)
	params.Set("qf", queryFields)
	params.Set("hl", "on")
	params.Set("hl.fl", highlightFields)
	params.Set("hl.ocr.fl", ocrField)
	params.Set("hl.snippets", strconv.Itoa(snippets))
	params.Set("hl.weightMatches", "true")
	if len(opts.Sources) == 1 {
		params.Set("fq", "source:"+opts.Sources[0].String())
	}
	if opts.Limit > 0 {
		params.Set("rows", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		params.Set("start", strconv.Itoa(opts.Offset))
	}
	return params
}

// contentSearchParams builds the select parameters of a single-document
// OCR highlighting query.
func contentSearchParams(docID, query string) url.Values {
	params := url.Values{}
	params.Set("q", query)
	params.Set("df", ocrField)
	params.Set("fq", "id:"+docID)
	params.Set("hl", "on")
	params.Set("hl.ocr.fl", ocrField)
	params.Set("hl.snippets", strconv.Itoa(contentSearchSnippets))
	params.Set("hl.weightMatches", "true")
	return params
}

func buildHit(mapper iiif.Mapper, doc domain.Document, resp *domain.SearchResponse, width int) domain.SearchHit {
	hit := domain.SearchHit{
		Document:    doc,
		Source:      doc.Source(),
		ManifestURI: mapper.ManifestURI(doc.Source(), doc.ImageDocumentID()),
	}

	ocr, ok := resp.OcrFor(doc.DocumentID(), ocrField)
	if !ok {
		return hit
	}
	hit.NumPassages = ocr.NumTotal
	for _, snip := range ocr.Snippets {
		hit.Passages = append(hit.Passages, buildPassage(mapper, doc, snip, width))
	}
	return hit
}

func buildPassage(mapper iiif.Mapper, doc domain.Document, snip domain.Snippet, width int) domain.Passage {
	passage := domain.Passage{
		Text:    snip.Text,
		Score:   snip.Score,
		Regions: make([]domain.PassageRegion, 0, len(snip.Regions)),
	}

	for idx, region := range snip.Regions {
		pr := domain.PassageRegion{Region: region}

		page, err := snip.PageFor(region)
		if err != nil {
			logger.Warn("Document %q region %d: %v", doc.DocumentID(), idx, err)
		} else {
			pr.Page = page
			imageURL, err := mapper.ImageURL(doc.Source(), doc.ImageDocumentID(), page, region, width)
			if err != nil {
				logger.Warn("Document %q region %d: %v", doc.DocumentID(), idx, err)
			}
			pr.ImageURL = imageURL
		}

		img := iiif.RenderedFor(region, width)
		for _, box := range snip.HighlightsFor(idx) {
			ob := domain.OverlayBox{HighlightBox: box}
			if rect, ok := iiif.ScaledOverlay(box.Region, region, img); ok {
				ob.Overlay = &rect
			}
			pr.Highlights = append(pr.Highlights, ob)
		}
		passage.Regions = append(passage.Regions, pr)
	}
	return passage
}
