package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of documents (Solr rows).
	// Zero uses the engine default.
	Limit int

	// Offset is the number of documents to skip.
	Offset int

	// Sources restricts the search to these corpora. An empty slice
	// means no corpus is selected and the search is rejected.
	Sources []SourceKind

	// Snippets is the maximum number of OCR passages per document.
	// Zero uses the configured default.
	Snippets int

	// RenderWidth is the width in pixels at which region images will be
	// displayed. When set, image URLs request that width and highlight
	// overlays are computed for it.
	RenderWidth int

	// Seq is the request sequence number, echoed in the results.
	Seq uint64
}

// ResponseHeader is the Solr response header.
type ResponseHeader struct {
	Status int `json:"status"`
	QTime  int `json:"QTime"`
}

// ResponseBody holds the matching documents.
type ResponseBody struct {
	NumFound int           `json:"numFound"`
	Start    int           `json:"start"`
	Docs     []RawDocument `json:"docs"`
}

// ResponseError is the error body Solr returns on failure.
type ResponseError struct {
	Msg  string `json:"msg"`
	Code int    `json:"code"`
}

// SearchResponse is the search engine's select response, including
// regular and OCR highlighting.
type SearchResponse struct {
	ResponseHeader ResponseHeader `json:"responseHeader"`
	Response       ResponseBody   `json:"response"`

	// Highlighting maps document id to field to highlighted fragments.
	Highlighting map[string]map[string][]string `json:"highlighting,omitempty"`

	// OcrHighlighting maps document id to OCR field to passages.
	OcrHighlighting map[string]map[string]OcrHighlights `json:"ocrHighlighting,omitempty"`

	Error *ResponseError `json:"error,omitempty"`
}

// OcrFor returns the OCR highlighting of a document's field, if any.
func (r *SearchResponse) OcrFor(docID, field string) (OcrHighlights, bool) {
	fields, ok := r.OcrHighlighting[docID]
	if !ok {
		return OcrHighlights{}, false
	}
	hl, ok := fields[field]
	return hl, ok
}

// SearchResults is the ingested, display-ready result of a search.
type SearchResults struct {
	// Seq echoes SearchOptions.Seq.
	Seq uint64 `json:"seq"`

	Query    string      `json:"query"`
	NumFound int         `json:"numFound"`
	QTime    int         `json:"qtime"`
	Hits     []SearchHit `json:"hits"`
}

// SearchHit is one matching document with its highlighted passages.
type SearchHit struct {
	// Document has highlight markers merged into its fields.
	Document Document   `json:"document"`
	Source   SourceKind `json:"source"`

	// ManifestURI is the IIIF presentation manifest for the document.
	ManifestURI string `json:"manifest"`

	// NumPassages is the total number of matching passages, which may be
	// larger than len(Passages).
	NumPassages int       `json:"numPassages"`
	Passages    []Passage `json:"passages,omitempty"`
}

// Passage is a matching snippet prepared for display.
type Passage struct {
	Text    string          `json:"text"`
	Score   float64         `json:"score,omitempty"`
	Regions []PassageRegion `json:"regions"`
}

// PassageRegion is one page region of a passage.
type PassageRegion struct {
	Region Region `json:"region"`
	Page   Page   `json:"page"`

	// ImageURL is empty when the region reference could not be resolved.
	ImageURL   string       `json:"imageUrl,omitempty"`
	Highlights []OverlayBox `json:"highlights,omitempty"`
}

// OverlayBox is a highlight box with its scaled on-screen rectangle.
type OverlayBox struct {
	HighlightBox

	// Overlay is nil until a rendered image size is known.
	Overlay *Rect `json:"overlay,omitempty"`
}
