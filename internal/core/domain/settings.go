package domain

import "time"

// Default settings values.
const (
	DefaultSolrURL      = "http://localhost:8181/solr/ocr/select"
	DefaultSolrRate     = 5.0
	DefaultSolrTimeout  = 30 * time.Second
	DefaultImageAPIBase = "https://ocrhl.jbaiter.de/iiif/image/v2"
	DefaultAppBase      = "http://localhost:8181"
)

// Settings holds the user-configurable application settings.
type Settings struct {
	// SolrURL is the select handler of the OCR-highlighting Solr core.
	SolrURL string

	// SolrRate is the maximum number of requests per second sent to Solr.
	SolrRate float64

	// SolrTimeout bounds a single Solr request.
	SolrTimeout time.Duration

	// ImageAPIBase is the base URL of the IIIF Image API v2 server.
	ImageAPIBase string

	// AppBase is the base URL of the application serving IIIF manifests.
	AppBase string

	// Snippets is the default number of passages per document.
	Snippets int

	// Sources are the corpora searched by default.
	Sources []SourceKind
}

// DefaultSettings returns the settings used when no configuration exists.
func DefaultSettings() Settings {
	return Settings{
		SolrURL:      DefaultSolrURL,
		SolrRate:     DefaultSolrRate,
		SolrTimeout:  DefaultSolrTimeout,
		ImageAPIBase: DefaultImageAPIBase,
		AppBase:      DefaultAppBase,
		Snippets:     DefaultSnippets,
		Sources:      AllSources(),
	}
}
