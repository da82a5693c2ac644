package driving

import (
	"context"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search queries the selected corpora and returns documents with
	// highlights merged into their fields and passages mapped to images.
	// The results echo opts.Seq so callers can discard stale responses.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResults, error)

	// ContentSearch returns the highlighted words of a single document as
	// a IIIF Content Search annotation list.
	ContentSearch(ctx context.Context, docID, query string) (*domain.AnnotationList, error)
}
