package driven

import (
	"context"
	"net/url"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// SearchEngine runs select queries against an OCR-highlighting enabled
// search index.
type SearchEngine interface {
	// Select executes a query with the given request parameters and
	// returns the decoded response including both kinds of highlighting.
	Select(ctx context.Context, params url.Values) (*domain.SearchResponse, error)
}
