package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSource indicates a document carries a corpus tag
	// that has no schema or image addressing scheme.
	ErrUnknownSource = errors.New("unknown source")

	// ErrInvalidRegionReference indicates a region or page reference that
	// cannot be turned into an image address (out-of-range page index,
	// non-numeric page code). No image URL may be built from it.
	ErrInvalidRegionReference = errors.New("invalid region reference")

	// ErrNoSourcesSelected indicates a search was requested with every
	// corpus deselected.
	ErrNoSourcesSelected = errors.New("no sources selected")

	// ErrSearchUnavailable indicates the search engine could not be reached
	// or rejected the request.
	ErrSearchUnavailable = errors.New("search engine unavailable")
)
