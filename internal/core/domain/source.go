package domain

import "fmt"

// SourceKind identifies a corpus in the search index.
// Each corpus has its own document schema and image addressing scheme.
type SourceKind string

// Known corpora.
const (
	// SourceGoogleBooks is the Google Books 1000 corpus of digitised books.
	// Coordinates are stored in image pixels.
	SourceGoogleBooks SourceKind = "gbooks"

	// SourceLUnion is the L'Union newspaper corpus from the BnL.
	// Coordinates are stored in hundredths of a millimetre.
	SourceLUnion SourceKind = "lunion"
)

// AllSources returns every known corpus in display order.
func AllSources() []SourceKind {
	return []SourceKind{SourceGoogleBooks, SourceLUnion}
}

// ParseSourceKind converts a source tag into a SourceKind.
func ParseSourceKind(tag string) (SourceKind, error) {
	kind := SourceKind(tag)
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, tag)
	}
	return kind, nil
}

// IsValid returns true if the corpus is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceGoogleBooks, SourceLUnion:
		return true
	default:
		return false
	}
}

// ImagePrefix returns the identifier prefix used by the image and
// presentation servers for this corpus.
func (k SourceKind) ImagePrefix() string {
	switch k {
	case SourceLUnion:
		return "bnl"
	default:
		return string(k)
	}
}

// Label returns a human-readable corpus name.
func (k SourceKind) Label() string {
	switch k {
	case SourceGoogleBooks:
		return "Google Books 1000"
	case SourceLUnion:
		return "L'Union Newspaper"
	default:
		return string(k)
	}
}

// String returns the source tag.
func (k SourceKind) String() string {
	return string(k)
}
