// Package domain defines the core business entities for ocrhl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: A search hit as delivered by the search engine
//   - Document: A typed book or newspaper document, selected by corpus
//   - Snippet: A matching OCR passage with its page regions and highlights
//   - SearchState: The search form state and its transition function
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
