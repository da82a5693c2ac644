// Package mcp provides an MCP (Model Context Protocol) server adapter for ocrhl.
// It lets AI assistants search the OCR corpora and resolve highlight
// positions to IIIF images.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingImageService is returned when a tool needs the image service
// but none was provided.
var ErrMissingImageService = errors.New("mcp: image service is not available")
