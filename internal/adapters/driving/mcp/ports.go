package mcp

import (
	"github.com/custodia-labs/ocrhl/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search runs highlighted searches and Content Search lookups.
	Search driving.SearchService

	// Image maps page regions to IIIF image URLs. Optional; the image_url
	// tool reports an error without it.
	Image driving.ImageService

	// Settings exposes the effective configuration. Optional.
	Settings driving.SettingsService

	// History lists recent searches. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
