package driving

import "github.com/custodia-labs/ocrhl/internal/core/domain"

// ImageService maps document regions to IIIF image resources.
type ImageService interface {
	// ImageURL returns the IIIF Image API URL of a page region. A width
	// of zero or less requests the full size.
	ImageURL(kind domain.SourceKind, docID string, page domain.Page, region domain.Region, width int) (string, error)

	// ManifestURI returns the IIIF presentation manifest of a document.
	ManifestURI(kind domain.SourceKind, docID string) (string, error)

	// Overlay positions a highlight box over a rendered region image.
	// It returns false when no overlay can be drawn.
	Overlay(box, container domain.Region, img *domain.RenderedImage) (domain.Rect, bool)
}
