// Package iiif maps OCR regions to IIIF Image API requests and on-screen
// highlight overlays, and builds IIIF Content Search responses.
package iiif

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// Mapper builds IIIF URLs for search results.
// It is a value type without mutable state and is safe for concurrent use.
type Mapper struct {
	// ImageAPIBase is the IIIF Image API v2 base URL.
	ImageAPIBase string

	// AppBase is the base URL of the application serving
	// presentation manifests.
	AppBase string
}

// NewMapper creates a mapper, trimming trailing slashes from the bases.
func NewMapper(imageAPIBase, appBase string) Mapper {
	return Mapper{
		ImageAPIBase: strings.TrimRight(imageAPIBase, "/"),
		AppBase:      strings.TrimRight(appBase, "/"),
	}
}

// ImageURL returns the IIIF Image API URL of a page region:
//
//	{base}/{prefix}:{docID}_{page}/{x},{y},{w},{h}/{size}/0/default.jpg
//
// The size is "full" when width <= 0 and "{width}," otherwise.
// docID is the document's image identifier (the issue for newspapers).
func (m Mapper) ImageURL(kind domain.SourceKind, docID string, page domain.Page, region domain.Region, width int) (string, error) {
	scheme, err := SchemeFor(kind)
	if err != nil {
		return "", err
	}
	if err := region.Validate(); err != nil {
		return "", err
	}
	imageID, err := scheme.ImageID(docID, page.ID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s/%s/0/default.jpg",
		m.ImageAPIBase, imageID, scheme.PixelRegion(region), sizeParam(width)), nil
}

// ManifestURI returns the IIIF presentation manifest URI of a document.
func (m Mapper) ManifestURI(kind domain.SourceKind, docID string) string {
	return fmt.Sprintf("%s/iiif/presentation/%s:%s/manifest", m.AppBase, kind.ImagePrefix(), docID)
}

func sizeParam(width int) string {
	if width <= 0 {
		return "full"
	}
	return strconv.Itoa(width) + ","
}
