package services

import (
	"fmt"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/core/ports/driving"
	"github.com/custodia-labs/ocrhl/internal/iiif"
)

// Ensure ImageService implements the interface.
var _ driving.ImageService = (*ImageService)(nil)

// ImageService maps regions to IIIF resources using the configured
// image and presentation servers.
type ImageService struct {
	settings SettingsProvider
}

// NewImageService creates a new image service.
func NewImageService(settings SettingsProvider) *ImageService {
	return &ImageService{settings: settings}
}

// ImageURL returns the IIIF Image API URL of a page region.
func (s *ImageService) ImageURL(
	kind domain.SourceKind, docID string, page domain.Page, region domain.Region, width int,
) (string, error) {
	mapper, err := s.mapper()
	if err != nil {
		return "", err
	}
	return mapper.ImageURL(kind, docID, page, region, width)
}

// ManifestURI returns the IIIF presentation manifest of a document.
func (s *ImageService) ManifestURI(kind domain.SourceKind, docID string) (string, error) {
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownSource, kind)
	}
	mapper, err := s.mapper()
	if err != nil {
		return "", err
	}
	return mapper.ManifestURI(kind, docID), nil
}

// Overlay positions a highlight box over a rendered region image.
func (s *ImageService) Overlay(box, container domain.Region, img *domain.RenderedImage) (domain.Rect, bool) {
	return iiif.ScaledOverlay(box, container, img)
}

func (s *ImageService) mapper() (iiif.Mapper, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return iiif.Mapper{}, fmt.Errorf("load settings: %w", err)
	}
	return iiif.NewMapper(settings.ImageAPIBase, settings.AppBase), nil
}
