package iiif

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// Scan resolution of the BnL newspaper images and the number of
// hundredths of a millimetre per inch.
const (
	newspaperDPI        = 300
	hundredthsMMPerInch = 254
)

// NewspaperPixelFactor converts hundredths of a millimetre to pixels.
const NewspaperPixelFactor = float64(newspaperDPI) / hundredthsMMPerInch

// PixelRegion is a region in the image server's native pixel space.
type PixelRegion struct {
	X, Y, W, H int
}

// String formats the region as an IIIF region parameter.
func (p PixelRegion) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", p.X, p.Y, p.W, p.H)
}

// ImageScheme describes how a corpus addresses its page images.
type ImageScheme interface {
	// ImageID returns the image server identifier of a document page.
	ImageID(docID, pageID string) (string, error)

	// PixelRegion converts a stored region to image pixels.
	PixelRegion(r domain.Region) PixelRegion
}

// SchemeFor returns the image scheme of a corpus.
func SchemeFor(kind domain.SourceKind) (ImageScheme, error) {
	switch kind {
	case domain.SourceGoogleBooks:
		return bookScheme{}, nil
	case domain.SourceLUnion:
		return newspaperScheme{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSource, kind)
	}
}

// bookScheme addresses Google Books volumes. Page codes look like
// "page_12" and map to the zero-based, four digit image index "0011".
// Coordinates are already in pixels.
type bookScheme struct{}

func (bookScheme) ImageID(docID, pageID string) (string, error) {
	_, num, ok := strings.Cut(pageID, "_")
	if !ok {
		return "", fmt.Errorf("%w: book page %q has no page number", domain.ErrInvalidRegionReference, pageID)
	}
	n, err := parsePageNumber(num, pageID)
	if err != nil {
		return "", err
	}
	if n < 1 {
		return "", fmt.Errorf("%w: book page %q numbering starts at 1", domain.ErrInvalidRegionReference, pageID)
	}
	return fmt.Sprintf("%s:%s_%04d", domain.SourceGoogleBooks.ImagePrefix(), docID, n-1), nil
}

func (bookScheme) PixelRegion(r domain.Region) PixelRegion {
	return scaleRegion(r, 1, 1)
}

// newspaperScheme addresses L'Union issues. Page codes look like "P12"
// and map to the five digit sequence number "00012". Coordinates are in
// hundredths of a millimetre at 300 DPI.
type newspaperScheme struct{}

func (newspaperScheme) ImageID(docID, pageID string) (string, error) {
	if len(pageID) < 2 {
		return "", fmt.Errorf("%w: newspaper page %q has no page number", domain.ErrInvalidRegionReference, pageID)
	}
	n, err := parsePageNumber(pageID[1:], pageID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s_%05d", domain.SourceLUnion.ImagePrefix(), docID, n), nil
}

func (newspaperScheme) PixelRegion(r domain.Region) PixelRegion {
	return scaleRegion(r, newspaperDPI, hundredthsMMPerInch)
}

func parsePageNumber(s, pageID string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: page %q is not numbered", domain.ErrInvalidRegionReference, pageID)
	}
	return n, nil
}

// scaleRegion scales the region origin and extent by num/den and floors
// each dimension. Multiplying before dividing keeps exact multiples exact.
func scaleRegion(r domain.Region, num, den float64) PixelRegion {
	scale := func(v float64) int {
		return int(math.Floor(v * num / den))
	}
	return PixelRegion{
		X: scale(r.ULX),
		Y: scale(r.ULY),
		W: scale(r.Width()),
		H: scale(r.Height()),
	}
}
