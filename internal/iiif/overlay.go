package iiif

import "github.com/custodia-labs/ocrhl/internal/core/domain"

// ScaledOverlay positions a highlight box over a rendered region image.
// box is relative to container, the region the image shows; img is the
// image's current on-screen state.
//
// The scale factor is the displayed width over the container's native
// width and is applied to all four rectangle parameters, so recomputing
// after a resize keeps the overlay aligned. It returns false when the image
// has not been rendered yet or the container has zero width; callers then
// draw no overlay.
func ScaledOverlay(box, container domain.Region, img *domain.RenderedImage) (domain.Rect, bool) {
	if img == nil {
		return domain.Rect{}, false
	}
	nativeWidth := container.Width()
	if nativeWidth == 0 {
		return domain.Rect{}, false
	}

	scale := img.Width / nativeWidth
	return domain.Rect{
		Left:   scale*box.ULX + img.X,
		Top:    scale*box.ULY + img.Y,
		Width:  scale * box.Width(),
		Height: scale * box.Height(),
	}, true
}

// RenderedFor returns the rendered state of a region image requested at
// width pixels and placed at the container origin. It returns nil for
// width <= 0 or a zero-width region, where the displayed size is unknown.
func RenderedFor(region domain.Region, width int) *domain.RenderedImage {
	if width <= 0 || region.Width() == 0 {
		return nil
	}
	w := float64(width)
	return &domain.RenderedImage{
		Width:  w,
		Height: w * region.Height() / region.Width(),
	}
}
