package iiif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

func TestScaledOverlay(t *testing.T) {
	container := domain.Region{ULX: 1000, ULY: 2000, LRX: 1300, LRY: 2100}
	box := domain.Region{ULX: 10, ULY: 10, LRX: 60, LRY: 30}
	img := &domain.RenderedImage{X: 5, Y: 7, Width: 600, Height: 200}

	got, ok := ScaledOverlay(box, container, img)

	require.True(t, ok)
	assert.Equal(t, domain.Rect{Left: 25, Top: 27, Width: 100, Height: 40}, got)
}

func TestScaledOverlay_NotRendered(t *testing.T) {
	_, ok := ScaledOverlay(domain.Region{LRX: 1, LRY: 1}, domain.Region{LRX: 10, LRY: 10}, nil)
	assert.False(t, ok)
}

func TestScaledOverlay_ZeroWidthContainer(t *testing.T) {
	img := &domain.RenderedImage{Width: 600}

	_, ok := ScaledOverlay(domain.Region{LRX: 1, LRY: 1}, domain.Region{ULX: 5, LRX: 5, LRY: 10}, img)

	assert.False(t, ok)
}

// Resizing scales every parameter by the same factor, so the overlay keeps
// its position relative to the image.
func TestScaledOverlay_ProportionalOnResize(t *testing.T) {
	container := domain.Region{LRX: 300, LRY: 100}
	box := domain.Region{ULX: 30, ULY: 20, LRX: 90, LRY: 50}

	small, ok := ScaledOverlay(box, container, &domain.RenderedImage{Width: 300})
	require.True(t, ok)
	large, ok := ScaledOverlay(box, container, &domain.RenderedImage{Width: 900})
	require.True(t, ok)

	assert.InDelta(t, 3*small.Left, large.Left, 1e-9)
	assert.InDelta(t, 3*small.Top, large.Top, 1e-9)
	assert.InDelta(t, 3*small.Width, large.Width, 1e-9)
	assert.InDelta(t, 3*small.Height, large.Height, 1e-9)

	// Relative position within the image is unchanged.
	assert.InDelta(t, small.Left/300, large.Left/900, 1e-9)
}

func TestScaledOverlay_WithInset(t *testing.T) {
	img := &domain.RenderedImage{Width: 100}
	got, ok := ScaledOverlay(domain.Region{ULX: 10, ULY: 10, LRX: 20, LRY: 20}, domain.Region{LRX: 100, LRY: 100}, img)
	require.True(t, ok)

	assert.Equal(t, domain.Rect{Left: 8, Top: 8, Width: 10, Height: 10}, got.Inset(2))
}

func TestRenderedFor(t *testing.T) {
	region := domain.Region{ULX: 100, ULY: 100, LRX: 500, LRY: 200}

	img := RenderedFor(region, 800)
	require.NotNil(t, img)
	assert.Equal(t, domain.RenderedImage{Width: 800, Height: 200}, *img)

	assert.Nil(t, RenderedFor(region, 0))
	assert.Nil(t, RenderedFor(domain.Region{LRY: 10}, 800))
}
