package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_HighlightedPlain(t *testing.T) {
	p := printer{}

	assert.Equal(t, "a *fox* ran", p.highlighted("a <em>fox</em> ran"))
}

func TestPrinter_HighlightedStyled(t *testing.T) {
	p := printer{styled: true}

	got := p.highlighted("a <em>fox</em> ran")

	assert.NotContains(t, got, "<em>")
	assert.NotContains(t, got, "*fox*")
	assert.Contains(t, got, "fox")
	assert.Contains(t, got, "a ")
	assert.Contains(t, got, " ran")
}

func TestPrinter_TitleAndDimUnstyled(t *testing.T) {
	p := printer{}

	assert.Equal(t, "Title", p.title("Title"))
	assert.Equal(t, "meta", p.dim("meta"))
}
