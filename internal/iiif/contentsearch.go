package iiif

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/highlight"
)

// JSON-LD contexts of a IIIF Content Search 0.x response.
const (
	presentationContext = "http://iiif.io/api/presentation/2/context.json"
	searchContext       = "http://iiif.io/api/search/0/context.json"
)

// ContentSearcher converts OCR highlighting into Content Search responses
// for documents published under Base.
type ContentSearcher struct {
	// Base is the URL prefix of documents, canvases and annotations.
	Base string

	// NewID generates annotation identifiers.
	NewID func() string
}

// NewContentSearcher creates a searcher that identifies annotations by
// random UUIDs.
func NewContentSearcher(base string) *ContentSearcher {
	return &ContentSearcher{
		Base: strings.TrimRight(base, "/"),
		NewID: func() string {
			return uuid.New().String()
		},
	}
}

// Build creates the annotation list of a document for query. Each highlight
// box becomes an annotation on the canvas of its page, positioned at its
// parent region's origin plus the box offset.
func (c *ContentSearcher) Build(docID, query string, hl domain.OcrHighlights) (*domain.AnnotationList, error) {
	list := &domain.AnnotationList{
		Context: []string{presentationContext, searchContext},
		ID:      fmt.Sprintf("%s/%s/search?%s", c.Base, docID, url.Values{"q": {query}}.Encode()),
		Type:    "sc:AnnotationList",
		Within: domain.AnnotationLayer{
			Type:    "sc:Layer",
			Total:   hl.NumTotal,
			Ignored: []string{},
		},
		Resources: []domain.Annotation{},
		Hits:      []domain.AnnotationHit{},
	}

	for i, snip := range hl.Snippets {
		text := highlight.Plain(snip.Text)
		for _, span := range snip.Highlights {
			hit, annos, err := c.buildHit(docID, snip, span, text)
			if err != nil {
				return nil, fmt.Errorf("snippet %d: %w", i, err)
			}
			list.Resources = append(list.Resources, annos...)
			list.Hits = append(list.Hits, hit)
		}
	}
	return list, nil
}

func (c *ContentSearcher) buildHit(docID string, snip domain.Snippet, span []domain.HighlightBox, text string) (domain.AnnotationHit, []domain.Annotation, error) {
	words := make([]string, 0, len(span))
	annos := make([]domain.Annotation, 0, len(span))
	ids := make([]string, 0, len(span))

	for _, box := range span {
		if box.ParentRegionIdx < 0 || box.ParentRegionIdx >= len(snip.Regions) {
			return domain.AnnotationHit{}, nil, fmt.Errorf("%w: highlight parent region %d out of range",
				domain.ErrInvalidRegionReference, box.ParentRegionIdx)
		}
		region := snip.Regions[box.ParentRegionIdx]
		page, err := snip.PageFor(region)
		if err != nil {
			return domain.AnnotationHit{}, nil, err
		}

		id := fmt.Sprintf("%s/%s/annotation/%s", c.Base, docID, c.NewID())
		annos = append(annos, domain.Annotation{
			ID:         id,
			Type:       "oa:Annotation",
			Motivation: "sc:painting",
			Resource:   domain.ContentAsText{Type: "cnt:ContentAsText", Chars: box.Text},
			On:         fmt.Sprintf("%s/%s/canvas/%s#xywh=%s", c.Base, docID, page.ID, canvasFragment(region, box)),
		})
		ids = append(ids, id)
		words = append(words, box.Text)
	}

	hit := domain.AnnotationHit{
		Type:        "search:Hit",
		Annotations: ids,
		Match:       strings.Join(words, " "),
	}
	if idx := strings.Index(text, hit.Match); idx >= 0 {
		before := text[:idx]
		after := text[idx+len(hit.Match):]
		hit.Before = &before
		hit.After = &after
	}
	return hit, annos, nil
}

// canvasFragment returns the page-absolute x,y,w,h of a box.
func canvasFragment(region domain.Region, box domain.HighlightBox) string {
	x := math.Floor(region.ULX + box.ULX)
	y := math.Floor(region.ULY + box.ULY)
	w := math.Floor(box.Width())
	h := math.Floor(box.Height())
	return fmt.Sprintf("%d,%d,%d,%d", int(x), int(y), int(w), int(h))
}
