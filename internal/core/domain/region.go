package domain

import "fmt"

// Region is a bounding box in a page's coordinate space.
// Units depend on the corpus (pixels or hundredths of a millimetre).
type Region struct {
	ULX float64 `json:"ulx"`
	ULY float64 `json:"uly"`
	LRX float64 `json:"lrx"`
	LRY float64 `json:"lry"`

	// Text is the recognised text inside the region, possibly with
	// highlight markers.
	Text string `json:"text,omitempty"`

	// PageIdx indexes into the owning snippet's Pages.
	PageIdx int `json:"pageIdx,omitempty"`
}

// Width returns the horizontal extent of the region.
func (r Region) Width() float64 {
	return r.LRX - r.ULX
}

// Height returns the vertical extent of the region.
func (r Region) Height() float64 {
	return r.LRY - r.ULY
}

// Validate checks the region invariants: non-negative coordinates,
// ulx <= lrx and uly <= lry.
func (r Region) Validate() error {
	if r.ULX < 0 || r.ULY < 0 || r.LRX < 0 || r.LRY < 0 {
		return fmt.Errorf("%w: negative coordinate in %s", ErrInvalidRegionReference, r)
	}
	if r.ULX > r.LRX || r.ULY > r.LRY {
		return fmt.Errorf("%w: inverted corners in %s", ErrInvalidRegionReference, r)
	}
	return nil
}

// String formats the region as ulx,uly,lrx,lry.
func (r Region) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", r.ULX, r.ULY, r.LRX, r.LRY)
}

// Page identifies a page of a document.
type Page struct {
	ID     string `json:"id"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// HighlightBox is one highlighted word or phrase. Its coordinates are
// relative to the snippet region identified by ParentRegionIdx.
type HighlightBox struct {
	Region
	ParentRegionIdx int `json:"parentRegionIdx"`
}

// Snippet is one matching passage returned by the OCR highlighter.
type Snippet struct {
	Text    string   `json:"text"`
	Score   float64  `json:"score,omitempty"`
	Pages   []Page   `json:"pages"`
	Regions []Region `json:"regions"`

	// Highlights groups boxes by highlight span; a span covering a line
	// break has more than one box.
	Highlights [][]HighlightBox `json:"highlights,omitempty"`
}

// HighlightsFor returns the highlight boxes located in the region at idx,
// in span order.
func (s Snippet) HighlightsFor(idx int) []HighlightBox {
	var out []HighlightBox
	for _, span := range s.Highlights {
		for _, box := range span {
			if box.ParentRegionIdx == idx {
				out = append(out, box)
			}
		}
	}
	return out
}

// PageFor resolves the page a region belongs to.
func (s Snippet) PageFor(r Region) (Page, error) {
	if r.PageIdx < 0 || r.PageIdx >= len(s.Pages) {
		return Page{}, fmt.Errorf("%w: page index %d out of range (%d pages)",
			ErrInvalidRegionReference, r.PageIdx, len(s.Pages))
	}
	return s.Pages[r.PageIdx], nil
}

// OcrHighlights is the OCR highlighting result for one field of one document.
type OcrHighlights struct {
	NumTotal int       `json:"numTotal"`
	Snippets []Snippet `json:"snippets"`
}

// RenderedImage is the on-screen state of a loaded image: its top-left
// offset within the container and its displayed size. It is owned by
// whoever displays the image and is recomputed on every load or resize.
type RenderedImage struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an overlay rectangle in on-screen pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Inset shifts the rectangle up and left by px for border alignment.
func (r Rect) Inset(px float64) Rect {
	r.Left -= px
	r.Top -= px
	return r
}
