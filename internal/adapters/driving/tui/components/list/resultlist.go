// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// linesPerHit is the rendered height of one hit: title, source and preview.
const linesPerHit = 3

// ResultList displays search hits in a navigable list.
type ResultList struct {
	hits     []domain.SearchHit
	numFound int
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.hits) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.hits)*linesPerHit+2)
	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d of %d)", len(r.hits), r.numFound))
	lines = append(lines, header, "")

	visibleCount := (r.height - 4) / linesPerHit
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.hits) {
		end = len(r.hits)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderHit(i, &r.hits[i]))
	}

	return strings.Join(lines, "\n")
}

// renderHit formats one hit with its highlighted title and first passage.
func (r *ResultList) renderHit(index int, hit *domain.SearchHit) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	maxLen := r.width - 6
	if maxLen < 20 {
		maxLen = 20
	}

	title := ansi.Truncate(r.styles.Highlight(oneLine(hit.Document.DisplayTitle())), maxLen, "...")
	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(indicator) + title
	} else {
		titleLine = indicator + title
	}

	source := hit.Source.Label()
	if hit.NumPassages > 0 {
		source += fmt.Sprintf(" · %d passages", hit.NumPassages)
	}
	sourceLine := r.styles.Muted.Render("    " + source)

	preview := ""
	if len(hit.Passages) > 0 {
		preview = r.styles.Highlight(oneLine(hit.Passages[0].Text))
	}
	previewLine := "    " + ansi.Truncate(preview, maxLen, "...")

	return titleLine + "\n" + sourceLine + "\n" + previewLine
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SetResults replaces the listed hits. A nil results value clears the list.
func (r *ResultList) SetResults(results *domain.SearchResults) {
	r.selected = 0
	if results == nil {
		r.hits, r.numFound = nil, 0
		return
	}
	r.hits = results.Hits
	r.numFound = results.NumFound
}

// Hits returns the listed hits.
func (r *ResultList) Hits() []domain.SearchHit {
	return r.hits
}

// Selected returns the index of the selected hit.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.hits) {
		r.selected = index
	}
}

// SelectedHit returns the currently selected hit, or nil if none.
func (r *ResultList) SelectedHit() *domain.SearchHit {
	if len(r.hits) == 0 || r.selected < 0 || r.selected >= len(r.hits) {
		return nil
	}
	return &r.hits[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.hits)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of listed hits.
func (r *ResultList) Count() int {
	return len(r.hits)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.hits) == 0
}
