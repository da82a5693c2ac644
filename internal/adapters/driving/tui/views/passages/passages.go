// Package passages provides the view listing the matching passages of one
// search hit together with their page regions and image links.
package passages

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// View is the passages view of one hit.
type View struct {
	styles *styles.Styles

	hit          *domain.SearchHit
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new passages view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// SetHit sets the hit to display.
func (v *View) SetHit(hit domain.SearchHit) {
	v.hit = &hit
	v.scrollOffset = 0
}

// Hit returns the displayed hit.
func (v *View) Hit() *domain.SearchHit {
	return v.hit
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the passages view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "esc", "q":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	}
	return v, nil
}

func (v *View) visibleLines() int {
	// title, separator, help and padding
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	maxOffset := len(v.buildContent()) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent renders the document header and every passage region.
func (v *View) buildContent() []string {
	if v.hit == nil {
		return nil
	}
	hit := v.hit

	lines := []string{
		v.styles.Highlight(hit.Document.DisplayTitle()),
		v.styles.Muted.Render(fmt.Sprintf("%s · %s", hit.Source.Label(), hit.Document.DocumentID())),
		v.styles.Muted.Render(hit.ManifestURI),
		"",
	}

	if len(hit.Passages) == 0 {
		return append(lines, v.styles.Muted.Render("No OCR passages"))
	}
	lines = append(lines, v.styles.Subtitle.Render(
		fmt.Sprintf("Passages (%d of %d)", len(hit.Passages), hit.NumPassages)))

	for i, passage := range hit.Passages {
		lines = append(lines, "")
		for j, text := range strings.Split(passage.Text, "\n") {
			prefix := "    "
			if j == 0 {
				prefix = fmt.Sprintf("%2d. ", i+1)
			}
			lines = append(lines, prefix+v.styles.Highlight(text))
		}
		for _, region := range passage.Regions {
			lines = append(lines, v.regionLines(region)...)
		}
	}
	return lines
}

func (v *View) regionLines(region domain.PassageRegion) []string {
	url := region.ImageURL
	if url == "" {
		url = v.styles.Error.Render("(no image)")
	}
	lines := []string{
		v.styles.Muted.Render(fmt.Sprintf("    %s [%s]", region.Page.ID, region.Region)) + " " + url,
	}
	for _, box := range region.Highlights {
		line := fmt.Sprintf("      %q", box.Text)
		if box.Overlay != nil {
			o := box.Overlay
			line += fmt.Sprintf(" at %.0f,%.0f %.0fx%.0f", o.Left, o.Top, o.Width, o.Height)
		}
		lines = append(lines, v.styles.Muted.Render(line))
	}
	return lines
}

// View renders the passages view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Passages"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 0)))
	b.WriteString("\n\n")

	if v.hit == nil {
		b.WriteString(v.styles.Muted.Render("No document selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	visible := v.visibleLines()
	end := min(v.scrollOffset+visible, len(lines))
	for _, line := range lines[v.scrollOffset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1, end, len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// ScrollOffset returns the index of the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
