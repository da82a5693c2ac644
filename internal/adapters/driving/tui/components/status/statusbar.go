// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// State represents the current search state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateResults   State = "results"
)

// Bar displays the search state, the active search options and
// keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	numFound int
	qtime    int
	sources  []domain.SourceKind
	snippets int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:   s,
		keymap:   km,
		state:    StateReady,
		sources:  domain.AllSources(),
		snippets: domain.DefaultSnippets,
		width:    80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the options line above the status line.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	line := s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
	return s.renderOptions() + "\n" + line
}

// renderOptions renders the corpus toggles and snippet count.
func (s *Bar) renderOptions() string {
	parts := make([]string, 0, len(domain.AllSources())+1)
	for i, kind := range domain.AllSources() {
		box := "[ ]"
		style := s.styles.Muted
		if s.hasSource(kind) {
			box = "[x]"
			style = s.styles.Toggle
		}
		parts = append(parts, style.Render(fmt.Sprintf("%d %s %s", i+1, box, kind.Label())))
	}
	parts = append(parts, s.styles.Normal.Render(fmt.Sprintf("snippets: %d", s.snippets)))
	return strings.Join(parts, "   ")
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSearching:
		return s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateResults:
		return s.styles.Normal.Render(fmt.Sprintf("%d documents (%d ms)", s.numFound, s.qtime))
	case StateReady:
		if len(s.sources) == 0 {
			return s.styles.Error.Render("Select a corpus")
		}
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateResults {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

func (s *Bar) hasSource(kind domain.SourceKind) bool {
	for _, k := range s.sources {
		if k == kind {
			return true
		}
	}
	return false
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetResults records the document count and query time of a search.
func (s *Bar) SetResults(numFound, qtime int) {
	s.numFound = numFound
	s.qtime = qtime
}

// NumFound returns the displayed document count.
func (s *Bar) NumFound() int {
	return s.numFound
}

// SetOptions sets the displayed corpora and snippet count.
func (s *Bar) SetOptions(sources []domain.SourceKind, snippets int) {
	s.sources = sources
	s.snippets = snippets
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.numFound = 0
	s.qtime = 0
}
