package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/views/passages"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	searchView   *search.View
	passagesView *passages.View

	currentView messages.ViewType

	// err holds the last error reported outside a search.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports. The search
// defaults are taken from the settings port when one is provided.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		searchView:   search.NewView(s, km, ports.Search),
		passagesView: passages.NewView(s),
		currentView:  messages.ViewSearch,
	}

	if ports.Settings != nil {
		settings, err := ports.Settings.Get()
		if err != nil {
			logger.Warn("Using default search options: %v", err)
			a.err = err
		}
		a.searchView.ApplySettings(settings)
	}
	return a, nil
}

// WithContext sets the context searches run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// WithRenderWidth sets the pixel width region images are requested at.
func (a *App) WithRenderWidth(width int) *App {
	a.searchView.SetRenderWidth(width)
	return a
}

// WithLimit sets the number of documents requested per search.
func (a *App) WithLimit(limit int) *App {
	a.searchView.SetLimit(limit)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("ocrhl"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case messages.SearchCompleted:
		// Completions reach the search view whichever view is active, so
		// its state stays consistent with the issued sequence numbers.
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.HitSelected:
		a.passagesView.SetHit(msg.Hit)
		a.currentView = messages.ViewPassages
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewPassages:
		a.passagesView, cmd = a.passagesView.Update(msg)
	case messages.ViewHelp:
		// Help view is static
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewPassages:
		a.passagesView, cmd = a.passagesView.Update(msg)
	case messages.ViewHelp:
		// Any key leaves the help view
		a.currentView = messages.ViewSearch
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewPassages:
		return a.passagesView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.searchView.View()
	}
}

// viewHelp renders the keybindings grouped as in the keymap.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString("In the query input every key is typed; press esc or tab to reach the results.\n\n")
	b.WriteString(a.styles.Help.Render("[any key] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchState returns the state of the search form.
func (a *App) SearchState() domain.SearchState {
	return a.searchView.State()
}

// Hits returns the displayed search hits.
func (a *App) Hits() []domain.SearchHit {
	return a.searchView.Hits()
}

// Query returns the text in the query input.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Err returns the last error reported outside a search.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions of every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.passagesView.SetDimensions(width, height)
}
