// Package search provides the main search view for the TUI.
//
// The view owns a domain.SearchState and changes it only through
// domain.Reduce. Every submitted search carries the sequence number the
// reducer assigned to it, so a completion that arrives after a newer search
// was submitted is discarded.
package search

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/core/ports/driving"
)

// DefaultLimit is the number of documents requested per search.
const DefaultLimit = 20

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	state       domain.SearchState
	limit       int
	renderWidth int

	width      int
	height     int
	ready      bool
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		state:         domain.NewSearchState(),
		limit:         DefaultLimit,
		width:         80,
		height:        24,
		focusInput:    true,
	}
	v.syncOptions()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// ApplySettings sets the default snippet count and corpora.
func (v *View) ApplySettings(settings *domain.Settings) {
	if settings == nil {
		return
	}
	v.state = domain.Reduce(v.state, domain.SnippetsChanged{N: settings.Snippets})
	for _, kind := range domain.AllSources() {
		v.state = domain.Reduce(v.state, domain.SourceToggled{Source: kind, Enabled: containsSource(settings.Sources, kind)})
	}
	v.syncOptions()
}

// SetRenderWidth sets the display width in pixels used for region image
// URLs and highlight overlays. Zero requests full-size images.
func (v *View) SetRenderWidth(width int) {
	v.renderWidth = width
}

// SetLimit sets the number of documents requested per search.
func (v *View) SetLimit(limit int) {
	if limit > 0 {
		v.limit = limit
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyEnter:
			return v, v.submit(v.input.Query())
		case tea.KeyEsc, tea.KeyTab:
			if !v.list.IsEmpty() {
				v.focusResults()
			}
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(keyStr, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(keyStr, v.keymap.Open):
		if hit := v.list.SelectedHit(); hit != nil {
			selected := *hit
			return v, func() tea.Msg {
				return messages.HitSelected{Hit: selected}
			}
		}
	case keymap.Matches(keyStr, v.keymap.NewSearch), keymap.Matches(keyStr, v.keymap.Back), msg.Type == tea.KeyTab:
		return v, v.focusQuery()
	case keymap.Matches(keyStr, v.keymap.ToggleBooks):
		return v, v.toggleSource(domain.SourceGoogleBooks)
	case keymap.Matches(keyStr, v.keymap.ToggleNewspapers):
		return v, v.toggleSource(domain.SourceLUnion)
	case keymap.Matches(keyStr, v.keymap.MoreSnippets):
		return v, v.changeSnippets(v.state.Snippets + 1)
	case keymap.Matches(keyStr, v.keymap.FewerSnippets):
		return v, v.changeSnippets(v.state.Snippets - 1)
	case keymap.Matches(keyStr, v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}
	return v, nil
}

// submit issues a search for query. The previous search, if still
// outstanding, is superseded rather than cancelled.
func (v *View) submit(query string) tea.Cmd {
	if query == "" {
		return nil
	}
	if !v.state.CanSubmit() {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(domain.ErrNoSourcesSelected.Error())
		return nil
	}

	v.state = domain.Reduce(v.state, domain.SearchSubmitted{Query: query})
	v.statusbar.SetState(status.StateSearching)

	opts := v.state.Options()
	opts.Limit = v.limit
	opts.RenderWidth = v.renderWidth
	return v.performSearch(query, opts)
}

// resubmit repeats the current query with changed options.
func (v *View) resubmit() tea.Cmd {
	if v.state.Query == "" {
		return nil
	}
	return v.submit(v.state.Query)
}

func (v *View) toggleSource(kind domain.SourceKind) tea.Cmd {
	v.state = domain.Reduce(v.state, domain.SourceToggled{Source: kind, Enabled: !v.state.HasSource(kind)})
	v.syncOptions()
	if !v.state.CanSubmit() {
		v.statusbar.SetState(status.StateReady)
		return nil
	}
	return v.resubmit()
}

func (v *View) changeSnippets(n int) tea.Cmd {
	before := v.state.Snippets
	v.state = domain.Reduce(v.state, domain.SnippetsChanged{N: n})
	v.syncOptions()
	if v.state.Snippets == before {
		return nil
	}
	return v.resubmit()
}

// performSearch runs the search off the UI loop and reports its outcome
// tagged with the sequence number in opts.
func (v *View) performSearch(query string, opts domain.SearchOptions) tea.Cmd {
	ctx := v.ctx
	service := v.searchService
	return func() tea.Msg {
		if service == nil {
			return messages.SearchCompleted{Seq: opts.Seq, Err: ErrNoSearchService}
		}
		results, err := service.Search(ctx, query, opts)
		return messages.SearchCompleted{Seq: opts.Seq, Results: results, Err: err}
	}
}

// handleSearchCompleted folds a completion into the state. Stale
// completions leave the state, and therefore the display, unchanged.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.state = domain.Reduce(v.state, domain.SearchFailed{Seq: msg.Seq, Err: msg.Err})
	} else {
		v.state = domain.Reduce(v.state, domain.SearchSucceeded{Seq: msg.Seq, Results: msg.Results})
	}
	if msg.Seq != v.state.Seq || v.state.Pending {
		return
	}

	if v.state.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.state.Err.Error())
		return
	}

	v.list.SetResults(v.state.Results)
	v.statusbar.SetState(status.StateResults)
	if v.state.Results != nil {
		v.statusbar.SetResults(v.state.Results.NumFound, v.state.Results.QTime)
	}
	if !v.list.IsEmpty() {
		v.focusResults()
	}
}

func (v *View) focusResults() {
	v.focusInput = false
	v.input.Blur()
}

func (v *View) focusQuery() tea.Cmd {
	v.focusInput = true
	v.input.SetValue(v.state.Query)
	return v.input.Focus()
}

func (v *View) syncOptions() {
	v.statusbar.SetOptions(v.state.Sources, v.state.Snippets)
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("ocrhl"), "", v.input.View(), "")

	if v.state.Err != nil && !v.state.Pending {
		sections = append(sections, v.styles.Error.Render("Error: "+v.state.Err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // header, input and status lines
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// State returns the current search state.
func (v *View) State() domain.SearchState {
	return v.state
}

// Query returns the text in the query input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the query input.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Hits returns the displayed hits.
func (v *View) Hits() []domain.SearchHit {
	return v.list.Hits()
}

// SelectedIndex returns the index of the selected hit.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the failure of the latest search, if any.
func (v *View) Err() error {
	return v.state.Err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}

func containsSource(sources []domain.SourceKind, kind domain.SourceKind) bool {
	for _, k := range sources {
		if k == kind {
			return true
		}
	}
	return false
}
