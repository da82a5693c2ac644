package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ocrhl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/core/ports/driving"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	mu    sync.Mutex
	calls []domain.SearchOptions

	SearchFunc func(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResults, error)
}

func (m *MockSearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResults, error) {
	m.mu.Lock()
	m.calls = append(m.calls, opts)
	m.mu.Unlock()
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return testResults(query, opts.Seq), nil
}

func (m *MockSearchService) ContentSearch(context.Context, string, string) (*domain.AnnotationList, error) {
	return nil, errors.New("not implemented")
}

func (m *MockSearchService) lastCall(t *testing.T) domain.SearchOptions {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.calls)
	return m.calls[len(m.calls)-1]
}

func testResults(query string, seq uint64) *domain.SearchResults {
	return &domain.SearchResults{
		Seq:      seq,
		Query:    query,
		NumFound: 2,
		QTime:    5,
		Hits: []domain.SearchHit{
			{
				Document: &domain.BookDocument{ID: "vol-1", Title: []string{fmt.Sprintf("About <em>%s</em>", query)}},
				Source:   domain.SourceGoogleBooks,
			},
			{
				Document: &domain.NewspaperDocument{ID: "art-1", IssueID: "issue-1", Title: []string{"Nouvelles"}},
				Source:   domain.SourceLUnion,
			},
		},
	}
}

func newTestView(service driving.SearchService) *View {
	v := NewView(nil, nil, service)
	v.SetDimensions(100, 40)
	return v
}

// submitQuery types a query and presses enter, returning the search command.
func submitQuery(t *testing.T, v *View, query string) tea.Cmd {
	t.Helper()
	if !v.InputFocused() {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	}
	v.SetQuery(query)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	return cmd
}

func pressKey(v *View, key string) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return cmd
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), &MockSearchService{})

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.Equal(t, "", view.Query())
	assert.True(t, view.InputFocused())
	assert.Equal(t, domain.NewSearchState(), view.State())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
}

func TestView_WithContext(t *testing.T) {
	view := NewView(nil, nil, nil)
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, view, view.WithContext(ctx))
	assert.Equal(t, ctx, view.ctx)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil, nil, nil)

	assert.NotNil(t, view.Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.Ready())
}

func TestView_Submit_TagsSequenceNumber(t *testing.T) {
	service := &MockSearchService{}
	view := newTestView(service)
	view.SetRenderWidth(640)

	cmd := submitQuery(t, view, "  fox ")

	state := view.State()
	assert.True(t, state.Pending)
	assert.Equal(t, uint64(1), state.Seq)
	assert.Equal(t, "fox", state.Query)
	assert.Equal(t, status.StateSearching, view.StatusState())

	msg := cmd()
	completed, ok := msg.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, uint64(1), completed.Seq)

	opts := service.lastCall(t)
	assert.Equal(t, uint64(1), opts.Seq)
	assert.Equal(t, DefaultLimit, opts.Limit)
	assert.Equal(t, 640, opts.RenderWidth)
	assert.Equal(t, domain.DefaultSnippets, opts.Snippets)
	assert.Equal(t, domain.AllSources(), opts.Sources)
}

func TestView_Submit_EmptyQuery(t *testing.T) {
	view := newTestView(&MockSearchService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, uint64(0), view.State().Seq)
}

func TestView_SearchCompleted_ShowsResults(t *testing.T) {
	view := newTestView(&MockSearchService{})

	cmd := submitQuery(t, view, "fox")
	view.Update(cmd())

	assert.False(t, view.State().Pending)
	assert.Len(t, view.Hits(), 2)
	assert.False(t, view.InputFocused(), "results take focus")
	assert.Equal(t, status.StateResults, view.StatusState())
	assert.Contains(t, view.View(), "About fox")
	assert.Contains(t, view.View(), "2 documents (5 ms)")
}

func TestView_LatestSearchWins(t *testing.T) {
	view := newTestView(&MockSearchService{})

	first := submitQuery(t, view, "first")
	second := submitQuery(t, view, "second")
	require.Equal(t, uint64(2), view.State().Seq)

	// The newer search completes first; the older one arrives late.
	view.Update(second())
	view.Update(first())

	require.Len(t, view.Hits(), 2)
	assert.Equal(t, "second", view.State().Results.Query)
	assert.False(t, view.State().Pending)
}

func TestView_StaleCompletionKeepsPending(t *testing.T) {
	view := newTestView(&MockSearchService{})

	first := submitQuery(t, view, "first")
	second := submitQuery(t, view, "second")

	view.Update(first())

	assert.True(t, view.State().Pending, "stale completion must not clear the indicator")
	assert.Nil(t, view.State().Results)
	assert.Empty(t, view.Hits())

	view.Update(second())
	assert.False(t, view.State().Pending)
	assert.Equal(t, "second", view.State().Results.Query)
}

func TestView_SearchFailed(t *testing.T) {
	service := &MockSearchService{
		SearchFunc: func(context.Context, string, domain.SearchOptions) (*domain.SearchResults, error) {
			return nil, domain.ErrSearchUnavailable
		},
	}
	view := newTestView(service)

	cmd := submitQuery(t, view, "fox")
	view.Update(cmd())

	assert.False(t, view.State().Pending)
	assert.ErrorIs(t, view.Err(), domain.ErrSearchUnavailable)
	assert.Equal(t, status.StateError, view.StatusState())
	assert.Contains(t, view.View(), "Error: search engine unavailable")
}

func TestView_StaleFailureIgnored(t *testing.T) {
	view := newTestView(&MockSearchService{})

	submitQuery(t, view, "first")
	second := submitQuery(t, view, "second")

	view.Update(messages.SearchCompleted{Seq: 1, Err: errors.New("timeout")})
	view.Update(second())

	assert.NoError(t, view.Err())
	assert.Len(t, view.Hits(), 2)
}

func TestView_NoSearchService(t *testing.T) {
	view := newTestView(nil)

	cmd := submitQuery(t, view, "fox")
	msg, ok := cmd().(messages.SearchCompleted)

	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, ErrNoSearchService)
}

func TestView_ToggleSourceResubmits(t *testing.T) {
	service := &MockSearchService{}
	view := newTestView(service)
	view.Update(submitQuery(t, view, "fox")())

	cmd := pressKey(view, "1")

	require.NotNil(t, cmd)
	assert.Equal(t, []domain.SourceKind{domain.SourceLUnion}, view.State().Sources)
	assert.Equal(t, uint64(2), view.State().Seq)

	cmd()
	opts := service.lastCall(t)
	assert.Equal(t, []domain.SourceKind{domain.SourceLUnion}, opts.Sources)
	assert.Equal(t, uint64(2), opts.Seq)
	assert.Contains(t, view.View(), "1 [ ] Google Books 1000")
}

func TestView_NoSourcesBlocksSubmit(t *testing.T) {
	view := newTestView(&MockSearchService{})
	view.Update(submitQuery(t, view, "fox")())

	pressKey(view, "1")
	cmd := pressKey(view, "2")

	assert.Nil(t, cmd, "no search without a corpus")
	assert.Empty(t, view.State().Sources)
	assert.False(t, view.State().CanSubmit())

	pressKey(view, "/")
	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, status.StateError, view.StatusState())
}

func TestView_SnippetsResubmit(t *testing.T) {
	service := &MockSearchService{}
	view := newTestView(service)
	view.Update(submitQuery(t, view, "fox")())

	cmd := pressKey(view, "+")
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, domain.DefaultSnippets+1, service.lastCall(t).Snippets)

	view.Update(cmd())
	cmd = pressKey(view, "-")
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, domain.DefaultSnippets, service.lastCall(t).Snippets)
}

func TestView_SnippetsClamped(t *testing.T) {
	view := newTestView(&MockSearchService{})
	view.ApplySettings(&domain.Settings{Snippets: domain.MaxSnippets, Sources: domain.AllSources()})
	view.Update(submitQuery(t, view, "fox")())
	seq := view.State().Seq

	cmd := pressKey(view, "+")

	assert.Nil(t, cmd, "unchanged count does not resubmit")
	assert.Equal(t, domain.MaxSnippets, view.State().Snippets)
	assert.Equal(t, seq, view.State().Seq)
}

func TestView_ApplySettings(t *testing.T) {
	view := newTestView(&MockSearchService{})

	view.ApplySettings(&domain.Settings{Snippets: 3, Sources: []domain.SourceKind{domain.SourceLUnion}})

	assert.Equal(t, 3, view.State().Snippets)
	assert.Equal(t, []domain.SourceKind{domain.SourceLUnion}, view.State().Sources)

	view.ApplySettings(nil)
	assert.Equal(t, 3, view.State().Snippets)
}

func TestView_OpenSelectedHit(t *testing.T) {
	view := newTestView(&MockSearchService{})
	view.Update(submitQuery(t, view, "fox")())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.SelectedIndex())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.HitSelected)
	require.True(t, ok)
	assert.Equal(t, "art-1", msg.Hit.Document.DocumentID())
}

func TestView_NewSearchRestoresQuery(t *testing.T) {
	view := newTestView(&MockSearchService{})
	view.Update(submitQuery(t, view, "fox")())
	require.False(t, view.InputFocused())

	pressKey(view, "n")

	assert.True(t, view.InputFocused())
	assert.Equal(t, "fox", view.Query())
}

func TestView_EscFromResultsFocusesInput(t *testing.T) {
	view := newTestView(&MockSearchService{})
	view.Update(submitQuery(t, view, "fox")())

	view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, view.InputFocused())
}

func TestView_HelpAndQuit(t *testing.T) {
	view := newTestView(&MockSearchService{})
	view.Update(submitQuery(t, view, "fox")())

	cmd := pressKey(view, "?")
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewHelp}, cmd())

	cmd = pressKey(view, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())
}

func TestView_TypingGoesToInput(t *testing.T) {
	view := newTestView(&MockSearchService{})

	pressKey(view, "1")
	pressKey(view, "q")

	assert.Equal(t, "1q", view.Query())
	assert.Equal(t, domain.AllSources(), view.State().Sources)
}

func TestView_ErrorOccurred(t *testing.T) {
	view := newTestView(&MockSearchService{})

	view.Update(messages.ErrorOccurred{Err: errors.New("config broken")})

	assert.Equal(t, status.StateError, view.StatusState())
	assert.Contains(t, view.View(), "config broken")
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, nil)

	assert.Equal(t, "Initialising...", view.View())
}

func TestView_SetLimit(t *testing.T) {
	service := &MockSearchService{}
	view := newTestView(service)

	view.SetLimit(0)
	view.SetLimit(5)
	submitQuery(t, view, "fox")()

	assert.Equal(t, 5, service.lastCall(t).Limit)
}
