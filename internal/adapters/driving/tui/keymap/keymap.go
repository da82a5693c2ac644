// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Search submits the query.
	Search key.Binding

	Up   key.Binding
	Down key.Binding

	// Open shows the passages of the selected document.
	Open key.Binding

	// NewSearch focuses the query input from the results.
	NewSearch key.Binding

	// ToggleBooks and ToggleNewspapers select or deselect a corpus.
	ToggleBooks      key.Binding
	ToggleNewspapers key.Binding

	// MoreSnippets and FewerSnippets change the passages per document.
	MoreSnippets  key.Binding
	FewerSnippets key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "passages"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n", "/"),
			key.WithHelp("/", "new search"),
		),
		ToggleBooks: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "books"),
		),
		ToggleNewspapers: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "newspapers"),
		),
		MoreSnippets: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "snippets"),
		),
		FewerSnippets: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer snippets"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Help}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Open, k.ToggleBooks, k.ToggleNewspapers, k.MoreSnippets, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Search, k.NewSearch, k.Back},
		{k.ToggleBooks, k.ToggleNewspapers, k.MoreSnippets, k.FewerSnippets},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
