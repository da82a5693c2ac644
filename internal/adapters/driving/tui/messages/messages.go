// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// SearchCompleted carries the outcome of the search numbered Seq.
// Completions of superseded searches are discarded by the receiver.
type SearchCompleted struct {
	Seq     uint64
	Results *domain.SearchResults
	Err     error
}

// HitSelected is sent when a search hit is opened.
type HitSelected struct {
	Hit domain.SearchHit
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input and results view.
	ViewSearch ViewType = iota
	// ViewPassages shows the passages and page regions of one hit.
	ViewPassages
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewPassages:
		return "passages"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
