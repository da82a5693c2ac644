package domain

import "time"

// HistoryEntry records one executed search.
type HistoryEntry struct {
	ID         string       `json:"id"`
	Query      string       `json:"query"`
	Sources    []SourceKind `json:"sources"`
	Snippets   int          `json:"snippets,omitempty"`
	NumFound   int          `json:"numFound"`
	QTime      int          `json:"qtime"`
	SearchedAt time.Time    `json:"searchedAt"`
}
