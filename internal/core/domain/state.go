package domain

// Snippet count bounds for a search.
const (
	MinSnippets     = 1
	MaxSnippets     = 50
	DefaultSnippets = 10
)

// SearchState is the state of a search form: the pending indicator, the
// query parameters, the selected corpora and the last applied results.
// It only changes through Reduce.
type SearchState struct {
	// Pending is true while the latest submitted search is outstanding.
	Pending bool

	// Seq is the sequence number of the latest submitted search.
	Seq uint64

	Query    string
	Snippets int
	Sources  []SourceKind

	// Results of the latest completed search, nil before the first one.
	Results *SearchResults

	// Err is the failure of the latest search, if any.
	Err error
}

// NewSearchState returns the initial state with every corpus selected.
func NewSearchState() SearchState {
	return SearchState{
		Snippets: DefaultSnippets,
		Sources:  AllSources(),
	}
}

// CanSubmit reports whether a new search may be issued. A pending search
// does not block a new one; its completion is discarded by Reduce.
func (s SearchState) CanSubmit() bool {
	return len(s.Sources) > 0
}

// HasSource reports whether a corpus is selected.
func (s SearchState) HasSource(kind SourceKind) bool {
	for _, k := range s.Sources {
		if k == kind {
			return true
		}
	}
	return false
}

// Options derives the search options for the latest submitted search.
func (s SearchState) Options() SearchOptions {
	sources := make([]SourceKind, len(s.Sources))
	copy(sources, s.Sources)
	return SearchOptions{
		Sources:  sources,
		Snippets: s.Snippets,
		Seq:      s.Seq,
	}
}

// Event is a discrete state transition input.
type Event interface {
	isEvent()
}

// SearchSubmitted starts a new search. It supersedes any outstanding one.
type SearchSubmitted struct {
	Query string
}

// SearchSucceeded delivers the results of the search numbered Seq.
type SearchSucceeded struct {
	Seq     uint64
	Results *SearchResults
}

// SearchFailed reports the failure of the search numbered Seq.
type SearchFailed struct {
	Seq uint64
	Err error
}

// SnippetsChanged sets the number of passages requested per document.
type SnippetsChanged struct {
	N int
}

// SourceToggled selects or deselects a corpus.
type SourceToggled struct {
	Source  SourceKind
	Enabled bool
}

func (SearchSubmitted) isEvent() {}
func (SearchSucceeded) isEvent() {}
func (SearchFailed) isEvent()    {}
func (SnippetsChanged) isEvent() {}
func (SourceToggled) isEvent()   {}

// Reduce applies an event to a state and returns the new state.
// Completions whose sequence number is not the latest issued are
// discarded, so the last submitted search always wins.
func Reduce(s SearchState, e Event) SearchState {
	switch e := e.(type) {
	case SearchSubmitted:
		s.Seq++
		s.Pending = true
		s.Query = e.Query
		s.Err = nil

	case SearchSucceeded:
		if e.Seq != s.Seq {
			return s
		}
		s.Pending = false
		s.Results = e.Results
		s.Err = nil

	case SearchFailed:
		if e.Seq != s.Seq {
			return s
		}
		s.Pending = false
		s.Err = e.Err

	case SnippetsChanged:
		s.Snippets = clampSnippets(e.N)

	case SourceToggled:
		s.Sources = toggleSource(s.Sources, e.Source, e.Enabled)
	}
	return s
}

func clampSnippets(n int) int {
	if n < MinSnippets {
		return MinSnippets
	}
	if n > MaxSnippets {
		return MaxSnippets
	}
	return n
}

// toggleSource never mutates the input slice.
func toggleSource(sources []SourceKind, kind SourceKind, enabled bool) []SourceKind {
	out := make([]SourceKind, 0, len(sources)+1)
	found := false
	for _, k := range sources {
		if k == kind {
			found = true
			if !enabled {
				continue
			}
		}
		out = append(out, k)
	}
	if enabled && !found {
		out = append(out, kind)
	}
	return out
}
