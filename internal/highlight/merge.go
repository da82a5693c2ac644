// Package highlight splices search-engine highlight fragments into raw
// document field values and renders highlighted text for display.
//
// Fragments carry <em>...</em> markers around the matched text. Merging is
// best-effort: fragments are applied in order by plain substring
// replacement, without tracking which character ranges are already
// marked. A fragment whose unmarked text no longer occurs verbatim (because
// an earlier fragment wrapped part of it, or because the highlighter
// normalised whitespace or case) is skipped.
package highlight

import (
	"regexp"
	"strings"
	"sync"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// Highlight markers used by the search engine.
const (
	StartMarker = "<em>"
	EndMarker   = "</em>"
)

var markerPattern = regexp.MustCompile(`</?em>`)

// Strip removes highlight markers, recovering the raw matched text.
func Strip(fragment string) string {
	return markerPattern.ReplaceAllString(fragment, "")
}

// MergeValue applies fragments to a single field value. For each fragment,
// in order, every occurrence of its unmarked text in the value built so far
// is replaced by the fragment. Fragments that do not occur are skipped.
//
// Occurrences that are already wrapped by the same fragment are left as
// they are, so merging an already merged value again changes nothing.
func MergeValue(value string, fragments []string) string {
	out := value
	for _, frag := range fragments {
		out = apply(out, frag, Strip(frag))
	}
	return out
}

func apply(value, frag, raw string) string {
	marked := strings.Split(value, frag)
	changed := false
	for i, part := range marked {
		if !strings.Contains(part, raw) {
			continue
		}
		replaced := strings.Join(strings.Split(part, raw), frag)
		if replaced != part {
			marked[i] = replaced
			changed = true
		}
	}
	if !changed {
		return value
	}
	return strings.Join(marked, frag)
}

// Merge returns a copy of doc with the fragments of every highlighted field
// spliced in. Multi-valued fields are merged element by element. Fields
// without fragments, and fragments for fields the document lacks, are left
// alone. Neither doc nor highlights is modified.
func Merge(doc domain.RawDocument, highlights map[string][]string) domain.RawDocument {
	out := doc.Clone()
	for field, fragments := range highlights {
		value, ok := out[field]
		if !ok {
			continue
		}
		out[field] = value.Map(func(s string) string {
			return MergeValue(s, fragments)
		})
	}
	return out
}

// MergeAll merges the highlighting of a whole response, keyed by document
// id. Documents are processed concurrently; the output keeps input order.
func MergeAll(docs []domain.RawDocument, highlighting map[string]map[string][]string) []domain.RawDocument {
	out := make([]domain.RawDocument, len(docs))

	var wg sync.WaitGroup
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i] = Merge(docs[i], highlighting[docs[i].ID()])
		}(i)
	}
	wg.Wait()

	return out
}
