package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

func TestStrip(t *testing.T) {
	assert.Equal(t, "Hello World", Strip("Hello <em>World</em>"))
	assert.Equal(t, "no markers", Strip("no markers"))
	assert.Equal(t, "a b", Strip("<em>a</em> <em>b</em>"))
	assert.Equal(t, "<b>kept</b>", Strip("<b><em>kept</em></b>"))
}

func TestMergeValue_Scalar(t *testing.T) {
	got := MergeValue("Hello World", []string{"<em>World</em>"})
	assert.Equal(t, "Hello <em>World</em>", got)
}

func TestMergeValue_ReplacesEveryOccurrence(t *testing.T) {
	got := MergeValue("to be or not to be", []string{"<em>be</em>"})
	assert.Equal(t, "to <em>be</em> or not to <em>be</em>", got)
}

func TestMergeValue_UnmatchedFragmentSkipped(t *testing.T) {
	got := MergeValue("Hello World", []string{"<em>world</em>", "<em>Moon</em>"})
	assert.Equal(t, "Hello World", got)
}

func TestMergeValue_NoFragments(t *testing.T) {
	assert.Equal(t, "Hello World", MergeValue("Hello World", nil))
	assert.Equal(t, "Hello World", MergeValue("Hello World", []string{}))
}

func TestMergeValue_AppliedInOrder(t *testing.T) {
	got := MergeValue("quick brown fox", []string{"<em>quick</em>", "<em>fox</em>"})
	assert.Equal(t, "<em>quick</em> brown <em>fox</em>", got)
}

func TestMergeValue_WholeValue(t *testing.T) {
	got := MergeValue("Dickens", []string{"<em>Dickens</em>"})
	assert.Equal(t, "<em>Dickens</em>", got)
}

func TestMergeValue_EmptyRawText(t *testing.T) {
	got := MergeValue("abc", []string{"<em></em>"})
	assert.Equal(t, "a<em></em>b<em></em>c", got)
}

func TestMergeValue_PhraseFragment(t *testing.T) {
	got := MergeValue("A Tale of Two Cities", []string{"<em>Two</em> <em>Cities</em>"})
	assert.Equal(t, "A Tale of <em>Two</em> <em>Cities</em>", got)
}

// Overlapping fragments are not reconciled: the second fragment's raw text
// spans text the first one already marked, so it no longer occurs verbatim
// and is dropped.
func TestMergeValue_OverlappingFragmentsAreLossy(t *testing.T) {
	got := MergeValue("the quick brown fox", []string{
		"<em>quick brown</em>",
		"<em>brown fox</em>",
	})

	assert.Equal(t, "the <em>quick brown</em> fox", got)
	assert.NotContains(t, got, "<em>brown fox</em>")
}

// A fragment nested in one that was applied earlier wraps the inner text
// again; the result is double-marked.
func TestMergeValue_NestedFragmentDoubleWraps(t *testing.T) {
	got := MergeValue("quick brown", []string{"<em>quick brown</em>", "<em>brown</em>"})
	assert.Equal(t, "<em>quick <em>brown</em></em>", got)
}

func TestMergeValue_Properties(t *testing.T) {
	cases := []struct {
		value     string
		fragments []string
	}{
		{"Hello World", []string{"<em>World</em>"}},
		{"to be or not to be", []string{"<em>be</em>", "<em>not</em>"}},
		{"Les Misérables", []string{"<em>Misérables</em>"}},
		{"aaa", []string{"<em>a</em>"}},
		{"one two three two one", []string{"<em>one</em>", "<em>two</em>", "<em>three</em>"}},
		{"nothing here", []string{"<em>absent</em>"}},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			once := MergeValue(tc.value, tc.fragments)

			// Markers never change the underlying text.
			assert.Equal(t, tc.value, Strip(once))

			for _, frag := range tc.fragments {
				raw := Strip(frag)
				if !strings.Contains(tc.value, raw) {
					continue
				}
				assert.Contains(t, once, frag)
				// No unmarked occurrence of the raw text is left.
				assert.NotContains(t, strings.ReplaceAll(once, frag, ""), raw)
			}

			// A second application is a no-op.
			assert.Equal(t, once, MergeValue(once, tc.fragments))
		})
	}
}

func TestMerge_ScalarField(t *testing.T) {
	doc := domain.RawDocument{
		"id":    domain.Single("1"),
		"title": domain.Single("Hello World"),
	}

	merged := Merge(doc, map[string][]string{"title": {"<em>World</em>"}})

	assert.Equal(t, "Hello <em>World</em>", merged.Get("title"))
	assert.False(t, merged["title"].IsMulti())
	assert.Equal(t, "Hello World", doc.Get("title"), "input document must not change")
}

func TestMerge_MultiValuedField(t *testing.T) {
	doc := domain.RawDocument{
		"subtitle": domain.Multi("Alpha", "Beta"),
	}

	merged := Merge(doc, map[string][]string{"subtitle": {"<em>Beta</em>"}})

	require.True(t, merged["subtitle"].IsMulti())
	assert.Equal(t, []string{"Alpha", "<em>Beta</em>"}, merged.GetAll("subtitle"))
}

func TestMerge_FieldsWithoutHighlightsUnchanged(t *testing.T) {
	doc := domain.RawDocument{
		"title":  domain.Single("Hello World"),
		"author": domain.Multi("World Bank"),
	}

	merged := Merge(doc, map[string][]string{"title": {"<em>World</em>"}})

	assert.Equal(t, []string{"World Bank"}, merged.GetAll("author"))
}

func TestMerge_MissingFieldIgnored(t *testing.T) {
	doc := domain.RawDocument{"title": domain.Single("x")}

	merged := Merge(doc, map[string][]string{"publisher": {"<em>x</em>"}})

	_, ok := merged["publisher"]
	assert.False(t, ok)
	assert.Len(t, merged, 1)
}

func TestMerge_DoesNotMutateFragments(t *testing.T) {
	fragments := []string{"<em>a</em>", "<em>b</em>"}
	hl := map[string][]string{"title": fragments}

	Merge(domain.RawDocument{"title": domain.Single("a b")}, hl)

	assert.Equal(t, []string{"<em>a</em>", "<em>b</em>"}, fragments)
}

func TestMerge_NilHighlights(t *testing.T) {
	doc := domain.RawDocument{"title": domain.Single("Hello")}

	merged := Merge(doc, nil)

	assert.Equal(t, doc, merged)
}

func TestMergeAll(t *testing.T) {
	docs := []domain.RawDocument{
		{"id": domain.Single("a"), "title": domain.Single("Hello World")},
		{"id": domain.Single("b"), "title": domain.Single("Goodbye World")},
		{"id": domain.Single("c"), "title": domain.Single("Untouched")},
	}
	hl := map[string]map[string][]string{
		"a": {"title": {"<em>Hello</em>"}},
		"b": {"title": {"<em>World</em>"}},
	}

	merged := MergeAll(docs, hl)

	require.Len(t, merged, 3)
	assert.Equal(t, "<em>Hello</em> World", merged[0].Get("title"))
	assert.Equal(t, "Goodbye <em>World</em>", merged[1].Get("title"))
	assert.Equal(t, "Untouched", merged[2].Get("title"))
}
