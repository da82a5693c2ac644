package highlight

import (
	"strings"

	"golang.org/x/net/html"
)

// Render converts highlighted markup into display text. Text inside
// highlight markers is passed through mark; all other tags are dropped and
// character entities are unescaped. A nil mark leaves highlighted text as is.
func Render(s string, mark func(string) string) string {
	z := html.NewTokenizer(strings.NewReader(s))

	var b strings.Builder
	depth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way return what we have.
			return b.String()

		case html.TextToken:
			text := string(z.Text())
			if depth > 0 && mark != nil {
				text = mark(text)
			}
			b.WriteString(text)

		case html.StartTagToken:
			if isMarker(z) {
				depth++
			}

		case html.EndTagToken:
			if isMarker(z) && depth > 0 {
				depth--
			}

		case html.SelfClosingTagToken, html.CommentToken, html.DoctypeToken:
		}
	}
}

// Plain returns the display text without any markup.
func Plain(s string) string {
	return Render(s, nil)
}

// Spans returns the highlighted runs of s, in order.
func Spans(s string) []string {
	var spans []string
	Render(s, func(text string) string {
		spans = append(spans, text)
		return text
	})
	return spans
}

func isMarker(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	return string(name) == "em"
}
