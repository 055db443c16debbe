package content

import (
	"strings"

	"golang.org/x/net/html"
)

// ExcerptLimit is the default excerpt length in runes.
const ExcerptLimit = 180

// Excerpt produces a plain-text summary of a rendered HTML fragment: tags
// stripped, whitespace collapsed, truncated to limit runes with an ellipsis.
func Excerpt(fragment string, limit int) string {
	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.WriteString(tok.Token().Data)
			b.WriteByte(' ')
		}
	}

	text := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimRight(string(runes[:limit-1]), " ") + "…"
}
