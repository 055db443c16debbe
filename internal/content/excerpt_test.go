package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExcerpt_StripsTagsAndCollapsesWhitespace(t *testing.T) {
	out := Excerpt("<h1>Title</h1>\n<p>Some   <em>spaced</em>\ntext.</p>", ExcerptLimit)
	require.Equal(t, "Title Some spaced text.", out)
}

func TestExcerpt_ShortTextUnchanged(t *testing.T) {
	require.Equal(t, "Hello world.", Excerpt("<p>Hello world.</p>", ExcerptLimit))
}

func TestExcerpt_TruncatesWithEllipsis(t *testing.T) {
	long := "<p>" + strings.Repeat("word ", 100) + "</p>"
	out := Excerpt(long, ExcerptLimit)
	require.LessOrEqual(t, len([]rune(out)), ExcerptLimit)
	require.True(t, strings.HasSuffix(out, "…"))
}

func TestExcerpt_Deterministic(t *testing.T) {
	in := "<p>Same <code>input</code> twice.</p>"
	require.Equal(t, Excerpt(in, ExcerptLimit), Excerpt(in, ExcerptLimit))
}
