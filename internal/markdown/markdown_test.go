package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_Headings(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render([]byte("# Mining Basics\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<h1")
	require.Contains(t, out, "Mining Basics")
}

func TestRender_EmphasisAndStrong(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render([]byte("*soft* and **hard**\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<em>soft</em>")
	require.Contains(t, out, "<strong>hard</strong>")
}

func TestRender_Lists(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render([]byte("- one\n- two\n\n1. first\n2. second\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<ul>")
	require.Contains(t, out, "<ol>")
	require.Contains(t, out, "<li>one</li>")
}

func TestRender_InlineCodeAndParagraphs(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render([]byte("Run `bitcoind -daemon` to start.\n\nSecond paragraph.\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<code>bitcoind -daemon</code>")
	require.Contains(t, out, "<p>Second paragraph.</p>")
}

func TestRender_FencedCodeBlock(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render([]byte("```\ngetblockcount\n```\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<pre><code>")
}

func TestRender_MalformedInputDegradesGracefully(t *testing.T) {
	r := NewRenderer()
	// Unclosed emphasis and stray brackets have no strict grammar; the
	// renderer must produce best-effort HTML rather than fail.
	out, err := r.Render([]byte("*unclosed [stray ] ** mix\n"))
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer()
	body := []byte("# Title\n\nSome *text* with `code`.\n\n- a\n- b\n")
	first, err := r.Render(body)
	require.NoError(t, err)
	second, err := r.Render(body)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
