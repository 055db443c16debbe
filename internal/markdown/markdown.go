// Package markdown renders post bodies to HTML fragments.
//
// Rendering is pure and deterministic: the same body always produces the
// same fragment. Malformed Markdown never fails the build; goldmark renders
// best-effort output for any input.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown bodies to HTML fragments. Safe for concurrent
// use; goldmark.Markdown instances are goroutine-safe once constructed.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer constructs the shared goldmark pipeline: GFM (tables,
// strikethrough, task lists, autolinks) plus auto heading IDs. Raw HTML in
// post bodies is passed through, matching the trusted-content model of a
// local blog build.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts a Markdown body to an HTML fragment.
func (r *Renderer) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
