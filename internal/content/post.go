// Package content loads and validates blog posts from the content directory.
package content

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DateFormat is the calendar date layout used in front-matter and filenames.
const DateFormat = "2006-01-02"

// Post is one blog post after loading, validation, and rendering.
// Immutable once the assembler has filled the rendered fields.
type Post struct {
	Title    string
	Date     time.Time
	Category string
	Tags     []string
	Level    string // difficulty identifier, e.g. "1-1"
	Hero     string // optional hero image path, relative to assets

	Slug       string // filename-derived, unique across all posts
	SourcePath string // where the post was loaded from, for error context

	Body    []byte // raw Markdown body
	HTML    string // rendered fragment, filled by the assembler
	Excerpt string // tag-stripped summary, filled by the assembler
}

// URL returns the site-relative URL of the post's detail page.
func (p *Post) URL() string {
	return "/posts/" + p.Slug + "/"
}

var (
	datePrefixRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-`)
	slugRe       = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives a URL-safe slug: Unicode normalization with combining
// marks stripped, lowercased, runs of non-alphanumerics collapsed to "-".
func Slugify(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, text); err == nil {
		text = folded
	}
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "post"
	}
	return s
}

// SlugFromFilename derives the slug from a post filename: the extension and
// any leading YYYY-MM-DD- date prefix are dropped, the rest is slugified.
func SlugFromFilename(name string) string {
	stem := name
	if i := strings.LastIndex(stem, "."); i > 0 {
		stem = stem[:i]
	}
	stem = datePrefixRe.ReplaceAllString(stem, "")
	return Slugify(stem)
}

// DateFromFilename extracts a YYYY-MM-DD- prefix date, if present.
func DateFromFilename(name string) (time.Time, bool) {
	m := datePrefixRe.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	d, err := time.Parse(DateFormat, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
