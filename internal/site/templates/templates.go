// Package templates renders complete HTML documents for every page kind the
// site emits. Page templates are embedded; each kind is a clone of the shared
// base layout plus its content block.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"strings"
	texttemplate "text/template"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/content"
	"git.home.luguber.info/inful/blogsmith/internal/stats"
)

//go:embed pages/*.tmpl
var files embed.FS

// Page kinds rendered by the engine.
const (
	KindIndex    = "index"
	KindArchive  = "archive"
	KindPost     = "post"
	KindCategory = "category"
	KindTag      = "tag"
	KindAbout    = "about"
)

var pageKinds = []string{KindIndex, KindArchive, KindPost, KindCategory, KindTag, KindAbout}

// Term is one taxonomy value (category or tag) with its listing slug.
type Term struct {
	Name  string
	Slug  string
	Count int
}

// PageData is the render context shared by all page templates.
type PageData struct {
	Site  config.SiteConfig
	Theme config.ThemeConfig
	Stats *stats.Stats

	Title    string
	ThemeCSS template.CSS
	Year     int // copyright year, derived from the newest post for determinism

	Post    *content.Post // detail pages
	Content template.HTML // rendered Markdown fragment for detail pages
	Posts   []*content.Post
	Term    *Term // category/tag listing pages

	Categories []Term
	Tags       []Term
}

// Engine renders full HTML documents from an immutable SiteConfig.
type Engine struct {
	cfg   *config.Config
	pages map[string]*template.Template
	feed  *texttemplate.Template
}

// New parses all embedded page templates against the shared base layout.
func New(cfg *config.Config) (*Engine, error) {
	e := &Engine{cfg: cfg, pages: make(map[string]*template.Template, len(pageKinds))}

	funcs := template.FuncMap{
		"url":   e.absURL,
		"asset": e.assetURL,
		"date":  func(p *content.Post) string { return p.Date.Format("Jan 2, 2006") },
		"isodate": func(p *content.Post) string {
			return p.Date.Format(content.DateFormat)
		},
		"termurl": termURL,
		"slugify": content.Slugify,
		"lower":   strings.ToLower,
	}

	for _, kind := range pageKinds {
		tmpl, err := template.New("base.tmpl").Funcs(funcs).ParseFS(files, "pages/base.tmpl", "pages/"+kind+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", kind, err)
		}
		e.pages[kind] = tmpl
	}

	feed, err := texttemplate.New("feed.tmpl").Funcs(texttemplate.FuncMap{
		"url":     e.absURL,
		"xml":     xmlEscape,
		"rssdate": rssDate,
	}).ParseFS(files, "pages/feed.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse feed template: %w", err)
	}
	e.feed = feed

	return e, nil
}

// Render produces the complete HTML document for one page kind.
func (e *Engine) Render(kind string, data *PageData) ([]byte, error) {
	tmpl, ok := e.pages[kind]
	if !ok {
		return nil, fmt.Errorf("unknown page kind %q", kind)
	}
	e.fillCommon(data)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.tmpl", data); err != nil {
		return nil, fmt.Errorf("render %s page: %w", kind, err)
	}
	return buf.Bytes(), nil
}

// RenderFeed produces the RSS feed document.
func (e *Engine) RenderFeed(data *PageData) ([]byte, error) {
	e.fillCommon(data)

	var buf bytes.Buffer
	if err := e.feed.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render feed: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) fillCommon(data *PageData) {
	data.Site = e.cfg.Site
	data.Theme = e.cfg.Theme
	if data.ThemeCSS == "" {
		data.ThemeCSS = themeCSS(e.cfg.Theme.Colors)
	}
	if data.Title == "" {
		data.Title = e.cfg.Site.Title
	}
}

// absURL joins the configured base URL with a site-relative path, mirroring
// the behavior of a project site served under a subpath (base_url "/blog").
func (e *Engine) absURL(path string) string {
	base := strings.TrimRight(e.cfg.Site.BaseURL, "/")
	if path == "/" {
		if base == "" {
			return "/"
		}
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func (e *Engine) assetURL(relative string) string {
	return e.absURL("/assets/" + strings.TrimLeft(relative, "/"))
}

// TermURL returns the site-relative listing path for a taxonomy term.
func TermURL(kind, slug string) string {
	switch kind {
	case KindCategory:
		return "/categories/" + slug + "/"
	case KindTag:
		return "/tags/" + slug + "/"
	}
	return "/"
}

func termURL(kind string, t Term) string {
	return TermURL(kind, t.Slug)
}

// themeCSS renders theme colors as CSS custom properties, sorted by name so
// output is byte-stable between runs.
func themeCSS(colors map[string]string) template.CSS {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  --color-%s: %s;\n", name, colors[name])
	}
	// #nosec G203 -- values come from the validated site configuration
	return template.CSS(b.String())
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string { return xmlReplacer.Replace(s) }

func rssDate(p *content.Post) string {
	return p.Date.Format("Mon, 02 Jan 2006 15:04:05 +0000")
}
