package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/content"
)

func testEngine(t *testing.T, baseURL string) *Engine {
	t.Helper()
	cfg := &config.Config{
		Site: config.SiteConfig{Title: "Site", Description: "desc", BaseURL: baseURL},
		Theme: config.ThemeConfig{
			Colors: map[string]string{
				"background": "#000000",
				"text":       "#ffffff",
				"primary":    "#f2a900",
				"accent":     "#3d9970",
			},
			Images: map[string]string{"logo": "img/logo.svg", "hero": "img/hero.jpg"},
		},
	}
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

func TestAbsURL(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"", "/", "/"},
		{"", "/posts/x/", "/posts/x/"},
		{"/blog", "/", "/blog/"},
		{"/blog", "/posts/x/", "/blog/posts/x/"},
		{"/blog/", "/posts/x/", "/blog/posts/x/"},
		{"/blog", "feed.xml", "/blog/feed.xml"},
	}
	for _, tt := range tests {
		e := testEngine(t, tt.base)
		require.Equal(t, tt.want, e.absURL(tt.path), "base=%q path=%q", tt.base, tt.path)
	}
}

func TestThemeCSS_SortedAndStable(t *testing.T) {
	css := string(themeCSS(map[string]string{
		"primary":    "#f2a900",
		"accent":     "#3d9970",
		"background": "#000000",
	}))
	accent := strings.Index(css, "--color-accent")
	background := strings.Index(css, "--color-background")
	primary := strings.Index(css, "--color-primary")
	require.True(t, accent >= 0 && background >= 0 && primary >= 0)
	require.Less(t, accent, background)
	require.Less(t, background, primary)
}

func TestTermURL(t *testing.T) {
	require.Equal(t, "/categories/mining/", TermURL(KindCategory, "mining"))
	require.Equal(t, "/tags/bitcoin/", TermURL(KindTag, "bitcoin"))
}

func TestRender_EscapesPostTitle(t *testing.T) {
	e := testEngine(t, "")
	post := &content.Post{
		Title:    "Scripts & <Tags>",
		Date:     time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC),
		Category: "misc",
		Level:    "1-1",
		Slug:     "scripts",
	}
	doc, err := e.Render(KindPost, &PageData{Post: post, Year: 2026})
	require.NoError(t, err)
	require.Contains(t, string(doc), "Scripts &amp; &lt;Tags&gt;")
}

func TestRenderFeed_EscapesAndDates(t *testing.T) {
	e := testEngine(t, "/blog")
	post := &content.Post{
		Title:    "Fees & Mempools",
		Date:     time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC),
		Category: "fees",
		Slug:     "fees-mempools",
		Excerpt:  "short",
	}
	doc, err := e.RenderFeed(&PageData{Posts: []*content.Post{post}, Year: 2026})
	require.NoError(t, err)
	out := string(doc)
	require.Contains(t, out, "<title>Fees &amp; Mempools</title>")
	require.Contains(t, out, "<pubDate>Mon, 19 Jan 2026 00:00:00 +0000</pubDate>")
	require.Contains(t, out, "<link>/blog/posts/fees-mempools/</link>")
}

func TestRender_UnknownKind(t *testing.T) {
	e := testEngine(t, "")
	_, err := e.Render("nope", &PageData{})
	require.Error(t, err)
}
