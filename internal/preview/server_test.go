package preview

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogsmith/internal/config"
)

func previewConfig(t *testing.T, root, baseURL string) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Site: config.SiteConfig{Title: "Preview", BaseURL: baseURL},
		Theme: config.ThemeConfig{
			Colors: map[string]string{
				"background": "#0d0d12",
				"text":       "#e8e6e3",
				"primary":    "#f2a900",
				"accent":     "#3d9970",
			},
			Images: map[string]string{"logo": "img/logo.svg", "hero": "img/hero.jpg"},
		},
		Content: filepath.Join(root, "posts"),
		Assets:  filepath.Join(root, "assets"),
		Stats:   config.StatsConfig{File: filepath.Join(root, "stats.json")},
	}
	require.NoError(t, os.MkdirAll(cfg.Content, 0o755))
	return cfg
}

func TestRebuild_ServesRootRelativeLinksDespiteBaseURL(t *testing.T) {
	root := t.TempDir()
	cfg := previewConfig(t, root, "/blog")
	post := "---\ntitle: Post\ndate: 2026-01-19\ncategory: misc\nlevel: \"1-1\"\n---\nbody\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Content, "2026-01-19-p.md"), []byte(post), 0o644))

	out := filepath.Join(root, "dist")
	s := NewServer(cfg, Options{OutputDir: out})
	require.NoError(t, s.rebuild(context.Background()))

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	// Links must resolve against the file server at the web root.
	require.Contains(t, string(index), `href="/posts/p/"`)
	require.NotContains(t, string(index), `href="/blog/`)
}

func TestReloadConfig_KeepsBaseURLCleared(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "blog.yaml")
	yaml := `site:
  title: "Preview"
  base_url: "/blog"
theme:
  colors:
    background: "#0d0d12"
    text: "#e8e6e3"
    primary: "#f2a900"
    accent: "#3d9970"
  images:
    logo: "img/logo.svg"
    hero: "img/hero.jpg"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0o644))

	s := NewServer(previewConfig(t, root, "/blog"), Options{ConfigPath: configPath})
	require.Empty(t, s.config().Site.BaseURL)

	s.reloadConfig()
	require.Empty(t, s.config().Site.BaseURL)
	require.Equal(t, "Preview", s.config().Site.Title)
}

func TestShouldIgnoreEvent(t *testing.T) {
	ignored := []string{
		".hidden.md",
		filepath.Join("posts", ".2026-01-01-draft.md"),
		"notes.md~",
		"post.md.swp",
		"#post.md#",
		"Thumbs.db",
	}
	for _, p := range ignored {
		require.True(t, shouldIgnoreEvent(p), "expected %q to be ignored", p)
	}

	kept := []string{
		"2026-01-19-mining-basics.md",
		filepath.Join("posts", "nodes.md"),
		"blog.yaml",
	}
	for _, p := range kept {
		require.False(t, shouldIgnoreEvent(p), "expected %q to trigger", p)
	}
}

func TestUnderDir(t *testing.T) {
	require.True(t, underDir("/srv/blog/posts/a.md", "/srv/blog/posts"))
	require.True(t, underDir("/srv/blog/posts/sub/a.md", "/srv/blog/posts"))
	require.False(t, underDir("/srv/blog/blog.yaml", "/srv/blog/posts"))
	require.False(t, underDir("/srv/blog/posts-old/a.md", "/srv/blog/posts"))
	require.False(t, underDir("/srv/blog/posts/a.md", ""))
}

func TestSameFile(t *testing.T) {
	require.True(t, sameFile("blog.yaml", "./blog.yaml"))
	require.False(t, sameFile("blog.yaml", "other.yaml"))
}
