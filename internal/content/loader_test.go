package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	berrors "git.home.luguber.info/inful/blogsmith/internal/errors"
)

func writePost(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoad_SplitsFrontmatterAndBody(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "2026-01-19-mining-basics.md", "---\ntitle: Mining Basics\ncategory: mining\n---\n# Hello\n")

	posts, err := NewLoader(dir).Load()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "Mining Basics", posts[0].Fields["title"])
	require.Equal(t, []byte("# Hello\n"), posts[0].Body)
	require.Equal(t, "2026-01-19-mining-basics.md", posts[0].Filename)
}

func TestLoad_IgnoresNonMarkdownFilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "a.md", "---\ntitle: A\n---\nbody\n")
	writePost(t, dir, "notes.txt", "not a post")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts"), 0o755))

	posts, err := NewLoader(dir).Load()
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestLoad_SortedByFilename(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "b.md", "---\ntitle: B\n---\n")
	writePost(t, dir, "a.md", "---\ntitle: A\n---\n")

	posts, err := NewLoader(dir).Load()
	require.NoError(t, err)
	require.Equal(t, "a.md", posts[0].Filename)
	require.Equal(t, "b.md", posts[1].Filename)
}

func TestLoad_MissingDirectory_IsLoadError(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope")).Load()
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryLoad))
}

func TestLoad_MalformedDelimiters_IsParseErrorWithPath(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "broken.md", "---\ntitle: Broken\nno closing delimiter\n")

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryParse))
	require.Contains(t, err.Error(), "broken.md")
}

func TestLoad_NonMappingFrontmatter_IsParseError(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "scalar.md", "---\njust a scalar\n---\nbody\n")

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryParse))
}

func TestLoad_InvalidUTF8_IsLoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bin.md"), []byte{0xff, 0xfe, 0x00}, 0o644))

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryLoad))
}
