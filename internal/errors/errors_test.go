package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_WithCause_IncludesCategoryAndCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := Wrap(cause, CategoryLoad, SeverityFatal, "content file unreadable")

	require.Contains(t, err.Error(), "load")
	require.Contains(t, err.Error(), "permission denied")
	require.True(t, errors.Is(err, cause))
}

func TestWithContext_FieldAppearsInMessage(t *testing.T) {
	err := ValidationFailed("posts/a.md", "title", "missing")

	require.Contains(t, err.Error(), "field=title")
	require.Contains(t, err.Error(), "path=posts/a.md")
}

func TestSlugConflict_MessageNamesBothFiles(t *testing.T) {
	err := SlugConflict("intro", "posts/2026-01-02-intro.md", "posts/2026-01-01-intro.md")

	require.Contains(t, err.Error(), "slug=intro")
	require.Contains(t, err.Error(), "path=posts/2026-01-02-intro.md")
	require.Contains(t, err.Error(), "conflicts_with=posts/2026-01-01-intro.md")
}

func TestIsCategory(t *testing.T) {
	err := SlugConflict("intro", "a.md", "b.md")

	require.True(t, IsCategory(err, CategoryConflict))
	require.False(t, IsCategory(err, CategoryWrite))
	require.False(t, IsCategory(fmt.Errorf("plain"), CategoryConflict))
}

func TestFetchFailed_MessageNamesEndpoint(t *testing.T) {
	err := FetchFailed("https://example.org/api/mempool", fmt.Errorf("unexpected status 500"))

	require.Contains(t, err.Error(), "url=https://example.org/api/mempool")
	require.True(t, IsCategory(err, CategoryNetwork))
}

func TestGetCategory_PlainErrorIsInternal(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(fmt.Errorf("plain")))
	require.Equal(t, CategoryWrite, GetCategory(WriteFailed("out", nil)))
}
