package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Mining Basics", "mining-basics"},
		{"  Spaces  Everywhere ", "spaces-everywhere"},
		{"Qué pasa, señor?", "que-pasa-senor"},
		{"UTXO & You!", "utxo-you"},
		{"---", "post"},
		{"", "post"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Slugify(c.in), "input %q", c.in)
	}
}

func TestSlugFromFilename_StripsDatePrefixAndExtension(t *testing.T) {
	require.Equal(t, "mining-basics", SlugFromFilename("2026-01-19-mining-basics.md"))
	require.Equal(t, "about-nodes", SlugFromFilename("About Nodes.md"))
	require.Equal(t, "plain", SlugFromFilename("plain.md"))
}

func TestDateFromFilename(t *testing.T) {
	d, ok := DateFromFilename("2026-01-19-mining-basics.md")
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC), d)

	_, ok = DateFromFilename("mining-basics.md")
	require.False(t, ok)

	_, ok = DateFromFilename("2026-13-99-bogus.md")
	require.False(t, ok)
}

func TestPostURL(t *testing.T) {
	p := &Post{Slug: "mining-basics"}
	require.Equal(t, "/posts/mining-basics/", p.URL())
}
