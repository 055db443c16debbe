package sets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := New("a", "b", "b")
	require.Equal(t, 2, s.Len())
	require.True(t, s.Has("a"))
	require.False(t, s.Has("c"))

	s.Add("c")
	require.True(t, s.Has("c"))
	require.Equal(t, 3, s.Len())
}

func TestSet_NilHas(t *testing.T) {
	var s Set[string]
	require.False(t, s.Has("a"))
	require.Equal(t, 0, s.Len())
}
