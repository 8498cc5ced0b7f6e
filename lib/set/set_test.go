package set

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	var s Set[string]
	require.Equal(t, 0, s.Len())
	require.False(t, s.Contains("UTC"))

	require.True(t, s.Add("UTC"))
	require.False(t, s.Add("UTC"))
	require.True(t, s.Add("Europe/Berlin"))

	require.True(t, s.Contains("UTC"))
	require.Equal(t, 2, s.Len())
}

func TestSorted(t *testing.T) {
	s := WithCapacity[string](3)
	s.Add("UTC")
	s.Add("America/New_York")
	s.Add("Europe/Berlin")
	s.Add("UTC")

	require.Equal(t, []string{"America/New_York", "Europe/Berlin", "UTC"}, Sorted(s))
	require.Empty(t, Sorted(Set[int]{}))
}
