package random

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShufflePreservesElements(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := make([]int, len(in))
	copy(out, in)
	require.NoError(t, Shuffle(out))

	seen := map[int]bool{}
	for _, v := range out {
		seen[v] = true
	}
	require.Len(t, seen, len(in))
}

func TestSampleDistinctSubset(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}
	got, err := Sample(pool, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	members := map[string]bool{}
	for _, v := range pool {
		members[v] = true
	}
	seen := map[string]bool{}
	for _, v := range got {
		require.True(t, members[v], "sampled value %q not in pool", v)
		require.False(t, seen[v], "duplicate %q in sample", v)
		seen[v] = true
	}
}

func TestSampleWholePool(t *testing.T) {
	pool := []string{"a", "b"}
	got, err := Sample(pool, 2)
	require.NoError(t, err)
	require.ElementsMatch(t, pool, got)
}

func TestSampleDoesNotMutateInput(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}
	snapshot := append([]string(nil), pool...)
	_, err := Sample(pool, 2)
	require.NoError(t, err)
	require.Equal(t, snapshot, pool)
}

func TestSampleOutOfRange(t *testing.T) {
	_, err := Sample([]string{"a"}, 2)
	require.Error(t, err)
	_, err = Sample([]string{"a"}, -1)
	require.Error(t, err)
}

func TestSampleZero(t *testing.T) {
	got, err := Sample([]string{"a", "b"}, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}
