package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjacency(t *testing.T) {
	{ // Round trip: decode of entity i yields exactly the input sequence
		relations := [][]int{
			{3, 1, 2},
			{},
			{0},
			{5, 4, 4, 0},
		}
		adj := EncodeAdjacency(relations)
		assert.Equal(t, []int{0, 3, 3, 4, 8}, adj.Offsets)
		assert.Equal(t, 4, adj.NumRows())
		for i, rel := range relations {
			assert.Equal(t, len(rel), adj.RowLen(i))
			if len(rel) == 0 {
				assert.Empty(t, adj.Row(i))
			} else {
				assert.Equal(t, rel, adj.Row(i))
			}
		}
		require.NoError(t, adj.Validate(6))
		assert.Error(t, adj.Validate(5)) // value 5 now out of range
	}
	{ // Empty input encodes to offsets = [0]
		adj := EncodeAdjacency([][]int{})
		assert.Equal(t, []int{0}, adj.Offsets)
		assert.Equal(t, 0, adj.NumRows())
		assert.NoError(t, adj.Validate(0))
	}
	{ // Offsets are an exclusive scan of counts
		offsets := ComputeOffsets([]int{4, 0, 2, 1})
		assert.Equal(t, []int{0, 4, 4, 6, 7}, offsets)
		assert.Equal(t, []int{0}, ComputeOffsets(nil))
	}
	{ // Counts form agrees with the slice-of-slices form
		counts := []int{2, 3}
		values := []int{7, 8, 0, 1, 2}
		adj, err := AdjacencyFromCounts(counts, values)
		require.NoError(t, err)
		assert.Equal(t, []int{7, 8}, adj.Row(0))
		assert.Equal(t, []int{0, 1, 2}, adj.Row(1))

		_, err = AdjacencyFromCounts([]int{3}, values)
		assert.Error(t, err)
	}
	{ // Deep copy shares no storage
		adj := EncodeAdjacency([][]int{{1, 2}, {3}})
		cp := adj.Copy()
		cp.Values[0] = 99
		assert.Equal(t, 1, adj.Values[0])
	}
	{ // Determinism: same input twice yields identical encodings
		relations := [][]int{{9, 4}, {4, 9, 1}}
		a, b := EncodeAdjacency(relations), EncodeAdjacency(relations)
		assert.Equal(t, a.Offsets, b.Offsets)
		assert.Equal(t, a.Values, b.Values)
	}
}
