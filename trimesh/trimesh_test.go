package trimesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomesh/flatmesh"
	"github.com/notargets/gomesh/types"
)

func TestNewReorientsCW(t *testing.T) {
	points := [][2]float64{{0, 0}, {1, 0}, {0, 1}}
	m, err := New(points, [][3]int{{0, 2, 1}}) // clockwise on purpose
	require.NoError(t, err)
	assert.Equal(t, []types.NodeID{0, 1, 2}, m.CellNodes(0))

	_, err = New(points, [][3]int{{0, 1, 3}})
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestDelaunaySquare(t *testing.T) {
	points := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	m, err := NewDelaunay(points)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumOwnedCells())
	assert.Equal(t, 4, m.NumOwnedNodes())

	// Two triangles sharing the diagonal: 5 deduplicated edges
	fm, err := flatmesh.New(m)
	require.NoError(t, err)
	assert.Equal(t, 5, fm.NumOwnedFaces())

	_, err = NewDelaunay(points[:2])
	assert.Error(t, err)
}
