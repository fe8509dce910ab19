package auxmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomesh/flatmesh"
	"github.com/notargets/gomesh/geometry"
	"github.com/notargets/gomesh/structured"
	"github.com/notargets/gomesh/types"
)

func TestCellNeighbors2D(t *testing.T) {
	// 3x3 cell grid: corner cells have 2 neighbors, edge cells 3, center 4
	src, err := structured.NewUniform(2, 3, 0, 1)
	require.NoError(t, err)
	fm, err := flatmesh.New(src)
	require.NoError(t, err)
	at, err := New(fm)
	require.NoError(t, err)

	wantDegrees := []int{2, 3, 2, 3, 4, 3, 2, 3, 2}
	for c, want := range wantDegrees {
		neighbors, err := at.CellCells(types.CellID(c))
		require.NoError(t, err)
		assert.Len(t, neighbors, want, "cell %d", c)
	}

	center, err := at.CellCells(4)
	require.NoError(t, err)
	assert.Equal(t, []types.CellID{1, 3, 5, 7}, center)

	_, err = at.CellCells(9)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestBoundaryFaces(t *testing.T) {
	src, err := structured.NewUniform(2, 2, 0, 1)
	require.NoError(t, err)
	fm, err := flatmesh.New(src)
	require.NoError(t, err)
	at, err := New(fm)
	require.NoError(t, err)

	// 12 edges total, 4 interior
	assert.Len(t, at.BoundaryFaces(), 8)

	bb, err := at.BoundingBox()
	require.NoError(t, err)
	assert.True(t, bb.Min.ApproxEqual(geometry.NewPoint(0, 0), 1.e-14))
	assert.True(t, bb.Max.ApproxEqual(geometry.NewPoint(1, 1), 1.e-14))
}

func TestCellNeighbors3D(t *testing.T) {
	src, err := structured.NewUniform(3, 2, 0, 1)
	require.NoError(t, err)
	fm, err := flatmesh.New(src)
	require.NoError(t, err)
	at, err := New(fm)
	require.NoError(t, err)

	// Every cell of a 2x2x2 grid touches exactly 3 others across faces
	for c := 0; c < 8; c++ {
		neighbors, err := at.CellCells(types.CellID(c))
		require.NoError(t, err)
		assert.Len(t, neighbors, 3, "cell %d", c)
	}

	// 24 of 36 faces lie on the boundary
	assert.Len(t, at.BoundaryFaces(), 24)
	assert.Same(t, fm, at.Mesh())
}
