package structured

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomesh/geometry"
	"github.com/notargets/gomesh/types"
)

func TestMesh2D(t *testing.T) {
	// 2x1 cells on [0,2]x[0,1]
	m, err := New([]float64{0, 1, 2}, []float64{0, 1})
	require.NoError(t, err)

	assert.Equal(t, 2, m.SpaceDimension())
	assert.Equal(t, 2, m.NumOwnedCells())
	assert.Equal(t, 0, m.NumGhostCells())
	assert.Equal(t, 6, m.NumOwnedNodes())
	assert.Equal(t, 0, m.NumOwnedFaces())

	// Node layout: 3 4 5
	//              0 1 2
	assert.Equal(t, []types.NodeID{0, 1, 4, 3}, m.CellNodes(0))
	assert.Equal(t, []types.NodeID{1, 2, 5, 4}, m.CellNodes(1))

	assert.True(t, m.NodeCoordinates(4).ApproxEqual(geometry.NewPoint(1, 1), 1.e-14))
	assert.Equal(t, types.GlobalID(4), m.GlobalID(4, types.NODE))
}

func TestMesh3D(t *testing.T) {
	// Single hex cell
	m, err := NewUniform(3, 1, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, m.NumOwnedCells())
	assert.Equal(t, 8, m.NumOwnedNodes())
	assert.Equal(t, 6, m.NumOwnedFaces())

	faces, dirs := m.CellFacesAndDirs(0)
	require.Len(t, faces, 6)
	assert.Equal(t, []bool{false, true, false, true, false, true}, dirs)
	for _, f := range faces {
		assert.Len(t, m.FaceNodes(f), 4)
	}

	// 2x1x1: the interior x-face is shared with opposite directions
	m, err = New([]float64{0, 1, 2}, []float64{0, 1}, []float64{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumOwnedCells())
	assert.Equal(t, 11, m.NumOwnedFaces()) // 3 x-normal + 4 y-normal + 4 z-normal

	f0, d0 := m.CellFacesAndDirs(0)
	f1, d1 := m.CellFacesAndDirs(1)
	assert.Equal(t, f0[1], f1[0]) // cell 0 xmax == cell 1 xmin
	assert.True(t, d0[1])
	assert.False(t, d1[0])
}

func TestMeshErrors(t *testing.T) {
	_, err := New([]float64{0, 1})
	assert.ErrorIs(t, err, types.ErrDimensionMismatch)

	_, err = New([]float64{0, 1}, []float64{0})
	assert.Error(t, err)

	_, err = New([]float64{0, 1}, []float64{1, 0})
	assert.Error(t, err)

	_, err = NewUniform(2, 0, 0, 1)
	assert.Error(t, err)
}
