package partition

import (
	"testing"

	"github.com/notargets/gomesh/flatmesh"
	"github.com/notargets/gomesh/structured"
	"github.com/notargets/gomesh/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatGrid2D(t *testing.T, n int) *flatmesh.Mesh {
	src, err := structured.NewUniform(2, n, 0, float64(n))
	require.NoError(t, err)
	fm, err := flatmesh.New(src)
	require.NoError(t, err)
	return fm
}

func flatGrid3D(t *testing.T, n int) *flatmesh.Mesh {
	src, err := structured.NewUniform(3, n, 0, float64(n))
	require.NoError(t, err)
	fm, err := flatmesh.New(src)
	require.NoError(t, err)
	return fm
}

func TestAssign(t *testing.T) {
	{ // block keeps cells consecutive
		a, err := Assign(10, 3, Block)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1, 1, 2, 2}, a)
	}
	{ // round robin cycles
		a, err := Assign(10, 3, RoundRobin)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 0, 1, 2, 0, 1, 2, 0}, a)
	}
	{
		_, err := Assign(4, 0, Block)
		assert.Error(t, err)
		_, err = Assign(4, 5, Block)
		assert.Error(t, err)
	}
}

func TestSplitGrid2D(t *testing.T) {
	var (
		fm          = flatGrid2D(t, 4) // 16 cells in a 4x4 grid
		layout, err = Split(fm, 4, Block)
	)
	require.NoError(t, err)
	require.Len(t, layout.Pieces, 4)

	{ // every cell is owned by exactly one piece
		ownedTotal := 0
		seen := map[types.GlobalID]bool{}
		for _, pc := range layout.Pieces {
			ownedTotal += pc.Raw.NumOwnedCells
			for l := 0; l < pc.Raw.NumOwnedCells; l++ {
				gid := pc.Raw.CellGlobalIDs[l]
				assert.False(t, seen[gid], "cell %d owned twice", gid)
				seen[gid] = true
			}
		}
		assert.Equal(t, 16, ownedTotal)
	}

	{ // nodes partition the same way
		ownedTotal := 0
		seen := map[types.GlobalID]bool{}
		for _, pc := range layout.Pieces {
			ownedTotal += pc.Raw.NumOwnedNodes
			for l := 0; l < pc.Raw.NumOwnedNodes; l++ {
				gid := pc.Raw.NodeGlobalIDs[l]
				assert.False(t, seen[gid], "node %d owned twice", gid)
				seen[gid] = true
			}
		}
		assert.Equal(t, 25, ownedTotal)
	}

	{ // piece 0 holds row 0 (cells 0..3) plus the node-connected row above
		pc := layout.Pieces[0]
		assert.Equal(t, 4, pc.Raw.NumOwnedCells)
		assert.Equal(t, 8, pc.Raw.NumCells)
		assert.Equal(t,
			[]types.CellID{0, 1, 2, 3, 4, 5, 6, 7}, pc.Cells)
	}

	{ // local queries work against the rebuilt piece
		pc := layout.Pieces[1]
		nodes, err := pc.Mesh.CellNodes(0)
		require.NoError(t, err)
		assert.Len(t, nodes, 4)
		faces, dirs, err := pc.Mesh.CellFacesAndDirs(0)
		require.NoError(t, err)
		assert.Len(t, faces, 4)
		assert.Len(t, dirs, 4)
	}
}

func TestSplitRoundRobin2D(t *testing.T) {
	var (
		fm          = flatGrid2D(t, 3) // 9 cells
		layout, err = Split(fm, 3, RoundRobin)
	)
	require.NoError(t, err)

	stats := layout.Statistics()
	assert.Equal(t, 3, stats.MinCells)
	assert.Equal(t, 3, stats.MaxCells)
	assert.InDelta(t, 1.0, stats.Imbalance, 1e-12)

	// round robin scatters cells, so the ghost layers are wide
	for _, pc := range layout.Pieces {
		assert.Equal(t, 3, pc.Raw.NumOwnedCells)
		assert.Greater(t, pc.Raw.NumCells, pc.Raw.NumOwnedCells)
	}
}

func TestSplitGrid3D(t *testing.T) {
	var (
		fm          = flatGrid3D(t, 2) // 8 hexes
		layout, err = Split(fm, 2, Block)
	)
	require.NoError(t, err)

	{ // faces partition across pieces without double ownership
		seen := map[types.GlobalID]bool{}
		for _, pc := range layout.Pieces {
			for l := 0; l < pc.Raw.NumOwnedFaces; l++ {
				gid := pc.Raw.FaceGlobalIDs[l]
				assert.False(t, seen[gid], "face %d owned twice", gid)
				seen[gid] = true
			}
		}
		assert.Len(t, seen, 36)
	}

	for _, pc := range layout.Pieces {
		assert.Equal(t, 4, pc.Raw.NumOwnedCells)
		// every hex touches every other hex through the center node
		assert.Equal(t, 8, pc.Raw.NumCells)

		// a shared interior face keeps opposite directions in the piece
		refs := map[types.FaceID][2]int{}
		for c := 0; c < pc.Raw.NumCells; c++ {
			start := pc.Raw.CellToFace.Offsets[c]
			for i, f := range pc.Raw.CellToFace.Row(c) {
				r := refs[f]
				r[0]++
				if pc.Raw.CellFaceDirs[start+i] {
					r[1]++
				}
				refs[f] = r
			}
		}
		for f, r := range refs {
			if r[0] == 2 {
				assert.Equal(t, 1, r[1], "face %d dirs must oppose", f)
			}
		}
	}
}

func TestSplitPieceRoundTrip(t *testing.T) {
	// a piece's wire bundle must rebuild into an identical mesh
	var (
		fm          = flatGrid2D(t, 3)
		layout, err = Split(fm, 2, Block)
	)
	require.NoError(t, err)

	pc := layout.Pieces[0]
	back, err := flatmesh.FromRaw(pc.Raw)
	require.NoError(t, err)
	assert.Equal(t, pc.Raw, back.Raw())
}

func TestSplitRejectsGhostedSource(t *testing.T) {
	fm := flatGrid2D(t, 2)
	raw := fm.Raw()
	raw.NumOwnedCells = 2 // pretend half the cells are ghosts
	ghosted, err := flatmesh.FromRaw(raw)
	require.NoError(t, err)

	_, err = Split(ghosted, 2, Block)
	assert.ErrorIs(t, err, types.ErrInvalidOwnershipCount)
}
