/*
Package auxmesh layers derived queries on top of a flattened mesh without
touching the core arrays: cell neighbor lists, the boundary face set, and the
mesh bounding box. It holds a reference to the flat mesh - not a copy - so it
must be rebuilt whenever the underlying mesh is.
*/
package auxmesh

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"

	"github.com/notargets/gomesh/flatmesh"
	"github.com/notargets/gomesh/geometry"
	"github.com/notargets/gomesh/types"
	"github.com/notargets/gomesh/utils"
)

type Topology struct {
	fm *flatmesh.Mesh

	cellToCell    utils.Adjacency[types.CellID]
	boundaryFaces []types.FaceID
}

// New derives the auxiliary topology from fm. Two cells are neighbors when
// they reference a common face, found by multiplying the cell-face incidence
// matrix with its transpose: entry (c1,c2) counts shared faces.
func New(fm *flatmesh.Mesh) (at *Topology, err error) {
	at = &Topology{fm: fm}

	var (
		numCells = fm.NumOwnedCells() + fm.NumGhostCells()
		numFaces = fm.NumOwnedFaces() + fm.NumGhostFaces()
	)
	if numCells == 0 {
		at.cellToCell = utils.EncodeAdjacency([][]types.CellID{})
		return
	}

	incidence := sparse.NewDOK(numCells, numFaces)
	refs := make([]int, numFaces)
	for c := 0; c < numCells; c++ {
		faces, _, err := fm.CellFacesAndDirs(types.CellID(c))
		if err != nil {
			return nil, fmt.Errorf("cell %d faces: %w", c, err)
		}
		for _, f := range faces {
			incidence.Set(c, int(f), 1)
			refs[f]++
		}
	}

	for f, count := range refs {
		if count == 1 {
			at.boundaryFaces = append(at.boundaryFaces, types.FaceID(f))
		}
	}

	shared := sparse.NewCSR(numCells, numCells, nil, nil, nil)
	csr := incidence.ToCSR()
	shared.Mul(csr, csr.T())

	neighbors := make([][]types.CellID, numCells)
	shared.DoNonZero(func(c1, c2 int, v float64) {
		if c1 != c2 && v > 0 {
			neighbors[c1] = append(neighbors[c1], types.CellID(c2))
		}
	})
	for _, row := range neighbors {
		sort.Slice(row, func(i, j int) bool { return row[i] < row[j] })
	}
	at.cellToCell = utils.EncodeAdjacency(neighbors)
	return
}

// Mesh is the flattened mesh this topology decorates
func (at *Topology) Mesh() *flatmesh.Mesh { return at.fm }

// CellCells returns the cells sharing a face with cell c, ascending. The
// slice aliases internal storage.
func (at *Topology) CellCells(c types.CellID) ([]types.CellID, error) {
	if !at.cellToCell.InRange(int(c)) {
		return nil, fmt.Errorf("cell %d of %d: %w",
			c, at.cellToCell.NumRows(), types.ErrIndexOutOfRange)
	}
	return at.cellToCell.Row(int(c)), nil
}

// BoundaryFaces returns the faces referenced by exactly one cell, ascending
func (at *Topology) BoundaryFaces() []types.FaceID {
	return at.boundaryFaces
}

// BoundingBox spans all nodes of the mesh, owned and ghost
func (at *Topology) BoundingBox() (bb geometry.BoundingBox, err error) {
	bb = geometry.NewBoundingBox(at.fm.SpaceDimension())
	numNodes := at.fm.NumOwnedNodes() + at.fm.NumGhostNodes()
	for n := 0; n < numNodes; n++ {
		p, err := at.fm.NodeCoordinates(types.NodeID(n))
		if err != nil {
			return bb, err
		}
		bb.Expand(p)
	}
	return
}
