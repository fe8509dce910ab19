/*
Package flatmesh converts a mesh reachable only through method-style queries
into dense array-based storage of its complete topology. All forward and
reverse adjacency relations (cell-node, cell-face, face-node, node-cell) are
held in offset-delimited flat arrays, shared faces are deduplicated with
consistent per-cell orientation flags, and entities are partitioned
owned-first so ownership is a threshold count rather than a flag array.

A Mesh is built once from a source snapshot and is read-only afterward; after
ownership or raw relations change (e.g. following a redistribution step,
spliced in via Restore) the derived relations are recomputed wholesale with
Rebuild. Rebuild must not run concurrently with queries - exclusive access is
the caller's responsibility.
*/
package flatmesh

import (
	"fmt"

	"github.com/notargets/gomesh/geometry"
	"github.com/notargets/gomesh/mesh"
	"github.com/notargets/gomesh/types"
	"github.com/notargets/gomesh/utils"
)

type Mesh struct {
	dim int

	numCells, numFaces, numNodes                int
	numOwnedCells, numOwnedFaces, numOwnedNodes int

	// Node coordinates, flat with stride dim
	coords []float64

	// Forward and reverse adjacency. In 2D cellToFace, cellFaceDirs,
	// faceToNode and the face count are derived by edge synthesis; in 3D
	// cellToNode is derived from the face node sets. nodeToCell covers owned
	// nodes only.
	cellToNode   utils.Adjacency[types.NodeID]
	cellToFace   utils.Adjacency[types.FaceID]
	cellFaceDirs []bool // aligned with cellToFace.Values
	faceToNode   utils.Adjacency[types.NodeID]
	nodeToCell   utils.Adjacency[types.CellID]

	cellGlobalIDs []types.GlobalID
	faceGlobalIDs []types.GlobalID // nil in 2D: cell edges carry no global ids
	nodeGlobalIDs []types.GlobalID
}

// New flattens a snapshot of src. Everything needed is copied out of src
// during the call; the returned Mesh holds no reference back into it. A nil
// Mesh is returned on any invariant violation - partial topologies are never
// exposed.
func New(src mesh.Mesh) (fm *Mesh, err error) {
	fm = &Mesh{dim: src.SpaceDimension()}
	if fm.dim != 2 && fm.dim != 3 {
		return nil, fmt.Errorf("space dimension %d: %w", fm.dim, types.ErrDimensionMismatch)
	}

	fm.numOwnedCells = src.NumOwnedCells()
	fm.numCells = fm.numOwnedCells + src.NumGhostCells()
	fm.numOwnedNodes = src.NumOwnedNodes()
	fm.numNodes = fm.numOwnedNodes + src.NumGhostNodes()
	if fm.dim == 3 {
		fm.numOwnedFaces = src.NumOwnedFaces()
		fm.numFaces = fm.numOwnedFaces + src.NumGhostFaces()
	}

	// Node coordinates and global ids
	fm.coords = make([]float64, 0, fm.numNodes*fm.dim)
	fm.nodeGlobalIDs = make([]types.GlobalID, fm.numNodes)
	for n := 0; n < fm.numNodes; n++ {
		fm.coords = append(fm.coords, src.NodeCoordinates(types.NodeID(n))...)
		fm.nodeGlobalIDs[n] = src.GlobalID(n, types.NODE)
	}

	// Cell global ids and the source's cell node lists, copied in both
	// dimensions. In 2D these are the polygons everything else derives
	// from; in 3D the rebuild replaces them with the union over face
	// node sets.
	fm.cellGlobalIDs = make([]types.GlobalID, fm.numCells)
	cellNodes := make([][]types.NodeID, fm.numCells)
	for c := 0; c < fm.numCells; c++ {
		fm.cellGlobalIDs[c] = src.GlobalID(c, types.CELL)
		cellNodes[c] = append([]types.NodeID(nil), src.CellNodes(types.CellID(c))...)
	}
	fm.cellToNode = utils.EncodeAdjacency(cellNodes)

	if fm.dim == 3 {
		// Raw cell face lists with orientation, and raw face node lists
		cellFaces := make([][]types.FaceID, fm.numCells)
		fm.cellFaceDirs = fm.cellFaceDirs[:0]
		for c := 0; c < fm.numCells; c++ {
			faces, dirs := src.CellFacesAndDirs(types.CellID(c))
			cellFaces[c] = append([]types.FaceID(nil), faces...)
			fm.cellFaceDirs = append(fm.cellFaceDirs, dirs...)
		}
		fm.cellToFace = utils.EncodeAdjacency(cellFaces)

		faceNodes := make([][]types.NodeID, fm.numFaces)
		fm.faceGlobalIDs = make([]types.GlobalID, fm.numFaces)
		for f := 0; f < fm.numFaces; f++ {
			faceNodes[f] = append([]types.NodeID(nil), src.FaceNodes(types.FaceID(f))...)
			fm.faceGlobalIDs[f] = src.GlobalID(f, types.FACE)
		}
		fm.faceToNode = utils.EncodeAdjacency(faceNodes)
	}

	if err = fm.Rebuild(); err != nil {
		return nil, err
	}
	return
}

// SpaceDimension is the coordinate dimension, 2 or 3
func (fm *Mesh) SpaceDimension() int { return fm.dim }

func (fm *Mesh) NumOwnedCells() int { return fm.numOwnedCells }
func (fm *Mesh) NumGhostCells() int { return fm.numCells - fm.numOwnedCells }
func (fm *Mesh) NumOwnedFaces() int { return fm.numOwnedFaces }
func (fm *Mesh) NumGhostFaces() int { return fm.numFaces - fm.numOwnedFaces }
func (fm *Mesh) NumOwnedNodes() int { return fm.numOwnedNodes }
func (fm *Mesh) NumGhostNodes() int { return fm.numNodes - fm.numOwnedNodes }

// CellType classifies cell c as OWNED or GHOST
func (fm *Mesh) CellType(c types.CellID) (types.EntityType, error) {
	if int(c) < 0 || int(c) >= fm.numCells {
		return 0, fmt.Errorf("cell %d of %d: %w", c, fm.numCells, types.ErrIndexOutOfRange)
	}
	return types.TypeOf(int(c), fm.numOwnedCells), nil
}

// FaceType classifies face f as OWNED or GHOST
func (fm *Mesh) FaceType(f types.FaceID) (types.EntityType, error) {
	if int(f) < 0 || int(f) >= fm.numFaces {
		return 0, fmt.Errorf("face %d of %d: %w", f, fm.numFaces, types.ErrIndexOutOfRange)
	}
	return types.TypeOf(int(f), fm.numOwnedFaces), nil
}

// NodeType classifies node n as OWNED or GHOST
func (fm *Mesh) NodeType(n types.NodeID) (types.EntityType, error) {
	if int(n) < 0 || int(n) >= fm.numNodes {
		return 0, fmt.Errorf("node %d of %d: %w", n, fm.numNodes, types.ErrIndexOutOfRange)
	}
	return types.TypeOf(int(n), fm.numOwnedNodes), nil
}

// NodeCoordinates returns the position of node n as a copy
func (fm *Mesh) NodeCoordinates(n types.NodeID) (p geometry.Point, err error) {
	if int(n) < 0 || int(n) >= fm.numNodes {
		return nil, fmt.Errorf("node %d of %d: %w", n, fm.numNodes, types.ErrIndexOutOfRange)
	}
	p = make(geometry.Point, fm.dim)
	copy(p, fm.coords[int(n)*fm.dim:(int(n)+1)*fm.dim])
	return
}

// CellNodes returns the ordered bounding nodes of cell c. The slice aliases
// internal storage and must not be mutated or retained across a Rebuild.
func (fm *Mesh) CellNodes(c types.CellID) ([]types.NodeID, error) {
	if !fm.cellToNode.InRange(int(c)) {
		return nil, fmt.Errorf("cell %d of %d: %w", c, fm.numCells, types.ErrIndexOutOfRange)
	}
	return fm.cellToNode.Row(int(c)), nil
}

// CellFacesAndDirs returns the ordered bounding faces of cell c with one
// direction flag per face: true when the face's stored node order agrees
// with the cell's traversal order. Slices alias internal storage.
func (fm *Mesh) CellFacesAndDirs(c types.CellID) ([]types.FaceID, []bool, error) {
	if !fm.cellToFace.InRange(int(c)) {
		return nil, nil, fmt.Errorf("cell %d of %d: %w", c, fm.numCells, types.ErrIndexOutOfRange)
	}
	lo, hi := fm.cellToFace.Offsets[int(c)], fm.cellToFace.Offsets[int(c)+1]
	return fm.cellToFace.Values[lo:hi], fm.cellFaceDirs[lo:hi], nil
}

// FaceNodes returns the ordered bounding nodes of face f in the face's
// canonical stored orientation. The slice aliases internal storage.
func (fm *Mesh) FaceNodes(f types.FaceID) ([]types.NodeID, error) {
	if !fm.faceToNode.InRange(int(f)) {
		return nil, fmt.Errorf("face %d of %d: %w", f, fm.numFaces, types.ErrIndexOutOfRange)
	}
	return fm.faceToNode.Row(int(f)), nil
}

// NodeCells returns the cells adjacent to owned node n, in ascending cell
// order, filtered by filter (OWNED, GHOST or ALL). Ghost nodes carry no
// reverse map, so querying one is out of range. The ALL result aliases
// internal storage; filtered results are fresh slices.
func (fm *Mesh) NodeCells(n types.NodeID, filter types.EntityType) ([]types.CellID, error) {
	if !fm.nodeToCell.InRange(int(n)) {
		return nil, fmt.Errorf("owned node %d of %d: %w", n, fm.numOwnedNodes, types.ErrIndexOutOfRange)
	}
	row := fm.nodeToCell.Row(int(n))
	if filter == types.ALL {
		return row, nil
	}
	cells := make([]types.CellID, 0, len(row))
	for _, c := range row {
		if types.TypeOf(int(c), fm.numOwnedCells) == filter {
			cells = append(cells, c)
		}
	}
	return cells, nil
}

// CellCoordinates returns the positions of the bounding nodes of cell c in
// cell node order
func (fm *Mesh) CellCoordinates(c types.CellID) (pts []geometry.Point, err error) {
	nodes, err := fm.CellNodes(c)
	if err != nil {
		return nil, err
	}
	pts = make([]geometry.Point, len(nodes))
	for i, n := range nodes {
		if pts[i], err = fm.NodeCoordinates(n); err != nil {
			return nil, err
		}
	}
	return
}

// GlobalID returns the stable external id of entity i of the given kind.
// 2D faces are synthesized locally and carry no global ids.
func (fm *Mesh) GlobalID(i int, kind types.EntityKind) (types.GlobalID, error) {
	var ids []types.GlobalID
	switch kind {
	case types.CELL:
		ids = fm.cellGlobalIDs
	case types.FACE:
		ids = fm.faceGlobalIDs
	case types.NODE:
		ids = fm.nodeGlobalIDs
	default:
		return 0, fmt.Errorf("unknown entity kind %d: %w", kind, types.ErrIndexOutOfRange)
	}
	if i < 0 || i >= len(ids) {
		return 0, fmt.Errorf("%s %d of %d: %w", kind, i, len(ids), types.ErrIndexOutOfRange)
	}
	return ids[i], nil
}
