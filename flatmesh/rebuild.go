package flatmesh

import (
	"fmt"

	"github.com/notargets/gomesh/types"
	"github.com/notargets/gomesh/utils"
)

/*
Rebuild recomputes every derived adjacency from the current raw relations.
In 2D the raw relation is the per-cell node polygon: the face set, cell-face
lists with orientation, face-node lists and the owned-face count are all
synthesized here. In 3D the raw relations are cell-face (with orientation)
and face-node: the cell-node union and face reference counts are derived.
Node-cell inversion and full invariant validation run in both cases.

Rebuild is the finish step after construction and after a caller splices in
externally computed relations or new ownership counts via Restore. It never
patches incrementally - all derived arrays are rebuilt from scratch - and on
failure the mesh must be treated as invalid for querying.
*/
func (fm *Mesh) Rebuild() (err error) {
	if err = fm.validateCounts(); err != nil {
		return
	}
	switch fm.dim {
	case 2:
		err = fm.buildFaces2D()
	case 3:
		err = fm.deriveCellNodes3D()
	default:
		err = fmt.Errorf("space dimension %d: %w", fm.dim, types.ErrDimensionMismatch)
	}
	if err != nil {
		return
	}
	if err = fm.invertNodeCells(); err != nil {
		return
	}
	return fm.validate()
}

// buildFaces2D synthesizes the face set from the cell node polygons. Each
// consecutive node pair of a cell, wrapping at the end, is an edge; the
// canonical unordered key detects the second cell referencing a shared edge.
// Face indices are assigned in first-discovery order, and the node order
// first encountered becomes the face's stored orientation, so the discovering
// cell gets direction true and the opposite cell direction false.
func (fm *Mesh) buildFaces2D() (err error) {
	var (
		numValues  = len(fm.cellToNode.Values)
		cellFaces  = make([]types.FaceID, 0, numValues)
		dirs       = make([]bool, 0, numValues)
		faceNodes  = make([]types.NodeID, 0, numValues) // slight underestimate
		faceOfKey  = map[types.FaceKey]types.FaceID{}
		refCounts  = make([]int, 0, numValues/2)
		facecount  = 0
		ownedFaces = 0
	)
	if fm.cellToNode.NumRows() != fm.numCells {
		return fmt.Errorf("cell-node relation covers %d of %d cells", fm.cellToNode.NumRows(), fm.numCells)
	}
	for c := 0; c < fm.numCells; c++ {
		polygon := fm.cellToNode.Row(c)
		if len(polygon) == 0 {
			return fmt.Errorf("cell %d has no nodes: %w", c, types.ErrDegenerateEntity)
		}
		for i, n0 := range polygon {
			n1 := polygon[(i+1)%len(polygon)]
			key := types.NewFaceKey([2]types.NodeID{n0, n1})
			face, ok := faceOfKey[key]
			if !ok {
				face = types.FaceID(facecount)
				faceOfKey[key] = face
				faceNodes = append(faceNodes, n0, n1)
				refCounts = append(refCounts, 0)
				facecount++
			}
			refCounts[face]++
			if refCounts[face] > 2 {
				return fmt.Errorf("face (%d,%d) referenced by more than two cells: %w",
					n0, n1, types.ErrNonManifoldFace)
			}
			cellFaces = append(cellFaces, face)
			dirs = append(dirs, n0 == faceNodes[2*face])
		}
		if c == fm.numOwnedCells-1 {
			ownedFaces = facecount
		}
	}

	// Cell-face rows mirror the cell-node rows: one edge per polygon node
	fm.cellToFace = utils.Adjacency[types.FaceID]{
		Offsets: fm.cellToNode.Offsets,
		Values:  cellFaces,
	}
	fm.cellFaceDirs = dirs

	faceCounts := make([]int, facecount)
	for f := range faceCounts {
		faceCounts[f] = 2
	}
	if fm.faceToNode, err = utils.AdjacencyFromCounts(faceCounts, faceNodes); err != nil {
		return
	}
	fm.numFaces = facecount
	fm.numOwnedFaces = ownedFaces
	fm.faceGlobalIDs = nil
	return
}

// deriveCellNodes3D rebuilds each cell's node list as the union of the node
// sets of its bounding faces, duplicates elided, in first-seen order across
// the cell's face list. 3D cells need not expose a single node cycle, so no
// canonical polygon order exists to preserve.
func (fm *Mesh) deriveCellNodes3D() error {
	if fm.cellToFace.NumRows() != fm.numCells {
		return fmt.Errorf("cell-face relation covers %d of %d cells", fm.cellToFace.NumRows(), fm.numCells)
	}
	if fm.faceToNode.NumRows() != fm.numFaces {
		return fmt.Errorf("face-node relation covers %d of %d faces", fm.faceToNode.NumRows(), fm.numFaces)
	}
	for f := 0; f < fm.faceToNode.NumRows(); f++ {
		if fm.faceToNode.RowLen(f) < 2 {
			return fmt.Errorf("face %d has %d nodes: %w",
				f, fm.faceToNode.RowLen(f), types.ErrDegenerateEntity)
		}
	}

	refCounts := make([]int, fm.numFaces)
	for _, f := range fm.cellToFace.Values {
		if int(f) < 0 || int(f) >= fm.numFaces {
			return fmt.Errorf("face %d of %d: %w", f, fm.numFaces, types.ErrIndexOutOfRange)
		}
		refCounts[f]++
		if refCounts[f] > 2 {
			return fmt.Errorf("face %d referenced by %d cells: %w",
				f, refCounts[f], types.ErrNonManifoldFace)
		}
	}

	cellNodes := make([][]types.NodeID, fm.numCells)
	seen := map[types.NodeID]struct{}{}
	for c := 0; c < fm.numCells; c++ {
		clear(seen)
		for _, f := range fm.cellToFace.Row(c) {
			for _, n := range fm.faceToNode.Row(int(f)) {
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				cellNodes[c] = append(cellNodes[c], n)
			}
		}
		if len(cellNodes[c]) == 0 {
			return fmt.Errorf("cell %d has no nodes: %w", c, types.ErrDegenerateEntity)
		}
	}
	fm.cellToNode = utils.EncodeAdjacency(cellNodes)
	return nil
}

// invertNodeCells builds the reverse node-cell map for owned nodes only -
// ghost nodes are resolved on the partition that owns them. Rows come out in
// ascending cell order because cells are visited in index order.
func (fm *Mesh) invertNodeCells() error {
	rows := make([][]types.CellID, fm.numOwnedNodes)
	for c := 0; c < fm.cellToNode.NumRows(); c++ {
		for _, n := range fm.cellToNode.Row(c) {
			if int(n) < 0 || int(n) >= fm.numNodes {
				return fmt.Errorf("node %d of %d: %w", n, fm.numNodes, types.ErrIndexOutOfRange)
			}
			if int(n) >= fm.numOwnedNodes {
				continue
			}
			if k := len(rows[n]); k > 0 && rows[n][k-1] == types.CellID(c) {
				continue
			}
			rows[n] = append(rows[n], types.CellID(c))
		}
	}
	fm.nodeToCell = utils.EncodeAdjacency(rows)
	return nil
}

// validateCounts checks the ownership thresholds. It runs before derivation
// because the reconstructor sizes reverse maps from the owned counts.
func (fm *Mesh) validateCounts() error {
	switch {
	case fm.numOwnedCells < 0 || fm.numOwnedCells > fm.numCells:
		return fmt.Errorf("%d owned of %d cells: %w",
			fm.numOwnedCells, fm.numCells, types.ErrInvalidOwnershipCount)
	// 2D face counts are derived during rebuild, not checked as input
	case fm.dim == 3 && (fm.numOwnedFaces < 0 || fm.numOwnedFaces > fm.numFaces):
		return fmt.Errorf("%d owned of %d faces: %w",
			fm.numOwnedFaces, fm.numFaces, types.ErrInvalidOwnershipCount)
	case fm.numOwnedNodes < 0 || fm.numOwnedNodes > fm.numNodes:
		return fmt.Errorf("%d owned of %d nodes: %w",
			fm.numOwnedNodes, fm.numNodes, types.ErrInvalidOwnershipCount)
	}
	return nil
}

// validate re-verifies every structural invariant before the mesh is
// considered fit for querying
func (fm *Mesh) validate() error {
	if err := fm.validateCounts(); err != nil {
		return err
	}

	if len(fm.coords) != fm.numNodes*fm.dim {
		return fmt.Errorf("%d coordinates for %d nodes of dimension %d: %w",
			len(fm.coords), fm.numNodes, fm.dim, types.ErrDimensionMismatch)
	}

	if fm.cellToNode.NumRows() != fm.numCells {
		return fmt.Errorf("cell-node relation covers %d of %d cells", fm.cellToNode.NumRows(), fm.numCells)
	}
	if err := fm.cellToNode.Validate(fm.numNodes); err != nil {
		return fmt.Errorf("cell-node relation: %w", err)
	}
	if fm.cellToFace.NumRows() != fm.numCells {
		return fmt.Errorf("cell-face relation covers %d of %d cells", fm.cellToFace.NumRows(), fm.numCells)
	}
	if err := fm.cellToFace.Validate(fm.numFaces); err != nil {
		return fmt.Errorf("cell-face relation: %w", err)
	}
	if len(fm.cellFaceDirs) != len(fm.cellToFace.Values) {
		return fmt.Errorf("%d direction flags for %d cell-face references",
			len(fm.cellFaceDirs), len(fm.cellToFace.Values))
	}
	if fm.faceToNode.NumRows() != fm.numFaces {
		return fmt.Errorf("face-node relation covers %d of %d faces", fm.faceToNode.NumRows(), fm.numFaces)
	}
	if err := fm.faceToNode.Validate(fm.numNodes); err != nil {
		return fmt.Errorf("face-node relation: %w", err)
	}
	if fm.nodeToCell.NumRows() != fm.numOwnedNodes {
		return fmt.Errorf("node-cell relation covers %d of %d owned nodes",
			fm.nodeToCell.NumRows(), fm.numOwnedNodes)
	}
	if err := fm.nodeToCell.Validate(fm.numCells); err != nil {
		return fmt.Errorf("node-cell relation: %w", err)
	}

	// Every face must be referenced by at least one cell
	referenced := make([]bool, fm.numFaces)
	for _, f := range fm.cellToFace.Values {
		referenced[f] = true
	}
	for f, ok := range referenced {
		if !ok {
			return fmt.Errorf("face %d referenced by no cell", f)
		}
	}

	if len(fm.cellGlobalIDs) != fm.numCells {
		return fmt.Errorf("%d global ids for %d cells", len(fm.cellGlobalIDs), fm.numCells)
	}
	if len(fm.nodeGlobalIDs) != fm.numNodes {
		return fmt.Errorf("%d global ids for %d nodes", len(fm.nodeGlobalIDs), fm.numNodes)
	}
	if fm.dim == 3 && len(fm.faceGlobalIDs) != fm.numFaces {
		return fmt.Errorf("%d global ids for %d faces", len(fm.faceGlobalIDs), fm.numFaces)
	}
	return nil
}
