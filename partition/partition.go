/*
Package partition splits a flattened mesh into per-rank pieces. Each piece is
an owned-first local mesh: the cells assigned to the rank come first, followed
by one layer of node-connected ghost cells from neighboring ranks. The piece
is emitted as a raw wire bundle so a receiving rank can rebuild it with
flatmesh.FromRaw.
*/
package partition

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/gomesh/flatmesh"
	"github.com/notargets/gomesh/types"
	"github.com/notargets/gomesh/utils"
)

// Strategy defines how cells are grouped into parts
type Strategy int

const (
	Block      Strategy = iota // Consecutive cells
	RoundRobin                 // Distribute cyclically
)

func (s Strategy) String() string {
	switch s {
	case Block:
		return "block"
	case RoundRobin:
		return "round-robin"
	default:
		return "unknown"
	}
}

// Piece is the local mesh handed to one rank
type Piece struct {
	Part int

	// Global cell indices in local order, owned cells first
	Cells []types.CellID

	Raw  flatmesh.RawTopology
	Mesh *flatmesh.Mesh
}

// Layout holds the full decomposition of a source mesh
type Layout struct {
	NumParts   int
	CellToPart []int
	Pieces     []Piece
}

// Stats reports load balance across the pieces
type Stats struct {
	NumParts  int
	MinCells  int
	MaxCells  int
	AvgCells  float64
	Imbalance float64 // MaxCells / AvgCells
}

// Assign maps each cell to a part
func Assign(numCells, numParts int, strategy Strategy) (cellToPart []int, err error) {
	if numParts < 1 {
		return nil, fmt.Errorf("need at least one part, got %d", numParts)
	}
	if numParts > numCells {
		return nil, fmt.Errorf("%d parts exceeds %d cells", numParts, numCells)
	}
	cellToPart = make([]int, numCells)
	switch strategy {
	case Block:
		perPart := int(math.Ceil(float64(numCells) / float64(numParts)))
		for c := range cellToPart {
			cellToPart[c] = c / perPart
			if cellToPart[c] >= numParts {
				cellToPart[c] = numParts - 1
			}
		}
	case RoundRobin:
		for c := range cellToPart {
			cellToPart[c] = c % numParts
		}
	default:
		return nil, fmt.Errorf("unknown strategy %d", strategy)
	}
	return
}

// Split decomposes fm into numParts owned-first pieces. The source mesh must
// be fully owned; redistributing an already ghosted mesh is not supported.
func Split(fm *flatmesh.Mesh, numParts int, strategy Strategy) (layout *Layout, err error) {
	raw := fm.Raw()
	if raw.NumCells != raw.NumOwnedCells {
		return nil, fmt.Errorf("%w: source mesh has %d ghost cells",
			types.ErrInvalidOwnershipCount, raw.NumCells-raw.NumOwnedCells)
	}

	cellToPart, err := Assign(raw.NumCells, numParts, strategy)
	if err != nil {
		return nil, err
	}

	layout = &Layout{
		NumParts:   numParts,
		CellToPart: cellToPart,
		Pieces:     make([]Piece, numParts),
	}

	idx := newGlobalIndex(&raw, cellToPart)
	for p := 0; p < numParts; p++ {
		if layout.Pieces[p], err = extract(&raw, idx, cellToPart, p); err != nil {
			return nil, fmt.Errorf("part %d: %w", p, err)
		}
	}
	return layout, nil
}

// Statistics computes load balance metrics over owned cells
func (l *Layout) Statistics() Stats {
	stats := Stats{
		NumParts: l.NumParts,
		MinCells: math.MaxInt,
		AvgCells: float64(len(l.CellToPart)) / float64(l.NumParts),
	}
	for _, pc := range l.Pieces {
		n := pc.Raw.NumOwnedCells
		if n < stats.MinCells {
			stats.MinCells = n
		}
		if n > stats.MaxCells {
			stats.MaxCells = n
		}
	}
	stats.Imbalance = float64(stats.MaxCells) / stats.AvgCells
	return stats
}

/*
globalIndex caches inversions of the source topology shared by every part:
node to incident cells, and the owning part of each node and face. A node or
face is owned by the part of its lowest-numbered incident cell, so exactly one
part owns each entity.
*/
type globalIndex struct {
	nodeCells [][]types.CellID
	nodeOwner []int
	faceOwner []int
}

func newGlobalIndex(raw *flatmesh.RawTopology, cellToPart []int) *globalIndex {
	idx := &globalIndex{
		nodeCells: make([][]types.CellID, raw.NumNodes),
		nodeOwner: make([]int, raw.NumNodes),
		faceOwner: make([]int, raw.NumFaces),
	}
	for n := range idx.nodeOwner {
		idx.nodeOwner[n] = -1
	}
	for c := 0; c < raw.NumCells; c++ {
		for _, n := range raw.CellToNode.Row(c) {
			idx.nodeCells[n] = append(idx.nodeCells[n], types.CellID(c))
			if idx.nodeOwner[n] < 0 {
				idx.nodeOwner[n] = cellToPart[c]
			}
		}
	}
	for f := range idx.faceOwner {
		idx.faceOwner[f] = -1
	}
	for c := 0; c < raw.CellToFace.NumRows(); c++ {
		for _, f := range raw.CellToFace.Row(c) {
			if idx.faceOwner[f] < 0 {
				idx.faceOwner[f] = cellToPart[c]
			}
		}
	}
	return idx
}

func extract(raw *flatmesh.RawTopology, idx *globalIndex, cellToPart []int,
	part int) (pc Piece, err error) {
	pc.Part = part

	// Owned cells in ascending global order, then the ghost layer, found by
	// walking node incidence out from the owned set.
	var owned, ghost []types.CellID
	inGhost := make(map[types.CellID]bool)
	for c := 0; c < raw.NumCells; c++ {
		if cellToPart[c] == part {
			owned = append(owned, types.CellID(c))
		}
	}
	for _, c := range owned {
		for _, n := range raw.CellToNode.Row(int(c)) {
			for _, nbr := range idx.nodeCells[n] {
				if cellToPart[nbr] != part && !inGhost[nbr] {
					inGhost[nbr] = true
					ghost = append(ghost, nbr)
				}
			}
		}
	}
	sort.Slice(ghost, func(i, j int) bool { return ghost[i] < ghost[j] })
	pc.Cells = append(owned, ghost...)

	// Nodes referenced by local cells, owned-first, ascending within each
	// class so the local numbering is reproducible.
	var ownedNodes, ghostNodes []types.NodeID
	seenNode := make(map[types.NodeID]bool)
	for _, c := range pc.Cells {
		for _, n := range raw.CellToNode.Row(int(c)) {
			if seenNode[n] {
				continue
			}
			seenNode[n] = true
			if idx.nodeOwner[n] == part {
				ownedNodes = append(ownedNodes, n)
			} else {
				ghostNodes = append(ghostNodes, n)
			}
		}
	}
	sort.Slice(ownedNodes, func(i, j int) bool { return ownedNodes[i] < ownedNodes[j] })
	sort.Slice(ghostNodes, func(i, j int) bool { return ghostNodes[i] < ghostNodes[j] })
	localNodes := append(ownedNodes, ghostNodes...)
	nodeLocal := make(map[types.NodeID]int, len(localNodes))
	for l, n := range localNodes {
		nodeLocal[n] = l
	}

	out := flatmesh.RawTopology{
		Dim:           raw.Dim,
		NumOwnedCells: len(owned),
		NumCells:      len(pc.Cells),
		NumOwnedNodes: len(ownedNodes),
		NumNodes:      len(localNodes),
	}

	out.Coords = make([]float64, 0, len(localNodes)*raw.Dim)
	out.NodeGlobalIDs = make([]types.GlobalID, len(localNodes))
	for l, n := range localNodes {
		out.Coords = append(out.Coords,
			raw.Coords[int(n)*raw.Dim:(int(n)+1)*raw.Dim]...)
		out.NodeGlobalIDs[l] = raw.NodeGlobalIDs[n]
	}
	out.CellGlobalIDs = make([]types.GlobalID, len(pc.Cells))
	for l, c := range pc.Cells {
		out.CellGlobalIDs[l] = raw.CellGlobalIDs[c]
	}

	if raw.Dim == 2 {
		// The rebuild derives faces from the cell boundary polygons
		rows := make([][]types.NodeID, len(pc.Cells))
		for l, c := range pc.Cells {
			src := raw.CellToNode.Row(int(c))
			row := make([]types.NodeID, len(src))
			for i, n := range src {
				row[i] = types.NodeID(nodeLocal[n])
			}
			rows[l] = row
		}
		out.CellToNode = utils.EncodeAdjacency(rows)
	} else {
		if err = extractFaces3D(raw, idx, &out, pc.Cells, nodeLocal, part); err != nil {
			return
		}
	}

	if pc.Mesh, err = flatmesh.FromRaw(out); err != nil {
		return
	}
	pc.Raw = pc.Mesh.Raw()
	return
}

// extractFaces3D renumbers the faces touched by the local cells, owned first,
// and carries over face node lists and traversal directions.
func extractFaces3D(raw *flatmesh.RawTopology, idx *globalIndex,
	out *flatmesh.RawTopology, cells []types.CellID,
	nodeLocal map[types.NodeID]int, part int) error {

	var ownedFaces, ghostFaces []types.FaceID
	seenFace := make(map[types.FaceID]bool)
	for _, c := range cells {
		for _, f := range raw.CellToFace.Row(int(c)) {
			if seenFace[f] {
				continue
			}
			seenFace[f] = true
			if idx.faceOwner[f] == part {
				ownedFaces = append(ownedFaces, f)
			} else {
				ghostFaces = append(ghostFaces, f)
			}
		}
	}
	sort.Slice(ownedFaces, func(i, j int) bool { return ownedFaces[i] < ownedFaces[j] })
	sort.Slice(ghostFaces, func(i, j int) bool { return ghostFaces[i] < ghostFaces[j] })
	localFaces := append(ownedFaces, ghostFaces...)
	faceLocal := make(map[types.FaceID]int, len(localFaces))
	for l, f := range localFaces {
		faceLocal[f] = l
	}

	out.NumOwnedFaces = len(ownedFaces)
	out.NumFaces = len(localFaces)
	out.FaceGlobalIDs = make([]types.GlobalID, len(localFaces))

	faceRows := make([][]types.NodeID, len(localFaces))
	for l, f := range localFaces {
		out.FaceGlobalIDs[l] = raw.FaceGlobalIDs[f]
		src := raw.FaceToNode.Row(int(f))
		row := make([]types.NodeID, len(src))
		for i, n := range src {
			row[i] = types.NodeID(nodeLocal[n])
		}
		faceRows[l] = row
	}
	out.FaceToNode = utils.EncodeAdjacency(faceRows)

	// Node lists are copied verbatim, so traversal directions carry over
	cellFaceRows := make([][]types.FaceID, len(cells))
	out.CellFaceDirs = make([]bool, 0)
	for l, c := range cells {
		srcFaces := raw.CellToFace.Row(int(c))
		row := make([]types.FaceID, len(srcFaces))
		start := raw.CellToFace.Offsets[int(c)]
		for i, f := range srcFaces {
			row[i] = types.FaceID(faceLocal[f])
			out.CellFaceDirs = append(out.CellFaceDirs, raw.CellFaceDirs[start+i])
		}
		cellFaceRows[l] = row
	}
	out.CellToFace = utils.EncodeAdjacency(cellFaceRows)
	return nil
}
