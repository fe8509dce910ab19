package flatmesh

import (
	"github.com/notargets/gomesh/types"
	"github.com/notargets/gomesh/utils"
)

/*
RawTopology is the relocatable wire format of a flattened mesh: a
self-describing bundle of plain arrays that can be copied verbatim across a
process boundary. It is a value type - taking one never hands out live
handles into a Mesh's internal storage, so in-flight queries cannot observe a
splice in progress.

After a distribution step a caller fills in the raw relations (2D: cell-node
polygons; 3D: cell-face with directions and face-node), coordinates, global
ids and ownership counts, and installs the bundle with Restore; the derived
relations are recomputed there, so they may be left empty.
*/
type RawTopology struct {
	Dim int

	NumOwnedCells, NumCells int
	NumOwnedFaces, NumFaces int
	NumOwnedNodes, NumNodes int

	Coords []float64

	CellToNode   utils.Adjacency[types.NodeID]
	CellToFace   utils.Adjacency[types.FaceID]
	CellFaceDirs []bool
	FaceToNode   utils.Adjacency[types.NodeID]
	NodeToCell   utils.Adjacency[types.CellID]

	CellGlobalIDs []types.GlobalID
	FaceGlobalIDs []types.GlobalID
	NodeGlobalIDs []types.GlobalID
}

// Raw snapshots the complete topology as a deep copy
func (fm *Mesh) Raw() (raw RawTopology) {
	raw = RawTopology{
		Dim:           fm.dim,
		NumOwnedCells: fm.numOwnedCells,
		NumCells:      fm.numCells,
		NumOwnedFaces: fm.numOwnedFaces,
		NumFaces:      fm.numFaces,
		NumOwnedNodes: fm.numOwnedNodes,
		NumNodes:      fm.numNodes,
		Coords:        append([]float64(nil), fm.coords...),
		CellToNode:    fm.cellToNode.Copy(),
		CellToFace:    fm.cellToFace.Copy(),
		CellFaceDirs:  append([]bool(nil), fm.cellFaceDirs...),
		FaceToNode:    fm.faceToNode.Copy(),
		NodeToCell:    fm.nodeToCell.Copy(),
		CellGlobalIDs: append([]types.GlobalID(nil), fm.cellGlobalIDs...),
		NodeGlobalIDs: append([]types.GlobalID(nil), fm.nodeGlobalIDs...),
	}
	if fm.faceGlobalIDs != nil {
		raw.FaceGlobalIDs = append([]types.GlobalID(nil), fm.faceGlobalIDs...)
	}
	return
}

// FromRaw builds a mesh from a wire bundle, rederiving and validating all
// topology before it is exposed
func FromRaw(raw RawTopology) (fm *Mesh, err error) {
	fm = &Mesh{}
	if err = fm.install(raw); err != nil {
		return nil, err
	}
	return
}

// Restore splices a wire bundle into an existing mesh. The mesh is replaced
// atomically on success and left untouched on failure, so a failed splice
// never exposes a partial topology.
func (fm *Mesh) Restore(raw RawTopology) error {
	var tmp Mesh
	if err := tmp.install(raw); err != nil {
		return err
	}
	*fm = tmp
	return nil
}

func (fm *Mesh) install(raw RawTopology) error {
	fm.dim = raw.Dim
	fm.numOwnedCells, fm.numCells = raw.NumOwnedCells, raw.NumCells
	fm.numOwnedFaces, fm.numFaces = raw.NumOwnedFaces, raw.NumFaces
	fm.numOwnedNodes, fm.numNodes = raw.NumOwnedNodes, raw.NumNodes
	fm.coords = append([]float64(nil), raw.Coords...)
	fm.cellToNode = raw.CellToNode.Copy()
	fm.cellToFace = raw.CellToFace.Copy()
	fm.cellFaceDirs = append([]bool(nil), raw.CellFaceDirs...)
	fm.faceToNode = raw.FaceToNode.Copy()
	fm.nodeToCell = raw.NodeToCell.Copy()
	fm.cellGlobalIDs = append([]types.GlobalID(nil), raw.CellGlobalIDs...)
	fm.nodeGlobalIDs = append([]types.GlobalID(nil), raw.NodeGlobalIDs...)
	if raw.FaceGlobalIDs != nil {
		fm.faceGlobalIDs = append([]types.GlobalID(nil), raw.FaceGlobalIDs...)
	} else {
		fm.faceGlobalIDs = nil
	}
	return fm.Rebuild()
}
