/*
Package mesh defines the query contract a concrete mesh must expose to be
flattened. Any representation works - structured grids, Delaunay
triangulations, file-loaded unstructured meshes - as long as it answers
per-entity topology queries behind this interface. The flattener copies
everything it needs during construction and holds no reference back into the
source afterward.
*/
package mesh

import (
	"github.com/notargets/gomesh/geometry"
	"github.com/notargets/gomesh/types"
)

/*
Mesh is the generic per-entity query interface.

Preconditions the flattener relies on and does not verify:
  - entity indices are dense and zero-based, with all owned entities of a
    kind preceding all ghost entities of that kind. The 2D owned-face count
    is derived from the position where cell iteration crosses from owned to
    ghost, so violating this ordering silently corrupts face ownership.
  - in 2D, CellNodes returns the cell's boundary polygon in traversal order
    (consecutive pairs are edges, wrapping at the end).
  - face queries (NumOwnedFaces, NumGhostFaces, CellFacesAndDirs, FaceNodes)
    are only invoked when SpaceDimension() == 3; 2D meshes may return zero
    values for them.
*/
type Mesh interface {
	SpaceDimension() int

	NumOwnedCells() int
	NumGhostCells() int
	NumOwnedFaces() int
	NumGhostFaces() int
	NumOwnedNodes() int
	NumGhostNodes() int

	// CellNodes returns the ordered bounding nodes of cell c
	CellNodes(c types.CellID) []types.NodeID

	// CellFacesAndDirs returns the ordered bounding faces of cell c and, per
	// face, whether the face's stored orientation agrees with the cell's
	// outward sense (3D only)
	CellFacesAndDirs(c types.CellID) ([]types.FaceID, []bool)

	// FaceNodes returns the ordered bounding nodes of face f (3D only)
	FaceNodes(f types.FaceID) []types.NodeID

	// NodeCoordinates returns the position of node n, length SpaceDimension()
	NodeCoordinates(n types.NodeID) geometry.Point

	// GlobalID returns the externally assigned stable id of entity i of the
	// given kind
	GlobalID(i int, kind types.EntityKind) types.GlobalID
}
