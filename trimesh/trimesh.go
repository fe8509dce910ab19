/*
Package trimesh provides a 2D unstructured triangle mesh as a flattener
source. Meshes come either from a Delaunay triangulation of a point cloud or
from an explicit element-to-vertex table (the shape grid files load into).
All entities are owned; distributed variants are produced downstream by the
partitioner.
*/
package trimesh

import (
	"fmt"

	"github.com/pradeep-pyro/triangle"

	"github.com/notargets/gomesh/geometry"
	"github.com/notargets/gomesh/types"
)

type Mesh struct {
	points [][2]float64
	etov   [][3]types.NodeID // per-triangle vertices, CCW
}

// NewDelaunay triangulates a point cloud. At least three non-collinear
// points are required.
func NewDelaunay(points [][2]float64) (*Mesh, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("need at least 3 points to triangulate, have %d", len(points))
	}
	faces := triangle.Delaunay(points)
	if len(faces) == 0 {
		return nil, fmt.Errorf("triangulation of %d points produced no triangles", len(points))
	}
	etov := make([][3]int, len(faces))
	for k, f := range faces {
		etov[k] = [3]int{int(f[0]), int(f[1]), int(f[2])}
	}
	return New(points, etov)
}

// New builds a mesh from an explicit element-to-vertex table. Triangles are
// reoriented CCW so that edge traversal order is consistent across cells.
func New(points [][2]float64, etov [][3]int) (m *Mesh, err error) {
	m = &Mesh{
		points: points,
		etov:   make([][3]types.NodeID, len(etov)),
	}
	for k, tri := range etov {
		for _, v := range tri {
			if v < 0 || v >= len(points) {
				return nil, fmt.Errorf("triangle %d vertex %d of %d points: %w",
					k, v, len(points), types.ErrIndexOutOfRange)
			}
		}
		if signedArea(points[tri[0]], points[tri[1]], points[tri[2]]) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		m.etov[k] = [3]types.NodeID{
			types.NodeID(tri[0]), types.NodeID(tri[1]), types.NodeID(tri[2]),
		}
	}
	return
}

// signedArea is twice the signed area of the triangle, positive for CCW
func signedArea(a, b, c [2]float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
}

func (m *Mesh) SpaceDimension() int { return 2 }

func (m *Mesh) NumOwnedCells() int { return len(m.etov) }
func (m *Mesh) NumGhostCells() int { return 0 }
func (m *Mesh) NumOwnedFaces() int { return 0 } // 2D: edges are synthesized downstream
func (m *Mesh) NumGhostFaces() int { return 0 }
func (m *Mesh) NumOwnedNodes() int { return len(m.points) }
func (m *Mesh) NumGhostNodes() int { return 0 }

func (m *Mesh) CellNodes(c types.CellID) []types.NodeID {
	return m.etov[c][:]
}

func (m *Mesh) CellFacesAndDirs(c types.CellID) ([]types.FaceID, []bool) {
	return nil, nil
}

func (m *Mesh) FaceNodes(f types.FaceID) []types.NodeID {
	return nil
}

func (m *Mesh) NodeCoordinates(n types.NodeID) geometry.Point {
	return geometry.NewPoint(m.points[n][0], m.points[n][1])
}

// GlobalID of a serial mesh is the local index itself
func (m *Mesh) GlobalID(i int, kind types.EntityKind) types.GlobalID {
	_ = kind
	return types.GlobalID(i)
}
