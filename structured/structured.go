/*
Package structured provides a direct-product mesh: an axis-aligned grid whose
nodes are the tensor product of per-axis coordinate arrays. Entity indices
follow row-major index arithmetic (first axis fastest), cells are CCW quads
in 2D and hexahedra with outward-consistent face orientations in 3D.

The mesh is serial - every entity is owned - and exists as a concrete
producer for the flattener: a cheap source of consistent unstructured-style
topology queries over a structured grid.
*/
package structured

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gomesh/geometry"
	"github.com/notargets/gomesh/types"
)

type Mesh struct {
	dim  int
	axes [][]float64 // node coordinates per axis, ascending

	ncells [3]int // cells per axis (1 for unused axes)
	nnodes [3]int // nodes per axis (ncells+1, or 1 for unused axes)

	// 3D face blocks: x-normal faces first, then y-normal, then z-normal
	faceBlockOffsets [4]int
}

// New builds a direct-product mesh from 2 or 3 per-axis node coordinate
// arrays. Each axis needs at least two ascending points.
func New(axes ...[]float64) (m *Mesh, err error) {
	if len(axes) != 2 && len(axes) != 3 {
		return nil, fmt.Errorf("%d axes: %w", len(axes), types.ErrDimensionMismatch)
	}
	m = &Mesh{dim: len(axes), axes: axes}
	for d := range m.ncells {
		m.ncells[d], m.nnodes[d] = 1, 1
	}
	for d, axis := range axes {
		if len(axis) < 2 {
			return nil, fmt.Errorf("axis %d has %d points, need at least 2", d, len(axis))
		}
		if !sort.Float64sAreSorted(axis) {
			return nil, fmt.Errorf("axis %d points must be ascending", d)
		}
		m.ncells[d] = len(axis) - 1
		m.nnodes[d] = len(axis)
	}
	if m.dim == 3 {
		nx, ny, nz := m.ncells[0], m.ncells[1], m.ncells[2]
		m.faceBlockOffsets[0] = 0
		m.faceBlockOffsets[1] = (nx + 1) * ny * nz
		m.faceBlockOffsets[2] = m.faceBlockOffsets[1] + nx*(ny+1)*nz
		m.faceBlockOffsets[3] = m.faceBlockOffsets[2] + nx*ny*(nz+1)
	}
	return
}

// NewUniform builds a grid with ncells uniform cells per axis spanning
// [lo,hi] on every axis
func NewUniform(dim, ncells int, lo, hi float64) (*Mesh, error) {
	if ncells < 1 {
		return nil, fmt.Errorf("need at least 1 cell per axis, have %d", ncells)
	}
	axes := make([][]float64, dim)
	for d := range axes {
		axes[d] = floats.Span(make([]float64, ncells+1), lo, hi)
	}
	return New(axes...)
}

func (m *Mesh) SpaceDimension() int { return m.dim }

func (m *Mesh) NumOwnedCells() int {
	return m.ncells[0] * m.ncells[1] * m.ncells[2]
}
func (m *Mesh) NumGhostCells() int { return 0 }

func (m *Mesh) NumOwnedFaces() int {
	if m.dim != 3 {
		return 0
	}
	return m.faceBlockOffsets[3]
}
func (m *Mesh) NumGhostFaces() int { return 0 }

func (m *Mesh) NumOwnedNodes() int {
	return m.nnodes[0] * m.nnodes[1] * m.nnodes[2]
}
func (m *Mesh) NumGhostNodes() int { return 0 }

// cell index arithmetic: c = (k*ny + j)*nx + i
func (m *Mesh) cellIJK(c types.CellID) (i, j, k int) {
	nx, ny := m.ncells[0], m.ncells[1]
	i = int(c) % nx
	j = (int(c) / nx) % ny
	k = int(c) / (nx * ny)
	return
}

// node index arithmetic: n = (k*nny + j)*nnx + i
func (m *Mesh) nodeID(i, j, k int) types.NodeID {
	return types.NodeID((k*m.nnodes[1]+j)*m.nnodes[0] + i)
}

// CellNodes returns the cell's corner nodes: CCW in 2D, the standard
// bottom-then-top hex ordering in 3D
func (m *Mesh) CellNodes(c types.CellID) []types.NodeID {
	i, j, k := m.cellIJK(c)
	if m.dim == 2 {
		return []types.NodeID{
			m.nodeID(i, j, 0), m.nodeID(i+1, j, 0),
			m.nodeID(i+1, j+1, 0), m.nodeID(i, j+1, 0),
		}
	}
	return []types.NodeID{
		m.nodeID(i, j, k), m.nodeID(i+1, j, k),
		m.nodeID(i+1, j+1, k), m.nodeID(i, j+1, k),
		m.nodeID(i, j, k+1), m.nodeID(i+1, j, k+1),
		m.nodeID(i+1, j+1, k+1), m.nodeID(i, j+1, k+1),
	}
}

func (m *Mesh) xFace(i, j, k int) types.FaceID {
	nz := m.ncells[2]
	return types.FaceID(m.faceBlockOffsets[0] + (i*m.ncells[1]+j)*nz + k)
}

func (m *Mesh) yFace(i, j, k int) types.FaceID {
	nz := m.ncells[2]
	return types.FaceID(m.faceBlockOffsets[1] + (j*m.ncells[0]+i)*nz + k)
}

func (m *Mesh) zFace(i, j, k int) types.FaceID {
	nx := m.ncells[0]
	return types.FaceID(m.faceBlockOffsets[2] + (k*m.ncells[1]+j)*nx + i)
}

// CellFacesAndDirs lists the six bounding faces of a hex cell. Every face's
// stored orientation has its normal along the positive axis, so the low-side
// faces of a cell point inward (direction false) and the high-side faces
// outward (direction true).
func (m *Mesh) CellFacesAndDirs(c types.CellID) ([]types.FaceID, []bool) {
	if m.dim != 3 {
		return nil, nil
	}
	i, j, k := m.cellIJK(c)
	faces := []types.FaceID{
		m.xFace(i, j, k), m.xFace(i+1, j, k),
		m.yFace(i, j, k), m.yFace(i, j+1, k),
		m.zFace(i, j, k), m.zFace(i, j, k+1),
	}
	dirs := []bool{false, true, false, true, false, true}
	return faces, dirs
}

// FaceNodes returns the four corners of face f, CCW about the face's
// positive-axis normal
func (m *Mesh) FaceNodes(f types.FaceID) []types.NodeID {
	if m.dim != 3 {
		return nil
	}
	nz := m.ncells[2]
	switch {
	case int(f) < m.faceBlockOffsets[1]: // x-normal
		r := int(f) - m.faceBlockOffsets[0]
		k := r % nz
		j := (r / nz) % m.ncells[1]
		i := r / (nz * m.ncells[1])
		return []types.NodeID{
			m.nodeID(i, j, k), m.nodeID(i, j+1, k),
			m.nodeID(i, j+1, k+1), m.nodeID(i, j, k+1),
		}
	case int(f) < m.faceBlockOffsets[2]: // y-normal
		r := int(f) - m.faceBlockOffsets[1]
		k := r % nz
		i := (r / nz) % m.ncells[0]
		j := r / (nz * m.ncells[0])
		return []types.NodeID{
			m.nodeID(i, j, k), m.nodeID(i, j, k+1),
			m.nodeID(i+1, j, k+1), m.nodeID(i+1, j, k),
		}
	default: // z-normal
		r := int(f) - m.faceBlockOffsets[2]
		i := r % m.ncells[0]
		j := (r / m.ncells[0]) % m.ncells[1]
		k := r / (m.ncells[0] * m.ncells[1])
		return []types.NodeID{
			m.nodeID(i, j, k), m.nodeID(i+1, j, k),
			m.nodeID(i+1, j+1, k), m.nodeID(i, j+1, k),
		}
	}
}

func (m *Mesh) NodeCoordinates(n types.NodeID) geometry.Point {
	nnx, nny := m.nnodes[0], m.nnodes[1]
	i := int(n) % nnx
	j := (int(n) / nnx) % nny
	k := int(n) / (nnx * nny)
	p := make(geometry.Point, 0, m.dim)
	p = append(p, m.axes[0][i], m.axes[1][j])
	if m.dim == 3 {
		p = append(p, m.axes[2][k])
	}
	return p
}

// GlobalID of a serial mesh is the local index itself
func (m *Mesh) GlobalID(i int, kind types.EntityKind) types.GlobalID {
	_ = kind
	return types.GlobalID(i)
}
