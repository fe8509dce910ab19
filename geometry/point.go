package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/notargets/gomesh/types"
)

/*
Point is a spatial location with runtime dimension D in {2,3}. The flattened
mesh stores coordinates as one flat array with stride D, so a Point is just a
view-sized copy of one node's coordinates; callers wanting compile-time sized
points unwrap with As2D/As3D at the query boundary.
*/
type Point []float64

func NewPoint(coords ...float64) Point {
	return Point(coords)
}

func (p Point) Dim() int {
	return len(p)
}

// As2D unwraps to a fixed-size 2D point
func (p Point) As2D() (xy [2]float64, err error) {
	if len(p) != 2 {
		err = fmt.Errorf("point has dimension %d: %w", len(p), types.ErrDimensionMismatch)
		return
	}
	xy[0], xy[1] = p[0], p[1]
	return
}

// As3D unwraps to a fixed-size 3D point
func (p Point) As3D() (xyz [3]float64, err error) {
	if len(p) != 3 {
		err = fmt.Errorf("point has dimension %d: %w", len(p), types.ErrDimensionMismatch)
		return
	}
	xyz[0], xyz[1], xyz[2] = p[0], p[1], p[2]
	return
}

// ApproxEqual compares coordinates within tol, false on dimension mismatch
func (p Point) ApproxEqual(q Point, tol float64) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if !scalar.EqualWithinAbs(p[i], q[i], tol) {
			return false
		}
	}
	return true
}

/*
BoundingBox is an axis-aligned box with runtime dimension. It exists for the
query boundary with tree-based meshes and for plot framing - no intersection
or measure computation happens here.
*/
type BoundingBox struct {
	Min, Max Point
}

func NewBoundingBox(dim int) (bb BoundingBox) {
	bb.Min = make(Point, dim)
	bb.Max = make(Point, dim)
	for i := 0; i < dim; i++ {
		bb.Min[i] = math.Inf(1)
		bb.Max[i] = math.Inf(-1)
	}
	return
}

// Expand grows the box to include p. Points of the wrong dimension are a
// programming error and panic.
func (bb *BoundingBox) Expand(p Point) {
	if len(p) != len(bb.Min) {
		panic(fmt.Errorf("expanding %dD box with %dD point: %w",
			len(bb.Min), len(p), types.ErrDimensionMismatch))
	}
	for i, x := range p {
		bb.Min[i] = math.Min(bb.Min[i], x)
		bb.Max[i] = math.Max(bb.Max[i], x)
	}
}

// Contains reports whether p lies inside or on the boundary of the box
func (bb BoundingBox) Contains(p Point) bool {
	if len(p) != len(bb.Min) {
		return false
	}
	for i, x := range p {
		if x < bb.Min[i] || x > bb.Max[i] {
			return false
		}
	}
	return true
}

// Scale grows the box about its center by factor s
func (bb BoundingBox) Scale(s float64) (out BoundingBox) {
	dim := len(bb.Min)
	out = NewBoundingBox(dim)
	for i := 0; i < dim; i++ {
		center := 0.5 * (bb.Min[i] + bb.Max[i])
		half := 0.5 * (bb.Max[i] - bb.Min[i]) * s
		out.Min[i] = center - half
		out.Max[i] = center + half
	}
	return
}
