package utils

import "fmt"

/*
Adjacency is the offset-delimited flat encoding used for every topological
relation in a flattened mesh: for a relation from N source entities, Offsets
has length N+1 with Offsets[0] == 0, and Values holds the concatenation of
each entity's related indices in offset-implied order. Entity i's relations
occupy Values[Offsets[i]:Offsets[i+1]].

The encoding is relocatable - two plain slices with no interior pointers -
so a whole topology can be copied verbatim across a process boundary.
*/
type Adjacency[E ~int] struct {
	Offsets []int
	Values  []E
}

// EncodeAdjacency flattens per-entity relation lists into offset form. It is
// pure and deterministic and preserves each entity's internal ordering.
func EncodeAdjacency[E ~int](relations [][]E) (adj Adjacency[E]) {
	var (
		total int
	)
	for _, rel := range relations {
		total += len(rel)
	}
	adj.Offsets = make([]int, len(relations)+1)
	adj.Values = make([]E, 0, total)
	for i, rel := range relations {
		adj.Values = append(adj.Values, rel...)
		adj.Offsets[i+1] = adj.Offsets[i] + len(rel)
	}
	return
}

// AdjacencyFromCounts assembles the offset form from a counts array and the
// already concatenated values, the shape produced by a single streaming pass.
func AdjacencyFromCounts[E ~int](counts []int, values []E) (adj Adjacency[E], err error) {
	adj.Offsets = ComputeOffsets(counts)
	if adj.Offsets[len(counts)] != len(values) {
		err = fmt.Errorf("counts sum to %d, have %d values",
			adj.Offsets[len(counts)], len(values))
		return
	}
	adj.Values = values
	return
}

// ComputeOffsets converts per-entity counts to an exclusive prefix sum of
// length len(counts)+1
func ComputeOffsets(counts []int) (offsets []int) {
	offsets = make([]int, len(counts)+1)
	for i, count := range counts {
		offsets[i+1] = offsets[i] + count
	}
	return
}

// NumRows is the number of source entities N
func (adj Adjacency[E]) NumRows() int {
	return len(adj.Offsets) - 1
}

// Row is the decode projection: the ordered related indices of entity i as a
// subslice of Values. Callers must not retain it across a rebuild.
func (adj Adjacency[E]) Row(i int) []E {
	return adj.Values[adj.Offsets[i]:adj.Offsets[i+1]]
}

// RowLen is the number of entities related to entity i
func (adj Adjacency[E]) RowLen(i int) int {
	return adj.Offsets[i+1] - adj.Offsets[i]
}

// InRange reports whether i is a valid source entity index
func (adj Adjacency[E]) InRange(i int) bool {
	return i >= 0 && i < len(adj.Offsets)-1
}

// Validate checks structural consistency: monotone offsets starting at zero
// and every value inside [0, numTargets)
func (adj Adjacency[E]) Validate(numTargets int) error {
	if len(adj.Offsets) == 0 || adj.Offsets[0] != 0 {
		return fmt.Errorf("offsets must begin with 0")
	}
	for i := 1; i < len(adj.Offsets); i++ {
		if adj.Offsets[i] < adj.Offsets[i-1] {
			return fmt.Errorf("offsets decrease at entity %d", i-1)
		}
	}
	if adj.Offsets[len(adj.Offsets)-1] != len(adj.Values) {
		return fmt.Errorf("final offset %d does not match %d values",
			adj.Offsets[len(adj.Offsets)-1], len(adj.Values))
	}
	for i, v := range adj.Values {
		if int(v) < 0 || int(v) >= numTargets {
			return fmt.Errorf("value %d at position %d outside [0,%d)", int(v), i, numTargets)
		}
	}
	return nil
}

// Copy returns a deep copy sharing no storage with the receiver
func (adj Adjacency[E]) Copy() (out Adjacency[E]) {
	out.Offsets = make([]int, len(adj.Offsets))
	copy(out.Offsets, adj.Offsets)
	out.Values = make([]E, len(adj.Values))
	copy(out.Values, adj.Values)
	return
}
