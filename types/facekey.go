package types

import (
	"fmt"
	"math"
)

/*
FaceKey is an always positive number that stores a 2D face's two endpoint
nodes as indices in a way that can be compared. A face between nodes [4] and
[0] will always be stored as [0,4], in the ascending order of the index
values - the canonical key that lets two cells discover they reference the
same face regardless of traversal direction.
*/
type FaceKey uint64

func NewFaceKey(nodes [2]NodeID) (packed FaceKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to
	// act as a hash and an indirect access method
	var (
		limit = NodeID(math.MaxUint32)
	)
	for _, node := range nodes {
		if node < 0 || node > limit {
			panic(fmt.Errorf("unable to pack two node indices into a uint64, have %d and %d as inputs",
				nodes[0], nodes[1]))
		}
	}
	var n1, n2 NodeID
	if nodes[0] <= nodes[1] {
		n1, n2 = nodes[0], nodes[1]
	} else {
		n1, n2 = nodes[1], nodes[0]
	}
	packed = FaceKey(uint64(n1) + uint64(n2)<<32)
	return
}

// GetNodes recovers the canonical (ascending) node pair, or the reversed
// pair when rev is true.
func (fk FaceKey) GetNodes(rev bool) (nodes [2]NodeID) {
	var (
		hi = uint64(fk) >> 32
	)
	nodes[1] = NodeID(hi)
	nodes[0] = NodeID(uint64(fk) - hi<<32)
	if rev {
		nodes[0], nodes[1] = nodes[1], nodes[0]
	}
	return
}
