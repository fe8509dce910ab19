package types

// EntityKind selects one of the three topological entity spaces of a mesh
type EntityKind uint8

const (
	CELL EntityKind = iota
	FACE
	NODE
)

func (ek EntityKind) String() string {
	switch ek {
	case CELL:
		return "CELL"
	case FACE:
		return "FACE"
	case NODE:
		return "NODE"
	}
	return "UNKNOWN"
}

// EntityType classifies an entity by parallel ownership. OWNED entities are
// locally authoritative, GHOST entities are cached copies of entities owned
// by another partition. ALL is a query filter matching both.
type EntityType uint8

const (
	OWNED EntityType = iota
	GHOST
	ALL
)

func (et EntityType) String() string {
	switch et {
	case OWNED:
		return "OWNED"
	case GHOST:
		return "GHOST"
	case ALL:
		return "ALL"
	}
	return "UNKNOWN"
}

/*
Entity indices are zero-based and local to one flattened mesh instance. Each
kind gets its own index type so that a face index can't be handed to a cell
query without the compiler objecting - the adjacency arrays cross-reference
three index spaces and raw ints made that mistake too easy.
*/
type (
	CellID int
	FaceID int
	NodeID int
)

// GlobalID is the externally assigned stable identifier of an entity, used
// for cross-partition identity. It never indexes local arrays.
type GlobalID int64

// TypeOf classifies index i against the owned-count threshold for its kind.
// Owned entities always precede ghosts, so ownership is a single comparison.
func TypeOf(i, numOwned int) EntityType {
	if i < numOwned {
		return OWNED
	}
	return GHOST
}
