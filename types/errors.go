package types

import "errors"

// Invariant violations surfaced during flat mesh construction, rebuild or
// query. None are retried or recovered: a partially built topology is unsafe
// for every downstream geometric computation, so detection aborts the
// operation that found it. Detection sites wrap these with context via
// fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidOwnershipCount - an owned count exceeds the total count for
	// some entity kind
	ErrInvalidOwnershipCount = errors.New("owned count exceeds total count")

	// ErrDegenerateEntity - a cell with no nodes or a face with fewer than
	// two nodes
	ErrDegenerateEntity = errors.New("degenerate entity")

	// ErrNonManifoldFace - a face referenced by more than two cells; meshes
	// are assumed manifold with boundary
	ErrNonManifoldFace = errors.New("non-manifold face")

	// ErrDimensionMismatch - a coordinate accessor invoked with the wrong
	// spatial dimension
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrIndexOutOfRange - a query with an entity index at or beyond the
	// total count for that kind
	ErrIndexOutOfRange = errors.New("entity index out of range")
)
