// Package circuit holds the in-memory graph of cell types, cell instances,
// pins, IO pins, rows and nets that the placer pipeline reads and mutates.
//
// The package follows the same shape as a thread-safe graph library: a
// frozen, name-indexed catalog of immutable templates (Tech/CellType), a
// mutable instance graph built on top of it (Design/Block/Net), and a set
// of sentinel errors checked with errors.Is rather than type assertions.
package circuit

import "errors"

// Sentinel errors for circuit construction. All are fatal to the caller;
// the package never recovers from them internally.
var (
	// ErrGridAlignment indicates a geometry value is not an integer
	// multiple of the relevant placement grid.
	ErrGridAlignment = errors.New("circuit: value is not grid-aligned")

	// ErrNameCollision indicates a duplicate entity name within its
	// category (CellType, Block, IoPin or Net names are each their own
	// namespace).
	ErrNameCollision = errors.New("circuit: duplicate entity name")

	// ErrOrdering indicates a Block or IoPin was added after at least one
	// Net had already been created. Nets cache integer indices into the
	// Block/IoPin arenas; admitting new entries later would invalidate
	// those indices. Tech also returns it when a CellType, pin or pin
	// rectangle is added after the pin-offset tables have been frozen.
	ErrOrdering = errors.New("circuit: blocks and IO pins must be added before any net")

	// ErrCapacity indicates a Net's pre-reserved pin capacity would be
	// exceeded by the requested insertion.
	ErrCapacity = errors.New("circuit: net capacity exceeded")

	// ErrMissingReference indicates a Net, Block or Pin refers to an
	// entity that does not exist (unknown CellType, unknown Block, a pin
	// with no geometry).
	ErrMissingReference = errors.New("circuit: missing reference")

	// ErrGeometry indicates N/P-well rectangles are not abutted along a
	// single horizontal edge as required by the WellShape invariant.
	ErrGeometry = errors.New("circuit: invalid well geometry")

	// ErrOverflow indicates the aggregate block area exceeds the
	// accumulator range for the chosen database-microns scale.
	ErrOverflow = errors.New("circuit: area accumulator overflow")
)
