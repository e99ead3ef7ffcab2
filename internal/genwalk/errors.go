package genwalk

import "errors"

var (
	// ErrUnknownBase is returned when a base name has not been
	// registered via AddNodes before it is referenced.
	ErrUnknownBase = errors.New("genwalk: unknown base name")

	// ErrReducingNeedsBlocks is returned by AddNodes for a reducing
	// base name declared with no blocks.
	ErrReducingNeedsBlocks = errors.New("genwalk: a reducing base name needs at least one block")

	// ErrIncompatibleCategory is returned when a dependency's category
	// set neither matches the depender's category nor consists of a
	// single cached category that can bridge any category.
	ErrIncompatibleCategory = errors.New("genwalk: dependency category is incompatible and not a bridgeable cached node")

	// ErrMissingBlock is returned when a non-reducing dependency has no
	// node in the block a depender needs it at.
	ErrMissingBlock = errors.New("genwalk: dependency has no node at the required block")
)
