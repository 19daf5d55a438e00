package minesweeper

import "errors"

var (
	// ErrInvalidConfig is returned when a board cannot be built from the
	// requested size and mine count.
	ErrInvalidConfig = errors.New("minesweeper: invalid board configuration")

	// ErrOutOfBounds is returned for coordinates outside the grid.
	// The board is never mutated when it is returned.
	ErrOutOfBounds = errors.New("minesweeper: coordinates out of bounds")
)
