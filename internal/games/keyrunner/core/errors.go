package core

import "errors"

var (
	// ErrOutOfBounds is returned when a position lies outside the grid.
	// Reaching it from gameplay indicates a programming error.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrInvalidDirection is returned for an unrecognised move intent.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrGenerationExhausted is returned when the generator cannot place the
	// runner and pursuer after the configured number of attempts.
	ErrGenerationExhausted = errors.New("maze generation exhausted")
)
