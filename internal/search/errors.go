package search

import "errors"

// Sentinel errors for the search package.
var (
	// ErrInvalidCube is returned when the start state is not a legal
	// arrangement of the 20 pieces.
	ErrInvalidCube = errors.New("search: invalid cube")

	// ErrExhausted means every branch was cut off without reaching the
	// goal. For a legal cube this points at a broken move model or an
	// inadmissible heuristic, never at an unsolvable scramble.
	ErrExhausted = errors.New("search: exhausted without solution")

	// ErrDepthLimit is returned when the next cost limit would exceed the
	// configured maximum depth.
	ErrDepthLimit = errors.New("search: depth limit reached")
)
