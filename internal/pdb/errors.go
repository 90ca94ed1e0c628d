package pdb

import "errors"

// Sentinel errors for the pdb package.
var (
	// ErrMalformedTable is returned when a table file or buffer is
	// truncated, oversized or otherwise unusable.
	ErrMalformedTable = errors.New("pdb: malformed table")

	// ErrUnsupportedVersion is returned for table files from a newer format.
	ErrUnsupportedVersion = errors.New("pdb: unsupported table version")

	// ErrPatternMismatch is returned when a table file tracks different
	// pieces than the pattern it is loaded for.
	ErrPatternMismatch = errors.New("pdb: pattern mismatch")

	// ErrUnknownPattern is returned for a pattern name that is not one of
	// the standard patterns.
	ErrUnknownPattern = errors.New("pdb: unknown pattern")
)
