package life

import "errors"

// Errors returned by grid operations. They are always wrapped with the
// offending values, so match them with errors.Is.
var (
	// ErrInvalidDimension is returned when a grid is created or resized
	// with a non-positive number of columns or rows.
	ErrInvalidDimension = errors.New("life: number of columns and rows must be positive")

	// ErrNegativeCoordinate is returned when a column or row argument is negative.
	ErrNegativeCoordinate = errors.New("life: column and row may not be negative")

	// ErrOutOfRange is returned when a column or row argument is not smaller
	// than the current grid dimension on that axis.
	ErrOutOfRange = errors.New("life: column and row may not exceed the grid dimensions")
)
