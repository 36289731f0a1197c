package segment

import "errors"

var (
	// ErrInvalidSize indicates a grid side length that is not positive.
	ErrInvalidSize = errors.New("segment: grid side N must be positive")
	// ErrDimensionMismatch indicates the number of rows differs from N.
	ErrDimensionMismatch = errors.New("segment: grid row count does not match N")
	// ErrNonSquare indicates a row whose length differs from N.
	ErrNonSquare = errors.New("segment: every grid row must have exactly N cells")
	// ErrNegativeColor indicates a cell value below zero.
	ErrNegativeColor = errors.New("segment: cell colors must be non-negative")
)
