package grid

import "errors"

var (
	// ErrDimensionOutOfRange is returned when rows or columns fall outside
	// [1, MaxDimension].
	ErrDimensionOutOfRange = errors.New("grid: dimensions must be between 1 and 100")

	// ErrOutOfBounds is returned for a position outside the grid.
	ErrOutOfBounds = errors.New("grid: position out of bounds")

	// ErrInvalidCellID is returned when a cell identifier cannot be parsed.
	ErrInvalidCellID = errors.New("grid: invalid cell id")

	// ErrSelectionTooSmall is returned when fewer than two cells are merged.
	ErrSelectionTooSmall = errors.New("grid: select at least two cells to merge")

	// ErrNotRectangular is returned when a merge selection is not exactly a
	// filled rectangle.
	ErrNotRectangular = errors.New("grid: selection must form a rectangle")
)
