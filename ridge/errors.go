package ridge

import "errors"

// Error kinds reported by the estimation pipeline. Callers match them with
// errors.Is; the returned errors wrap these with the offending dimensions.
var (
	// ErrInvalidImage is returned for unreadable or zero-sized images.
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidHeight is returned when a transition model is requested
	// for a non-positive height.
	ErrInvalidHeight = errors.New("invalid height")

	// ErrDegenerateColumn is returned when emission normalization would
	// divide by zero (no rows).
	ErrDegenerateColumn = errors.New("degenerate column")

	// ErrEmptyImage is returned when the optimizer is given no columns.
	ErrEmptyImage = errors.New("empty image")

	// ErrInvalidAnchor is returned when an in-range anchor column pins a
	// row outside the image.
	ErrInvalidAnchor = errors.New("invalid anchor")

	// ErrDimensionMismatch is returned when grids passed together disagree
	// on height or width.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
