package depthfuse

import "errors"

var (
	// ErrInvalidShape is returned when a tensor does not have the
	// [channels, width, height] layout needed to build a heatmap grid
	ErrInvalidShape = errors.New("invalid tensor shape")

	// ErrDegenerateRange is returned when no tensor value passed the positive
	// confidence filter or all positive values are equal, so there is no
	// range to normalize over
	ErrDegenerateRange = errors.New("degenerate tensor value range")

	// ErrNoImage is returned when a detection stage is advanced before an
	// image has been selected
	ErrNoImage = errors.New("no image selected")

	// ErrSessionClosed is returned by operations on a closed session
	ErrSessionClosed = errors.New("session closed")
)
