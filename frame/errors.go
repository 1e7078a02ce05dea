package frame

import "errors"

// Sentinel errors for frame operations.
// These errors enable reliable error classification using errors.Is().

// Validation errors.
var (
	// ErrNilFrame indicates a nil PixelBuffer was supplied.
	ErrNilFrame = errors.New("frame cannot be nil")

	// ErrInvalidDimensions indicates a width or height outside the accepted limits.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")

	// ErrPlaneSize indicates a plane length that does not match the 4:2:0 layout.
	ErrPlaneSize = errors.New("plane size mismatch")
)

// Stream errors.
var (
	// ErrShortFrame indicates a stream ended in the middle of a frame.
	ErrShortFrame = errors.New("truncated frame in stream")

	// ErrLayoutMismatch indicates a frame does not match the stream's dimensions.
	ErrLayoutMismatch = errors.New("frame layout does not match stream")
)
