package limits

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MaxFrameDimension is the largest accepted width or height (8K class content).
	MaxFrameDimension = 8192

	// MaxFramePixels bounds the luma plane of any single frame, input or upscaled.
	// 8192x8192 luma plus chroma stays under 100MB per buffer.
	MaxFramePixels = MaxFrameDimension * MaxFrameDimension

	// MinUpscaleRatio is the ratio at or below which upscaling is a no-op.
	MinUpscaleRatio = 1.0

	// MaxUpscaleRatio caps the spatial upscale factor.
	MaxUpscaleRatio = 4.0
)

var (
	// ErrDimensionsInvalid indicates a zero or negative width or height.
	ErrDimensionsInvalid = errors.New("invalid frame dimensions")

	// ErrDimensionsTooLarge indicates dimensions exceed MaxFrameDimension or MaxFramePixels.
	ErrDimensionsTooLarge = errors.New("frame dimensions too large")
)

// ValidateDimensions validates a frame size against MaxFrameDimension and MaxFramePixels.
// Returns an error with context including the actual and maximum sizes.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensionsInvalid, width, height)
	}
	if width > MaxFrameDimension || height > MaxFrameDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d per side", ErrDimensionsTooLarge, width, height, MaxFrameDimension)
	}
	if width*height > MaxFramePixels {
		return fmt.Errorf("%w: %d pixels exceeds limit %d", ErrDimensionsTooLarge, width*height, MaxFramePixels)
	}
	return nil
}

// UpscaledDimensions returns floor(width*ratio) x floor(height*ratio).
func UpscaledDimensions(width, height int, ratio float64) (int, int) {
	return int(math.Floor(float64(width) * ratio)), int(math.Floor(float64(height) * ratio))
}

// ValidateUpscaledDimensions validates the output size of an upscale of width x height by ratio.
// A ratio at or below MinUpscaleRatio is always valid since it produces no new buffer.
func ValidateUpscaledDimensions(width, height int, ratio float64) error {
	if ratio <= MinUpscaleRatio {
		return nil
	}
	if ratio > MaxUpscaleRatio {
		return fmt.Errorf("%w: upscale ratio %.2f exceeds limit %.2f", ErrDimensionsTooLarge, ratio, MaxUpscaleRatio)
	}
	w, h := UpscaledDimensions(width, height, ratio)
	return ValidateDimensions(w, h)
}

// ClampUpscaleRatio maps any ratio into [MinUpscaleRatio, MaxUpscaleRatio]; NaN maps to MinUpscaleRatio.
func ClampUpscaleRatio(ratio float64) float64 {
	if math.IsNaN(ratio) || ratio < MinUpscaleRatio {
		return MinUpscaleRatio
	}
	if ratio > MaxUpscaleRatio {
		return MaxUpscaleRatio
	}
	return ratio
}
