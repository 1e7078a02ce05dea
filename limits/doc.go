// Package limits provides centralized frame dimension constants and validation functions
// for the enhancement pipeline. This package ensures consistent size enforcement across the
// frame model, the settings layer and the upscaler.
//
// # Dimension Limits
//
//   - MaxFrameDimension (8192): The largest accepted width or height.
//
//   - MaxFramePixels: The largest luma plane, applied to input frames and to upscaled
//     output so that a large ratio on a large frame cannot exhaust memory.
//
//   - MinUpscaleRatio / MaxUpscaleRatio (1.0 / 4.0): The accepted range of the upscale
//     factor. Ratios at or below 1.0 disable upscaling.
//
// # Validation Functions
//
//	if err := limits.ValidateDimensions(w, h); err != nil {
//	    // errors.Is(err, limits.ErrDimensionsInvalid) or limits.ErrDimensionsTooLarge
//	}
//
//	if err := limits.ValidateUpscaledDimensions(w, h, 2.0); err != nil {
//	    // skip the upscale stage for this frame
//	}
package limits
