package enhance

import (
	"fmt"

	"github.com/opd-ai/videnhance/frame"
)

// Sharpener applies Laplacian unsharp masking to the luminance plane.
//
// Each interior pixel becomes center + level*(4*center - up - down - left - right),
// clamped to [0, 255]. Border pixels and chroma pass through unchanged.
type Sharpener struct {
	level float64 // 0.0 = no effect, 1.0 = full Laplacian boost
}

// NewSharpener creates a sharpening stage.
// level: 0.0 to 1.0, higher values create more sharpening
func NewSharpener(level float64) *Sharpener {
	return &Sharpener{
		level: clampFloat(level, 0, 1, 0),
	}
}

// Level returns the clamped sharpness level.
func (s *Sharpener) Level() float64 {
	return s.level
}

// Apply sharpens the Y plane and returns a new frame.
func (s *Sharpener) Apply(buf *frame.PixelBuffer) *frame.PixelBuffer {
	result := buf.Clone()
	if s.level == 0 {
		return result
	}

	width := buf.Width
	height := buf.Height
	src := buf.Y

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			idx := y*width + x

			center := float64(src[idx])
			laplacian := 4*center -
				float64(src[idx-width]) - // Top
				float64(src[idx+width]) - // Bottom
				float64(src[idx-1]) - // Left
				float64(src[idx+1]) // Right

			result.Y[idx] = clampByte(center + s.level*laplacian)
		}
	}

	return result
}

// Name returns the stage name.
func (s *Sharpener) Name() string {
	return fmt.Sprintf("Sharpen(%.2f)", s.level)
}
