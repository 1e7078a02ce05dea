package enhance

import (
	"fmt"
	"math"

	"github.com/opd-ai/videnhance/frame"
)

// Color parameter ranges.
const (
	MinGain       = 0.5
	MaxGain       = 2.0
	MinBrightness = -1.0
	MaxBrightness = 1.0
)

// ColorEnhancer applies gamma-based contrast, a brightness offset and a
// chroma saturation gain.
//
// Luma: ((y/255)^(1/contrast) + brightness) * 255.
// Chroma: 128 + (c-128) * saturation.
// Both are clamped to [0, 255]. Neutral settings (1, 0, 1) are the identity.
type ColorEnhancer struct {
	contrast   float64
	brightness float64
	saturation float64

	lumaLUT   [256]byte
	chromaLUT [256]byte
}

// NewColorEnhancer creates a color stage. contrast and saturation are clamped
// to [MinGain, MaxGain], brightness to [MinBrightness, MaxBrightness].
func NewColorEnhancer(contrast, brightness, saturation float64) *ColorEnhancer {
	ce := &ColorEnhancer{
		contrast:   clampFloat(contrast, MinGain, MaxGain, 1),
		brightness: clampFloat(brightness, MinBrightness, MaxBrightness, 0),
		saturation: clampFloat(saturation, MinGain, MaxGain, 1),
	}

	gamma := 1 / ce.contrast
	for i := range ce.lumaLUT {
		corrected := math.Pow(float64(i)/255, gamma)
		ce.lumaLUT[i] = clampByte((corrected + ce.brightness) * 255)
	}
	for i := range ce.chromaLUT {
		ce.chromaLUT[i] = clampByte(frame.NeutralChroma + (float64(i)-frame.NeutralChroma)*ce.saturation)
	}

	return ce
}

// Apply returns a new frame with the luma and chroma transforms applied.
func (ce *ColorEnhancer) Apply(buf *frame.PixelBuffer) *frame.PixelBuffer {
	result := frame.New(buf.Width, buf.Height)

	for i, v := range buf.Y {
		result.Y[i] = ce.lumaLUT[v]
	}
	for i, v := range buf.U {
		result.U[i] = ce.chromaLUT[v]
	}
	for i, v := range buf.V {
		result.V[i] = ce.chromaLUT[v]
	}

	return result
}

// IsNeutral reports whether the stage is the identity transform.
func (ce *ColorEnhancer) IsNeutral() bool {
	return ce.contrast == 1 && ce.brightness == 0 && ce.saturation == 1
}

// Name returns the stage name.
func (ce *ColorEnhancer) Name() string {
	return fmt.Sprintf("Color(c=%.2f,b=%+.2f,s=%.2f)", ce.contrast, ce.brightness, ce.saturation)
}
