package enhance

import (
	"fmt"

	"github.com/opd-ai/videnhance/frame"
)

// TemporalStabilizer damps frame-to-frame jitter with an exponential blend
// against the previous output.
//
// The stabilizer is the only stateful stage: it retains a private copy of its
// last output. The first frame, and any frame whose layout differs from the
// retained one, is a cold start: it is retained and returned unchanged.
// A TemporalStabilizer must not be shared between pipelines.
type TemporalStabilizer struct {
	strength float64
	previous *frame.PixelBuffer
}

// NewTemporalStabilizer creates a stabilizer.
// strength: 0.0 (no blending) to 1.0 (hold previous frame)
func NewTemporalStabilizer(strength float64) *TemporalStabilizer {
	return &TemporalStabilizer{
		strength: clampFloat(strength, 0, 1, 0),
	}
}

// SetStrength updates the blend factor for subsequent frames.
func (ts *TemporalStabilizer) SetStrength(strength float64) {
	ts.strength = clampFloat(strength, 0, 1, 0)
}

// Strength returns the clamped blend factor.
func (ts *TemporalStabilizer) Strength() float64 {
	return ts.strength
}

// Apply blends buf with the retained frame, byte for byte across all planes:
// out = current*(1-k) + previous*k.
func (ts *TemporalStabilizer) Apply(buf *frame.PixelBuffer) *frame.PixelBuffer {
	if ts.previous == nil || !ts.previous.SameLayout(buf) {
		ts.previous = buf.Clone()
		return buf
	}

	result := frame.New(buf.Width, buf.Height)
	ts.blendPlane(buf.Y, ts.previous.Y, result.Y)
	ts.blendPlane(buf.U, ts.previous.U, result.U)
	ts.blendPlane(buf.V, ts.previous.V, result.V)

	ts.previous = result.Clone()
	return result
}

func (ts *TemporalStabilizer) blendPlane(current, previous, dst []byte) {
	k := ts.strength
	for i := range current {
		dst[i] = clampByte(float64(current[i])*(1-k) + float64(previous[i])*k)
	}
}

// HasState reports whether a previous frame is retained.
func (ts *TemporalStabilizer) HasState() bool {
	return ts.previous != nil
}

// Reset drops the retained frame; the next Apply is a cold start.
func (ts *TemporalStabilizer) Reset() {
	ts.previous = nil
}

// Name returns the stage name.
func (ts *TemporalStabilizer) Name() string {
	return fmt.Sprintf("Stabilize(%.2f)", ts.strength)
}
