package enhance

import (
	"math"
	"strings"

	"github.com/opd-ai/videnhance/frame"
)

// Stage represents an enhancement stage that can be applied to frames.
//
// Stages are total over valid frames: they never fail and never modify the
// buffer they receive. A stage returns either a new buffer or, when it has
// nothing to do, the input itself.
type Stage interface {
	// Apply processes a frame and returns the enhanced frame
	Apply(buf *frame.PixelBuffer) *frame.PixelBuffer
	// Name returns the stage name for identification
	Name() string
}

// StageChain manages multiple stages applied in sequence.
type StageChain struct {
	stages []Stage
}

// NewStageChain creates a new, empty stage chain.
func NewStageChain() *StageChain {
	return &StageChain{
		stages: make([]Stage, 0, 5),
	}
}

// Add appends a stage to the chain.
func (sc *StageChain) Add(stage Stage) {
	sc.stages = append(sc.stages, stage)
}

// Apply processes a frame through all stages in the chain.
// An empty chain returns the input unchanged.
func (sc *StageChain) Apply(buf *frame.PixelBuffer) *frame.PixelBuffer {
	current := buf
	for _, stage := range sc.stages {
		current = stage.Apply(current)
	}
	return current
}

// Len returns the number of stages in the chain.
func (sc *StageChain) Len() int {
	return len(sc.stages)
}

// Clear removes all stages from the chain.
func (sc *StageChain) Clear() {
	sc.stages = sc.stages[:0]
}

// Names returns the chain as "a -> b -> c" for logging.
func (sc *StageChain) Names() string {
	names := make([]string, len(sc.stages))
	for i, stage := range sc.stages {
		names[i] = stage.Name()
	}
	return strings.Join(names, " -> ")
}

// clampByte rounds v to the nearest integer and clamps it to [0, 255].
func clampByte(v float64) byte {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v + 0.5)
}

// clampFloat clamps v to [lo, hi]; NaN maps to fallback.
func clampFloat(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
