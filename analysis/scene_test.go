package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/videnhance/config"
	"github.com/opd-ai/videnhance/frame"
)

func TestSceneChangeDetector_NoPrevious(t *testing.T) {
	sd := NewSceneChangeDetector(nil)

	assert.False(t, sd.Detect(frame.New(16, 16), nil))
	assert.False(t, sd.DetectLuma(make([]byte, 256), nil))
}

func TestSceneChangeDetector_IdenticalFrames(t *testing.T) {
	sd := NewSceneChangeDetector(nil)
	a := frame.NewFilled(64, 64, 90, 128, 128)
	for i := range a.Y {
		a.Y[i] = byte(i * 7)
	}

	assert.False(t, sd.Detect(a, a.Clone()))
	assert.Equal(t, 0.0, sd.Difference(a.Y, a.Clone().Y))
}

func TestSceneChangeDetector_BlackToWhite(t *testing.T) {
	sd := NewSceneChangeDetector(nil)
	black := frame.NewFilled(64, 64, 0x00, 128, 128)
	white := frame.NewFilled(64, 64, 0xFF, 128, 128)

	assert.True(t, sd.Detect(white, black))
	assert.Equal(t, 1.0, sd.Difference(white.Y, black.Y))
}

func TestSceneChangeDetector_Threshold(t *testing.T) {
	sd := NewSceneChangeDetector(nil)
	base := frame.NewFilled(64, 64, 100, 128, 128)

	// 0.2 * 255 = 51: below the 0.3 default
	small := frame.NewFilled(64, 64, 151, 128, 128)
	assert.False(t, sd.Detect(small, base))

	// 0.4 * 255 = 102: above it
	large := frame.NewFilled(64, 64, 202, 128, 128)
	assert.True(t, sd.Detect(large, base))

	th := config.DefaultAnalysisThresholds()
	th.SceneChangeAbove = 0.1
	assert.True(t, NewSceneChangeDetector(th).Detect(small, base))
}

func TestSceneChangeDetector_SamplesEveryHundredthByte(t *testing.T) {
	sd := NewSceneChangeDetector(nil)
	prev := make([]byte, 1000)
	cur := make([]byte, 1000)
	// Differences away from multiples of 100 are invisible
	for i := range cur {
		if i%100 != 0 {
			cur[i] = 255
		}
	}
	assert.False(t, sd.DetectLuma(cur, prev))

	for i := 0; i < len(cur); i += 100 {
		cur[i] = 255
	}
	assert.True(t, sd.DetectLuma(cur, prev))
}

func TestSceneChangeDetector_ResolutionChange(t *testing.T) {
	sd := NewSceneChangeDetector(nil)
	assert.True(t, sd.Detect(frame.New(32, 32), frame.New(16, 16)))
}
