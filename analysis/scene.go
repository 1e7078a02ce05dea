package analysis

import (
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/videnhance/config"
	"github.com/opd-ai/videnhance/frame"
)

// SceneChangeDetector flags scene cuts by comparing sampled luma bytes of two
// frames. It is stateless; the caller supplies both frames.
type SceneChangeDetector struct {
	stride    int
	threshold float64
}

// NewSceneChangeDetector creates a detector using the scene-change fields of
// thresholds (nil uses config.DefaultAnalysisThresholds()).
func NewSceneChangeDetector(thresholds *config.AnalysisThresholds) *SceneChangeDetector {
	if thresholds == nil {
		thresholds = config.DefaultAnalysisThresholds()
	}
	th := thresholds.Normalized()
	return &SceneChangeDetector{
		stride:    th.SceneChangeStride,
		threshold: th.SceneChangeAbove,
	}
}

// Detect reports whether current starts a new scene relative to previous.
//
// A nil previous frame is never a cut. Frames of different dimensions are
// always a cut.
func (sd *SceneChangeDetector) Detect(current, previous *frame.PixelBuffer) bool {
	if current == nil || previous == nil {
		return false
	}
	if current.Width != previous.Width || current.Height != previous.Height {
		logrus.WithFields(logrus.Fields{
			"function":        "SceneChangeDetector.Detect",
			"current_width":   current.Width,
			"current_height":  current.Height,
			"previous_width":  previous.Width,
			"previous_height": previous.Height,
		}).Debug("Resolution change treated as scene cut")
		return true
	}
	return sd.Difference(current.Y, previous.Y) > sd.threshold
}

// DetectLuma is Detect over raw luma planes. A nil or empty previous plane is
// never a cut.
func (sd *SceneChangeDetector) DetectLuma(current, previous []byte) bool {
	if len(previous) == 0 {
		return false
	}
	return sd.Difference(current, previous) > sd.threshold
}

// Difference returns the mean absolute difference of every stride-th byte,
// normalized to [0, 1]. Only the common prefix of both planes is compared.
func (sd *SceneChangeDetector) Difference(current, previous []byte) float64 {
	n := min(len(current), len(previous))

	var sum, samples int
	for i := 0; i < n; i += sd.stride {
		d := int(current[i]) - int(previous[i])
		if d < 0 {
			d = -d
		}
		sum += d
		samples++
	}

	if samples == 0 {
		return 0
	}
	return float64(sum) / float64(samples) / 255
}

// Threshold returns the normalized difference above which a cut is reported.
func (sd *SceneChangeDetector) Threshold() float64 {
	return sd.threshold
}
