package analysis

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/videnhance/config"
)

// Recommendation tuning. These map a suggestion onto a settings change.
const (
	// recommendedSharpness is the minimum sharpness level when sharpening is suggested.
	recommendedSharpness = 0.5
	// recommendedContrast is the minimum contrast gain when more contrast is suggested.
	recommendedContrast = 1.2
	// brightnessCorrection scales the distance from mid-gray into a brightness offset.
	brightnessCorrection = 0.5
	// targetBrightness is the normalized mean luma brightness correction aims for.
	targetBrightness = 0.5
)

// Recommend derives settings from an analysis, starting from base.
//
// Suggestions only enable stages and strengthen parameters; they never
// disable a stage the base settings enable. The result is clamped.
func Recommend(a VideoQualityAnalysis, base config.Settings) config.Settings {
	s := base

	if a.HasSuggestion(SuggestDenoise) {
		s.Denoise = true
	}

	if a.HasSuggestion(SuggestSharpen) {
		s.Sharpen = true
		s.SharpnessLevel = math.Max(s.SharpnessLevel, recommendedSharpness)
	}

	if a.HasSuggestion(SuggestBrightness) {
		s.EnhanceColors = true
		s.BrightnessLevel = (targetBrightness - a.BrightnessLevel) * brightnessCorrection
	}

	if a.HasSuggestion(SuggestContrast) {
		s.EnhanceColors = true
		s.ContrastLevel = math.Max(s.ContrastLevel, recommendedContrast)
	}

	s = s.Clamped()

	logrus.WithFields(logrus.Fields{
		"function":    "Recommend",
		"suggestions": a.SuggestedEnhancements,
		"denoise":     s.Denoise,
		"sharpen":     s.Sharpen,
		"colors":      s.EnhanceColors,
		"brightness":  s.BrightnessLevel,
		"contrast":    s.ContrastLevel,
	}).Debug("Settings recommended from quality analysis")

	return s
}
