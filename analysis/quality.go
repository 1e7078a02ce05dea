package analysis

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/videnhance/config"
	"github.com/opd-ai/videnhance/frame"
)

// Suggested enhancements reported by QualityAnalyzer.
const (
	SuggestDenoise    = "denoise"
	SuggestSharpen    = "sharpen"
	SuggestBrightness = "adjust_brightness"
	SuggestContrast   = "increase_contrast"
)

// VideoQualityAnalysis holds the quality estimates for one frame.
//
// All levels are normalized to [0, 1].
type VideoQualityAnalysis struct {
	NoiseLevel            float64
	SharpnessScore        float64
	BrightnessLevel       float64
	ContrastLevel         float64
	SuggestedEnhancements []string
	Samples               int // luma positions inspected
}

// HasSuggestion reports whether the analysis suggests the named enhancement.
func (a VideoQualityAnalysis) HasSuggestion(name string) bool {
	for _, s := range a.SuggestedEnhancements {
		if s == name {
			return true
		}
	}
	return false
}

// String returns a compact single-line summary.
func (a VideoQualityAnalysis) String() string {
	return fmt.Sprintf("noise=%.3f sharp=%.3f bright=%.3f contrast=%.3f suggest=%v",
		a.NoiseLevel, a.SharpnessScore, a.BrightnessLevel, a.ContrastLevel, a.SuggestedEnhancements)
}

// QualityAnalyzer estimates noise, sharpness, brightness and contrast from a
// bounded luma sample. It holds only immutable thresholds and is safe for
// concurrent use.
type QualityAnalyzer struct {
	thresholds config.AnalysisThresholds
}

// NewQualityAnalyzer creates an analyzer. A nil thresholds value uses
// config.DefaultAnalysisThresholds().
func NewQualityAnalyzer(thresholds *config.AnalysisThresholds) *QualityAnalyzer {
	if thresholds == nil {
		thresholds = config.DefaultAnalysisThresholds()
	}
	return &QualityAnalyzer{
		thresholds: thresholds.Normalized(),
	}
}

// Thresholds returns the analyzer's policy.
func (qa *QualityAnalyzer) Thresholds() config.AnalysisThresholds {
	return qa.thresholds
}

// Analyze estimates the quality of a frame. A nil or invalid frame yields a
// zero analysis with no suggestions.
func (qa *QualityAnalyzer) Analyze(buf *frame.PixelBuffer) VideoQualityAnalysis {
	if buf.Validate() != nil {
		return VideoQualityAnalysis{}
	}
	return qa.AnalyzeLuma(buf.Y, buf.Width, buf.Height)
}

// AnalyzeLuma estimates quality from a raw luma plane of width x height.
//
// Positions 0, stride, 2*stride, ... are sampled, at most MaxSamples of them:
//   - noise: RMS of the difference to the right-hand neighbour
//   - sharpness: mean central-difference gradient magnitude
//   - brightness: mean luma
//   - contrast: max - min luma
func (qa *QualityAnalyzer) AnalyzeLuma(luma []byte, width, height int) VideoQualityAnalysis {
	if width <= 0 || height <= 0 {
		return VideoQualityAnalysis{}
	}
	size := min(len(luma), width*height)
	if size == 0 {
		return VideoQualityAnalysis{}
	}

	var samples, noiseCount, gradientCount int
	var sum, noiseSq, gradientSum float64
	minLuma, maxLuma := 255, 0

	for idx := 0; idx < size && samples < qa.thresholds.MaxSamples; idx += qa.thresholds.SampleStride {
		samples++
		x, y := idx%width, idx/width
		v := int(luma[idx])

		sum += float64(v)
		minLuma = min(minLuma, v)
		maxLuma = max(maxLuma, v)

		if x+1 < width && idx+1 < size {
			d := float64(int(luma[idx+1]) - v)
			noiseSq += d * d
			noiseCount++
		}

		if x > 0 && x < width-1 && y > 0 && y < height-1 && idx+width < size {
			gx := float64(int(luma[idx+1]) - int(luma[idx-1]))
			gy := float64(int(luma[idx+width]) - int(luma[idx-width]))
			gradientSum += math.Sqrt(gx*gx + gy*gy)
			gradientCount++
		}
	}

	result := VideoQualityAnalysis{
		BrightnessLevel: sum / float64(samples) / 255,
		ContrastLevel:   float64(maxLuma-minLuma) / 255,
		Samples:         samples,
	}
	if noiseCount > 0 {
		result.NoiseLevel = math.Min(1, math.Sqrt(noiseSq/float64(noiseCount))/255)
	}
	if gradientCount > 0 {
		result.SharpnessScore = math.Min(1, gradientSum/float64(gradientCount)/255)
	}
	result.SuggestedEnhancements = qa.suggest(result)

	logrus.WithFields(logrus.Fields{
		"function":    "QualityAnalyzer.AnalyzeLuma",
		"samples":     result.Samples,
		"noise":       result.NoiseLevel,
		"sharpness":   result.SharpnessScore,
		"brightness":  result.BrightnessLevel,
		"contrast":    result.ContrastLevel,
		"suggestions": result.SuggestedEnhancements,
	}).Debug("Frame quality assessed")

	return result
}

// suggest applies the threshold rules.
func (qa *QualityAnalyzer) suggest(a VideoQualityAnalysis) []string {
	th := qa.thresholds
	suggestions := make([]string, 0, 4)

	if a.NoiseLevel > th.NoiseAbove {
		suggestions = append(suggestions, SuggestDenoise)
	}
	if a.SharpnessScore < th.SharpnessBelow {
		suggestions = append(suggestions, SuggestSharpen)
	}
	if a.BrightnessLevel < th.BrightnessMin || a.BrightnessLevel > th.BrightnessMax {
		suggestions = append(suggestions, SuggestBrightness)
	}
	if a.ContrastLevel < th.ContrastBelow {
		suggestions = append(suggestions, SuggestContrast)
	}

	return suggestions
}
