package analysis

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/videnhance/config"
	"github.com/opd-ai/videnhance/frame"
)

// createCheckerFrame creates a frame alternating lo/hi luma in 1-pixel checks.
func createCheckerFrame(width, height int, lo, hi byte) *frame.PixelBuffer {
	buf := frame.NewFilled(width, height, lo, frame.NeutralChroma, frame.NeutralChroma)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x+y)%2 == 1 {
				buf.Y[y*width+x] = hi
			}
		}
	}
	return buf
}

func TestQualityAnalyzer_MidGray(t *testing.T) {
	qa := NewQualityAnalyzer(nil)
	buf := frame.NewFilled(320, 240, 128, frame.NeutralChroma, frame.NeutralChroma)

	a := qa.Analyze(buf)

	assert.InDelta(t, 0, a.NoiseLevel, 1e-9)
	assert.InDelta(t, 0, a.SharpnessScore, 1e-9)
	assert.InDelta(t, 128.0/255, a.BrightnessLevel, 1e-9)
	assert.InDelta(t, 0, a.ContrastLevel, 1e-9)

	assert.False(t, a.HasSuggestion(SuggestDenoise))
	assert.True(t, a.HasSuggestion(SuggestSharpen))
	assert.False(t, a.HasSuggestion(SuggestBrightness))
	assert.True(t, a.HasSuggestion(SuggestContrast))
}

func TestQualityAnalyzer_SampleBound(t *testing.T) {
	qa := NewQualityAnalyzer(nil)

	small := qa.Analyze(frame.New(100, 10))
	assert.Equal(t, 100, small.Samples) // 1000 pixels / stride 10

	large := qa.Analyze(frame.New(1920, 1080))
	assert.Equal(t, 10000, large.Samples)
}

func TestQualityAnalyzer_NoisyCheckerboard(t *testing.T) {
	qa := NewQualityAnalyzer(nil)
	// Stride-10 samples land on both check colors as the row parity changes
	buf := createCheckerFrame(100, 100, 40, 200)

	a := qa.Analyze(buf)

	// Every horizontal neighbour differs by 160
	assert.InDelta(t, 160.0/255, a.NoiseLevel, 1e-9)
	assert.InDelta(t, 160.0/255, a.ContrastLevel, 1e-9)
	assert.True(t, a.HasSuggestion(SuggestDenoise))
	assert.False(t, a.HasSuggestion(SuggestContrast))
}

func TestQualityAnalyzer_Sharpness(t *testing.T) {
	qa := NewQualityAnalyzer(nil)

	// Vertical stripes two pixels wide: central differences are 0 or ±255
	buf := frame.NewFilled(64, 64, 0, frame.NeutralChroma, frame.NeutralChroma)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if (x/2)%2 == 1 {
				buf.Y[y*64+x] = 255
			}
		}
	}

	a := qa.Analyze(buf)
	assert.Greater(t, a.SharpnessScore, 0.3)
	assert.LessOrEqual(t, a.SharpnessScore, 1.0)
	assert.False(t, a.HasSuggestion(SuggestSharpen))
}

func TestQualityAnalyzer_Brightness(t *testing.T) {
	qa := NewQualityAnalyzer(nil)

	dark := qa.Analyze(frame.NewFilled(64, 64, 20, 128, 128))
	assert.True(t, dark.HasSuggestion(SuggestBrightness))

	bright := qa.Analyze(frame.NewFilled(64, 64, 240, 128, 128))
	assert.True(t, bright.HasSuggestion(SuggestBrightness))
}

func TestQualityAnalyzer_CustomThresholds(t *testing.T) {
	th := config.DefaultAnalysisThresholds()
	th.SharpnessBelow = 0
	th.ContrastBelow = 0

	a := NewQualityAnalyzer(th).Analyze(frame.NewFilled(32, 32, 128, 128, 128))
	assert.Empty(t, a.SuggestedEnhancements)
}

func TestQualityAnalyzer_DegenerateInput(t *testing.T) {
	qa := NewQualityAnalyzer(nil)

	assert.Equal(t, VideoQualityAnalysis{}, qa.Analyze(nil))
	assert.Equal(t, VideoQualityAnalysis{}, qa.AnalyzeLuma(nil, 10, 10))
	assert.Equal(t, VideoQualityAnalysis{}, qa.AnalyzeLuma(make([]byte, 10), 0, 10))

	// Short plane is analyzed over what exists
	a := qa.AnalyzeLuma(make([]byte, 50), 10, 10)
	assert.Equal(t, 5, a.Samples)
}

func TestQualityAnalyzer_LogsAssessment(t *testing.T) {
	// Capture log output
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	level := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(level)
	}()

	NewQualityAnalyzer(nil).Analyze(frame.NewFilled(32, 32, 128, 128, 128))

	output := buf.String()
	for _, field := range []string{"Frame quality assessed", "noise=", "sharpness=", "suggestions="} {
		assert.Contains(t, output, field)
	}
	assert.Contains(t, output, SuggestContrast)
}

func TestVideoQualityAnalysis_String(t *testing.T) {
	a := VideoQualityAnalysis{NoiseLevel: 0.5, SuggestedEnhancements: []string{SuggestDenoise}}
	assert.Contains(t, a.String(), "noise=0.500")
	assert.Contains(t, a.String(), "denoise")
}

func BenchmarkQualityAnalyzer(b *testing.B) {
	qa := NewQualityAnalyzer(nil)
	buf := createCheckerFrame(1920, 1080, 16, 235)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		qa.Analyze(buf)
	}
}
