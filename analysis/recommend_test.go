package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/videnhance/config"
)

func TestRecommend_NoSuggestionsKeepsBase(t *testing.T) {
	base := config.DefaultSettings()
	base.Stabilize = true

	s := Recommend(VideoQualityAnalysis{}, base)
	assert.Equal(t, base, s)
}

func TestRecommend_EnablesSuggestedStages(t *testing.T) {
	a := VideoQualityAnalysis{
		BrightnessLevel: 0.1,
		SuggestedEnhancements: []string{
			SuggestDenoise, SuggestSharpen, SuggestBrightness, SuggestContrast,
		},
	}
	base := config.DefaultSettings()
	base.SharpnessLevel = 0.2

	s := Recommend(a, base)

	assert.True(t, s.Denoise)
	assert.True(t, s.Sharpen)
	assert.True(t, s.EnhanceColors)
	assert.Equal(t, 0.5, s.SharpnessLevel)
	assert.InDelta(t, 0.2, s.BrightnessLevel, 1e-9) // (0.5-0.1)*0.5
	assert.Equal(t, 1.2, s.ContrastLevel)
	assert.False(t, s.Upscale)
}

func TestRecommend_NeverWeakens(t *testing.T) {
	base := config.DefaultSettings()
	base.Sharpen = true
	base.SharpnessLevel = 0.9
	base.ContrastLevel = 1.8

	s := Recommend(VideoQualityAnalysis{
		SuggestedEnhancements: []string{SuggestSharpen, SuggestContrast},
	}, base)

	assert.Equal(t, 0.9, s.SharpnessLevel)
	assert.Equal(t, 1.8, s.ContrastLevel)
}

func TestRecommend_DarkFrameEndToEnd(t *testing.T) {
	qa := NewQualityAnalyzer(nil)
	a := qa.AnalyzeLuma(make([]byte, 64*64), 64, 64)

	s := Recommend(a, config.DefaultSettings())
	assert.True(t, s.EnhanceColors)
	assert.Greater(t, s.BrightnessLevel, 0.0)
}
