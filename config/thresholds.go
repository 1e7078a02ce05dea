package config

// AnalysisThresholds defines the policy thresholds used by quality analysis
// and scene-change detection.
//
// These are tuning knobs, not physical constants; applications can
// customize them per content type.
type AnalysisThresholds struct {
	NoiseAbove     float64 `yaml:"noise_above"`     // suggest denoise when noise > this
	SharpnessBelow float64 `yaml:"sharpness_below"` // suggest sharpen when sharpness < this
	BrightnessMin  float64 `yaml:"brightness_min"`  // suggest brightness outside [min, max]
	BrightnessMax  float64 `yaml:"brightness_max"`
	ContrastBelow  float64 `yaml:"contrast_below"` // suggest contrast when contrast < this

	SampleStride int `yaml:"sample_stride"` // luma positions between samples
	MaxSamples   int `yaml:"max_samples"`   // upper bound on sampled positions

	SceneChangeAbove  float64 `yaml:"scene_change_above"`  // cut when mean abs diff > this
	SceneChangeStride int     `yaml:"scene_change_stride"` // bytes between compared samples
}

// DefaultAnalysisThresholds returns the standard analysis policy.
func DefaultAnalysisThresholds() *AnalysisThresholds {
	return &AnalysisThresholds{
		NoiseAbove:        0.1,
		SharpnessBelow:    0.3,
		BrightnessMin:     0.2,
		BrightnessMax:     0.8,
		ContrastBelow:     0.3,
		SampleStride:      10,
		MaxSamples:        10000,
		SceneChangeAbove:  0.3,
		SceneChangeStride: 100,
	}
}

// Normalized returns a copy safe for use by analyzers: non-positive sampling
// parameters take their defaults and an inverted brightness band is swapped.
func (t AnalysisThresholds) Normalized() AnalysisThresholds {
	def := DefaultAnalysisThresholds()
	if t.SampleStride <= 0 {
		t.SampleStride = def.SampleStride
	}
	if t.MaxSamples <= 0 {
		t.MaxSamples = def.MaxSamples
	}
	if t.SceneChangeStride <= 0 {
		t.SceneChangeStride = def.SceneChangeStride
	}
	if t.BrightnessMax < t.BrightnessMin {
		t.BrightnessMin, t.BrightnessMax = t.BrightnessMax, t.BrightnessMin
	}
	return t
}
