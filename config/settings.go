package config

import (
	"math"

	"github.com/opd-ai/videnhance/enhance"
	"github.com/opd-ai/videnhance/limits"
)

// Settings is the active enhancement configuration (EnhancementSettings).
//
// Flags select the stages; numeric parameters tune them. Values outside their
// documented range are clamped, never rejected.
type Settings struct {
	Denoise       bool `yaml:"denoise"`
	Sharpen       bool `yaml:"sharpen"`
	Upscale       bool `yaml:"upscale"`
	Stabilize     bool `yaml:"stabilize"`
	EnhanceColors bool `yaml:"enhance_colors"`

	SharpnessLevel        float64 `yaml:"sharpness_level"`        // [0, 1]
	UpscaleRatio          float64 `yaml:"upscale_ratio"`          // [1, limits.MaxUpscaleRatio]
	StabilizationStrength float64 `yaml:"stabilization_strength"` // [0, 1]
	ColorSaturation       float64 `yaml:"color_saturation"`       // multiplicative, [0.5, 2]
	ContrastLevel         float64 `yaml:"contrast_level"`         // multiplicative, [0.5, 2]
	BrightnessLevel       float64 `yaml:"brightness_level"`       // additive, [-1, 1]

	UpscaleBorder  string `yaml:"upscale_border"`  // "gap" or "replicate"
	DenoiseWorkers int    `yaml:"denoise_workers"` // row bands filtered concurrently
}

// MaxDenoiseWorkers caps the denoise row-band parallelism.
const MaxDenoiseWorkers = 64

// DefaultSettings returns settings with every stage disabled and neutral
// parameters, so that processing is the identity until stages are enabled.
func DefaultSettings() Settings {
	return Settings{
		SharpnessLevel:        0.5,
		UpscaleRatio:          limits.MinUpscaleRatio,
		StabilizationStrength: 0.3,
		ColorSaturation:       1.0,
		ContrastLevel:         1.0,
		BrightnessLevel:       0.0,
		UpscaleBorder:         enhance.BorderGap.String(),
		DenoiseWorkers:        1,
	}
}

// Clamped returns a copy with every parameter inside its valid range.
func (s Settings) Clamped() Settings {
	clamped, _ := s.Sanitize()
	return clamped
}

// Sanitize returns a clamped copy and the names of the fields that had to be
// adjusted. NaN values are replaced with the default.
func (s Settings) Sanitize() (Settings, []string) {
	def := DefaultSettings()
	var adjusted []string

	clamp := func(name string, v *float64, lo, hi, fallback float64) {
		orig := *v
		switch {
		case math.IsNaN(orig):
			*v = fallback
		case orig < lo:
			*v = lo
		case orig > hi:
			*v = hi
		default:
			return
		}
		adjusted = append(adjusted, name)
	}

	clamp("sharpness_level", &s.SharpnessLevel, 0, 1, def.SharpnessLevel)
	clamp("upscale_ratio", &s.UpscaleRatio, limits.MinUpscaleRatio, limits.MaxUpscaleRatio, def.UpscaleRatio)
	clamp("stabilization_strength", &s.StabilizationStrength, 0, 1, def.StabilizationStrength)
	clamp("color_saturation", &s.ColorSaturation, enhance.MinGain, enhance.MaxGain, def.ColorSaturation)
	clamp("contrast_level", &s.ContrastLevel, enhance.MinGain, enhance.MaxGain, def.ContrastLevel)
	clamp("brightness_level", &s.BrightnessLevel, enhance.MinBrightness, enhance.MaxBrightness, def.BrightnessLevel)

	policy, ok := enhance.ParseBorderPolicy(s.UpscaleBorder)
	if !ok {
		adjusted = append(adjusted, "upscale_border")
	}
	s.UpscaleBorder = policy.String()

	if s.DenoiseWorkers < 1 || s.DenoiseWorkers > MaxDenoiseWorkers {
		s.DenoiseWorkers = max(1, min(s.DenoiseWorkers, MaxDenoiseWorkers))
		adjusted = append(adjusted, "denoise_workers")
	}

	return s, adjusted
}

// BorderPolicy returns the parsed upscale border policy.
func (s Settings) BorderPolicy() enhance.BorderPolicy {
	policy, _ := enhance.ParseBorderPolicy(s.UpscaleBorder)
	return policy
}

// AnyStageEnabled reports whether at least one stage flag is set.
func (s Settings) AnyStageEnabled() bool {
	return s.Denoise || s.Sharpen || s.Upscale || s.Stabilize || s.EnhanceColors
}
