// Package config provides the enhancement settings consumed by the pipeline
// and the YAML configuration file used by the command-line tool.
//
// # Settings
//
// Settings mirrors the player's enhancement preferences: five stage flags and
// their numeric parameters. The pipeline never trusts raw values; it clamps
// them with Settings.Clamped, so a bad preference degrades to the nearest
// valid value instead of interrupting playback.
//
//	s := config.DefaultSettings()
//	s.Denoise = true
//	s.Sharpen = true
//	s.SharpnessLevel = 0.6
//
// # Configuration File
//
//	enhancement:
//	  denoise: true
//	  upscale: true
//	  upscale_ratio: 1.5
//	  upscale_border: replicate
//	analysis:
//	  noise_above: 0.12
//	logging:
//	  level: debug
//	  format: json
//
// Omitted keys keep their defaults. Numeric values out of range are clamped
// with a warning; unknown enum strings are rejected with ErrInvalidConfig.
package config
