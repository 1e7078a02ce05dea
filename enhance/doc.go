// Package enhance provides the frame enhancement stages of the pipeline.
//
// Five stages operate on planar YUV 4:2:0 frames (see package frame):
//
//   - NoiseReducer: 5x5 bilateral filter over the luma interior
//   - Sharpener: Laplacian unsharp mask over the luma interior
//   - Upscaler: bilinear enlargement of all planes by a fixed ratio
//   - TemporalStabilizer: exponential blend with the previous output
//   - ColorEnhancer: gamma contrast, brightness offset, chroma saturation
//
// Every stage implements Stage and is total over valid frames: it never
// returns an error and never modifies its input.
//
//	chain := enhance.NewStageChain()
//	chain.Add(enhance.NewNoiseReducer())
//	chain.Add(enhance.NewSharpener(0.5))
//	chain.Add(enhance.NewColorEnhancer(1.2, 0.05, 1.1))
//
//	out := chain.Apply(buf)
//
// # Upscale Borders
//
// Destination pixels whose back-mapped source position lies outside
// [0, w-2] x [0, h-2] have no complete 2x2 neighbourhood. With BorderGap they
// keep their initial value (luma 0, chroma neutral); BorderReplicate samples
// with clamped coordinates instead.
//
// # Thread Safety
//
// NoiseReducer, Sharpener, Upscaler and ColorEnhancer are immutable after
// construction and may be shared. TemporalStabilizer holds per-stream state
// and must be owned by exactly one pipeline.
package enhance
