package pipeline

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/videnhance/analysis"
	"github.com/opd-ai/videnhance/config"
	"github.com/opd-ai/videnhance/enhance"
	"github.com/opd-ai/videnhance/frame"
)

// stageSet is the immutable stage configuration derived from one Settings
// value. The stabilizer is not part of it: its state belongs to the pipeline.
type stageSet struct {
	settings  config.Settings
	before    *enhance.StageChain // denoise, sharpen, upscale
	stabilize bool
	after     *enhance.StageChain // color
}

func newStageSet(s config.Settings) *stageSet {
	s = s.Clamped()
	set := &stageSet{
		settings:  s,
		before:    enhance.NewStageChain(),
		stabilize: s.Stabilize,
		after:     enhance.NewStageChain(),
	}

	if s.Denoise {
		set.before.Add(enhance.NewNoiseReducerWithParams(
			enhance.DefaultSpatialSigma, enhance.DefaultRangeSigma, s.DenoiseWorkers))
	}
	if s.Sharpen {
		set.before.Add(enhance.NewSharpener(s.SharpnessLevel))
	}
	if s.Upscale {
		set.before.Add(enhance.NewUpscaler(s.UpscaleRatio, s.BorderPolicy()))
	}
	if s.EnhanceColors {
		set.after.Add(enhance.NewColorEnhancer(s.ContrastLevel, s.BrightnessLevel, s.ColorSaturation))
	}

	return set
}

// EnhancementPipeline runs the enhancement stages over a stream of frames.
//
// Stage order is fixed: denoise, sharpen, upscale, stabilize, color. Each
// stage runs only when its flag is set in the active settings.
//
// At most one frame is processed at a time. A Process call that arrives while
// another is in flight does not block or queue: it returns its input
// unmodified. Settings may be updated from any goroutine and take effect
// from the next frame. Each pipeline owns its stabilizer state, so separate
// pipelines can run in parallel without coordination.
type EnhancementPipeline struct {
	id  uuid.UUID
	log *logrus.Entry

	busy     atomic.Bool
	released atomic.Bool
	active   atomic.Pointer[stageSet]

	// stateMu guards the stabilizer against Reset from another goroutine.
	stateMu    sync.Mutex
	stabilizer *enhance.TemporalStabilizer

	analyzer     *analysis.QualityAnalyzer
	detector     *analysis.SceneChangeDetector
	timeProvider TimeProvider
	stats        statsCollector
}

// New creates a pipeline with the given initial settings.
func New(settings config.Settings, opts ...Option) *EnhancementPipeline {
	p := &EnhancementPipeline{
		id:           uuid.New(),
		log:          logrus.NewEntry(logrus.StandardLogger()),
		analyzer:     analysis.NewQualityAnalyzer(nil),
		detector:     analysis.NewSceneChangeDetector(nil),
		timeProvider: RealTimeProvider{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithField("pipeline", p.id.String())

	set := newStageSet(settings)
	p.active.Store(set)
	p.stabilizer = enhance.NewTemporalStabilizer(set.settings.StabilizationStrength)

	p.log.WithFields(logrus.Fields{
		"function": "New",
		"stages":   stageNames(set),
	}).Debug("Enhancement pipeline created")

	return p
}

// ID returns the pipeline's unique identifier.
func (p *EnhancementPipeline) ID() uuid.UUID {
	return p.id
}

// Process enhances buf with the active settings.
//
// The input is never modified. The result is buf itself when no stage is
// enabled, when buf is invalid, when the pipeline is busy or released.
// With upscaling enabled the result has larger dimensions.
func (p *EnhancementPipeline) Process(buf *frame.PixelBuffer) *frame.PixelBuffer {
	return p.process(buf, p.active.Load())
}

// ProcessWithSettings enhances buf using s for this frame only. The active
// settings are unchanged. Stabilizer state is shared with Process.
func (p *EnhancementPipeline) ProcessWithSettings(buf *frame.PixelBuffer, s config.Settings) *frame.PixelBuffer {
	return p.process(buf, newStageSet(s))
}

func (p *EnhancementPipeline) process(buf *frame.PixelBuffer, set *stageSet) *frame.PixelBuffer {
	if p.released.Load() {
		return buf
	}

	if err := buf.Validate(); err != nil {
		p.stats.recordRejected()
		p.log.WithFields(logrus.Fields{
			"function": "Process",
			"error":    err.Error(),
		}).Warn("Invalid frame passed through unchanged")
		return buf
	}

	if !p.busy.CompareAndSwap(false, true) {
		p.stats.recordSkipped()
		p.log.WithFields(logrus.Fields{
			"function": "Process",
			"frame":    buf.String(),
		}).Debug("Pipeline busy, frame skipped")
		return buf
	}
	defer p.busy.Store(false)

	start := p.timeProvider.Now()

	out := set.before.Apply(buf)
	if set.stabilize {
		out = p.stabilize(out, set.settings.StabilizationStrength)
	}
	out = set.after.Apply(out)

	elapsed := p.timeProvider.Now().Sub(start)
	p.stats.recordFrame(elapsed)

	p.log.WithFields(logrus.Fields{
		"function": "Process",
		"input":    buf.String(),
		"output":   out.String(),
		"duration": elapsed,
	}).Trace("Frame processed")

	return out
}

func (p *EnhancementPipeline) stabilize(buf *frame.PixelBuffer, strength float64) *frame.PixelBuffer {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	p.stabilizer.SetStrength(strength)
	return p.stabilizer.Apply(buf)
}

// UpdateSettings replaces the active settings with a clamped copy of s.
// A frame already in flight finishes with the settings it started with.
func (p *EnhancementPipeline) UpdateSettings(s config.Settings) {
	clamped, adjusted := s.Sanitize()
	set := newStageSet(clamped)
	p.active.Store(set)

	fields := logrus.Fields{
		"function": "UpdateSettings",
		"stages":   stageNames(set),
	}
	if len(adjusted) > 0 {
		fields["clamped"] = adjusted
	}
	p.log.WithFields(fields).Debug("Enhancement settings updated")
}

// Settings returns the active (clamped) settings.
func (p *EnhancementPipeline) Settings() config.Settings {
	return p.active.Load().settings
}

// AnalyzeQuality estimates the quality of buf. It does not touch pipeline
// state and may be called concurrently with Process.
func (p *EnhancementPipeline) AnalyzeQuality(buf *frame.PixelBuffer) analysis.VideoQualityAnalysis {
	return p.analyzer.Analyze(buf)
}

// DetectSceneChange reports whether current starts a new scene relative to
// previous. It does not touch pipeline state.
func (p *EnhancementPipeline) DetectSceneChange(current, previous *frame.PixelBuffer) bool {
	return p.detector.Detect(current, previous)
}

// Reset drops the stabilizer's retained frame. The next stabilized frame is
// a cold start.
func (p *EnhancementPipeline) Reset() {
	p.stateMu.Lock()
	p.stabilizer.Reset()
	p.stateMu.Unlock()

	p.log.WithFields(logrus.Fields{
		"function": "Reset",
	}).Debug("Pipeline state cleared")
}

// Release clears pipeline state and disables processing. Later Process
// calls return their input unchanged.
func (p *EnhancementPipeline) Release() {
	if p.released.Swap(true) {
		return
	}
	p.Reset()

	p.log.WithFields(logrus.Fields{
		"function": "Release",
		"stats":    p.Stats().String(),
	}).Info("Pipeline released")
}

// Released reports whether Release has been called.
func (p *EnhancementPipeline) Released() bool {
	return p.released.Load()
}

// Stats returns a snapshot of the frame counters and timings.
func (p *EnhancementPipeline) Stats() Stats {
	return p.stats.snapshot()
}

func stageNames(set *stageSet) string {
	names := set.before.Names()
	if set.stabilize {
		names = joinStage(names, fmt.Sprintf("Stabilize(%.2f)", set.settings.StabilizationStrength))
	}
	return joinStage(names, set.after.Names())
}

func joinStage(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " -> " + b
	}
}
