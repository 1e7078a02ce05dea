package pipeline

import (
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/videnhance/analysis"
)

// Option configures an EnhancementPipeline.
type Option func(*EnhancementPipeline)

// WithTimeProvider sets the clock used for frame timing.
func WithTimeProvider(tp TimeProvider) Option {
	return func(p *EnhancementPipeline) {
		p.timeProvider = getTimeProvider(tp)
	}
}

// WithAnalyzer replaces the default quality analyzer.
func WithAnalyzer(qa *analysis.QualityAnalyzer) Option {
	return func(p *EnhancementPipeline) {
		if qa != nil {
			p.analyzer = qa
		}
	}
}

// WithSceneDetector replaces the default scene-change detector.
func WithSceneDetector(sd *analysis.SceneChangeDetector) Option {
	return func(p *EnhancementPipeline) {
		if sd != nil {
			p.detector = sd
		}
	}
}

// WithLogger sets the base log entry. The pipeline ID is added to it.
func WithLogger(entry *logrus.Entry) Option {
	return func(p *EnhancementPipeline) {
		if entry != nil {
			p.log = entry
		}
	}
}
