// Package pipeline orchestrates the enhancement stages for one video surface.
//
// An EnhancementPipeline reads its settings once per frame, runs the enabled
// stages in a fixed order and never blocks a caller: a frame that arrives
// while another is being processed is returned unmodified.
//
// Basic usage:
//
//	s := config.DefaultSettings()
//	s.Denoise = true
//	s.Stabilize = true
//	p := pipeline.New(s)
//	defer p.Release()
//
//	for buf := range frames {
//	    out := p.Process(buf)
//	    render(out)
//	}
//
// Pipelines are independent. Run one per surface to process surfaces in
// parallel.
package pipeline
