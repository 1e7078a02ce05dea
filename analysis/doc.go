// Package analysis provides the analysis companions of the enhancement
// pipeline: per-frame quality estimation and scene-change detection.
//
// Neither component is required on every frame. Applications typically
// analyze every Nth frame and feed the result back into the pipeline
// settings:
//
//	analyzer := analysis.NewQualityAnalyzer(nil)
//	report := analyzer.Analyze(buf)
//	if len(report.SuggestedEnhancements) > 0 {
//	    p.UpdateSettings(analysis.Recommend(report, p.Settings()))
//	}
//
// Scene-change detection compares two frames supplied by the caller:
//
//	detector := analysis.NewSceneChangeDetector(nil)
//	if detector.Detect(current, previous) {
//	    p.Reset() // do not smear the old scene into the new one
//	}
//
// The thresholds behind suggestions and cuts live in
// config.AnalysisThresholds and are policy, not physics.
package analysis
