package pipeline

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Stats is a snapshot of a pipeline's frame counters and timings.
type Stats struct {
	FramesProcessed uint64 // frames that ran through the stage chain
	FramesSkipped   uint64 // frames returned unmodified because the pipeline was busy
	FramesRejected  uint64 // invalid frames returned unmodified

	LastFrameTime time.Duration
	AvgFrameTime  time.Duration // exponential moving average, alpha 0.1
	PeakFrameTime time.Duration
}

// String returns a compact single-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("processed=%d skipped=%d rejected=%d last=%v avg=%v peak=%v",
		s.FramesProcessed, s.FramesSkipped, s.FramesRejected,
		s.LastFrameTime, s.AvgFrameTime, s.PeakFrameTime)
}

// statsCollector keeps lock-free counters and mutex-guarded timings.
type statsCollector struct {
	processed atomic.Uint64
	skipped   atomic.Uint64
	rejected  atomic.Uint64

	mu   sync.RWMutex
	last time.Duration
	avg  time.Duration
	peak time.Duration
}

func (sc *statsCollector) recordSkipped() {
	sc.skipped.Add(1)
}

func (sc *statsCollector) recordRejected() {
	sc.rejected.Add(1)
}

// recordFrame counts a processed frame and folds its duration into the timings.
func (sc *statsCollector) recordFrame(d time.Duration) {
	sc.processed.Add(1)

	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.last = d
	if sc.avg == 0 {
		sc.avg = d
	} else {
		sc.avg = time.Duration(float64(sc.avg)*0.9 + float64(d)*0.1)
	}
	if d > sc.peak {
		sc.peak = d
	}
}

func (sc *statsCollector) snapshot() Stats {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return Stats{
		FramesProcessed: sc.processed.Load(),
		FramesSkipped:   sc.skipped.Load(),
		FramesRejected:  sc.rejected.Load(),
		LastFrameTime:   sc.last,
		AvgFrameTime:    sc.avg,
		PeakFrameTime:   sc.peak,
	}
}
