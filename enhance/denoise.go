package enhance

import (
	"fmt"
	"math"
	"sync"

	"github.com/opd-ai/videnhance/frame"
)

const (
	// DefaultSpatialSigma is the bilateral filter's spatial standard deviation.
	DefaultSpatialSigma = 2.0
	// DefaultRangeSigma is the bilateral filter's intensity standard deviation.
	DefaultRangeSigma = 30.0
	// denoiseRadius gives the 5x5 neighbourhood.
	denoiseRadius = 2
)

// NoiseReducer applies an edge-preserving bilateral filter to the luminance plane.
//
// Every interior pixel is replaced by the average of its 5x5 neighbourhood,
// each neighbour weighted by exp(-d²/2σs²)·exp(-Δi²/2σi²). The one pixel
// border and both chroma planes are copied unchanged. Neighbours outside the
// frame are excluded from the sum.
type NoiseReducer struct {
	spatialSigma float64
	rangeSigma   float64
	workers      int

	spatial  [(2*denoiseRadius + 1) * (2*denoiseRadius + 1)]float64
	rangeLUT [256]float64
}

// NewNoiseReducer creates a bilateral denoiser with σs=2.0 and σi=30.0.
func NewNoiseReducer() *NoiseReducer {
	return NewNoiseReducerWithParams(DefaultSpatialSigma, DefaultRangeSigma, 1)
}

// NewNoiseReducerWithParams creates a denoiser with custom sigmas.
// workers > 1 splits the frame into row bands filtered concurrently; the
// output is identical to the single worker result.
func NewNoiseReducerWithParams(spatialSigma, rangeSigma float64, workers int) *NoiseReducer {
	spatialSigma = clampFloat(spatialSigma, 0.1, 100, DefaultSpatialSigma)
	rangeSigma = clampFloat(rangeSigma, 0.1, 1000, DefaultRangeSigma)
	if workers < 1 {
		workers = 1
	}

	nr := &NoiseReducer{
		spatialSigma: spatialSigma,
		rangeSigma:   rangeSigma,
		workers:      workers,
	}

	k := 0
	for dy := -denoiseRadius; dy <= denoiseRadius; dy++ {
		for dx := -denoiseRadius; dx <= denoiseRadius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			nr.spatial[k] = math.Exp(-d2 / (2 * spatialSigma * spatialSigma))
			k++
		}
	}
	for i := range nr.rangeLUT {
		d := float64(i)
		nr.rangeLUT[i] = math.Exp(-d * d / (2 * rangeSigma * rangeSigma))
	}

	return nr
}

// Apply filters the Y plane and returns a new frame.
func (nr *NoiseReducer) Apply(buf *frame.PixelBuffer) *frame.PixelBuffer {
	result := buf.Clone()

	width, height := buf.Width, buf.Height
	if width < 3 || height < 3 {
		return result
	}

	// Interior rows only
	first, last := 1, height-1
	workers := min(nr.workers, last-first)
	if workers <= 1 {
		nr.filterRows(buf.Y, result.Y, width, height, first, last)
		return result
	}

	rowsPerWorker := (last - first) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		startRow := first + w*rowsPerWorker
		endRow := startRow + rowsPerWorker
		if w == workers-1 {
			endRow = last
		}

		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			nr.filterRows(buf.Y, result.Y, width, height, y0, y1)
		}(startRow, endRow)
	}
	wg.Wait()

	return result
}

// filterRows filters interior pixels of rows [y0, y1) from src into dst.
func (nr *NoiseReducer) filterRows(src, dst []byte, width, height, y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := 1; x < width-1; x++ {
			center := int(src[y*width+x])
			var sum, weightSum float64

			k := 0
			for dy := -denoiseRadius; dy <= denoiseRadius; dy++ {
				ny := y + dy
				for dx := -denoiseRadius; dx <= denoiseRadius; dx++ {
					nx := x + dx
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						k++
						continue
					}

					neighbor := int(src[ny*width+nx])
					diff := neighbor - center
					if diff < 0 {
						diff = -diff
					}

					weight := nr.spatial[k] * nr.rangeLUT[diff]
					sum += weight * float64(neighbor)
					weightSum += weight
					k++
				}
			}

			dst[y*width+x] = clampByte(sum / weightSum)
		}
	}
}

// Name returns the stage name.
func (nr *NoiseReducer) Name() string {
	return fmt.Sprintf("Denoise(σs=%.1f,σi=%.1f)", nr.spatialSigma, nr.rangeSigma)
}
