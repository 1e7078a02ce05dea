package enhance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/videnhance/frame"
)

func TestNoiseReducer_PreservesLengthAndBorder(t *testing.T) {
	nr := NewNoiseReducer()
	buf := createNoisyFrame(32, 24, 20)

	result := nr.Apply(buf)

	assert.Equal(t, buf.Len(), result.Len())
	assert.Equal(t, buf.Width, result.Width)
	assert.Equal(t, buf.Height, result.Height)

	w, h := buf.Width, buf.Height
	for x := 0; x < w; x++ {
		assert.Equal(t, buf.Y[x], result.Y[x], "top border x=%d", x)
		assert.Equal(t, buf.Y[(h-1)*w+x], result.Y[(h-1)*w+x], "bottom border x=%d", x)
	}
	for y := 0; y < h; y++ {
		assert.Equal(t, buf.Y[y*w], result.Y[y*w], "left border y=%d", y)
		assert.Equal(t, buf.Y[y*w+w-1], result.Y[y*w+w-1], "right border y=%d", y)
	}

	assert.Equal(t, buf.U, result.U)
	assert.Equal(t, buf.V, result.V)
}

func TestNoiseReducer_DoesNotModifyInput(t *testing.T) {
	buf := createNoisyFrame(16, 16, 10)
	original := buf.Clone()

	NewNoiseReducer().Apply(buf)
	assert.True(t, original.Equal(buf))
}

func TestNoiseReducer_FlatFrameUnchanged(t *testing.T) {
	buf := frame.NewFilled(16, 16, 77, 60, 200)
	result := NewNoiseReducer().Apply(buf)

	assert.True(t, buf.Equal(result))
}

func TestNoiseReducer_ReducesNoise(t *testing.T) {
	buf := createNoisyFrame(64, 64, 15)
	result := NewNoiseReducer().Apply(buf)

	variance := func(p []byte) float64 {
		var sum, sumSq float64
		for _, v := range p {
			sum += float64(v)
			sumSq += float64(v) * float64(v)
		}
		n := float64(len(p))
		mean := sum / n
		return sumSq/n - mean*mean
	}

	assert.Less(t, variance(result.Y), variance(buf.Y))
}

func TestNoiseReducer_PreservesStrongEdge(t *testing.T) {
	buf := frame.NewFilled(16, 16, 0, frame.NeutralChroma, frame.NeutralChroma)
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			buf.Y[y*16+x] = 255
		}
	}

	result := NewNoiseReducer().Apply(buf)

	// Range weight at Δ=255 with σi=30 is effectively zero
	assert.Equal(t, byte(0), result.Y[8*16+7])
	assert.Equal(t, byte(255), result.Y[8*16+8])
}

func TestNoiseReducer_WorkersMatchSingleThreaded(t *testing.T) {
	buf := createNoisyFrame(48, 37, 25)

	single := NewNoiseReducer().Apply(buf)
	for _, workers := range []int{2, 3, 8, 100} {
		parallel := NewNoiseReducerWithParams(DefaultSpatialSigma, DefaultRangeSigma, workers).Apply(buf)
		assert.True(t, single.Equal(parallel), "workers=%d", workers)
	}
}

func TestNoiseReducer_TinyFrames(t *testing.T) {
	nr := NewNoiseReducer()
	for _, size := range [][2]int{{1, 1}, {2, 2}, {3, 3}, {2, 5}} {
		buf := createNoisyFrame(size[0], size[1], 5)
		assert.NotPanics(t, func() {
			result := nr.Apply(buf)
			assert.Equal(t, buf.Len(), result.Len())
		})
	}
}

func TestNoiseReducer_Name(t *testing.T) {
	assert.Equal(t, "Denoise(σs=2.0,σi=30.0)", NewNoiseReducer().Name())
}

func BenchmarkNoiseReducer(b *testing.B) {
	nr := NewNoiseReducer()
	buf := createNoisyFrame(640, 480, 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nr.Apply(buf)
	}
}

func BenchmarkNoiseReducer_Parallel4(b *testing.B) {
	nr := NewNoiseReducerWithParams(DefaultSpatialSigma, DefaultRangeSigma, 4)
	buf := createNoisyFrame(640, 480, 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nr.Apply(buf)
	}
}
