package frame

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderWriter_RoundTripStream(t *testing.T) {
	var stream bytes.Buffer
	w := NewWriter(&stream)

	frames := []*PixelBuffer{createTestFrame(16, 8), NewFilled(16, 8, 10, 20, 30)}
	for _, f := range frames {
		require.NoError(t, w.WriteFrame(f))
	}
	assert.Equal(t, uint64(2), w.FramesWritten())
	assert.Equal(t, 2*BufferSize(16, 8), stream.Len())

	r, err := NewReader(&stream, 16, 8)
	require.NoError(t, err)
	for _, want := range frames {
		got, err := r.ReadFrame()
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	}

	_, err = r.ReadFrame()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, uint64(2), r.FramesRead())
}

func TestReader_ShortFrame(t *testing.T) {
	r, err := NewReader(bytes.NewReader(make([]byte, BufferSize(4, 4)-1)), 4, 4)
	require.NoError(t, err)

	_, err = r.ReadFrame()
	assert.True(t, errors.Is(err, ErrShortFrame))
}

func TestWriter_LayoutMismatch(t *testing.T) {
	w := NewWriter(io.Discard)
	require.NoError(t, w.WriteFrame(New(8, 8)))

	err := w.WriteFrame(New(16, 16))
	assert.ErrorIs(t, err, ErrLayoutMismatch)
}

func TestFileStreams(t *testing.T) {
	for _, name := range []string{"frames.yuv", "frames.yuv" + CompressedSuffix} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			src := createTestFrame(32, 16)

			w, err := CreateWriter(path)
			require.NoError(t, err)
			for i := 0; i < 3; i++ {
				require.NoError(t, w.WriteFrame(src))
			}
			require.NoError(t, w.Close())

			r, err := OpenReader(path, 32, 16)
			require.NoError(t, err)
			defer r.Close()

			count := 0
			for {
				got, err := r.ReadFrame()
				if errors.Is(err, io.EOF) {
					break
				}
				require.NoError(t, err)
				assert.True(t, src.Equal(got))
				count++
			}
			assert.Equal(t, 3, count)
		})
	}
}

func TestOpenReader_MissingFile(t *testing.T) {
	_, err := OpenReader(filepath.Join(t.TempDir(), "missing.yuv"), 4, 4)
	assert.Error(t, err)
}

func TestReader_RejectsOversizedDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 16},
		{"side over limit", 100000, 16},
		{"overflowing area", 3037000499, 3037000499},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(bytes.NewReader(nil), tt.width, tt.height)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, ErrInvalidDimensions)

			// No file is touched when the dimensions are invalid
			r, err = OpenReader(filepath.Join(t.TempDir(), "missing.yuv"), tt.width, tt.height)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		})
	}
}
