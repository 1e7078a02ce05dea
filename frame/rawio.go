package frame

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/videnhance/limits"
)

// CompressedSuffix marks raw I420 streams stored zstd-compressed.
const CompressedSuffix = ".zst"

// Reader reads consecutive fixed-size I420 frames from a raw stream.
//
// Raw streams carry no header: every frame is Width*Height luma bytes
// followed by the U and V planes, exactly as produced by a decoder.
type Reader struct {
	r      io.Reader
	closer io.Closer
	width  int
	height int
	buf    []byte
	frames uint64
}

// NewReader wraps r as a frame stream of the given dimensions. Dimensions
// outside the frame limits are rejected before any buffer is allocated.
func NewReader(r io.Reader, width, height int) (*Reader, error) {
	if err := limits.ValidateDimensions(width, height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}
	return &Reader{
		r:      r,
		width:  width,
		height: height,
		buf:    make([]byte, BufferSize(width, height)),
	}, nil
}

// OpenReader opens a raw frame file. Paths ending in CompressedSuffix are
// decompressed on the fly with zstd.
func OpenReader(path string, width, height int) (*Reader, error) {
	if err := limits.ValidateDimensions(width, height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame stream: %w", err)
	}

	if !strings.HasSuffix(path, CompressedSuffix) {
		reader, err := NewReader(f, width, height)
		if err != nil {
			f.Close()
			return nil, err
		}
		reader.closer = f
		return reader, nil
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "OpenReader",
		"path":     path,
		"width":    width,
		"height":   height,
	}).Debug("Opened compressed frame stream")

	reader, err := NewReader(dec, width, height)
	if err != nil {
		dec.Close()
		f.Close()
		return nil, err
	}
	reader.closer = multiCloser{dec.IOReadCloser(), f}
	return reader, nil
}

// ReadFrame reads the next frame. It returns io.EOF when the stream ends on a
// frame boundary and ErrShortFrame when it ends mid-frame.
func (r *Reader) ReadFrame() (*PixelBuffer, error) {
	n, err := io.ReadFull(r.r, r.buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: frame %d has %d of %d bytes", ErrShortFrame, r.frames, n, len(r.buf))
		}
		return nil, fmt.Errorf("failed to read frame %d: %w", r.frames, err)
	}

	buf, err := FromBytes(r.buf, r.width, r.height)
	if err != nil {
		return nil, err
	}
	r.frames++
	return buf, nil
}

// FramesRead returns the number of complete frames read so far.
func (r *Reader) FramesRead() uint64 {
	return r.frames
}

// Close releases the underlying file and decoder, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Writer writes I420 frames to a raw stream.
//
// The first frame fixes the stream dimensions; later frames must match.
type Writer struct {
	w      io.Writer
	closer io.Closer
	width  int
	height int
	frames uint64
}

// NewWriter wraps w as a raw frame stream.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// CreateWriter creates a raw frame file. Paths ending in CompressedSuffix are
// compressed with zstd.
func CreateWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create frame stream: %w", err)
	}

	if !strings.HasSuffix(path, CompressedSuffix) {
		writer := NewWriter(f)
		writer.closer = f
		return writer, nil
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	writer := NewWriter(enc)
	writer.closer = multiCloser{enc, f}
	return writer, nil
}

// WriteFrame appends one frame to the stream.
func (w *Writer) WriteFrame(buf *PixelBuffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if w.frames == 0 {
		w.width, w.height = buf.Width, buf.Height
	} else if buf.Width != w.width || buf.Height != w.height {
		return fmt.Errorf("%w: got %dx%d, stream is %dx%d",
			ErrLayoutMismatch, buf.Width, buf.Height, w.width, w.height)
	}

	for _, plane := range [][]byte{buf.Y, buf.U, buf.V} {
		if _, err := w.w.Write(plane); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", w.frames, err)
		}
	}
	w.frames++
	return nil
}

// FramesWritten returns the number of frames written so far.
func (w *Writer) FramesWritten() uint64 {
	return w.frames
}

// Close flushes the encoder, if any, and closes the underlying file.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// multiCloser closes every closer in order and reports the first error.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
