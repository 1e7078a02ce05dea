package frame

import (
	"bytes"
	"fmt"

	"github.com/opd-ai/videnhance/limits"
)

// NeutralChroma is the chroma value carrying no color.
const NeutralChroma = 128

// PixelBuffer represents a video frame in planar YUV 4:2:0 format.
//
// Y holds Width*Height luma samples; U and V each hold (Width/2)*(Height/2)
// chroma samples. All planes are tightly packed (stride == plane width).
// For even dimensions the total size is exactly Width*Height*3/2.
type PixelBuffer struct {
	Width  int
	Height int
	Y      []byte // Luminance plane
	U      []byte // Chrominance U plane
	V      []byte // Chrominance V plane
}

// ChromaDimensions returns the chroma plane size for a width x height frame.
func ChromaDimensions(width, height int) (int, int) {
	return width / 2, height / 2
}

// BufferSize returns the contiguous I420 size of a width x height frame.
func BufferSize(width, height int) int {
	cw, ch := ChromaDimensions(width, height)
	return width*height + 2*cw*ch
}

// New allocates a zeroed frame. Chroma planes are zero as well; use NewFilled
// when a neutral (gray) frame is wanted.
func New(width, height int) *PixelBuffer {
	cw, ch := ChromaDimensions(width, height)
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Y:      make([]byte, width*height),
		U:      make([]byte, cw*ch),
		V:      make([]byte, cw*ch),
	}
}

// NewFilled allocates a frame with every plane set to a constant value.
func NewFilled(width, height int, y, u, v byte) *PixelBuffer {
	buf := New(width, height)
	fill(buf.Y, y)
	fill(buf.U, u)
	fill(buf.V, v)
	return buf
}

// FromBytes splits one contiguous I420 buffer (Y then U then V) into a PixelBuffer.
// The planes are copied, so the caller keeps ownership of data.
func FromBytes(data []byte, width, height int) (*PixelBuffer, error) {
	if err := limits.ValidateDimensions(width, height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}
	if len(data) != BufferSize(width, height) {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d for %dx%d",
			ErrPlaneSize, len(data), BufferSize(width, height), width, height)
	}

	buf := New(width, height)
	ySize := len(buf.Y)
	uvSize := len(buf.U)

	offset := 0
	copy(buf.Y, data[offset:offset+ySize])
	offset += ySize
	copy(buf.U, data[offset:offset+uvSize])
	offset += uvSize
	copy(buf.V, data[offset:offset+uvSize])

	return buf, nil
}

// Bytes returns the frame as one contiguous I420 buffer.
func (b *PixelBuffer) Bytes() []byte {
	data := make([]byte, 0, b.Len())
	data = append(data, b.Y...)
	data = append(data, b.U...)
	return append(data, b.V...)
}

// Len returns the total number of bytes across all planes.
func (b *PixelBuffer) Len() int {
	return len(b.Y) + len(b.U) + len(b.V)
}

// ChromaWidth returns the width of the U and V planes.
func (b *PixelBuffer) ChromaWidth() int {
	return b.Width / 2
}

// ChromaHeight returns the height of the U and V planes.
func (b *PixelBuffer) ChromaHeight() int {
	return b.Height / 2
}

// Validate checks that the frame is properly formatted for 4:2:0 processing.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return ErrNilFrame
	}

	if err := limits.ValidateDimensions(b.Width, b.Height); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}

	expectedYSize := b.Width * b.Height
	cw, ch := ChromaDimensions(b.Width, b.Height)
	expectedUVSize := cw * ch

	if len(b.Y) != expectedYSize {
		return fmt.Errorf("%w: Y plane got %d, expected %d", ErrPlaneSize, len(b.Y), expectedYSize)
	}
	if len(b.U) != expectedUVSize {
		return fmt.Errorf("%w: U plane got %d, expected %d", ErrPlaneSize, len(b.U), expectedUVSize)
	}
	if len(b.V) != expectedUVSize {
		return fmt.Errorf("%w: V plane got %d, expected %d", ErrPlaneSize, len(b.V), expectedUVSize)
	}

	return nil
}

// Clone creates a deep copy of the frame.
func (b *PixelBuffer) Clone() *PixelBuffer {
	return &PixelBuffer{
		Width:  b.Width,
		Height: b.Height,
		Y:      append([]byte(nil), b.Y...),
		U:      append([]byte(nil), b.U...),
		V:      append([]byte(nil), b.V...),
	}
}

// SameLayout reports whether other has identical dimensions and plane sizes.
func (b *PixelBuffer) SameLayout(other *PixelBuffer) bool {
	if b == nil || other == nil {
		return false
	}
	return b.Width == other.Width && b.Height == other.Height &&
		len(b.Y) == len(other.Y) && len(b.U) == len(other.U) && len(b.V) == len(other.V)
}

// Equal reports whether other has the same layout and byte-identical planes.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	return b.SameLayout(other) &&
		bytes.Equal(b.Y, other.Y) && bytes.Equal(b.U, other.U) && bytes.Equal(b.V, other.V)
}

// String returns a short description for logging.
func (b *PixelBuffer) String() string {
	if b == nil {
		return "PixelBuffer(nil)"
	}
	return fmt.Sprintf("PixelBuffer(%dx%d, %d bytes)", b.Width, b.Height, b.Len())
}

func fill(plane []byte, value byte) {
	for i := range plane {
		plane[i] = value
	}
}
