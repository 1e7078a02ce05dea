package enhance

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/videnhance/frame"
	"github.com/opd-ai/videnhance/limits"
)

// BorderPolicy selects how the upscaler fills destination pixels whose
// back-mapped source position has no complete 2x2 neighbourhood.
type BorderPolicy int

const (
	// BorderGap leaves those pixels at their initial value: luma 0, chroma neutral.
	BorderGap BorderPolicy = iota
	// BorderReplicate clamps the source coordinates to the last row and column.
	BorderReplicate
)

// String returns the configuration name of the policy.
func (p BorderPolicy) String() string {
	switch p {
	case BorderGap:
		return "gap"
	case BorderReplicate:
		return "replicate"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ParseBorderPolicy parses "gap" or "replicate"; anything else yields BorderGap and false.
func ParseBorderPolicy(s string) (BorderPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gap":
		return BorderGap, true
	case "replicate":
		return BorderReplicate, true
	default:
		return BorderGap, false
	}
}

// Upscaler enlarges frames by a fixed ratio using bilinear interpolation.
//
// Each destination pixel (x, y) maps back to source (x/ratio, y/ratio) and
// blends the four surrounding source pixels. Luma and chroma planes use the
// same scheme, each at its own resolution.
type Upscaler struct {
	ratio  float64
	border BorderPolicy
}

// NewUpscaler creates an upscaling stage. Ratios are clamped to
// [limits.MinUpscaleRatio, limits.MaxUpscaleRatio].
func NewUpscaler(ratio float64, border BorderPolicy) *Upscaler {
	return &Upscaler{
		ratio:  limits.ClampUpscaleRatio(ratio),
		border: border,
	}
}

// Ratio returns the clamped upscale ratio.
func (u *Upscaler) Ratio() float64 {
	return u.ratio
}

// OutputDimensions returns the frame size Apply produces for a width x height input.
func (u *Upscaler) OutputDimensions(width, height int) (int, int) {
	if u.ratio <= limits.MinUpscaleRatio {
		return width, height
	}
	return limits.UpscaledDimensions(width, height, u.ratio)
}

// Apply returns the input itself when the ratio is at most 1.0, otherwise a
// new frame of floor(width*ratio) x floor(height*ratio).
func (u *Upscaler) Apply(buf *frame.PixelBuffer) *frame.PixelBuffer {
	if u.ratio <= limits.MinUpscaleRatio {
		return buf
	}

	if err := limits.ValidateUpscaledDimensions(buf.Width, buf.Height, u.ratio); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Upscaler.Apply",
			"width":    buf.Width,
			"height":   buf.Height,
			"ratio":    u.ratio,
			"error":    err.Error(),
		}).Warn("Upscale skipped, output would exceed frame limits")
		return buf
	}

	width, height := u.OutputDimensions(buf.Width, buf.Height)
	result := frame.New(width, height)
	if u.border == BorderGap {
		for i := range result.U {
			result.U[i] = frame.NeutralChroma
			result.V[i] = frame.NeutralChroma
		}
	}

	u.scalePlane(buf.Y, buf.Width, buf.Height, result.Y, result.Width, result.Height)
	u.scalePlane(buf.U, buf.ChromaWidth(), buf.ChromaHeight(), result.U, result.ChromaWidth(), result.ChromaHeight())
	u.scalePlane(buf.V, buf.ChromaWidth(), buf.ChromaHeight(), result.V, result.ChromaWidth(), result.ChromaHeight())

	return result
}

// scalePlane fills dst by bilinear interpolation from src.
func (u *Upscaler) scalePlane(src []byte, srcWidth, srcHeight int, dst []byte, dstWidth, dstHeight int) {
	if srcWidth == 0 || srcHeight == 0 {
		return
	}

	maxX := float64(srcWidth - 1)
	maxY := float64(srcHeight - 1)

	for y := 0; y < dstHeight; y++ {
		srcY := float64(y) / u.ratio
		for x := 0; x < dstWidth; x++ {
			srcX := float64(x) / u.ratio

			if u.border == BorderGap {
				// Only positions inside [0, w-2] x [0, h-2] have four neighbours
				if srcX > maxX-1 || srcY > maxY-1 {
					continue
				}
			} else {
				srcX = min(srcX, maxX)
				srcY = min(srcY, maxY)
			}

			// Get integer and fractional parts
			x1 := int(srcX)
			y1 := int(srcY)
			x2 := min(x1+1, srcWidth-1)
			y2 := min(y1+1, srcHeight-1)
			fx := srcX - float64(x1)
			fy := srcY - float64(y1)

			// Sample source pixels
			p11 := float64(src[y1*srcWidth+x1])
			p12 := float64(src[y1*srcWidth+x2])
			p21 := float64(src[y2*srcWidth+x1])
			p22 := float64(src[y2*srcWidth+x2])

			top := p11*(1-fx) + p12*fx
			bottom := p21*(1-fx) + p22*fx
			dst[y*dstWidth+x] = clampByte(top*(1-fy) + bottom*fy)
		}
	}
}

// Name returns the stage name.
func (u *Upscaler) Name() string {
	return fmt.Sprintf("Upscale(x%.2f,%s)", u.ratio, u.border)
}
