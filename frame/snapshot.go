package frame

import (
	"fmt"
	"image"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// ToImage converts the frame to an image.YCbCr with 4:2:0 subsampling.
// The planes are copied so the result does not alias the frame.
func (b *PixelBuffer) ToImage() *image.YCbCr {
	img := image.NewYCbCr(image.Rect(0, 0, b.Width, b.Height), image.YCbCrSubsampleRatio420)
	copy(img.Y, b.Y)

	cw, ch := b.ChromaWidth(), b.ChromaHeight()
	// image.YCbCr rounds chroma dimensions up; odd frames replicate the last column/row.
	for y := 0; y < len(img.Cb)/img.CStride; y++ {
		for x := 0; x < img.CStride; x++ {
			dst := y*img.CStride + x
			if cw == 0 || ch == 0 {
				img.Cb[dst] = NeutralChroma
				img.Cr[dst] = NeutralChroma
				continue
			}
			src := min(y, ch-1)*cw + min(x, cw-1)
			img.Cb[dst] = b.U[src]
			img.Cr[dst] = b.V[src]
		}
	}
	return img
}

// WriteSnapshot PNG-encodes the frame. When maxWidth is positive and smaller
// than the frame width, the image is downsampled preserving aspect ratio.
func WriteSnapshot(w io.Writer, b *PixelBuffer, maxWidth int) error {
	if err := b.Validate(); err != nil {
		return err
	}

	var img image.Image = b.ToImage()
	if maxWidth > 0 && b.Width > maxWidth {
		height := max(1, b.Height*maxWidth/b.Width)
		thumb := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
		xdraw.CatmullRom.Scale(thumb, thumb.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = thumb
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}
