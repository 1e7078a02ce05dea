package frame

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	overlayMargin     = 4
	overlayTextLuma   = 235
	overlayBackground = 16
)

// lumaImage exposes the Y plane as a draw target without copying.
func (b *PixelBuffer) lumaImage() *image.Gray {
	return &image.Gray{
		Pix:    b.Y,
		Stride: b.Width,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// DrawText renders lines of text into the luma plane in place, top-left
// aligned at (x, y), over a dark backing box. Text outside the frame is clipped.
func DrawText(b *PixelBuffer, x, y int, lines ...string) {
	if b == nil || len(lines) == 0 {
		return
	}

	face := basicfont.Face7x13
	dst := b.lumaImage()
	lineHeight := face.Metrics().Height.Ceil()

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Gray{Y: overlayTextLuma}),
		Face: face,
	}

	widest := 0
	for _, line := range lines {
		widest = max(widest, drawer.MeasureString(line).Ceil())
	}

	box := image.Rect(x, y, x+widest+2*overlayMargin, y+len(lines)*lineHeight+2*overlayMargin)
	xdraw.Draw(dst, box.Intersect(dst.Rect), image.NewUniform(color.Gray{Y: overlayBackground}), image.Point{}, xdraw.Src)

	ascent := face.Metrics().Ascent.Ceil()
	for i, line := range lines {
		drawer.Dot = fixed.P(x+overlayMargin, y+overlayMargin+ascent+i*lineHeight)
		drawer.DrawString(line)
	}
}
