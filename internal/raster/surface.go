// Package raster provides the decoded pixel buffer the enhancement
// pipeline operates on: explicit width and height plus a row-major
// RGBA8 sample slice in non-premultiplied (NRGBA) form, matching what
// image decoders and the imaging library hand back.
package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// Surface is a pixel-addressable raster: four 8-bit channels per pixel
// (R, G, B, A), row-major, origin top-left.
// Invariant: len(Pix) == Width*Height*4.
type Surface struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zeroed surface. Non-positive dimensions yield nil.
func New(w, h int) *Surface {
	if w <= 0 || h <= 0 {
		return nil
	}
	return &Surface{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
}

// FromImage converts any decoded image into a Surface. The pixel data
// is always copied, so the surface is owned by the caller and never
// aliases the source image.
func FromImage(img image.Image) *Surface {
	// imaging.Clone normalizes to NRGBA with bounds at the origin and
	// a tight stride, which is exactly the Surface layout.
	n := imaging.Clone(img)
	b := n.Bounds()
	return &Surface{Width: b.Dx(), Height: b.Dy(), Pix: n.Pix}
}

// ToImage wraps the surface as an *image.NRGBA without copying.
// The returned image shares Pix with the surface.
func (s *Surface) ToImage() *image.NRGBA {
	return &image.NRGBA{
		Pix:    s.Pix,
		Stride: s.Width * 4,
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	pix := make([]uint8, len(s.Pix))
	copy(pix, s.Pix)
	return &Surface{Width: s.Width, Height: s.Height, Pix: pix}
}

// HasAlpha reports whether any pixel is not fully opaque.
func (s *Surface) HasAlpha() bool {
	for i := 3; i < len(s.Pix); i += 4 {
		if s.Pix[i] != 255 {
			return true
		}
	}
	return false
}

// NRGBAAt returns the four channel values of the pixel at (x, y).
// Out-of-bounds coordinates return zeros.
func (s *Surface) NRGBAAt(x, y int) (r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return 0, 0, 0, 0
	}
	i := (y*s.Width + x) * 4
	return s.Pix[i], s.Pix[i+1], s.Pix[i+2], s.Pix[i+3]
}
