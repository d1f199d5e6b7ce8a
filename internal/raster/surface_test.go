package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImage_Invariant(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 17, 9))
	s := FromImage(img)

	if s.Width != 17 || s.Height != 9 {
		t.Fatalf("dimensions: got %dx%d, want 17x9", s.Width, s.Height)
	}
	if len(s.Pix) != s.Width*s.Height*4 {
		t.Fatalf("pix length %d != w*h*4 = %d", len(s.Pix), s.Width*s.Height*4)
	}
}

func TestFromImage_CopiesPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	s := FromImage(img)
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	r, g, b, _ := s.NRGBAAt(0, 0)
	if r != 200 || g != 100 || b != 50 {
		t.Errorf("surface aliases the source image: got (%d,%d,%d)", r, g, b)
	}
}

func TestFromImage_NonOriginBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 15, 25))
	s := FromImage(img)
	if s.Width != 10 || s.Height != 20 {
		t.Errorf("got %dx%d, want 10x20", s.Width, s.Height)
	}
}

func TestToImage_SharesPix(t *testing.T) {
	s := New(3, 3)
	s.Pix[0] = 42

	img := s.ToImage()
	if img.Pix[0] != 42 {
		t.Error("ToImage should share the pixel buffer")
	}
	if img.Stride != 12 {
		t.Errorf("stride: got %d, want 12", img.Stride)
	}
}

func TestNew_NonPositive(t *testing.T) {
	if New(0, 5) != nil || New(5, -1) != nil {
		t.Error("non-positive dimensions should yield nil")
	}
}

func TestClone_Independent(t *testing.T) {
	s := New(2, 2)
	s.Pix[0] = 10

	c := s.Clone()
	c.Pix[0] = 99

	if s.Pix[0] != 10 {
		t.Error("clone shares pixels with the original")
	}
}

func TestHasAlpha(t *testing.T) {
	opaque := New(4, 4)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}
	if opaque.HasAlpha() {
		t.Error("opaque surface reported as having alpha")
	}

	opaque.Pix[7] = 128
	if !opaque.HasAlpha() {
		t.Error("semi-transparent pixel not detected")
	}
}

func TestNRGBAAt_OutOfBounds(t *testing.T) {
	s := New(2, 2)
	r, g, b, a := s.NRGBAAt(5, 5)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Error("out-of-bounds access should return zeros")
	}
}
