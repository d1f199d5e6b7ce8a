package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testImage(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 120, G: 60, B: 30, A: alpha})
		}
	}
	return img
}

func TestRegistry_StdlibFormatsAlwaysAvailable(t *testing.T) {
	r := NewRegistry()
	if r.Get("png") == nil {
		t.Error("png encoder missing")
	}
	if r.Get("jpeg") == nil {
		t.Error("jpeg encoder missing")
	}
}

func TestRegistry_JpgAlias(t *testing.T) {
	r := NewRegistry()
	enc := r.Get("jpg")
	if enc == nil || enc.Format() != "jpeg" {
		t.Error("jpg should resolve to the jpeg encoder")
	}
}

func TestResolve_AlphaForcesPNG(t *testing.T) {
	r := NewRegistry()
	enc, err := r.Resolve("jpeg", true)
	if err != nil {
		t.Fatal(err)
	}
	if enc.Format() != "png" {
		t.Errorf("transparent image resolved to %s, want png", enc.Format())
	}
}

func TestResolve_UnknownFallsBackToPNG(t *testing.T) {
	r := NewRegistry()
	enc, err := r.Resolve("avif", false)
	if err != nil {
		t.Fatal(err)
	}
	if enc.Format() != "png" {
		t.Errorf("got %s, want png fallback", enc.Format())
	}
}

func TestPNGEncode_Roundtrip(t *testing.T) {
	enc := &PNGEncoder{}
	data, err := enc.Encode(testImage(255), 0)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("got %dx%d, want 10x10", b.Dx(), b.Dy())
	}
}

func TestJPEGEncode_QualityDefaulted(t *testing.T) {
	enc := &JPEGEncoder{}
	data, err := enc.Encode(testImage(255), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("empty jpeg output")
	}
	if data[0] != 0xFF || data[1] != 0xD8 {
		t.Error("output is not a jpeg")
	}
}

func TestRegistry_MIME(t *testing.T) {
	r := NewRegistry()
	if got := r.Get("png").MIME(); got != "image/png" {
		t.Errorf("png MIME: got %q", got)
	}
	if got := r.Get("jpeg").MIME(); got != "image/jpeg" {
		t.Errorf("jpeg MIME: got %q", got)
	}
}
