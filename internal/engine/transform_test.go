package engine

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/Bindhushree2529/image-restore-lab/internal/raster"
)

// fill builds a w×h surface of one solid color.
func fill(w, h int, r, g, b, a uint8) *raster.Surface {
	s := raster.New(w, h)
	for i := 0; i < len(s.Pix); i += 4 {
		s.Pix[i] = r
		s.Pix[i+1] = g
		s.Pix[i+2] = b
		s.Pix[i+3] = a
	}
	return s
}

func TestEnhanceLUT_Formula(t *testing.T) {
	// channel' = clamp(round(channel*1.1) + 10, 0, 255), rounding half
	// away from zero.
	for i := 0; i < 256; i++ {
		want := int(math.Round(float64(i)*1.1)) + 10
		if want > 255 {
			want = 255
		}
		if got := int(enhanceLUT[i]); got != want {
			t.Fatalf("lut[%d]: got %d, want %d", i, got, want)
		}
	}
}

func TestTransform_DoublesDimensions(t *testing.T) {
	src := fill(37, 21, 100, 100, 100, 255)
	dst, err := Transform(src, 2)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if dst.Width != 74 || dst.Height != 42 {
		t.Errorf("got %dx%d, want 74x42", dst.Width, dst.Height)
	}
	if len(dst.Pix) != 74*42*4 {
		t.Errorf("pix length %d != 74*42*4", len(dst.Pix))
	}
}

func TestTransform_RedScenario(t *testing.T) {
	// Opaque red 500x300 → 1000x600, every pixel (255, 10, 10, 255):
	// red clamps at 255, green/blue become round(0*1.1)+10 = 10.
	src := fill(500, 300, 255, 0, 0, 255)
	dst, err := Transform(src, 2)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if dst.Width != 1000 || dst.Height != 600 {
		t.Fatalf("got %dx%d, want 1000x600", dst.Width, dst.Height)
	}
	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 255 || dst.Pix[i+1] != 10 || dst.Pix[i+2] != 10 || dst.Pix[i+3] != 255 {
			t.Fatalf("pixel %d: got (%d,%d,%d,%d), want (255,10,10,255)",
				i/4, dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3])
		}
	}
}

func TestTransform_AlphaPassthrough(t *testing.T) {
	src := fill(16, 16, 50, 60, 70, 200)
	dst, err := Transform(src, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 200 {
			t.Fatalf("alpha changed: got %d at %d, want 200", dst.Pix[i], i)
		}
	}
}

func TestTransform_Deterministic(t *testing.T) {
	src := fill(24, 24, 12, 34, 56, 255)
	a, err := Transform(src, 2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Transform(src, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("identical input produced different output")
	}
}

func TestTransform_NotIdempotent(t *testing.T) {
	// Running the transform twice must diverge: each pass brightens
	// and doubles again. This is not a fixed point.
	src := fill(10, 10, 100, 100, 100, 255)
	once, err := Transform(src, 2)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Transform(once, 2)
	if err != nil {
		t.Fatal(err)
	}

	if twice.Width != 4*src.Width || twice.Height != 4*src.Height {
		t.Errorf("second pass dims: got %dx%d, want %dx%d",
			twice.Width, twice.Height, 4*src.Width, 4*src.Height)
	}
	// 100 → 120 → 142: strictly brighter each pass.
	if once.Pix[0] <= src.Pix[0] || twice.Pix[0] <= once.Pix[0] {
		t.Errorf("brightness not increasing: %d → %d → %d",
			src.Pix[0], once.Pix[0], twice.Pix[0])
	}
}

func TestTransform_Saturates(t *testing.T) {
	src := fill(8, 8, 250, 255, 240, 255)
	dst, err := Transform(src, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 255 || dst.Pix[i+1] != 255 || dst.Pix[i+2] != 255 {
			t.Fatalf("expected clamping to 255, got (%d,%d,%d)",
				dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2])
		}
	}
}

func TestTransform_BadFactor(t *testing.T) {
	src := fill(4, 4, 0, 0, 0, 255)
	if _, err := Transform(src, 0); !errors.Is(err, ErrResample) {
		t.Errorf("got %v, want ErrResample", err)
	}
}
