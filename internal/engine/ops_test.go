package engine

import (
	"context"
	"image/color"
	"sort"
	"testing"
)

func TestOperations_SortedAndComplete(t *testing.T) {
	ops := Operations()
	if !sort.StringsAreSorted(ops) {
		t.Errorf("operations not sorted: %v", ops)
	}
	want := map[string]bool{"brighten": true, "denoise": true, "enhance": true, "sharpen": true}
	if len(ops) != len(want) {
		t.Fatalf("got %v, want %d operations", ops, len(want))
	}
	for _, op := range ops {
		if !want[op] {
			t.Errorf("unexpected operation %q", op)
		}
	}
}

func TestIsOperation(t *testing.T) {
	for _, op := range Operations() {
		if !IsOperation(op) {
			t.Errorf("IsOperation(%q) = false", op)
		}
	}
	for _, op := range []string{"colorize", "remove-background", ""} {
		if IsOperation(op) {
			t.Errorf("IsOperation(%q) = true", op)
		}
	}
}

func TestFilterOps_KeepOriginalScale(t *testing.T) {
	// Filter operations apply at the (possibly resized) original
	// dimensions; only enhance upscales.
	for _, op := range []string{"sharpen", "brighten", "denoise"} {
		t.Run(op, func(t *testing.T) {
			e := newTestEnhancer(t, Options{})
			src := pngResource(t, 60, 40, color.NRGBA{R: 90, G: 90, B: 90, A: 255})

			out, err := e.Run(context.Background(), op, src)
			if err != nil {
				t.Fatalf("Run(%s): %v", op, err)
			}
			w, h, err := out.Bounds()
			if err != nil {
				t.Fatal(err)
			}
			if w != 60 || h != 40 {
				t.Errorf("got %dx%d, want 60x40", w, h)
			}
		})
	}
}

func TestBrighten_Lifts(t *testing.T) {
	e := newTestEnhancer(t, Options{})
	src := pngResource(t, 10, 10, color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	out, err := e.Run(context.Background(), "brighten", src)
	if err != nil {
		t.Fatal(err)
	}
	img, _, err := out.Decode()
	if err != nil {
		t.Fatal(err)
	}
	r, _, _, _ := rgba8(img.At(5, 5))
	if r <= 100 {
		t.Errorf("brighten did not lift the channel: got %d", r)
	}
}
