package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Bindhushree2529/image-restore-lab/internal/resource"
)

// pngResource encodes a solid-color PNG as a resource.
func pngResource(t *testing.T, w, h int, c color.NRGBA) resource.Resource {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	r, err := resource.FromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("fixture resource: %v", err)
	}
	return r
}

func newTestEnhancer(t *testing.T, opts Options) *Enhancer {
	t.Helper()
	e, err := New(opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestEnhance_RedScenario(t *testing.T) {
	// 500x300 opaque red → 1000x600, every pixel (255, 10, 10, 255).
	e := newTestEnhancer(t, Options{})
	src := pngResource(t, 500, 300, color.NRGBA{R: 255, A: 255})

	out, err := e.Enhance(context.Background(), src)
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}
	if out.MIME() != "image/png" {
		t.Errorf("MIME: got %q, want image/png (lossless final output)", out.MIME())
	}

	img, _, err := out.Decode()
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 1000 || b.Dy() != 600 {
		t.Fatalf("dimensions: got %dx%d, want 1000x600", b.Dx(), b.Dy())
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, a := rgba8(img.At(x, y))
			if r != 255 || g != 10 || bb != 10 || a != 255 {
				t.Fatalf("pixel (%d,%d): got (%d,%d,%d,%d), want (255,10,10,255)", x, y, r, g, bb, a)
			}
		}
	}
}

func rgba8(c color.Color) (uint8, uint8, uint8, uint8) {
	r, g, b, a := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)
}

func TestEnhance_SmallInputDoubles(t *testing.T) {
	e := newTestEnhancer(t, Options{})
	src := pngResource(t, 64, 48, color.NRGBA{R: 30, G: 60, B: 90, A: 255})

	out, err := e.Enhance(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := out.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if w != 128 || h != 96 {
		t.Errorf("got %dx%d, want 128x96", w, h)
	}
}

func TestEnhance_OversizedResizesFirst(t *testing.T) {
	// 2000x1000 → resized intermediate 1024x512 → final 2048x1024.
	e := newTestEnhancer(t, Options{})
	src := pngResource(t, 2000, 1000, color.NRGBA{R: 80, G: 80, B: 80, A: 255})

	out, err := e.Enhance(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := out.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if w != 2048 || h != 1024 {
		t.Errorf("got %dx%d, want 2048x1024", w, h)
	}
}

func TestEnhance_NonImageRejected(t *testing.T) {
	e := newTestEnhancer(t, Options{})
	src := resource.New([]byte("plain text payload"), "text/plain")

	_, err := e.Enhance(context.Background(), src)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if e.State() != StateFailed {
		t.Errorf("state: got %v, want failed", e.State())
	}
}

func TestEnhance_CorruptBytesAreDecodeError(t *testing.T) {
	e := newTestEnhancer(t, Options{})
	src := resource.New([]byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0x01}, "image/png")

	_, err := e.Enhance(context.Background(), src)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("got %v, want ErrDecode", err)
	}
}

func TestRun_UnknownOperation(t *testing.T) {
	e := newTestEnhancer(t, Options{})
	src := pngResource(t, 8, 8, color.NRGBA{A: 255})

	_, err := e.Run(context.Background(), "colorize", src)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestEnhance_EmptyResource(t *testing.T) {
	e := newTestEnhancer(t, Options{})
	_, err := e.Enhance(context.Background(), resource.Resource{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestEnhance_ContextCanceled(t *testing.T) {
	e := newTestEnhancer(t, Options{})
	src := pngResource(t, 32, 32, color.NRGBA{R: 1, A: 255})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Enhance(ctx, src); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestStateMachine(t *testing.T) {
	e := newTestEnhancer(t, Options{})
	if e.State() != StateIdle {
		t.Fatalf("initial state: got %v, want idle", e.State())
	}

	src := pngResource(t, 16, 16, color.NRGBA{R: 40, A: 255})
	if _, err := e.Enhance(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if e.State() != StateSucceeded {
		t.Errorf("after success: got %v, want succeeded", e.State())
	}

	// A completed enhancer accepts another run.
	if _, err := e.Enhance(context.Background(), src); err != nil {
		t.Errorf("rerun after success: %v", err)
	}
}

func TestEnhance_RejectsConcurrentRun(t *testing.T) {
	e := newTestEnhancer(t, Options{})
	src := pngResource(t, 16, 16, color.NRGBA{R: 5, A: 255})

	// A second call while a run is in flight is rejected, not queued.
	e.state.Store(int32(StateRunning))
	if _, err := e.Enhance(context.Background(), src); !errors.Is(err, ErrBusy) {
		t.Fatalf("got %v, want ErrBusy", err)
	}
	if e.State() != StateRunning {
		t.Errorf("rejected call must not disturb the in-flight state, got %v", e.State())
	}

	// Once the in-flight run completes, the enhancer accepts work again.
	e.state.Store(int32(StateSucceeded))
	if _, err := e.Enhance(context.Background(), src); err != nil {
		t.Fatalf("run after completion: %v", err)
	}
}

func TestEnhance_CacheHitIsIdentical(t *testing.T) {
	e := newTestEnhancer(t, Options{CacheResults: true})
	src := pngResource(t, 40, 40, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	first, err := e.Enhance(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Enhance(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("cached result differs from the original run")
	}
}

func TestEnhance_TransparentInputStaysLossless(t *testing.T) {
	// A jpeg output request with a transparent input falls back to png
	// so the alpha channel survives.
	e := newTestEnhancer(t, Options{Format: "jpeg"})
	src := pngResource(t, 24, 24, color.NRGBA{R: 200, A: 128})

	out, err := e.Enhance(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if out.MIME() != "image/png" {
		t.Errorf("MIME: got %q, want image/png for transparent input", out.MIME())
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	if _, err := New(Options{MaxDimension: -5}, zerolog.Nop()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative max dimension: got %v, want ErrInvalidInput", err)
	}
	if _, err := New(Options{JPEGQuality: 200}, zerolog.Nop()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("quality 200: got %v, want ErrInvalidInput", err)
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrInvalidInput, "invalid_input"},
		{ErrDecode, "decode_error"},
		{ErrResample, "resample_error"},
		{ErrEncode, "encode_error"},
		{ErrBusy, "busy"},
		{fmt.Errorf("load remote: %w", resource.ErrFetch), "decode_error"},
		{errors.New("other"), "internal"},
	}
	for _, tc := range cases {
		if got := Kind(tc.err); got != tc.want {
			t.Errorf("Kind(%v): got %q, want %q", tc.err, got, tc.want)
		}
	}
}
