// Package engine implements the local image enhancement pipeline:
// decode, conditional resize to a bounding dimension, a fixed 2x
// upscale with an affine brightness/contrast adjustment, and a final
// lossless encode. The engine carries no UI state; callers get one
// asynchronous-looking call that either yields a fully transformed
// resource or an error, never a partial result.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Bindhushree2529/image-restore-lab/internal/encoder"
	"github.com/Bindhushree2529/image-restore-lab/internal/hasher"
	"github.com/Bindhushree2529/image-restore-lab/internal/raster"
	"github.com/Bindhushree2529/image-restore-lab/internal/resource"
)

// State is the run lifecycle of an Enhancer.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Enhancer runs the enhancement pipeline. One Enhancer executes one
// run at a time: a second call while a run is in flight is rejected
// with ErrBusy rather than queued. Batch callers create one Enhancer
// per worker.
type Enhancer struct {
	opts     Options
	log      zerolog.Logger
	registry *encoder.Registry
	state    atomic.Int32

	cacheMu sync.Mutex
	cache   map[uint64]resource.Resource
}

// New builds an Enhancer from explicit options. Zero-valued fields
// take the pipeline defaults (1024 max dimension, 2x upscale, png
// output).
func New(opts Options, log zerolog.Logger) (*Enhancer, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	e := &Enhancer{
		opts:     opts,
		log:      log,
		registry: encoder.NewRegistry(),
	}
	if opts.CacheResults {
		e.cache = make(map[uint64]resource.Resource)
	}
	return e, nil
}

// Options returns the effective configuration.
func (e *Enhancer) Options() Options { return e.opts }

// State reports the lifecycle state of the most recent run.
func (e *Enhancer) State() State { return State(e.state.Load()) }

// Enhance runs the core operation on src: decode, fit within the max
// dimension (re-encoding oversized inputs at lossy quality), 2x
// upscale with the brightness/contrast adjustment, lossless encode.
func (e *Enhancer) Enhance(ctx context.Context, src resource.Resource) (resource.Resource, error) {
	return e.Run(ctx, OpEnhance, src)
}

// Run executes a named operation on src. Any stage error aborts the
// run; no stage is retried and no partial result is produced.
func (e *Enhancer) Run(ctx context.Context, op string, src resource.Resource) (resource.Resource, error) {
	if !e.begin() {
		return resource.Resource{}, ErrBusy
	}
	out, err := e.run(ctx, op, src)
	if err != nil {
		e.state.Store(int32(StateFailed))
		e.log.Error().Str("op", op).Str("kind", Kind(err)).Err(err).Msg("run failed")
		return resource.Resource{}, err
	}
	e.state.Store(int32(StateSucceeded))
	return out, nil
}

// begin transitions any non-running state to Running.
func (e *Enhancer) begin() bool {
	for {
		cur := e.state.Load()
		if State(cur) == StateRunning {
			return false
		}
		if e.state.CompareAndSwap(cur, int32(StateRunning)) {
			return true
		}
	}
}

func (e *Enhancer) run(ctx context.Context, op string, src resource.Resource) (resource.Resource, error) {
	log := e.log.With().Str("run_id", uuid.NewString()).Str("op", op).Logger()
	start := time.Now()

	// Reject before decode: empty input, non-image MIME, unknown op.
	if src.IsZero() {
		return resource.Resource{}, fmt.Errorf("%w: empty resource", ErrInvalidInput)
	}
	if !strings.HasPrefix(src.MIME(), "image/") {
		return resource.Resource{}, fmt.Errorf("%w: MIME %s", ErrInvalidInput, src.MIME())
	}
	if !IsOperation(op) {
		return resource.Resource{}, fmt.Errorf("%w: unknown operation %q", ErrInvalidInput, op)
	}

	key := hasher.Key(src.Bytes(), []byte(op), e.opts.digest())
	if cached, ok := e.cached(key); ok {
		log.Debug().Msg("cache hit")
		return cached, nil
	}

	img, format, err := src.Decode()
	if err != nil {
		return resource.Resource{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	surf := raster.FromImage(img)
	log.Debug().
		Str("format", format).
		Int("width", surf.Width).
		Int("height", surf.Height).
		Msg("decoded")

	// Cancellation between stages is an extension over the original
	// behavior, which ran each request to completion once started.
	if err := ctx.Err(); err != nil {
		return resource.Resource{}, err
	}

	surf, resized, err := fitWithin(surf, e.opts.MaxDimension)
	if err != nil {
		return resource.Resource{}, err
	}
	if resized {
		// Mirror the hosted tool's canvas round-trip: the resized
		// raster is re-encoded lossy and decoded again before the
		// transform stage sees it.
		surf, err = e.reencode(surf)
		if err != nil {
			return resource.Resource{}, err
		}
		log.Debug().Int("width", surf.Width).Int("height", surf.Height).Msg("resized")
	}

	if err := ctx.Err(); err != nil {
		return resource.Resource{}, err
	}

	out, err := e.apply(op, surf)
	if err != nil {
		return resource.Resource{}, err
	}

	enc, err := e.registry.Resolve(e.opts.Format, out.HasAlpha())
	if err != nil {
		return resource.Resource{}, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	data, err := enc.Encode(out.ToImage(), e.opts.JPEGQuality)
	if err != nil {
		return resource.Resource{}, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	result := resource.New(data, enc.MIME())

	e.store(key, result)
	log.Info().
		Int("width", out.Width).
		Int("height", out.Height).
		Str("format", enc.Format()).
		Int64("bytes", result.Size()).
		Dur("elapsed", time.Since(start)).
		Msg("run complete")
	return result, nil
}

// apply dispatches to the core transform or one of the filter ops.
func (e *Enhancer) apply(op string, surf *raster.Surface) (*raster.Surface, error) {
	if op == OpEnhance {
		return Transform(surf, e.opts.UpscaleFactor)
	}
	return raster.FromImage(filterOps[op](surf.ToImage())), nil
}

// reencode runs the resized surface through a lossy JPEG round-trip.
func (e *Enhancer) reencode(surf *raster.Surface) (*raster.Surface, error) {
	jpegEnc := e.registry.Get("jpeg")
	if jpegEnc == nil {
		return nil, fmt.Errorf("%w: jpeg encoder unavailable", ErrEncode)
	}
	data, err := jpegEnc.Encode(surf.ToImage(), e.opts.JPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	img, _, err := resource.New(data, jpegEnc.MIME()).Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return raster.FromImage(img), nil
}

func (e *Enhancer) cached(key uint64) (resource.Resource, bool) {
	if e.cache == nil {
		return resource.Resource{}, false
	}
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	r, ok := e.cache[key]
	return r, ok
}

func (e *Enhancer) store(key uint64, r resource.Resource) {
	if e.cache == nil {
		return
	}
	e.cacheMu.Lock()
	e.cache[key] = r
	e.cacheMu.Unlock()
}
