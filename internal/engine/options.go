package engine

import (
	"fmt"

	"github.com/Bindhushree2529/image-restore-lab/internal/encoder"
)

// Default pipeline constants. These mirror the fixed parameters of the
// enhancement contract: inputs larger than 1024px on their longest
// side are downscaled first, and the transform always doubles both
// dimensions. The lossy-intermediate quality is owned by the encoder
// package so the fallback there cannot drift from this default.
const (
	DefaultMaxDimension  = 1024
	DefaultUpscaleFactor = 2
	DefaultFormat        = "png" // lossless final output
	DefaultJPEGQuality   = encoder.DefaultJPEGQuality
)

// Options configures an Enhancer at construction time. It replaces the
// process-wide mutable flags of the original tool with an explicit,
// immutable parameter set.
type Options struct {
	// MaxDimension bounds the longest side before the transform runs.
	MaxDimension int

	// UpscaleFactor multiplies both dimensions during the transform.
	UpscaleFactor int

	// Format is the final output format. Lossless (png) by default so
	// the brightened result picks up no recompression artifacts.
	Format string

	// JPEGQuality is used when the resize stage re-encodes oversized
	// inputs, and for lossy CLI output formats.
	JPEGQuality int

	// AllowRemoteModels is recognized for compatibility with the
	// remote-AI variant of this tool. The local engine never performs
	// network inference regardless of its value.
	AllowRemoteModels bool

	// CacheResults keeps enhanced outputs in memory keyed by input
	// hash, so repeating a run on identical bytes is free.
	CacheResults bool
}

// withDefaults fills zero-valued fields with the pipeline constants.
func (o Options) withDefaults() Options {
	if o.MaxDimension == 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.UpscaleFactor == 0 {
		o.UpscaleFactor = DefaultUpscaleFactor
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	return o
}

// validate rejects configurations the pipeline cannot honor.
func (o Options) validate() error {
	if o.MaxDimension <= 0 {
		return fmt.Errorf("max dimension must be positive, got %d", o.MaxDimension)
	}
	if o.UpscaleFactor <= 0 {
		return fmt.Errorf("upscale factor must be positive, got %d", o.UpscaleFactor)
	}
	if o.JPEGQuality < 1 || o.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be 1-100, got %d", o.JPEGQuality)
	}
	return nil
}

// digest renders the fields that affect pixel output, for cache keys.
func (o Options) digest() []byte {
	return []byte(fmt.Sprintf("d%d:u%d:f%s:q%d", o.MaxDimension, o.UpscaleFactor, o.Format, o.JPEGQuality))
}
