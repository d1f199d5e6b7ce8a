package encoder

import (
	"fmt"
	"strings"
)

// Registry holds all encoders, keyed by format, probed for availability.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	all := []Encoder{
		&PNGEncoder{},
		&JPEGEncoder{},
		&WebPEncoder{},
	}
	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}
	return r
}

// Get returns an encoder for the given format, or nil if unavailable.
// "jpg" is accepted as an alias for "jpeg".
func (r *Registry) Get(format string) Encoder {
	format = strings.ToLower(format)
	if format == "jpg" {
		format = "jpeg"
	}
	return r.encoders[format]
}

// Available returns all available format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"png", "jpeg", "webp"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// Resolve picks the encoder for a requested format, substituting PNG
// when the format is unavailable or would drop the alpha channel of a
// transparent image.
func (r *Registry) Resolve(format string, hasAlpha bool) (Encoder, error) {
	enc := r.Get(format)
	if enc == nil {
		if enc = r.encoders["png"]; enc == nil {
			return nil, fmt.Errorf("no encoder available for %q", format)
		}
		return enc, nil
	}
	if hasAlpha && enc.Format() == "jpeg" {
		if png := r.encoders["png"]; png != nil {
			return png, nil
		}
	}
	return enc, nil
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
