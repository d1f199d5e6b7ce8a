// Package encoder serializes raster images back into encoded bytes.
// PNG and JPEG use the standard library; WebP shells out to cwebp when
// it is installed. A registry probes availability so callers can ask
// for a format and fall back gracefully.
package encoder

import (
	"image"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name ("png", "jpeg", "webp").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	// Lossless encoders ignore quality.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available reports whether the encoder is ready to use.
	// External encoders (cwebp) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string

	// MIME returns the MIME type of the encoded output.
	MIME() string
}
