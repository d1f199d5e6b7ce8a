// Package resource models the opaque encoded-image handle flowing in
// and out of the enhancement pipeline: raw bytes plus their MIME type,
// convertible to and from a data URI. A Resource is immutable once
// created; pipeline stages produce new resources, never mutate one.
package resource

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when the supplied bytes are not recognized
// as a raster image before any decode is attempted.
var ErrNotImage = errors.New("resource is not an image")

// ErrBadDataURI is returned for malformed data URIs.
var ErrBadDataURI = errors.New("malformed data URI")

// Resource holds encoded image bytes and their MIME type.
// The zero value is an empty, invalid resource.
type Resource struct {
	mime string
	data []byte
}

// New wraps encoded bytes with an explicit MIME type. The bytes are
// not copied; callers must not modify them afterwards.
func New(data []byte, mime string) Resource {
	return Resource{mime: mime, data: data}
}

// FromBytes sniffs the content type of data and wraps it. Fails with
// ErrNotImage when the bytes do not look like a raster image.
func FromBytes(data []byte) (Resource, error) {
	if len(data) == 0 {
		return Resource{}, fmt.Errorf("%w: empty input", ErrNotImage)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return Resource{}, fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}
	return Resource{mime: mime, data: data}, nil
}

// FromDataURI parses a base64 data URI of the form
// data:image/<type>;base64,<payload>.
func FromDataURI(uri string) (Resource, error) {
	if !strings.HasPrefix(uri, "data:") {
		return Resource{}, fmt.Errorf("%w: missing data: scheme", ErrBadDataURI)
	}
	rest := uri[len("data:"):]
	sep := strings.Index(rest, ",")
	if sep < 0 {
		return Resource{}, fmt.Errorf("%w: missing payload separator", ErrBadDataURI)
	}
	meta, payload := rest[:sep], rest[sep+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return Resource{}, fmt.Errorf("%w: only base64 payloads supported", ErrBadDataURI)
	}
	mime := strings.TrimSuffix(meta, ";base64")
	if mime != "" && !strings.HasPrefix(mime, "image/") {
		return Resource{}, fmt.Errorf("%w: MIME %s", ErrNotImage, mime)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Resource{}, fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	if mime == "" {
		return FromBytes(data)
	}
	return Resource{mime: mime, data: data}, nil
}

// FromFile reads an image file from disk and sniffs its type.
func FromFile(path string) (Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resource{}, fmt.Errorf("read %s: %w", path, err)
	}
	r, err := FromBytes(data)
	if err != nil {
		return Resource{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// MIME returns the resource's MIME type, e.g. "image/png".
func (r Resource) MIME() string { return r.mime }

// Bytes returns the encoded image bytes. Callers must treat the slice
// as read-only.
func (r Resource) Bytes() []byte { return r.data }

// Size returns the encoded length in bytes.
func (r Resource) Size() int64 { return int64(len(r.data)) }

// IsZero reports whether the resource holds no data.
func (r Resource) IsZero() bool { return len(r.data) == 0 }

// DataURI renders the resource as a base64 data URI suitable for
// embedding in an <img> src attribute.
func (r Resource) DataURI() string {
	return "data:" + r.mime + ";base64," + base64.StdEncoding.EncodeToString(r.data)
}

// Decode interprets the resource bytes as a raster image. The format
// set mirrors the decoders registered by the pipeline: png, jpeg, gif
// from the standard library plus webp, bmp and tiff.
func (r Resource) Decode() (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(r.data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", r.mime, err)
	}
	return img, format, nil
}

// Bounds decodes only the image header and returns the natural pixel
// dimensions without allocating the full raster.
func (r Resource) Bounds() (w, h int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(r.data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
