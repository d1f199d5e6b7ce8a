package engine

import (
	"errors"

	"github.com/Bindhushree2529/image-restore-lab/internal/resource"
)

// Error kinds for the enhancement pipeline. Every stage failure wraps
// exactly one of these, so callers can classify with errors.Is while
// the wrapped message keeps the stage detail.
var (
	// ErrInvalidInput marks resources rejected before decode is
	// attempted: empty bytes, non-image MIME, unknown operation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDecode marks bytes that could not be interpreted as a raster
	// image, or a failed load of remote image data.
	ErrDecode = errors.New("decode failed")

	// ErrResample marks non-positive target dimensions. Defensive:
	// unreachable while MaxDimension and UpscaleFactor are positive.
	ErrResample = errors.New("resample failed")

	// ErrEncode marks a failed serialization of the final surface.
	// Fatal for the current run.
	ErrEncode = errors.New("encode failed")

	// ErrBusy is returned when Enhance is called while another run on
	// the same Enhancer is still in flight.
	ErrBusy = errors.New("enhancement already running")
)

// Kind names the error category for diagnostics. The UI layer shows a
// single generic failure; the kind is only logged.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrDecode), errors.Is(err, resource.ErrFetch):
		return "decode_error"
	case errors.Is(err, ErrResample):
		return "resample_error"
	case errors.Is(err, ErrEncode):
		return "encode_error"
	case errors.Is(err, ErrBusy):
		return "busy"
	default:
		return "internal"
	}
}
