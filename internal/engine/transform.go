package engine

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"

	"github.com/Bindhushree2529/image-restore-lab/internal/raster"
)

// Brightness/contrast affine constants. Each color channel becomes
// clamp(round(c*1.1) + 10, 0, 255); alpha passes through untouched.
const (
	contrastGain   = 1.1
	brightnessBias = 10
)

// enhanceLUT maps every 8-bit channel value through the affine
// adjustment. Rounding is pinned to math.Round (half away from zero)
// so the transform is deterministic across platforms.
var enhanceLUT [256]uint8

func init() {
	for i := range enhanceLUT {
		v := int(math.Round(float64(i)*contrastGain)) + brightnessBias
		if v > 255 {
			v = 255
		}
		if v < 0 {
			v = 0
		}
		enhanceLUT[i] = uint8(v)
	}
}

// Transform produces a new surface at factor times the source
// dimensions: a Lanczos upscale followed by the per-pixel affine
// brightness/contrast adjustment on R, G and B. Deterministic and
// saturating; it cannot fail on a valid surface with a positive
// factor.
func Transform(src *raster.Surface, factor int) (*raster.Surface, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("%w: upscale factor %d", ErrResample, factor)
	}
	dst := upscale(src, factor)
	adjustPixels(dst)
	return dst, nil
}

// upscale resamples src to factor times its size. Factor 1 still
// copies, so the caller always owns the result.
func upscale(src *raster.Surface, factor int) *raster.Surface {
	if factor == 1 {
		return src.Clone()
	}
	img := imaging.Resize(src.ToImage(), src.Width*factor, src.Height*factor, imaging.Lanczos)
	return raster.FromImage(img)
}

// adjustPixels applies the LUT to the color channels in place.
func adjustPixels(s *raster.Surface) {
	pix := s.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = enhanceLUT[pix[i]]
		pix[i+1] = enhanceLUT[pix[i+1]]
		pix[i+2] = enhanceLUT[pix[i+2]]
		// pix[i+3] is alpha, untouched
	}
}
