package engine

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"

	"github.com/Bindhushree2529/image-restore-lab/internal/raster"
)

// fitDimensions computes the target size for a surface that must fit
// within maxDim on its longest side. The bottleneck dimension becomes
// exactly maxDim; the other is proportionally rounded half away from
// zero (math.Round), which may drift the aspect ratio by one pixel.
// The bool reports whether a resize is needed at all.
func fitDimensions(w, h, maxDim int) (int, int, bool) {
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxDim {
		return w, h, false
	}
	s := float64(maxDim) / float64(longest)
	nw := int(math.Round(float64(w) * s))
	nh := int(math.Round(float64(h) * s))
	return nw, nh, true
}

// fitWithin resamples src so its longest side equals maxDim, using
// Lanczos filtering. Surfaces already within the bound are returned
// unchanged. ErrResample guards non-positive targets; unreachable
// while maxDim is positive.
func fitWithin(src *raster.Surface, maxDim int) (*raster.Surface, bool, error) {
	nw, nh, resize := fitDimensions(src.Width, src.Height, maxDim)
	if !resize {
		return src, false, nil
	}
	if nw <= 0 || nh <= 0 {
		return nil, false, fmt.Errorf("%w: target %dx%d", ErrResample, nw, nh)
	}
	resized := imaging.Resize(src.ToImage(), nw, nh, imaging.Lanczos)
	return raster.FromImage(resized), true, nil
}
