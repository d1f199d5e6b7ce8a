package engine

import (
	"image"
	"sort"

	"github.com/disintegration/imaging"
)

// OpEnhance is the core operation: 2x upscale plus the affine
// brightness/contrast adjustment.
const OpEnhance = "enhance"

// filterOps are the locally-computable siblings of enhance. Each is a
// single imaging filter applied at the (possibly resized) original
// scale. The AI-backed operations of the hosted tool (colorize,
// background removal, damage repair) have no local equivalent and are
// deliberately absent.
var filterOps = map[string]func(image.Image) *image.NRGBA{
	"sharpen": func(img image.Image) *image.NRGBA {
		return imaging.Sharpen(img, 1.0)
	},
	"brighten": func(img image.Image) *image.NRGBA {
		return imaging.AdjustBrightness(img, 10)
	},
	"denoise": func(img image.Image) *image.NRGBA {
		return imaging.Blur(img, 0.8)
	},
}

// Operations lists every supported operation name, sorted.
func Operations() []string {
	ops := []string{OpEnhance}
	for name := range filterOps {
		ops = append(ops, name)
	}
	sort.Strings(ops)
	return ops
}

// IsOperation reports whether name is a supported operation.
func IsOperation(name string) bool {
	if name == OpEnhance {
		return true
	}
	_, ok := filterOps[name]
	return ok
}
