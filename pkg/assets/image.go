package assets

import (
	"image"

	"github.com/disintegration/imaging"
)

// CoverFit scales img to fully cover a w×h rectangle, center-cropping the
// overflowing axis while preserving aspect ratio.
func CoverFit(img image.Image, w, h int) image.Image {
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

// BoxBlur applies a blur to img. A radius of 0 or less returns the image
// unchanged.
func BoxBlur(img image.Image, radius float64) image.Image {
	if radius <= 0 {
		return img
	}
	return imaging.Blur(img, radius)
}

// ScaleLogo scales img down to the requested width if it is wider, and
// returns it untouched otherwise. Logos are never upscaled beyond their
// natural size: the scale factor is min(requested/natural, 1).
func ScaleLogo(img image.Image, requested float64) image.Image {
	natural := float64(img.Bounds().Dx())
	if requested <= 0 || natural <= requested {
		return img
	}
	return imaging.Resize(img, int(requested), 0, imaging.Lanczos)
}
