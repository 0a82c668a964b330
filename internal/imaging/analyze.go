package imaging

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// maxSampleDim caps how many pixels per axis AverageColorHex visits.
// Sampling on a grid keeps the cost flat for large renders.
const maxSampleDim = 64

// AverageColorHex computes the average color of img and returns it in
// "#rrggbb" form. The image is sampled on a grid of at most
// maxSampleDim x maxSampleDim points.
func AverageColorHex(img image.Image) string {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return ""
	}

	stepX := w / maxSampleDim
	if stepX < 1 {
		stepX = 1
	}
	stepY := h / maxSampleDim
	if stepY < 1 {
		stepY = 1
	}

	var sumR, sumG, sumB float64
	var n int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				// Fully transparent pixel, skip.
				continue
			}
			sumR += c.R
			sumG += c.G
			sumB += c.B
			n++
		}
	}
	if n == 0 {
		return ""
	}

	avg := colorful.Color{R: sumR / float64(n), G: sumG / float64(n), B: sumB / float64(n)}
	return avg.Clamped().Hex()
}
