package colour

import (
	"fmt"
	"image"
	"math"
)

// DefaultMaxSamples bounds how many pixels are fed to clustering.
const DefaultMaxSamples = 10000

// SamplePixels flattens a decoded image into an ordered sequence of RGB
// samples, preserving pixel frequency. Images larger than maxSamples pixels
// are subsampled on a regular grid so the colour distribution is not biased
// toward any region. A maxSamples of zero or below uses DefaultMaxSamples.
//
// Returns ErrInvalidImage for nil or zero-dimension images.
func SamplePixels(img image.Image, maxSamples int) ([]RGB, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image is nil", ErrInvalidImage)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: zero-dimension image (%dx%d)", ErrInvalidImage, width, height)
	}

	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}

	totalPixels := width * height
	if totalPixels <= maxSamples {
		samples := make([]RGB, 0, totalPixels)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				samples = append(samples, ToRGB(img.At(x, y)))
			}
		}
		return samples, nil
	}

	// Grid subsampling. The stride is chosen so the full grid is visited;
	// cutting the scan short once the budget is reached would over-represent
	// the top of the image. The square-root estimate undershoots for extreme
	// aspect ratios, so widen the stride until the grid fits the budget.
	step := max(int(math.Ceil(math.Sqrt(float64(totalPixels)/float64(maxSamples)))), 1)
	for gridCount(width, step)*gridCount(height, step) > maxSamples {
		step++
	}

	samples := make([]RGB, 0, gridCount(width, step)*gridCount(height, step))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			samples = append(samples, ToRGB(img.At(x, y)))
		}
	}

	return samples, nil
}

// gridCount is how many positions a stride of step visits along extent pixels.
func gridCount(extent, step int) int {
	return (extent + step - 1) / step
}
