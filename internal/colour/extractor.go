package colour

import (
	"fmt"
	"image"
	"math"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Extractor defines the interface for dominant colour extraction algorithms.
type Extractor interface {
	// Extract clusters the pixel samples into count dominant colours with
	// their relative weights, sorted by descending weight.
	Extract(samples []RGB, count int) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses the built-in k-means clustering in RGB space with
	// deterministic initialization. This is the default and the only
	// algorithm with a determinism guarantee.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmKMeansLab clusters in CIE Lab space, where Euclidean distance
	// tracks perceived colour difference more closely than RGB.
	AlgorithmKMeansLab Algorithm = "kmeanslab"

	// AlgorithmDominant uses the dominantcolor candidate finder.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmKMeansLab,
		AlgorithmDominant,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor for the specified algorithm.
func NewExtractor(alg Algorithm) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewKMeansExtractor(), nil
	case AlgorithmKMeansLab:
		return &LabKMeansExtractor{}, nil
	case AlgorithmDominant:
		return &DominantExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q (valid algorithms: %v)", ErrInvalidParameter, alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
	MaxSamples int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmKMeans,
		ColorCount: 5,
		MaxSamples: DefaultMaxSamples,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("%w: unknown algorithm %q (valid algorithms: %v)", ErrInvalidParameter, c.Algorithm, ValidAlgorithms())
	}
	if c.ColorCount < 1 {
		return fmt.Errorf("%w: colour count must be at least 1, got %d", ErrInvalidParameter, c.ColorCount)
	}
	return nil
}

// LabKMeansExtractor clusters samples in CIE Lab space using the muesli
// k-means implementation. Initialization is randomized, so repeated runs may
// differ slightly; use AlgorithmKMeans where reproducibility matters.
type LabKMeansExtractor struct{}

// Extract implements Extractor.
func (e *LabKMeansExtractor) Extract(samples []RGB, count int) (*Palette, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: colour count must be at least 1, got %d", ErrInvalidParameter, count)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no pixel samples", ErrInvalidImage)
	}
	if count >= distinctColours(samples) {
		return frequencyPalette(samples), nil
	}

	observations := make(clusters.Observations, len(samples))
	for i, s := range samples {
		l, a, b := s.colorful().Lab()
		observations[i] = clusters.Coordinates{l, a, b}
	}

	km := kmeans.New()
	result, err := km.Partition(observations, count)
	if err != nil {
		return nil, fmt.Errorf("lab k-means partition failed: %w", err)
	}

	colors := make([]RGB, 0, len(result))
	weights := make([]float64, 0, len(result))
	total := float64(len(samples))
	for _, cluster := range result {
		center := cluster.Center
		col := colorful.Lab(center[0], center[1], center[2]).Clamped()
		colors = append(colors, RGB{
			R: clampChannel(col.R * 255),
			G: clampChannel(col.G * 255),
			B: clampChannel(col.B * 255),
		})
		weights = append(weights, float64(len(cluster.Observations))/total)
	}

	return NewPaletteWithWeights(colors, weights), nil
}

// DominantExtractor extracts dominant colours via the dominantcolor package,
// which runs its own candidate search over an image.
type DominantExtractor struct{}

// Extract implements Extractor.
func (e *DominantExtractor) Extract(samples []RGB, count int) (*Palette, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: colour count must be at least 1, got %d", ErrInvalidParameter, count)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no pixel samples", ErrInvalidImage)
	}
	if count >= distinctColours(samples) {
		return frequencyPalette(samples), nil
	}

	candidates := dominantcolor.FindWeight(samplesToImage(samples), count)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: dominant colour search produced no candidates", ErrInsufficientSamples)
	}

	colors := make([]RGB, 0, len(candidates))
	weights := make([]float64, 0, len(candidates))
	totalWeight := 0.0
	for _, c := range candidates {
		colors = append(colors, ToRGB(c.RGBA))
		weights = append(weights, c.Weight)
		totalWeight += c.Weight
	}
	if totalWeight > 0 {
		for i := range weights {
			weights[i] /= totalWeight
		}
	}

	return NewPaletteWithWeights(colors, weights), nil
}

// colorful converts the colour to a colorful.Color with channels in [0, 1].
func (rgb RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// samplesToImage packs the sample sequence into a roughly square image for
// algorithms that operate on image.Image. Trailing pixels wrap around to the
// start of the sequence rather than padding with black, which would skew the
// colour distribution.
func samplesToImage(samples []RGB) *image.RGBA {
	width := int(math.Ceil(math.Sqrt(float64(len(samples)))))
	if width < 1 {
		width = 1
	}
	height := (len(samples) + width - 1) / width

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		s := samples[i%len(samples)]
		img.SetRGBA(i%width, i/width, s.Color())
	}
	return img
}
