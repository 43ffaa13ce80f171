package colour

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Aggregate merges per-image palettes into a single batch-level palette of at
// most k colours. Every (colour, weight) pair is pooled with its weight
// scaled by 1/len(palettes), then the pool is re-clustered with weighted
// k-means so heavier palette entries pull centroids harder. Output weights
// are renormalized to sum to 1.0.
//
// If the pool holds fewer distinct colours than k, all distinct colours are
// returned with merged weights and no padding.
func Aggregate(palettes []*Palette, k int) (*Palette, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: aggregate colour count must be at least 1, got %d", ErrInvalidParameter, k)
	}
	if len(palettes) == 0 {
		return nil, fmt.Errorf("%w: no palettes to aggregate", ErrInvalidParameter)
	}

	var colors []RGB
	var weights []float64
	scale := 1.0 / float64(len(palettes))
	for _, p := range palettes {
		for i, c := range p.Colors {
			colors = append(colors, c)
			weights = append(weights, p.Weights[i]*scale)
		}
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: palettes contain no colours", ErrInvalidParameter)
	}

	// Per-image weights each sum to ~1, so the pool sums to ~1 after scaling;
	// normalize exactly before clustering so the output does too.
	if total := floats.Sum(weights); total > 0 {
		floats.Scale(1.0/total, weights)
	}

	if k >= distinctColours(colors) {
		return mergedPalette(colors, weights), nil
	}

	return ClusterWeighted(colors, weights, k)
}

// mergedPalette collapses duplicate pooled colours by summing their weights,
// preserving first-occurrence order for weight ties.
func mergedPalette(colors []RGB, weights []float64) *Palette {
	merged := make(map[RGB]float64, len(colors))
	order := make([]RGB, 0, len(colors))
	for i, c := range colors {
		if _, ok := merged[c]; !ok {
			order = append(order, c)
		}
		merged[c] += weights[i]
	}

	mergedWeights := make([]float64, len(order))
	for i, c := range order {
		mergedWeights[i] = merged[c]
	}
	if total := floats.Sum(mergedWeights); total > 0 {
		floats.Scale(1.0/total, mergedWeights)
	}
	return NewPaletteWithWeights(order, mergedWeights)
}
