package colour

import (
	"fmt"
	"math"
	"sort"
)

// Clustering limits. The convergence threshold is the average centroid
// movement (in RGB units) below which iteration stops.
const (
	defaultMaxIterations = 50
	defaultConvergence   = 1.0
)

// KMeansExtractor extracts dominant colours using k-means clustering with a
// deterministic initialization: the k distinct sample colours carrying the
// most weight seed the centroids, so identical samples and count always
// produce identical palettes.
type KMeansExtractor struct{}

// NewKMeansExtractor creates a new KMeansExtractor.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{}
}

// Extract clusters the samples into count dominant colours with their
// relative weights. When count meets or exceeds the number of distinct
// sample colours, the distinct colours are returned with their observed
// frequencies instead (no padding); callers can detect the clamp by
// comparing the palette length against the requested count.
func (e *KMeansExtractor) Extract(samples []RGB, count int) (*Palette, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: colour count must be at least 1, got %d", ErrInvalidParameter, count)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no pixel samples", ErrInvalidImage)
	}

	if count >= distinctColours(samples) {
		return frequencyPalette(samples), nil
	}

	return Cluster(samples, count)
}

// Cluster partitions samples into exactly k colour clusters and returns the
// centroids with their weights sorted by descending weight. Unlike Extract
// it does not clamp: it fails with ErrInsufficientSamples when k exceeds the
// number of distinct sample colours.
func Cluster(samples []RGB, k int) (*Palette, error) {
	weights := make([]float64, len(samples))
	for i := range weights {
		weights[i] = 1
	}
	return ClusterWeighted(samples, weights, k)
}

// ClusterWeighted is the weighted form of Cluster: each sample contributes to
// centroid means and cluster weights in proportion to its weight. Output
// weights are normalized to sum to 1.0.
func ClusterWeighted(samples []RGB, weights []float64, k int) (*Palette, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: cluster count must be at least 1, got %d", ErrInvalidParameter, k)
	}
	if len(samples) != len(weights) {
		return nil, fmt.Errorf("%w: %d samples with %d weights", ErrInvalidParameter, len(samples), len(weights))
	}
	if distinct := distinctColours(samples); k > distinct {
		return nil, fmt.Errorf("%w: %d clusters requested but only %d distinct colours", ErrInsufficientSamples, k, distinct)
	}

	points := make([]point3D, len(samples))
	for i, s := range samples {
		points[i] = point3D{R: float64(s.R), G: float64(s.G), B: float64(s.B)}
	}

	centroids, clusterWeights := runKMeans(points, weights, k)

	colors := make([]RGB, len(centroids))
	for i, c := range centroids {
		colors[i] = c.toRGB()
	}
	return NewPaletteWithWeights(colors, clusterWeights), nil
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// toRGB rounds each channel to the nearest integer, clamped to [0, 255].
func (p point3D) toRGB() RGB {
	return RGB{
		R: clampChannel(p.R),
		G: clampChannel(p.G),
		B: clampChannel(p.B),
	}
}

func clampChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

// runKMeans performs weighted k-means clustering on the points.
// Returns centroids and their normalized weights.
func runKMeans(points []point3D, weights []float64, k int) ([]point3D, []float64) {
	centroids := initializeCentroids(points, weights, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < defaultMaxIterations; iter++ {
		for i, point := range points {
			assignments[i] = nearestCentroid(point, centroids)
		}

		newCentroids := recalculateCentroids(points, weights, assignments, centroids)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < defaultConvergence {
			break
		}
	}

	// Final assignment against the settled centroids.
	clusterWeights := make([]float64, k)
	totalWeight := 0.0
	for i, point := range points {
		assignments[i] = nearestCentroid(point, centroids)
		clusterWeights[assignments[i]] += weights[i]
		totalWeight += weights[i]
	}
	if totalWeight > 0 {
		for i := range clusterWeights {
			clusterWeights[i] /= totalWeight
		}
	}

	return centroids, clusterWeights
}

// initializeCentroids seeds the centroids with the k distinct sample colours
// carrying the most total weight, ties broken by first occurrence. The caller
// guarantees at least k distinct colours exist.
func initializeCentroids(points []point3D, weights []float64, k int) []point3D {
	totals := make(map[point3D]float64, len(points))
	order := make([]point3D, 0, len(points))
	for i, p := range points {
		if _, ok := totals[p]; !ok {
			order = append(order, p)
		}
		totals[p] += weights[i]
	}

	sort.SliceStable(order, func(a, b int) bool {
		return totals[order[a]] > totals[order[b]]
	})

	centroids := make([]point3D, k)
	copy(centroids, order[:k])
	return centroids
}

// nearestCentroid finds the index of the nearest centroid to a point.
// Equidistant ties resolve to the later centroid.
func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if dist := point.distance(centroid); dist <= minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids recomputes centroid positions as the weighted mean of
// their assigned points. A cluster that lost all its points is re-seeded at
// the point farthest from its current centroid, keeping the count at k
// without resorting to randomness.
func recalculateCentroids(points []point3D, weights []float64, assignments []int, centroids []point3D) []point3D {
	k := len(centroids)
	sums := make([]point3D, k)
	totals := make([]float64, k)

	for i, point := range points {
		cluster := assignments[i]
		w := weights[i]
		sums[cluster].R += point.R * w
		sums[cluster].G += point.G * w
		sums[cluster].B += point.B * w
		totals[cluster] += w
	}

	result := make([]point3D, k)
	var reseeded map[point3D]struct{}
	for i := range k {
		if totals[i] > 0 {
			result[i] = point3D{
				R: sums[i].R / totals[i],
				G: sums[i].G / totals[i],
				B: sums[i].B / totals[i],
			}
		} else {
			// Several clusters can empty in the same iteration; each must
			// reseed to a different point or the output carries duplicates.
			if reseeded == nil {
				reseeded = make(map[point3D]struct{}, 1)
			}
			p := farthestPoint(points, assignments, centroids, reseeded)
			reseeded[p] = struct{}{}
			result[i] = p
		}
	}

	return result
}

// farthestPoint returns the point with the greatest distance to its assigned
// centroid, skipping points in the exclude set.
func farthestPoint(points []point3D, assignments []int, centroids []point3D, exclude map[point3D]struct{}) point3D {
	best := points[0]
	bestDist := -1.0
	for i, p := range points {
		if _, skip := exclude[p]; skip {
			continue
		}
		if d := p.distance(centroids[assignments[i]]); d > bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

// distinctColours counts the unique colours among the samples.
func distinctColours(samples []RGB) int {
	seen := make(map[RGB]struct{}, len(samples))
	for _, s := range samples {
		seen[s] = struct{}{}
	}
	return len(seen)
}

// frequencyPalette returns every distinct sample colour weighted by its
// observed frequency, ordered by descending weight with ties kept in
// first-occurrence order.
func frequencyPalette(samples []RGB) *Palette {
	counts := make(map[RGB]int, len(samples))
	order := make([]RGB, 0, len(samples))
	for _, s := range samples {
		if _, ok := counts[s]; !ok {
			order = append(order, s)
		}
		counts[s]++
	}

	weights := make([]float64, len(order))
	total := float64(len(samples))
	for i, c := range order {
		weights[i] = float64(counts[c]) / total
	}
	return NewPaletteWithWeights(order, weights)
}
