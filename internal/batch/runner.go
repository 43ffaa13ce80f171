// Package batch analyses a set of images sequentially and optionally
// aggregates the per-image palettes into one batch-level palette.
package batch

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	imageio "github.com/jmylchreest/swatch/internal/image"
)

// Options configures a batch analysis run.
type Options struct {
	// NumColors is the number of dominant colours per image (K).
	NumColors int

	// Algorithm selects the extraction algorithm.
	Algorithm colour.Algorithm

	// Aggregate additionally computes a batch-level palette.
	Aggregate bool

	// AggregateColors is the aggregate palette size; zero defaults to NumColors.
	AggregateColors int

	// MaxSamples bounds pixel sampling per image; zero uses the default.
	MaxSamples int
}

// DefaultOptions returns options matching the CLI defaults.
func DefaultOptions() Options {
	cfg := colour.DefaultExtractorConfig()
	return Options{
		NumColors:  cfg.ColorCount,
		Algorithm:  cfg.Algorithm,
		MaxSamples: cfg.MaxSamples,
	}
}

// ImageAnalysis is the per-image result: the source path and its palette.
type ImageAnalysis struct {
	Path    string          `json:"path"`
	Palette *colour.Palette `json:"-"`
}

// Summary reports how a batch run went.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Result holds everything a batch run produced.
type Result struct {
	Analyses  []*ImageAnalysis
	Aggregate *colour.Palette
	Summary   Summary
}

// Runner runs image analyses one at a time. Analyses are independent, so a
// failed image is logged and skipped without aborting the rest of the batch.
type Runner struct {
	loader    imageio.Loader
	extractor colour.Extractor
	logger    hclog.Logger
	opts      Options
	cache     *analysisCache
}

// NewRunner validates the options and builds a Runner.
// Parameter errors here are fatal: nothing has been processed yet.
func NewRunner(opts Options, logger hclog.Logger) (*Runner, error) {
	if opts.Algorithm == "" {
		opts.Algorithm = colour.AlgorithmKMeans
	}
	cfg := colour.ExtractorConfig{
		Algorithm:  opts.Algorithm,
		ColorCount: opts.NumColors,
		MaxSamples: opts.MaxSamples,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Aggregate && opts.AggregateColors < 0 {
		return nil, fmt.Errorf("%w: aggregate-colors must not be negative, got %d", colour.ErrInvalidParameter, opts.AggregateColors)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	extractor, err := colour.NewExtractor(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	return &Runner{
		loader:    imageio.NewFileLoader(),
		extractor: extractor,
		logger:    logger,
		opts:      opts,
		cache:     newAnalysisCache(),
	}, nil
}

// SetLoader replaces the image loader. Used by tests to inject in-memory images.
func (r *Runner) SetLoader(loader imageio.Loader) {
	r.loader = loader
}

// Run analyses each path in order and returns the per-image results, the
// aggregate palette when requested, and a success/failure summary. It fails
// only when no path could be analysed; individual failures are logged at
// warn level and skipped.
func (r *Runner) Run(paths []string) (*Result, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no images to analyse", colour.ErrInvalidParameter)
	}

	result := &Result{Summary: Summary{Total: len(paths)}}
	for _, path := range paths {
		analysis, err := r.analyze(path)
		if err != nil {
			result.Summary.Failed++
			r.logger.Warn("skipping image", "path", path, "error", err)
			continue
		}
		result.Summary.Succeeded++
		result.Analyses = append(result.Analyses, analysis)
	}

	r.logger.Info("batch complete",
		"total", result.Summary.Total,
		"succeeded", result.Summary.Succeeded,
		"failed", result.Summary.Failed)

	if result.Summary.Succeeded == 0 {
		return nil, fmt.Errorf("all %d images failed to analyse", result.Summary.Total)
	}

	if r.opts.Aggregate {
		k := r.opts.AggregateColors
		if k == 0 {
			k = r.opts.NumColors
		}
		palettes := make([]*colour.Palette, len(result.Analyses))
		for i, a := range result.Analyses {
			palettes[i] = a.Palette
		}
		aggregate, err := colour.Aggregate(palettes, k)
		if err != nil {
			return nil, fmt.Errorf("aggregation failed: %w", err)
		}
		result.Aggregate = aggregate
	}

	return result, nil
}

// analyze loads, samples and clusters a single image, consulting the
// per-run cache first so repeated paths are analysed once.
func (r *Runner) analyze(path string) (*ImageAnalysis, error) {
	key := cacheKey(path)
	if cached, ok := r.cache.get(key); ok {
		r.logger.Debug("returning cached analysis", "path", path)
		return cached, nil
	}

	r.logger.Debug("loading image", "path", path)
	img, err := r.loader.Load(path)
	if err != nil {
		return nil, err
	}

	samples, err := colour.SamplePixels(img, r.opts.MaxSamples)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("sampled pixels", "path", path, "samples", len(samples))

	palette, err := r.extractor.Extract(samples, r.opts.NumColors)
	if err != nil {
		// A failed extraction on valid parameters means this image is not
		// usable (e.g. no samples); treat it like any other bad image unless
		// the parameters themselves are wrong.
		if errors.Is(err, colour.ErrInvalidParameter) {
			return nil, err
		}
		return nil, fmt.Errorf("extraction failed for %s: %w", path, err)
	}

	if palette.Len() < r.opts.NumColors {
		r.logger.Warn("fewer distinct colours than requested, palette clamped",
			"path", path,
			"requested", r.opts.NumColors,
			"returned", palette.Len())
	}
	if top, weight, atErr := palette.At(0); atErr == nil {
		r.logger.Debug("extracted palette",
			"path", path,
			"dominant", top.Hex(),
			"weight", weight,
			"palette", palette.String())
	}

	analysis := &ImageAnalysis{Path: path, Palette: palette}
	r.cache.put(key, analysis)
	return analysis, nil
}
