package colour

import (
	"errors"
	"testing"
)

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		name      string
		algorithm Algorithm
		wantErr   bool
	}{
		{name: "kmeans", algorithm: AlgorithmKMeans},
		{name: "kmeanslab", algorithm: AlgorithmKMeansLab},
		{name: "dominant", algorithm: AlgorithmDominant},
		{name: "unknown", algorithm: Algorithm("octree"), wantErr: true},
		{name: "empty", algorithm: Algorithm(""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor, err := NewExtractor(tt.algorithm)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidParameter) {
					t.Errorf("Expected ErrInvalidParameter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewExtractor returned error: %v", err)
			}
			if extractor == nil {
				t.Fatal("NewExtractor returned nil extractor")
			}
		})
	}
}

func TestIsValidAlgorithm(t *testing.T) {
	for _, alg := range ValidAlgorithms() {
		if !IsValidAlgorithm(alg) {
			t.Errorf("IsValidAlgorithm(%q) = false, want true", alg)
		}
	}
	if IsValidAlgorithm("mediancut") {
		t.Error("IsValidAlgorithm(mediancut) = true, want false")
	}
}

func TestExtractorConfigValidate(t *testing.T) {
	cfg := DefaultExtractorConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	cfg.ColorCount = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for zero colour count, got %v", err)
	}

	cfg = DefaultExtractorConfig()
	cfg.Algorithm = "nope"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for bad algorithm, got %v", err)
	}
}

// All algorithms share the clamp policy and parameter validation, which are
// deterministic even where the clustering itself is not.
func TestAllExtractorsCommonBehaviour(t *testing.T) {
	samples := []RGB{
		{R: 255}, {R: 255}, {R: 255},
		{G: 255}, {G: 255},
		{B: 255},
	}

	for _, alg := range ValidAlgorithms() {
		t.Run(string(alg), func(t *testing.T) {
			extractor, err := NewExtractor(alg)
			if err != nil {
				t.Fatalf("NewExtractor returned error: %v", err)
			}

			if _, err := extractor.Extract(samples, 0); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Extract(k=0): expected ErrInvalidParameter, got %v", err)
			}
			if _, err := extractor.Extract(nil, 3); !errors.Is(err, ErrInvalidImage) {
				t.Errorf("Extract(no samples): expected ErrInvalidImage, got %v", err)
			}

			// Requesting at least as many colours as exist clamps to the
			// distinct set with frequency weights.
			palette, err := extractor.Extract(samples, 10)
			if err != nil {
				t.Fatalf("Extract(k=10) returned error: %v", err)
			}
			if palette.Len() != 3 {
				t.Fatalf("Expected 3 distinct colours, got %d", palette.Len())
			}
			assertWeightsSumToOne(t, palette)
			if palette.Colors[0] != (RGB{R: 255}) {
				t.Errorf("top colour = %+v, want {R:255}", palette.Colors[0])
			}
		})
	}
}

func TestLabKMeansExtractorShape(t *testing.T) {
	palette, err := (&LabKMeansExtractor{}).Extract(variedSamples(300), 4)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if palette.Len() != 4 {
		t.Fatalf("Expected 4 colours, got %d", palette.Len())
	}
	assertWeightsSumToOne(t, palette)
}

func TestDominantExtractorShape(t *testing.T) {
	// Strongly clustered samples so the candidate search has clear winners.
	var samples []RGB
	samples = append(samples, repeat(RGB{R: 200, G: 30, B: 30}, 400)...)
	samples = append(samples, repeat(RGB{R: 30, G: 200, B: 30}, 300)...)
	samples = append(samples, repeat(RGB{R: 30, G: 30, B: 200}, 200)...)
	samples = append(samples, variedSamples(100)...)

	palette, err := (&DominantExtractor{}).Extract(samples, 3)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if palette.Len() == 0 || palette.Len() > 3 {
		t.Fatalf("Expected between 1 and 3 colours, got %d", palette.Len())
	}
	assertWeightsSumToOne(t, palette)
}

func TestSamplesToImage(t *testing.T) {
	samples := []RGB{{R: 1}, {R: 2}, {R: 3}, {R: 4}, {R: 5}}
	img := samplesToImage(samples)

	bounds := img.Bounds()
	if bounds.Dx()*bounds.Dy() < len(samples) {
		t.Fatalf("image %dx%d cannot hold %d samples", bounds.Dx(), bounds.Dy(), len(samples))
	}
	if got := ToRGB(img.At(0, 0)); got != samples[0] {
		t.Errorf("pixel (0,0) = %+v, want %+v", got, samples[0])
	}
	// Trailing cells wrap around instead of padding with black.
	last := img.At(bounds.Max.X-1, bounds.Max.Y-1)
	if ToRGB(last) == (RGB{}) {
		t.Error("trailing pixel is black padding; expected wrapped sample")
	}
}
