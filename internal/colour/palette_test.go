package colour

import (
	"encoding/json"
	"image/color"
	"math"
	"testing"
)

func TestNewPalette(t *testing.T) {
	colors := []RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
	}

	palette := NewPalette(colors)

	if palette == nil {
		t.Fatal("NewPalette returned nil")
	}
	if palette.Len() != 3 {
		t.Errorf("Expected palette length 3, got %d", palette.Len())
	}

	sum := 0.0
	for _, w := range palette.Weights {
		if w <= 0 {
			t.Errorf("Expected positive weight, got %f", w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Expected weights to sum to 1.0, got %f", sum)
	}
}

func TestNewPaletteWithWeightsSorting(t *testing.T) {
	tests := []struct {
		name       string
		colors     []RGB
		weights    []float64
		wantColors []RGB
	}{
		{
			name:       "already sorted",
			colors:     []RGB{{R: 1}, {R: 2}, {R: 3}},
			weights:    []float64{0.5, 0.3, 0.2},
			wantColors: []RGB{{R: 1}, {R: 2}, {R: 3}},
		},
		{
			name:       "reverse order",
			colors:     []RGB{{R: 1}, {R: 2}, {R: 3}},
			weights:    []float64{0.2, 0.3, 0.5},
			wantColors: []RGB{{R: 3}, {R: 2}, {R: 1}},
		},
		{
			name:       "ties keep input order",
			colors:     []RGB{{R: 1}, {R: 2}, {R: 3}},
			weights:    []float64{0.25, 0.5, 0.25},
			wantColors: []RGB{{R: 2}, {R: 1}, {R: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			palette := NewPaletteWithWeights(tt.colors, tt.weights)
			for i, want := range tt.wantColors {
				if palette.Colors[i] != want {
					t.Errorf("Colors[%d] = %+v, want %+v", i, palette.Colors[i], want)
				}
			}
			for i := 1; i < palette.Len(); i++ {
				if palette.Weights[i] > palette.Weights[i-1] {
					t.Errorf("Weights not descending at %d: %f > %f", i, palette.Weights[i], palette.Weights[i-1])
				}
			}
		})
	}
}

func TestPaletteAt(t *testing.T) {
	palette := NewPaletteWithWeights([]RGB{{R: 255}}, []float64{1.0})

	c, w, err := palette.At(0)
	if err != nil {
		t.Fatalf("At(0) returned error: %v", err)
	}
	if c != (RGB{R: 255}) {
		t.Errorf("At(0) colour = %+v, want {R:255}", c)
	}
	if w != 1.0 {
		t.Errorf("At(0) weight = %f, want 1.0", w)
	}

	if _, _, err := palette.At(1); err == nil {
		t.Error("Expected error for out-of-bounds index")
	}
	if _, _, err := palette.At(-1); err == nil {
		t.Error("Expected error for negative index")
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "green",
			color: color.RGBA{R: 0, G: 255, B: 0, A: 255},
			want:  RGB{R: 0, G: 255, B: 0},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "black",
			color: color.RGBA{R: 0, G: 0, B: 0, A: 255},
			want:  RGB{R: 0, G: 0, B: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB(tt.color); got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255}, want: "#ff0000"},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: "#ffffff"},
		{name: "mixed", rgb: RGB{R: 26, G: 43, B: 60}, want: "#1a2b3c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPaletteToJSON(t *testing.T) {
	palette := NewPaletteWithWeights(
		[]RGB{{R: 255}, {B: 255}},
		[]float64{0.75, 0.25},
	)

	data, err := palette.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() returned error: %v", err)
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal palette JSON: %v", err)
	}
	if decoded.Count != 2 {
		t.Errorf("Count = %d, want 2", decoded.Count)
	}
	if decoded.Colors[0].Hex != "#ff0000" {
		t.Errorf("Colors[0].Hex = %q, want #ff0000", decoded.Colors[0].Hex)
	}
	if decoded.Colors[0].Weight != 0.75 {
		t.Errorf("Colors[0].Weight = %f, want 0.75", decoded.Colors[0].Weight)
	}
}
