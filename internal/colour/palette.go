// Package colour provides dominant colour extraction and palette aggregation.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"sort"
)

// RGB represents a colour as 8-bit red, green and blue channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Color returns the colour as an opaque color.RGBA.
func (rgb RGB) Color() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Palette is an ordered set of colours with their relative weights.
// Weights are fractions of the analysed samples, sum to 1.0 (within
// floating-point tolerance) and are ordered by descending weight.
type Palette struct {
	Colors  []RGB
	Weights []float64
}

// NewPalette creates a Palette with equal weights for every colour.
func NewPalette(colors []RGB) *Palette {
	weights := make([]float64, len(colors))
	if len(colors) > 0 {
		w := 1.0 / float64(len(colors))
		for i := range weights {
			weights[i] = w
		}
	}
	return &Palette{Colors: colors, Weights: weights}
}

// NewPaletteWithWeights creates a Palette from colours and their weights.
// Entries are sorted by descending weight; ties keep their input order.
func NewPaletteWithWeights(colors []RGB, weights []float64) *Palette {
	n := min(len(colors), len(weights))
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] > weights[order[b]]
	})

	sortedColors := make([]RGB, n)
	sortedWeights := make([]float64, n)
	for i, idx := range order {
		sortedColors[i] = colors[idx]
		sortedWeights[i] = weights[idx]
	}
	return &Palette{Colors: sortedColors, Weights: sortedWeights}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// At returns the colour and weight at the given index.
// Returns an error if the index is out of bounds.
func (p *Palette) At(index int) (RGB, float64, error) {
	if index < 0 || index >= len(p.Colors) {
		return RGB{}, 0, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Colors))
	}
	return p.Colors[index], p.Weights[index], nil
}

// ToHex converts the palette colours to hex strings.
// Returns a slice of hex colour codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = c.Hex()
	}
	return hexColors
}

// ColorJSON represents a single palette entry in JSON output format.
type ColorJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Weight float64 `json:"weight"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.JSONValue(), "", "  ")
}

// JSONValue returns the palette as its JSON output structure.
func (p *Palette) JSONValue() PaletteJSON {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = ColorJSON{
			Hex:    c.Hex(),
			RGB:    c,
			Weight: p.Weights[i],
		}
	}
	return PaletteJSON{
		Count:  len(p.Colors),
		Colors: colors,
	}
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Colors))
	for i, c := range p.Colors {
		result += fmt.Sprintf("  %2d: %s (%s) %5.1f%%\n", i+1, c.Hex(), c.String(), p.Weights[i]*100)
	}
	return result
}
