// Package preview renders palettes as image strips.
package preview

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Default strip dimensions in pixels.
const (
	DefaultStripWidth  = 512
	DefaultStripHeight = 64
)

// RenderStrip draws the palette as a horizontal strip of swatches whose
// widths are proportional to the palette weights. Every colour gets at least
// one pixel column. Zero or negative dimensions use the defaults.
func RenderStrip(p *colour.Palette, width, height int) *image.RGBA {
	if width <= 0 {
		width = DefaultStripWidth
	}
	if height <= 0 {
		height = DefaultStripHeight
	}
	if p != nil && width < p.Len() {
		width = p.Len()
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if p == nil || p.Len() == 0 {
		return img
	}

	n := p.Len()
	x := 0
	for i, c := range p.Colors {
		w := int(p.Weights[i]*float64(width) + 0.5)
		if w < 1 {
			w = 1
		}
		if i == n-1 {
			// The last swatch absorbs rounding drift so the strip has no gap.
			w = width - x
		} else if maxW := width - x - (n - 1 - i); w > maxW {
			// Reserve one column for each remaining colour.
			w = maxW
		}
		rect := image.Rect(x, 0, x+w, height)
		draw.Draw(img, rect, &image.Uniform{C: c.Color()}, image.Point{}, draw.Src)
		x += w
	}

	return img
}

// WritePNG renders the palette strip and writes it to path as a PNG.
func WritePNG(p *colour.Palette, path string, width, height int) error {
	if p == nil || p.Len() == 0 {
		return fmt.Errorf("cannot render an empty palette")
	}

	file, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create palette file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, RenderStrip(p, width, height)); err != nil {
		return fmt.Errorf("failed to encode palette strip: %w", err)
	}
	return nil
}
