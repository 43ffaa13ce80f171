package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns an ANSI-coloured preview string for a colour.
// Width specifies how many characters wide the colour block should be.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText returns a colour block with centred text overlaid,
// using black or white text depending on the block's luminance.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var fg RGB
	if Luminance(c) <= 0.5 {
		fg = RGB{R: 255, G: 255, B: 255}
	}

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgSeq := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)
	return bg + fgSeq + display + ansiReset
}

// Luminance returns the relative luminance of a colour in [0, 1].
func Luminance(c RGB) float64 {
	r, g, b := c.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// FormatColourWithPreview formats a colour with its preview and hex code.
func FormatColourWithPreview(c RGB, width int) string {
	return fmt.Sprintf("%s %s", ColourPreview(c, width), c.Hex())
}

// PaletteStrip renders a palette as a single line of colour blocks whose
// widths are proportional to the palette weights. Every colour gets at least
// one cell so small clusters stay visible.
func PaletteStrip(p *Palette, width int) string {
	if p == nil || p.Len() == 0 {
		return ""
	}
	if width < p.Len() {
		width = p.Len() * defaultWidth
	}

	n := p.Len()
	var sb strings.Builder
	used := 0
	for i, c := range p.Colors {
		cells := int(p.Weights[i]*float64(width) + 0.5)
		if cells < 1 {
			cells = 1
		}
		if i == n-1 {
			cells = width - used
		} else if maxCells := width - used - (n - 1 - i); cells > maxCells {
			// Reserve one cell for each remaining colour.
			cells = maxCells
		}
		sb.WriteString(ColourPreview(c, cells))
		used += cells
	}
	return sb.String()
}
