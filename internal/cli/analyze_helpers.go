package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/swatch/internal/batch"
	"github.com/jmylchreest/swatch/internal/colour"
)

const previewBlockWidth = 8

// formatResult renders a batch result in the requested output format.
// Previews are honoured by the text and hex formats; JSON stays clean.
func formatResult(result *batch.Result, format string, preview bool) (string, error) {
	switch format {
	case "text":
		return formatTextResult(result, preview), nil
	case "hex":
		return formatHexResult(result, preview), nil
	case "json":
		return formatJSONResult(result)
	default:
		return "", fmt.Errorf("%w: unknown output format %q (valid: text, hex, json)", colour.ErrInvalidParameter, format)
	}
}

// formatTextResult lists each image's palette as numbered colour lines,
// optionally preceded by an ANSI strip, followed by the aggregate palette
// and a run summary.
func formatTextResult(result *batch.Result, preview bool) string {
	var sb strings.Builder

	for _, analysis := range result.Analyses {
		fmt.Fprintf(&sb, "Image: %s\n", analysis.Path)
		writePaletteText(&sb, analysis.Palette, preview)
		sb.WriteByte('\n')
	}

	if result.Aggregate != nil {
		sb.WriteString("Aggregate palette:\n")
		writePaletteText(&sb, result.Aggregate, preview)
		sb.WriteByte('\n')
	}

	sb.WriteString(summaryTable(result.Summary))
	return sb.String()
}

func writePaletteText(sb *strings.Builder, p *colour.Palette, preview bool) {
	if preview {
		fmt.Fprintf(sb, "  %s\n", colour.PaletteStrip(p, 48))
	}
	for i, c := range p.Colors {
		if preview {
			percent := fmt.Sprintf("%5.1f%%", p.Weights[i]*100)
			fmt.Fprintf(sb, "  Color %d: %s %s\n",
				i+1, colour.ColourPreviewWithText(c, percent, previewBlockWidth), c.String())
		} else {
			fmt.Fprintf(sb, "  Color %d: %s %s %5.1f%%\n",
				i+1, c.Hex(), c.String(), p.Weights[i]*100)
		}
	}
}

// formatHexResult prints one line per image: the path followed by the
// palette as space-separated hex codes, dominant first. With preview on,
// each colour gets its own line with a swatch instead.
func formatHexResult(result *batch.Result, preview bool) string {
	var sb strings.Builder
	for _, analysis := range result.Analyses {
		writePaletteHex(&sb, analysis.Path, analysis.Palette, preview)
	}
	if result.Aggregate != nil {
		writePaletteHex(&sb, "aggregate", result.Aggregate, preview)
	}
	return sb.String()
}

func writePaletteHex(sb *strings.Builder, label string, p *colour.Palette, preview bool) {
	if !preview {
		fmt.Fprintf(sb, "%s: %s\n", label, strings.Join(p.ToHex(), " "))
		return
	}
	fmt.Fprintf(sb, "%s:\n", label)
	for _, c := range p.Colors {
		fmt.Fprintf(sb, "  %s\n", colour.FormatColourWithPreview(c, previewBlockWidth))
	}
}

// analysisJSON is the per-image JSON output shape.
type analysisJSON struct {
	Path    string             `json:"path"`
	Palette colour.PaletteJSON `json:"palette"`
}

// resultJSON is the top-level JSON output shape.
type resultJSON struct {
	Images    []analysisJSON      `json:"images"`
	Aggregate *colour.PaletteJSON `json:"aggregate,omitempty"`
	Summary   batch.Summary       `json:"summary"`
}

func formatJSONResult(result *batch.Result) (string, error) {
	out := resultJSON{
		Images:  make([]analysisJSON, len(result.Analyses)),
		Summary: result.Summary,
	}
	for i, analysis := range result.Analyses {
		out.Images[i] = analysisJSON{
			Path:    analysis.Path,
			Palette: analysis.Palette.JSONValue(),
		}
	}
	if result.Aggregate != nil {
		agg := result.Aggregate.JSONValue()
		out.Aggregate = &agg
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}
	return string(data) + "\n", nil
}

// summaryTable renders the batch summary as a small table.
func summaryTable(s batch.Summary) string {
	t := newTable([]string{"TOTAL", "SUCCEEDED", "FAILED"})
	t.addRow([]string{
		strconv.Itoa(s.Total),
		strconv.Itoa(s.Succeeded),
		strconv.Itoa(s.Failed),
	})
	return t.render()
}
