package cli

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jmylchreest/swatch/internal/batch"
	"github.com/jmylchreest/swatch/internal/colour"
)

func testResult(withAggregate bool) *batch.Result {
	palette := colour.NewPaletteWithWeights(
		[]colour.RGB{{R: 255}, {B: 255}},
		[]float64{0.75, 0.25},
	)
	result := &batch.Result{
		Analyses: []*batch.ImageAnalysis{
			{Path: "photos/red.png", Palette: palette},
		},
		Summary: batch.Summary{Total: 2, Succeeded: 1, Failed: 1},
	}
	if withAggregate {
		result.Aggregate = palette
	}
	return result
}

func TestFormatTextResult(t *testing.T) {
	out, err := formatResult(testResult(false), "text", false)
	if err != nil {
		t.Fatalf("formatResult returned error: %v", err)
	}

	for _, want := range []string{
		"Image: photos/red.png",
		"Color 1: #ff0000 rgb(255, 0, 0)  75.0%",
		"Color 2: #0000ff rgb(0, 0, 255)  25.0%",
		"TOTAL",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Aggregate palette:") {
		t.Error("text output has aggregate section without aggregation")
	}
	if strings.Contains(out, "\033[") {
		t.Error("text output contains ANSI escapes without preview")
	}
}

func TestFormatTextResultWithAggregateAndPreview(t *testing.T) {
	out, err := formatResult(testResult(true), "text", true)
	if err != nil {
		t.Fatalf("formatResult returned error: %v", err)
	}
	if !strings.Contains(out, "Aggregate palette:") {
		t.Errorf("missing aggregate section:\n%s", out)
	}
	if !strings.Contains(out, "\033[48;2;255;0;0m") {
		t.Error("preview output missing colour blocks")
	}
	// The weight is overlaid on the swatch with a contrasting foreground.
	if !strings.Contains(out, "75.0%") {
		t.Errorf("preview output missing weight overlay:\n%s", out)
	}
	if !strings.Contains(out, "\033[38;2;") {
		t.Error("preview output missing text foreground escape")
	}
}

func TestFormatHexResultWithPreview(t *testing.T) {
	out, err := formatResult(testResult(false), "hex", true)
	if err != nil {
		t.Fatalf("formatResult returned error: %v", err)
	}
	if !strings.Contains(out, "photos/red.png:") {
		t.Errorf("missing image label:\n%s", out)
	}
	if !strings.Contains(out, "\033[48;2;255;0;0m") {
		t.Error("hex preview missing colour swatch")
	}
	if !strings.Contains(out, "#ff0000") || !strings.Contains(out, "#0000ff") {
		t.Errorf("hex preview missing hex codes:\n%s", out)
	}
}

func TestFormatHexResult(t *testing.T) {
	out, err := formatResult(testResult(true), "hex", false)
	if err != nil {
		t.Fatalf("formatResult returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "photos/red.png: #ff0000 #0000ff" {
		t.Errorf("image line = %q", lines[0])
	}
	if lines[1] != "aggregate: #ff0000 #0000ff" {
		t.Errorf("aggregate line = %q", lines[1])
	}
}

func TestFormatJSONResult(t *testing.T) {
	out, err := formatResult(testResult(true), "json", false)
	if err != nil {
		t.Fatalf("formatResult returned error: %v", err)
	}

	var decoded resultJSON
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Images) != 1 {
		t.Fatalf("Expected 1 image, got %d", len(decoded.Images))
	}
	if decoded.Images[0].Path != "photos/red.png" {
		t.Errorf("path = %q", decoded.Images[0].Path)
	}
	if decoded.Images[0].Palette.Colors[0].Hex != "#ff0000" {
		t.Errorf("first colour = %q, want #ff0000", decoded.Images[0].Palette.Colors[0].Hex)
	}
	if decoded.Aggregate == nil {
		t.Error("missing aggregate palette")
	}
	if decoded.Summary.Failed != 1 {
		t.Errorf("summary failed = %d, want 1", decoded.Summary.Failed)
	}
}

func TestFormatJSONResultOmitsAggregate(t *testing.T) {
	out, err := formatResult(testResult(false), "json", false)
	if err != nil {
		t.Fatalf("formatResult returned error: %v", err)
	}
	if strings.Contains(out, "aggregate") {
		t.Errorf("aggregate key present without aggregation:\n%s", out)
	}
}

func TestFormatResultUnknownFormat(t *testing.T) {
	if _, err := formatResult(testResult(false), "yaml", false); !errors.Is(err, colour.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
}

func TestSummaryTable(t *testing.T) {
	out := summaryTable(batch.Summary{Total: 3, Succeeded: 2, Failed: 1})
	if !strings.Contains(out, "TOTAL") || !strings.Contains(out, "3") {
		t.Errorf("summary table missing fields: %q", out)
	}
}
