// Package cli provides the command-line interface for Swatch.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/batch"
	"github.com/jmylchreest/swatch/internal/colour"
	imageio "github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/preview"
)

var (
	// Analyze command flags
	analyzeImagePaths     []string
	analyzeDirectory      string
	analyzeColours        int
	analyzeAlgorithm      string
	analyzeAggregate      bool
	analyzeAggColours     int
	analyzeDisplayPalette bool
	analyzePaletteFile    string
	analyzeFormat         string
	analyzeOutput         string
	analyzeMaxSamples     int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract dominant colours from images",
	Long: `Analyze one or more images and report each one's dominant colours with
their relative weights.

Images are given either as explicit paths or as a directory, which is
scanned recursively for supported formats. A failed image is logged and
skipped; the run only fails if every image fails.

Supported image formats: PNG, JPEG, GIF, BMP, TIFF, WebP

Examples:
  # Extract 5 dominant colours (default) from one image
  swatch analyze --image-paths wallpaper.jpg

  # Analyze several images with 8 colours each
  swatch analyze --image-paths a.png,b.jpg -c 8

  # Analyze a whole directory and aggregate into one batch palette
  swatch analyze --directory ./wallpapers --aggregate

  # Show colour strips in the terminal
  swatch analyze --image-paths photo.png --display-palette

  # Write the aggregate palette as a PNG strip
  swatch analyze --directory ./shots --aggregate --palette-file palette.png

  # JSON output to a file
  swatch analyze --directory ./shots -f json -o results.json`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	registerAnalyzeFlags(analyzeCmd.Flags())
}

// registerAnalyzeFlags defines the analyze command flags on the given set.
func registerAnalyzeFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&analyzeImagePaths, "image-paths", nil, "image files to analyze")
	fs.StringVar(&analyzeDirectory, "directory", "", "directory to scan recursively for images")
	fs.IntVarP(&analyzeColours, "num-colors", "c", 5, "number of dominant colours per image")
	fs.StringVarP(&analyzeAlgorithm, "algorithm", "a", string(colour.AlgorithmKMeans), "extraction algorithm (kmeans, kmeanslab, dominant)")
	fs.BoolVar(&analyzeAggregate, "aggregate", false, "also compute a combined palette across all images")
	fs.IntVar(&analyzeAggColours, "aggregate-colors", 0, "number of colours in the aggregate palette (default: --num-colors)")
	fs.BoolVar(&analyzeDisplayPalette, "display-palette", false, "render colour strips in the terminal")
	fs.StringVar(&analyzePaletteFile, "palette-file", "", "write the palette as a PNG strip to this file")
	fs.StringVarP(&analyzeFormat, "format", "f", "text", "output format (text, hex, json)")
	fs.StringVarP(&analyzeOutput, "output", "o", "", "output file (default: stdout)")
	fs.IntVar(&analyzeMaxSamples, "max-samples", colour.DefaultMaxSamples, "maximum pixels sampled per image")
}

// runAnalyze executes the analyze command.
func runAnalyze(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	// Exactly one input source must be supplied. This is a parameter error
	// and aborts before any image is touched.
	if len(analyzeImagePaths) == 0 && analyzeDirectory == "" {
		return fmt.Errorf("%w: one of --image-paths or --directory is required", colour.ErrInvalidParameter)
	}
	if len(analyzeImagePaths) > 0 && analyzeDirectory != "" {
		return fmt.Errorf("%w: --image-paths and --directory are mutually exclusive", colour.ErrInvalidParameter)
	}

	paths := analyzeImagePaths
	if analyzeDirectory != "" {
		paths, err = imageio.ScanDirectoryForImages(analyzeDirectory)
		if err != nil {
			return err
		}
		logger.Debug("scanned directory", "directory", analyzeDirectory, "images", len(paths))
	}

	runner, err := batch.NewRunner(batch.Options{
		NumColors:       analyzeColours,
		Algorithm:       colour.Algorithm(analyzeAlgorithm),
		Aggregate:       analyzeAggregate,
		AggregateColors: analyzeAggColours,
		MaxSamples:      analyzeMaxSamples,
	}, logger)
	if err != nil {
		return err
	}

	result, err := runner.Run(paths)
	if err != nil {
		return err
	}

	showPreview := analyzeDisplayPalette && term.IsTerminal(int(os.Stdout.Fd()))
	if analyzeDisplayPalette && !showPreview {
		logger.Warn("stdout is not a terminal, skipping palette display")
	}

	output, err := formatResult(result, analyzeFormat, showPreview)
	if err != nil {
		return err
	}

	if analyzeOutput != "" {
		if err := os.WriteFile(analyzeOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("results written", "file", analyzeOutput)
	} else {
		fmt.Print(output)
	}

	if analyzePaletteFile != "" {
		palette := paletteForStrip(result)
		if err := preview.WritePNG(palette, analyzePaletteFile, 0, 0); err != nil {
			return err
		}
		logger.Info("palette strip written", "file", analyzePaletteFile)
	}

	return nil
}

// paletteForStrip picks what --palette-file should render: the aggregate
// palette when one was computed, otherwise the first image's palette.
func paletteForStrip(result *batch.Result) *colour.Palette {
	if result.Aggregate != nil {
		return result.Aggregate
	}
	if len(result.Analyses) > 0 {
		return result.Analyses[0].Palette
	}
	return nil
}
