// Package cli provides the command-line interface for Swatch.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/version"
)

var (
	// Global log level flag
	globalLogLevel string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "swatch",
		Short: "A dominant colour extractor for images",
		Long: `Swatch extracts the dominant colours from one or more raster images,
optionally aggregating the results across a batch and rendering a palette
preview.

Point it at image files or a directory and it reports each image's palette
as weighted colours, ordered by how much of the image they cover.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "debug", "log level (debug, info, warning, error)")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// newLogger builds the process logger from the --log-level flag.
// Diagnostics go to stderr so formatted results on stdout stay clean.
func newLogger() (hclog.Logger, error) {
	name := globalLogLevel
	// Accept the long spelling used by other tools.
	if name == "warning" {
		name = "warn"
	}
	level := hclog.LevelFromString(name)
	if level == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log level: %s (valid: debug, info, warning, error)", globalLogLevel)
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Level:  level,
		Output: os.Stderr,
	}), nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
