// Package version provides build-time version information for Swatch.
package version

import (
	"fmt"
	"runtime"
)

// Version, Commit and Date are injected at build time via
// -ldflags "-X github.com/jmylchreest/swatch/internal/version.Version=x.y.z" (etc.).
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

// String returns a human-readable version string.
func String() string {
	platform := fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	if Commit != "unknown" && Date != "unknown" {
		commit := Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		return fmt.Sprintf("swatch version %s (commit: %s, built: %s, %s, %s)",
			Version, commit, Date, GoVersion, platform)
	}
	return fmt.Sprintf("swatch version %s (%s, %s)", Version, GoVersion, platform)
}

// Short returns a short version string suitable for CLI output.
func Short() string {
	return Version
}
