// Swatch - a dominant colour extractor
//
// Swatch extracts dominant colours from raster images, optionally
// aggregating the palettes of a whole batch into one.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/swatch/internal/cli"

func main() {
	cli.Execute()
}
