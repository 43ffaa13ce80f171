// Package image provides utilities for loading images and discovering them
// on disk.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/swatch/internal/colour"
)

// Loader handles loading images from a source.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
//
// Failures carry the analysis error taxonomy: undecodable content maps to
// colour.ErrUnsupportedFormat, unreadable or corrupt files to
// colour.ErrInvalidImage.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: image path cannot be empty", colour.ErrInvalidImage)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: file not found: %s", colour.ErrInvalidImage, path)
		}
		return nil, fmt.Errorf("%w: failed to stat %s: %v", colour.ErrInvalidImage, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: path is a directory, not a file: %s", colour.ErrInvalidImage, path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", colour.ErrInvalidImage, path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", colour.ErrUnsupportedFormat, path)
		}
		return nil, fmt.Errorf("%w: failed to decode %s (format: %s): %v", colour.ErrInvalidImage, path, format, err)
	}

	return img, nil
}

// SupportedImageExtensions returns the supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages walks a directory recursively and returns all files
// with supported image extensions, in walk order.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory not found: %s", colour.ErrInvalidParameter, dirPath)
		}
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: path is not a directory: %s", colour.ErrInvalidParameter, dirPath)
	}

	var imageFiles []string
	err = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip subtrees we cannot read rather than failing the scan.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsImageFile(d.Name()) {
			imageFiles = append(imageFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("%w: no supported image files found in directory: %s", colour.ErrInvalidParameter, dirPath)
	}

	return imageFiles, nil
}
