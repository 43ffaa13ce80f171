package colour

import "errors"

// Sentinel errors for the analysis pipeline. Wrapped errors carry context;
// callers classify with errors.Is.
var (
	// ErrInvalidImage indicates an image that cannot be analysed: a nil or
	// zero-dimension image, an unreadable file, or undecodable content.
	ErrInvalidImage = errors.New("invalid image")

	// ErrUnsupportedFormat indicates a file whose content is not one of the
	// registered image formats.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrInvalidParameter indicates a caller-supplied parameter that fails
	// validation, such as a colour count below 1. Parameter errors are fatal
	// to a run; per-image errors are not.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientSamples indicates more clusters were requested than
	// distinct colours exist among the samples. Extract clamps instead;
	// Cluster and ClusterWeighted report it.
	ErrInsufficientSamples = errors.New("insufficient samples for clustering")
)
