package loaders

import "errors"

var (
	// ErrUnknownMaterial is returned when a scene or mesh refers to a
	// material that was never defined
	ErrUnknownMaterial = errors.New("loaders: unknown material")

	// ErrUnsupportedFormat is returned for image extensions with no encoder
	ErrUnsupportedFormat = errors.New("loaders: unsupported image format")
)
