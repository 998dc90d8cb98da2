package renderer

import "errors"

var (
	// ErrNoCamera is returned when a scene has nothing to render from.
	ErrNoCamera = errors.New("renderer: scene has no camera")

	// ErrInvalidConfig is wrapped by configuration validation failures.
	ErrInvalidConfig = errors.New("renderer: invalid config")
)
