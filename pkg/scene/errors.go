package scene

import "errors"

// ErrUnknownScene is returned when a scene ID matches no built-in scene
var ErrUnknownScene = errors.New("scene: unknown scene")
