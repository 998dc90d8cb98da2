package material

import (
	"github.com/df07/go-photon-mapper/pkg/core"
)

// ImageTexture is a tiling texture addressed in texels
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}
}

// Lookup returns the texel at (int(u*scale), int(v*scale)), wrapping both
// coordinates so the texture repeats in every direction.
func (t *ImageTexture) Lookup(uv core.Vec2, scale float64) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}
	x := wrap(int(uv.X*scale), t.Width)
	y := wrap(int(uv.Y*scale), t.Height)
	return t.Pixels[y*t.Width+x]
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
