package material

import (
	"github.com/df07/go-photon-mapper/pkg/core"
)

// DefaultTextureDirection is the reference vector planes use to build their
// texture frame when none is given.
var DefaultTextureDirection = core.NewVec3(1.2, 2.3, 3.4).Normalize()

// Material splits incoming light between diffuse, mirror and refractive
// transport. The coefficients are probabilities scaled by the color power
// for the diffuse and mirror lobes. Materials are shared by pointer and never
// mutated after construction.
type Material struct {
	Name            string
	Color           core.Vec3
	Diffuse         float64
	Reflect         float64
	Refract         float64
	RefractiveIndex float64
	Absorption      core.Vec3 // Beer-Lambert coefficients inside the medium

	Texture          *ImageTexture
	TextureScale     float64
	TextureDirection core.Vec3
}

// NewDiffuse creates a purely diffuse material
func NewDiffuse(color core.Vec3) *Material {
	return &Material{Color: color, Diffuse: 1, RefractiveIndex: 1}
}

// NewMirror creates a perfect mirror tinted by color
func NewMirror(color core.Vec3) *Material {
	return &Material{Color: color, Reflect: 1, RefractiveIndex: 1}
}

// NewGlass creates a clear refractive material with the given index and
// absorption coefficients
func NewGlass(ior float64, absorption core.Vec3) *Material {
	return &Material{
		Color:           core.Splat(1),
		Refract:         1,
		RefractiveIndex: ior,
		Absorption:      absorption,
	}
}

// ColorPower is the mean of the base color channels
func (m *Material) ColorPower() float64 {
	return m.Color.Avg()
}

// ColorAt returns the texture color at uv, or the base color if untextured
func (m *Material) ColorAt(uv core.Vec2) core.Vec3 {
	if m.Texture == nil {
		return m.Color
	}
	scale := m.TextureScale
	if scale == 0 {
		scale = 1
	}
	return m.Texture.Lookup(uv, scale)
}

// TextureFrame returns the two in-plane axes used to project points on a
// plane with the given normal into texture space.
func (m *Material) TextureFrame(normal core.Vec3) (core.Vec3, core.Vec3) {
	ref := m.TextureDirection
	if ref.IsZero() {
		ref = DefaultTextureDirection
	}
	x := normal.Cross(ref)
	if x.LengthSquared() < 1e-12 {
		x, _ = core.OrthonormalBasis(normal)
	}
	x = x.Normalize()
	return x, normal.Cross(x).Normalize()
}
