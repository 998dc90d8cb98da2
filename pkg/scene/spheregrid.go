package scene

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0,1].
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_, m_, s_ = l_*l_*l_, m_*m_*m_, s_*s_*s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_
	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of spheres whose hue varies along x and
// whose material moves from diffuse through mirror to glass along z
func NewSphereGridScene() *Scene {
	s := New("sphere-grid")
	s.Background = core.NewVec3(0.05, 0.05, 0.05)
	s.Camera = geometry.NewCamera(lookAt(core.NewVec3(0, 6, 10), core.NewVec3(0, 0.3, 0), 400, 225, 40))

	ground := s.AddMaterial(material.NewDiffuse(core.Splat(0.5)))
	s.Add(geometry.NewPlaneThroughPoint(core.Vec3{}, core.NewVec3(0, 1, 0), ground))

	const gridSize = 6
	const extent = 6.0
	spacing := extent / float64(gridSize-1)
	radius := spacing * 0.35

	grid := geometry.NewGroup()
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - extent/2
			z := float64(j)*spacing - extent/2
			hue := float64(i) / float64(gridSize-1) * 300
			color := oklchToRGB(0.7, 0.15, hue)

			var mat *material.Material
			switch j % 3 {
			case 0:
				mat = material.NewDiffuse(color)
			case 1:
				mat = &material.Material{Color: color, Diffuse: 0.4, Reflect: 0.6, RefractiveIndex: 1}
			default:
				mat = material.NewGlass(1.5, core.Splat(1).Subtract(color))
			}
			grid.Add(geometry.NewSphere(core.NewVec3(x, radius, z), radius, s.AddMaterial(mat)))
		}
	}
	s.Add(grid)

	s.AddLight(lights.NewAreaLight(
		core.NewVec3(0, 6, 2),
		core.NewVec3(1.5, 0, 0),
		core.NewVec3(0, 0, 1.5),
		core.NewVec3(1, 0.95, 0.9),
	))
	return s
}
