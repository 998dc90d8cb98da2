package material

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// FreeSpaceIndex is the refractive index outside any medium.
const FreeSpaceIndex = 1.0

// mediumEpsilon decides whether an index counts as free space.
const mediumEpsilon = 1e-7

// InMedium reports whether a path with the given current index is inside a
// refractive medium.
func InMedium(currentIndex float64) bool {
	return currentIndex > FreeSpaceIndex+mediumEpsilon
}

// Reflect mirrors the unit direction d about the unit normal n
func Reflect(d, n core.Vec3) core.Vec3 {
	return d.Subtract(n.Multiply(2 * d.Dot(n))).Normalize()
}

// Transition describes where a path goes after meeting a refractive surface.
type Transition struct {
	Direction  core.Vec3 // new unit direction
	Refracted  bool      // false when total internal reflection occurred
	Index      float64   // refractive index after the transition
	Absorption core.Vec3 // absorption coefficients after the transition
}

// Refract bends d through a surface with normal n (facing against d) using
// Snell's law. The ratio is 1/ior when entering from free space and ior when
// leaving the medium. When no transmitted direction exists the path is
// mirrored and keeps its current medium state. On transmission the index
// toggles between free space and the material's index and the absorption
// coefficients become the material's.
func Refract(d, n core.Vec3, currentIndex float64, currentAbsorption core.Vec3, m *Material) Transition {
	eta := m.RefractiveIndex
	if !InMedium(currentIndex) {
		eta = 1 / m.RefractiveIndex
	}

	cosI := -n.Dot(d)
	cos2t := 1 - eta*eta*(1-cosI*cosI)
	if cos2t < mediumEpsilon {
		return Transition{
			Direction:  Reflect(d, n),
			Index:      currentIndex,
			Absorption: currentAbsorption,
		}
	}

	dir := d.Multiply(eta).Add(n.Multiply(eta*cosI - math.Sqrt(cos2t))).Normalize()
	next := m.RefractiveIndex
	if InMedium(currentIndex) {
		next = FreeSpaceIndex
	}
	return Transition{
		Direction:  dir,
		Refracted:  true,
		Index:      next,
		Absorption: m.Absorption,
	}
}

// Transmittance is the Beer-Lambert attenuation exp(-absorption * distance)
func Transmittance(absorption core.Vec3, distance float64) core.Vec3 {
	return absorption.Multiply(-distance).Exp()
}
