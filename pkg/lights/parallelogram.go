package lights

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// parallelogram is the emitting surface center ± halfX ± halfY shared by the
// area and rectangular lights
type parallelogram struct {
	center       core.Vec3
	halfX, halfY core.Vec3
	normal       core.Vec3

	// dual basis used to recover surface coordinates of a hit point
	dualX, dualY core.Vec3
}

func newParallelogram(center, halfX, halfY core.Vec3) parallelogram {
	cross := halfX.Cross(halfY)
	p := parallelogram{
		center: center,
		halfX:  halfX,
		halfY:  halfY,
		normal: cross.Normalize(),
	}
	if denom := cross.LengthSquared(); denom > 0 {
		p.dualX = halfY.Cross(cross).Multiply(1 / denom)
		p.dualY = cross.Cross(halfX).Multiply(1 / denom)
	}
	return p
}

// samplePoint maps a unit-square sample onto the surface
func (p parallelogram) samplePoint(s core.Vec2) core.Vec3 {
	return p.center.
		Add(p.halfX.Multiply(2*s.X - 1)).
		Add(p.halfY.Multiply(2*s.Y - 1))
}

// hit intersects the ray with the surface from either side
func (p parallelogram) hit(origin, direction core.Vec3) (float64, bool) {
	const eps = 1e-7
	denom := p.normal.Dot(direction)
	if math.Abs(denom) < eps/10 {
		return 0, false
	}

	t := p.normal.Dot(p.center.Subtract(origin)) / denom
	if t <= eps {
		return 0, false
	}

	local := origin.Add(direction.Multiply(t)).Subtract(p.center)
	a, b := local.Dot(p.dualX), local.Dot(p.dualY)
	if math.Abs(a) >= 1 || math.Abs(b) >= 1 {
		return 0, false
	}
	return t, true
}
