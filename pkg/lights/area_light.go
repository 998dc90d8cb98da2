package lights

import (
	"github.com/df07/go-photon-mapper/pkg/core"
)

// AreaLight is a parallelogram emitter spanning Position ± DirX ± DirY.
// Photons leave from a uniformly jittered point with a cosine-weighted
// direction around normalize(DirX × DirY).
type AreaLight struct {
	Position   core.Vec3
	DirX, DirY core.Vec3
	color      core.Vec3
	surface    parallelogram
}

// NewAreaLight creates an area light. DirX and DirY are half extents.
func NewAreaLight(position, dirX, dirY, color core.Vec3) *AreaLight {
	return &AreaLight{
		Position: position,
		DirX:     dirX,
		DirY:     dirY,
		color:    color,
		surface:  newParallelogram(position, dirX, dirY),
	}
}

func (al *AreaLight) Type() LightType  { return LightTypeArea }
func (al *AreaLight) Color() core.Vec3 { return al.color }
func (al *AreaLight) sealed()          {}

// Normal is the emitting side of the light
func (al *AreaLight) Normal() core.Vec3 {
	return al.surface.normal
}

func (al *AreaLight) EmitPhoton(sampler core.Sampler) Emission {
	return Emission{
		Position:  al.surface.samplePoint(sampler.Get2D()),
		Direction: core.SampleCosineHemisphere(al.surface.normal, sampler.Get2D()).Normalize(),
		Power:     normalizedPower(al.color),
	}
}

// IsHit tests the ray against the light's surface from either side
func (al *AreaLight) IsHit(origin, direction core.Vec3) (float64, bool) {
	return al.surface.hit(origin, direction)
}
