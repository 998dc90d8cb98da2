package lights

import "github.com/df07/go-photon-mapper/pkg/core"

// PointLight emits uniformly in all directions from a single position
type PointLight struct {
	Position core.Vec3
	color    core.Vec3
}

func NewPointLight(position, color core.Vec3) *PointLight {
	return &PointLight{Position: position, color: color}
}

func (pl *PointLight) Type() LightType  { return LightTypePoint }
func (pl *PointLight) Color() core.Vec3 { return pl.color }
func (pl *PointLight) sealed()          {}

func (pl *PointLight) EmitPhoton(sampler core.Sampler) Emission {
	return Emission{
		Position:  pl.Position,
		Direction: core.SampleOnUnitSphere(sampler.Get2D()),
		Power:     normalizedPower(pl.color),
	}
}

// IsHit is always false: a point has no surface
func (pl *PointLight) IsHit(origin, direction core.Vec3) (float64, bool) {
	return 0, false
}
