package lights

import "github.com/df07/go-photon-mapper/pkg/core"

// DirectionalLight emits parallel photons from a nominal origin
type DirectionalLight struct {
	Origin    core.Vec3
	Direction core.Vec3
	color     core.Vec3
}

// NewDirectionalLight creates a light shining along direction. Photons start
// at origin.
func NewDirectionalLight(origin, direction, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{Origin: origin, Direction: direction.Normalize(), color: color}
}

func (dl *DirectionalLight) Type() LightType  { return LightTypeDirectional }
func (dl *DirectionalLight) Color() core.Vec3 { return dl.color }
func (dl *DirectionalLight) sealed()          {}

func (dl *DirectionalLight) EmitPhoton(sampler core.Sampler) Emission {
	return Emission{
		Position:  dl.Origin,
		Direction: dl.Direction,
		Power:     normalizedPower(dl.color),
	}
}

func (dl *DirectionalLight) IsHit(origin, direction core.Vec3) (float64, bool) {
	return 0, false
}
