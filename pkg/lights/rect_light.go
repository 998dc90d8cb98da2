package lights

import (
	"github.com/df07/go-photon-mapper/pkg/core"
)

// RectLight is a rectangular emitter facing Direction. Every photon leaves
// along Direction from a jittered point on the rectangle, like a window
// letting in parallel light.
type RectLight struct {
	Position  core.Vec3
	Direction core.Vec3
	color     core.Vec3
	surface   parallelogram
}

// NewRectLight builds the rectangle frame from up and direction. dx and dy
// are the half extents along the derived horizontal and vertical axes.
func NewRectLight(position, direction, up, color core.Vec3, dx, dy float64) *RectLight {
	dir := direction.Normalize()
	x := up.Cross(dir).Normalize()
	y := x.Cross(dir).Normalize()
	return &RectLight{
		Position:  position,
		Direction: dir,
		color:     color,
		surface:   newParallelogram(position, x.Multiply(dx), y.Multiply(dy)),
	}
}

func (rl *RectLight) Type() LightType  { return LightTypeRect }
func (rl *RectLight) Color() core.Vec3 { return rl.color }
func (rl *RectLight) sealed()          {}

func (rl *RectLight) EmitPhoton(sampler core.Sampler) Emission {
	return Emission{
		Position:  rl.surface.samplePoint(sampler.Get2D()),
		Direction: rl.Direction,
		Power:     normalizedPower(rl.color),
	}
}

func (rl *RectLight) IsHit(origin, direction core.Vec3) (float64, bool) {
	return rl.surface.hit(origin, direction)
}
