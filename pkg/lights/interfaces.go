package lights

import "github.com/df07/go-photon-mapper/pkg/core"

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
	LightTypeArea        LightType = "area"
	LightTypeRect        LightType = "rect"
)

// Light is the closed set of light sources. Each light emits photons for the
// forward pass and answers direct-visibility queries for the backward pass.
type Light interface {
	Type() LightType

	// Color is the emitted color; its mean is the light's power share
	Color() core.Vec3

	// EmitPhoton samples a photon origin and direction. The returned power
	// is the light color normalized by its color power.
	EmitPhoton(sampler core.Sampler) Emission

	// IsHit reports whether the ray from origin along unit direction strikes
	// the light's surface, and at what distance
	IsHit(origin, direction core.Vec3) (float64, bool)

	sealed()
}

// Emission is a sampled photon leaving a light
type Emission struct {
	Position  core.Vec3
	Direction core.Vec3
	Power     core.Vec3
}

// ColorPower is the mean of the light's color channels
func ColorPower(l Light) float64 {
	return l.Color().Avg()
}

// normalizedPower returns color / mean(color), or zero for a black light
func normalizedPower(color core.Vec3) core.Vec3 {
	p := color.Avg()
	if p <= 0 {
		return core.Vec3{}
	}
	return color.Multiply(1 / p)
}
