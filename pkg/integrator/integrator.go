package integrator

import (
	"runtime"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
	"github.com/df07/go-photon-mapper/pkg/photonmap"
	"github.com/df07/go-photon-mapper/pkg/scene"
)

// hitEpsilon is the minimum distance accepted for an intersection. Paths are
// also pushed off surfaces by Config.SurfaceOffset before continuing.
const hitEpsilon = 1e-7

// Config holds the transport parameters shared by both passes
type Config struct {
	Photons       int     // photons emitted across all lights
	MaxDepth      int     // bounces per photon walk and recursion depth per camera ray
	SurfaceOffset float64 // distance a continuing path is moved off the surface
	GatherRadius  float64 // photon search radius for irradiance estimates
	GatherCount   int     // maximum photons per irradiance estimate
	Seed          uint64
	Workers       int
}

// DefaultConfig returns the parameters the renderer was tuned with
func DefaultConfig() Config {
	return Config{
		Photons:       3000000,
		MaxDepth:      8,
		SurfaceOffset: 0.1,
		GatherRadius:  1,
		GatherCount:   150000,
		Seed:          1,
		Workers:       runtime.NumCPU(),
	}
}

// Integrator evaluates camera rays against a scene and a built photon map.
// It holds no mutable state and is safe for concurrent use.
type Integrator struct {
	scene  *scene.Scene
	photon *photonmap.PhotonMap
	config Config
}

// NewIntegrator creates an integrator. The photon map must be built before
// any ray is evaluated.
func NewIntegrator(s *scene.Scene, pm *photonmap.PhotonMap, config Config) *Integrator {
	return &Integrator{scene: s, photon: pm, config: config}
}

// RayColor returns the clamped radiance for a camera ray starting in free
// space
func (in *Integrator) RayColor(ray core.Ray) core.Vec3 {
	return in.Radiance(ray, 1, material.FreeSpaceIndex, core.Vec3{})
}

// Radiance evaluates the light arriving along ray. Every branch a material
// allows is followed and weighted; nothing is sampled. mediumIndex and
// absorption describe the medium the ray is travelling through.
//
// Depth 1 is the camera ray: it starts from the background color and its
// result is clamped to at most 1 per channel. Calls deeper than MaxDepth
// contribute nothing.
func (in *Integrator) Radiance(ray core.Ray, depth int, mediumIndex float64, absorption core.Vec3) core.Vec3 {
	if depth > in.config.MaxDepth {
		return core.Vec3{}
	}

	hit, isHit := in.scene.HitAny(ray, hitEpsilon)

	var result core.Vec3
	if depth == 1 {
		result = in.scene.Background
	}

	// A light surface in front of everything else adds unit emission
	if t, _, ok := lights.NearestHit(in.scene.Lights, ray.Origin, ray.Direction); ok && (!isHit || t < hit.T) {
		result = result.Add(core.Splat(1))
	}

	if isHit {
		m := hit.Material
		if m.Diffuse > core.Epsilon {
			result = result.Add(in.diffuse(hit))
		}
		if m.Reflect > core.Epsilon {
			result = result.Add(in.reflect(ray, hit, depth, mediumIndex, absorption))
		}
		if m.Refract > core.Epsilon {
			result = result.Add(in.refract(ray, hit, depth, mediumIndex, absorption))
		}
	}

	if depth == 1 {
		result = core.NewVec3(min(result.X, 1), min(result.Y, 1), min(result.Z, 1))
	}
	return result
}

// diffuse combines ambient background light with the photon map estimate
func (in *Integrator) diffuse(hit *material.HitRecord) core.Vec3 {
	color := hit.SurfaceColor()
	d := hit.Material.Diffuse
	r := in.config.GatherRadius

	ambient := color.MultiplyVec(in.scene.Background).Multiply(d)
	irradiance := in.photon.Irradiance(hit.Point, hit.Normal, r*r, in.config.GatherCount)
	return ambient.Add(color.MultiplyVec(irradiance).Multiply(d))
}

// reflect follows the mirror direction. The medium state is unchanged.
func (in *Integrator) reflect(ray core.Ray, hit *material.HitRecord, depth int, mediumIndex float64, absorption core.Vec3) core.Vec3 {
	m := hit.Material
	dir := material.Reflect(ray.Direction, hit.Normal)
	next := in.Radiance(in.continueFrom(hit.Point, dir), depth+1, mediumIndex, absorption)
	return next.MultiplyVec(m.Color).Multiply(m.Reflect)
}

// refract follows the transmitted direction, or the mirror direction under
// total internal reflection. Light reaching the surface from inside a medium
// is attenuated over the distance travelled: the tint trans/avg(trans) times
// the weight refract*avg(trans), which is refract*trans.
func (in *Integrator) refract(ray core.Ray, hit *material.HitRecord, depth int, mediumIndex float64, absorption core.Vec3) core.Vec3 {
	m := hit.Material
	tr := material.Refract(ray.Direction, hit.Normal, mediumIndex, absorption, m)
	next := in.Radiance(in.continueFrom(hit.Point, tr.Direction), depth+1, tr.Index, tr.Absorption)

	if material.InMedium(mediumIndex) {
		next = next.MultiplyVec(material.Transmittance(absorption, hit.T))
	}
	return next.Multiply(m.Refract)
}

func (in *Integrator) continueFrom(point, dir core.Vec3) core.Ray {
	return core.NewRay(point.Add(dir.Multiply(in.config.SurfaceOffset)), dir)
}
