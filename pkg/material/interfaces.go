package material

import (
	"github.com/df07/go-photon-mapper/pkg/core"
)

// HitRecord contains information about a ray-object intersection.
// Intersection routines return a fresh record per candidate.
type HitRecord struct {
	T         float64   // Parameter t along the ray
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit normal, always facing against the ray
	FrontFace bool      // Whether the ray hit the outward side
	UV        core.Vec2 // Surface coordinates in texture space
	Material  *Material
}

// SetFaceNormal orients the normal against the ray and records which side
// was hit
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// SurfaceColor returns the texture color at the hit when the material has a
// texture, otherwise the base color.
func (h *HitRecord) SurfaceColor() core.Vec3 {
	return h.Material.ColorAt(h.UV)
}
