package geometry

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

// Hit tests if a ray intersects with the sphere. Rays starting inside the
// sphere hit the far wall with the normal pointing inwards.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	outward := point.Subtract(s.Center).Multiply(1 / s.Radius)
	rec := &material.HitRecord{
		T:        root,
		Point:    point,
		Material: s.Material,
		UV:       s.surfaceCoordinates(outward),
	}
	rec.SetFaceNormal(ray, outward)
	return rec, true
}

// surfaceCoordinates returns longitude and latitude arc lengths so textures
// keep a constant texel size in world units.
func (s *Sphere) surfaceCoordinates(n core.Vec3) core.Vec2 {
	phi := math.Atan2(n.Z, n.X) + math.Pi
	theta := math.Acos(max(-1, min(1, n.Y)))
	return core.NewVec2(phi*s.Radius, theta*s.Radius)
}

// BoundingBox returns the box enclosing the sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := core.Splat(s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

func (*Sphere) shape() {}
