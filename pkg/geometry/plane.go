package geometry

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// Plane is the infinite surface n·x = d
type Plane struct {
	Normal   core.Vec3
	D        float64
	Material *material.Material

	texX, texY core.Vec3
}

// NewPlane creates a plane from a normal and its offset along that normal
func NewPlane(normal core.Vec3, d float64, mat *material.Material) *Plane {
	p := &Plane{Normal: normal.Normalize(), D: d, Material: mat}
	p.texX, p.texY = mat.TextureFrame(p.Normal)
	return p
}

// NewPlaneThroughPoint creates the plane with the given normal containing point
func NewPlaneThroughPoint(point, normal core.Vec3, mat *material.Material) *Plane {
	n := normal.Normalize()
	return NewPlane(n, n.Dot(point), mat)
}

// Hit rejects rays running parallel to the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denom := p.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-9 {
		return nil, false
	}

	t := (p.D - p.Normal.Dot(ray.Origin)) / denom
	if t < tMin || t > tMax {
		return nil, false
	}

	point := ray.At(t)
	rec := &material.HitRecord{
		T:        t,
		Point:    point,
		Material: p.Material,
		UV:       core.NewVec2(point.Dot(p.texX), point.Dot(p.texY)),
	}
	rec.SetFaceNormal(ray, p.Normal)
	return rec, true
}

func (*Plane) shape() {}
