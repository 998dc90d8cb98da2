package geometry

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   *material.Material

	// Optional per-vertex texture coordinates
	UV0, UV1, UV2 core.Vec2
	HasUV         bool

	normal core.Vec3
	bbox   core.AABB
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	if t.normal.IsZero() {
		t.normal = core.NewVec3(0, 0, 1)
	}
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

// WithUV attaches per-vertex texture coordinates
func (t *Triangle) WithUV(uv0, uv1, uv2 core.Vec2) *Triangle {
	t.UV0, t.UV1, t.UV2 = uv0, uv1, uv2
	t.HasUV = true
	return t
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	// Ray parallel to the triangle, or the triangle is degenerate
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil, false
	}

	tHit := f * edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return nil, false
	}

	rec := &material.HitRecord{
		T:        tHit,
		Point:    ray.At(tHit),
		Material: t.Material,
	}
	if t.HasUV {
		w := 1 - u - v
		rec.UV = core.NewVec2(
			w*t.UV0.X+u*t.UV1.X+v*t.UV2.X,
			w*t.UV0.Y+u*t.UV1.Y+v*t.UV2.Y,
		)
	}
	rec.SetFaceNormal(ray, t.normal)
	return rec, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the geometric normal implied by the vertex winding
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// MinCoord returns the smallest vertex coordinate on axis
func (t *Triangle) MinCoord(axis int) float64 {
	return t.bbox.Min.Axis(axis)
}

// MaxCoord returns the largest vertex coordinate on axis
func (t *Triangle) MaxCoord(axis int) float64 {
	return t.bbox.Max.Axis(axis)
}

func (*Triangle) shape() {}
