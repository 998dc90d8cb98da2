package geometry

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// Shape interface for objects that can be hit by rays. Hit returns the
// nearest intersection with t in [tMin, tMax]. The set of shapes is closed:
// sphere, plane, triangle, mesh, group and transform.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	shape()
}

// Bounded is implemented by shapes with a finite extent
type Bounded interface {
	BoundingBox() core.AABB
}
