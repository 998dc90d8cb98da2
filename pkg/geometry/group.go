package geometry

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// Group is an ordered collection of shapes treated as one
type Group struct {
	Shapes []Shape
}

// NewGroup creates a group from shapes
func NewGroup(shapes ...Shape) *Group {
	return &Group{Shapes: shapes}
}

// Add appends a shape
func (g *Group) Add(s Shape) {
	g.Shapes = append(g.Shapes, s)
}

// Hit returns the nearest hit over all members. Each member is searched
// only up to the closest hit found so far.
func (g *Group) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	for _, s := range g.Shapes {
		if rec, ok := s.Hit(ray, tMin, tMax); ok {
			closest, tMax = rec, rec.T
		}
	}
	return closest, closest != nil
}

func (*Group) shape() {}
