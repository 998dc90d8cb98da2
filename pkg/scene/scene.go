package scene

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// Scene contains all the elements needed for rendering. It is read-only once
// rendering starts.
type Scene struct {
	Name       string
	Camera     *geometry.Camera
	Background core.Vec3
	Lights     []lights.Light
	Materials  []*material.Material
	Root       *geometry.Group
}

// New creates an empty scene
func New(name string) *Scene {
	return &Scene{
		Name: name,
		Root: geometry.NewGroup(),
	}
}

// Add appends shapes to the root group
func (s *Scene) Add(shapes ...geometry.Shape) {
	for _, shape := range shapes {
		s.Root.Add(shape)
	}
}

// AddLight appends a light
func (s *Scene) AddLight(l lights.Light) {
	s.Lights = append(s.Lights, l)
}

// AddMaterial registers a material and returns it for chaining
func (s *Scene) AddMaterial(m *material.Material) *material.Material {
	s.Materials = append(s.Materials, m)
	return m
}

// SetResolution rebuilds the camera for a new image size, keeping the rest
// of its configuration
func (s *Scene) SetResolution(width, height int) {
	if s.Camera == nil {
		return
	}
	config := s.Camera.Config()
	config.Width, config.Height = width, height
	s.Camera = geometry.NewCamera(config)
}

// Hit intersects the ray with the scene geometry
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.Root.Hit(ray, tMin, tMax)
}

// HitAny intersects with no upper distance bound
func (s *Scene) HitAny(ray core.Ray, tMin float64) (*material.HitRecord, bool) {
	return s.Root.Hit(ray, tMin, math.Inf(1))
}

// PrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) PrimitiveCount() int {
	return countPrimitives(s.Root)
}

func countPrimitives(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.TriangleMesh:
		return obj.TriangleCount()
	case *geometry.Group:
		n := 0
		for _, child := range obj.Shapes {
			n += countPrimitives(child)
		}
		return n
	case *geometry.Transform:
		return countPrimitives(obj.Shape)
	default:
		return 1
	}
}

// Meshes returns every triangle mesh reachable from the root
func (s *Scene) Meshes() []*geometry.TriangleMesh {
	var out []*geometry.TriangleMesh
	var walk func(geometry.Shape)
	walk = func(shape geometry.Shape) {
		switch obj := shape.(type) {
		case *geometry.TriangleMesh:
			out = append(out, obj)
		case *geometry.Group:
			for _, child := range obj.Shapes {
				walk(child)
			}
		case *geometry.Transform:
			walk(obj.Shape)
		}
	}
	walk(s.Root)
	return out
}
