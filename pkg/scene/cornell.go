package scene

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// NewCornellScene creates a closed box with colored side walls, a ceiling
// area light, a mirror sphere and a glass sphere. The camera sits inside
// the box near the front wall.
func NewCornellScene() *Scene {
	s := New("cornell")
	s.Camera = geometry.NewCamera(lookAt(core.NewVec3(0, 0, 3.4), core.Vec3{}, 300, 300, 50))

	white := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73)))
	red := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05)))
	green := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15)))
	mirror := s.AddMaterial(material.NewMirror(core.Splat(0.9)))
	glass := s.AddMaterial(material.NewGlass(1.5, core.NewVec3(0.1, 0.05, 0.02)))

	// The box spans [-1,1] on x and y, [-1,3.5] on z; all normals face in
	walls := geometry.NewGroup(
		geometry.NewPlaneThroughPoint(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), white),   // floor
		geometry.NewPlaneThroughPoint(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), white),   // ceiling
		geometry.NewPlaneThroughPoint(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), white),   // back
		geometry.NewPlaneThroughPoint(core.NewVec3(0, 0, 3.5), core.NewVec3(0, 0, -1), white), // front
		geometry.NewPlaneThroughPoint(core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0), red),     // left
		geometry.NewPlaneThroughPoint(core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0), green),   // right
	)
	s.Add(walls)
	s.Add(
		geometry.NewSphere(core.NewVec3(-0.45, -0.6, -0.3), 0.4, mirror),
		geometry.NewSphere(core.NewVec3(0.45, -0.6, 0.4), 0.4, glass),
	)

	s.AddLight(lights.NewAreaLight(
		core.NewVec3(0, 0.99, 0.2),
		core.NewVec3(0.25, 0, 0),
		core.NewVec3(0, 0, 0.25),
		core.NewVec3(1, 0.95, 0.85),
	))
	return s
}
