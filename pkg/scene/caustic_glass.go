package scene

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// NewCausticGlassScene creates a glass sphere hanging above a floor under a
// point light. The sphere focuses photons into a bright caustic on the
// floor below it.
func NewCausticGlassScene() *Scene {
	s := New("caustic-glass")
	s.Background = core.NewVec3(0.05, 0.05, 0.08)
	s.Camera = geometry.NewCamera(lookAt(core.NewVec3(0, 2.5, 6), core.NewVec3(0, 0, 0), 320, 240, 40))

	floor := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.75)))
	wall := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.4, 0.45, 0.6)))
	glass := s.AddMaterial(material.NewGlass(1.5, core.NewVec3(0.02, 0.02, 0.01)))
	tinted := s.AddMaterial(material.NewGlass(1.33, core.NewVec3(0.6, 0.15, 0.05)))

	s.Add(
		geometry.NewPlaneThroughPoint(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewPlaneThroughPoint(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), wall),
		geometry.NewSphere(core.NewVec3(-0.8, 0.2, 0), 0.8, glass),
		geometry.NewSphere(core.NewVec3(1.2, -0.5, 0.5), 0.5, tinted),
	)
	s.AddLight(lights.NewPointLight(core.NewVec3(-0.5, 4, 0.5), core.Splat(1)))
	return s
}
