package scene

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// lookAt builds a camera configuration aimed from center at target
func lookAt(center, target core.Vec3, width, height int, angle float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:    center,
		Direction: target.Subtract(center),
		Up:        core.NewVec3(0, 1, 0),
		Width:     width,
		Height:    height,
		Angle:     angle,
	}
}

// NewDefaultScene creates a single diffuse unit sphere at the origin lit by
// a white point light, seen from the +z axis
func NewDefaultScene() *Scene {
	s := New("default")
	s.Camera = geometry.NewCamera(lookAt(core.NewVec3(0, 0, 5), core.Vec3{}, 320, 240, 40))

	white := s.AddMaterial(material.NewDiffuse(core.Splat(1)))
	s.Add(geometry.NewSphere(core.Vec3{}, 1, white))
	s.AddLight(lights.NewPointLight(core.NewVec3(-3, 3, 4), core.Splat(1)))
	return s
}

// NewMirrorScene creates an unlit mirror sphere in front of a uniform
// background. Every pixel, on or off the sphere, shows the background.
func NewMirrorScene() *Scene {
	s := New("mirror")
	s.Background = core.NewVec3(0.3, 0.5, 0.8)
	s.Camera = geometry.NewCamera(lookAt(core.NewVec3(0, 0, 5), core.Vec3{}, 320, 240, 40))

	mirror := s.AddMaterial(material.NewMirror(core.Splat(1)))
	s.Add(geometry.NewSphere(core.Vec3{}, 1, mirror))
	return s
}
