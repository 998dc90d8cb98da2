package scene

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// NewCheckerboardTexture creates a size×size texture of alternating cells
func NewCheckerboardTexture(size, cell int, a, b core.Vec3) *material.ImageTexture {
	pixels := make([]core.Vec3, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				pixels[y*size+x] = a
			} else {
				pixels[y*size+x] = b
			}
		}
	}
	return material.NewImageTexture(size, size, pixels)
}

// NewGradientTexture creates a texture fading from top to bottom
func NewGradientTexture(width, height int, top, bottom core.Vec3) *material.ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		t := float64(y) / float64(max(1, height-1))
		c := top.Multiply(1 - t).Add(bottom.Multiply(t))
		for x := 0; x < width; x++ {
			pixels[y*width+x] = c
		}
	}
	return material.NewImageTexture(width, height, pixels)
}

// NewTextureTestScene creates a textured floor and spheres under an area
// light
func NewTextureTestScene() *Scene {
	s := New("textures")
	s.Background = core.NewVec3(0.2, 0.25, 0.35)
	s.Camera = geometry.NewCamera(lookAt(core.NewVec3(0, 2, 7), core.NewVec3(0, 0.6, 0), 400, 225, 45))

	checker := NewCheckerboardTexture(64, 8, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.8))
	gradient := NewGradientTexture(16, 64, core.NewVec3(1, 0.2, 0.2), core.NewVec3(0.2, 1, 0.2))

	floor := s.AddMaterial(&material.Material{
		Color:            core.Splat(1),
		Diffuse:          1,
		RefractiveIndex:  1,
		Texture:          checker,
		TextureScale:     16,
		TextureDirection: core.NewVec3(0, 0, 1),
	})
	striped := s.AddMaterial(&material.Material{
		Color:           core.Splat(1),
		Diffuse:         1,
		RefractiveIndex: 1,
		Texture:         gradient,
		TextureScale:    20,
	})
	shiny := s.AddMaterial(&material.Material{
		Color:           core.Splat(1),
		Diffuse:         0.7,
		Reflect:         0.3,
		RefractiveIndex: 1,
		Texture:         checker,
		TextureScale:    24,
	})

	s.Add(
		geometry.NewPlaneThroughPoint(core.Vec3{}, core.NewVec3(0, 1, 0), floor),
		geometry.NewSphere(core.NewVec3(-1.3, 1, 0), 1, striped),
		geometry.NewSphere(core.NewVec3(1.3, 1, 0), 1, shiny),
	)
	s.AddLight(lights.NewAreaLight(
		core.NewVec3(1, 5, 3),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
		core.Splat(1),
	))
	return s
}
