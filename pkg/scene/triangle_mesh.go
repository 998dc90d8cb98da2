package scene

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry: a
// box, a pyramid and an icosahedron on a ground plane under a rect light
func NewTriangleMeshScene() *Scene {
	s := New("triangle-mesh")
	s.Background = core.NewVec3(0.1, 0.12, 0.15)
	s.Camera = geometry.NewCamera(lookAt(core.NewVec3(0, 2, 6), core.NewVec3(0, 0.8, 0), 400, 225, 45))

	ground := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.7, 0.7, 0.7)))
	red := s.AddMaterial(&material.Material{
		Color:           core.NewVec3(0.8, 0.2, 0.2),
		Diffuse:         0.6,
		Reflect:         0.3,
		RefractiveIndex: 1,
	})
	blue := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.2, 0.3, 0.8)))
	glass := s.AddMaterial(material.NewGlass(1.5, core.NewVec3(0.05, 0.1, 0.1)))

	s.Add(geometry.NewPlaneThroughPoint(core.Vec3{}, core.NewVec3(0, 1, 0), ground))
	s.Add(
		createBoxMesh(core.NewVec3(-2, 0.5, 0), core.NewVec3(1, 1, 1), math.Pi/6, red),
		createPyramidMesh(core.NewVec3(0, 1, 0), 1.5, 2, math.Pi/4, blue),
		createIcosahedronMesh(core.NewVec3(2, 0.8, 0), 0.8, math.Pi/3, glass),
	)

	s.AddLight(lights.NewRectLight(
		core.NewVec3(0, 5, 2),
		core.NewVec3(0, -1, -0.3),
		core.NewVec3(0, 0, -1),
		core.NewVec3(1, 0.95, 0.9),
		2, 1,
	))
	return s
}

// meshTransform rotates vertices around the vertical axis through center
func meshTransform(center core.Vec3, rotationY float64) *core.Mat4 {
	if rotationY == 0 {
		return nil
	}
	m := core.Translate(center).
		Mul(core.RotateAxis(1, rotationY)).
		Mul(core.Translate(center.Negate()))
	return &m
}

// mustMesh builds a mesh from static vertex data that is known to be valid
func mustMesh(vertices []core.Vec3, faces []int, mat *material.Material, center core.Vec3, rotationY float64) *geometry.TriangleMesh {
	mesh, err := geometry.NewTriangleMesh(vertices, faces, mat, &geometry.TriangleMeshOptions{
		Transform: meshTransform(center, rotationY),
	})
	if err != nil {
		panic(err)
	}
	return mesh
}

// createBoxMesh creates a triangle mesh representing a box
func createBoxMesh(center, size core.Vec3, rotationY float64, mat *material.Material) *geometry.TriangleMesh {
	h := size.Multiply(0.5)
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-h.X, -h.Y, -h.Z)), // 0: left-bottom-back
		center.Add(core.NewVec3(+h.X, -h.Y, -h.Z)), // 1: right-bottom-back
		center.Add(core.NewVec3(+h.X, +h.Y, -h.Z)), // 2: right-top-back
		center.Add(core.NewVec3(-h.X, +h.Y, -h.Z)), // 3: left-top-back
		center.Add(core.NewVec3(-h.X, -h.Y, +h.Z)), // 4: left-bottom-front
		center.Add(core.NewVec3(+h.X, -h.Y, +h.Z)), // 5: right-bottom-front
		center.Add(core.NewVec3(+h.X, +h.Y, +h.Z)), // 6: right-top-front
		center.Add(core.NewVec3(-h.X, +h.Y, +h.Z)), // 7: left-top-front
	}

	faces := []int{
		0, 1, 2, 0, 2, 3, // back
		4, 6, 5, 4, 7, 6, // front
		0, 3, 7, 0, 7, 4, // left
		1, 5, 6, 1, 6, 2, // right
		0, 4, 5, 0, 5, 1, // bottom
		3, 2, 6, 3, 6, 7, // top
	}
	return mustMesh(vertices, faces, mat, center, rotationY)
}

// createPyramidMesh creates a triangle mesh representing a square pyramid
func createPyramidMesh(center core.Vec3, baseSize, height float64, rotationY float64, mat *material.Material) *geometry.TriangleMesh {
	hb, hh := baseSize*0.5, height*0.5
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-hb, -hh, -hb)),
		center.Add(core.NewVec3(+hb, -hh, -hb)),
		center.Add(core.NewVec3(+hb, -hh, +hb)),
		center.Add(core.NewVec3(-hb, -hh, +hb)),
		center.Add(core.NewVec3(0, +hh, 0)), // apex
	}

	faces := []int{
		0, 2, 1, 0, 3, 2,
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
	}
	return mustMesh(vertices, faces, mat, center, rotationY)
}

// createIcosahedronMesh creates a triangle mesh representing an icosahedron
func createIcosahedronMesh(center core.Vec3, radius float64, rotationY float64, mat *material.Material) *geometry.TriangleMesh {
	phi := (1 + math.Sqrt(5)) / 2
	scale := radius / math.Sqrt(1+phi*phi)

	corners := []core.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	vertices := make([]core.Vec3, len(corners))
	for i, c := range corners {
		vertices[i] = center.Add(c.Multiply(scale))
	}

	faces := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return mustMesh(vertices, faces, mat, center, rotationY)
}
