package geometry

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// Transform places a shape in the world with an affine matrix
type Transform struct {
	Shape     Shape
	toObject  core.Mat4
	normalMat core.Mat4
}

// NewTransform wraps shape with the object-to-world matrix m
func NewTransform(shape Shape, m core.Mat4) (*Transform, error) {
	inv, err := m.Inverse()
	if err != nil {
		return nil, err
	}
	return &Transform{
		Shape:     shape,
		toObject:  inv,
		normalMat: inv.Transpose(),
	}, nil
}

// Hit maps the ray into object space. The direction is not renormalized so
// t values are the same in both spaces.
func (tf *Transform) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	local := core.NewRay(
		tf.toObject.TransformPoint(ray.Origin),
		tf.toObject.TransformDirection(ray.Direction),
	)
	rec, ok := tf.Shape.Hit(local, tMin, tMax)
	if !ok {
		return nil, false
	}

	world := *rec
	world.Point = ray.At(rec.T)
	world.Normal = tf.normalMat.TransformDirection(rec.Normal).Normalize()
	return &world, true
}

func (*Transform) shape() {}
