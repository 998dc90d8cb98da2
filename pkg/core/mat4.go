package core

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned when a matrix has no inverse.
var ErrSingularMatrix = errors.New("core: singular matrix")

// Mat4 is a row-major 4x4 affine transform
type Mat4 [4][4]float64

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Translate(t Vec3) Mat4 {
	m := Identity()
	m[0][3], m[1][3], m[2][3] = t.X, t.Y, t.Z
	return m
}

func Scale(s Vec3) Mat4 {
	m := Identity()
	m[0][0], m[1][1], m[2][2] = s.X, s.Y, s.Z
	return m
}

// RotateAxis returns a rotation of angle radians around axis (0=X, 1=Y, 2=Z)
func RotateAxis(axis int, angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	switch axis {
	case 0:
		m[1][1], m[1][2], m[2][1], m[2][2] = c, -s, s, c
	case 1:
		m[0][0], m[0][2], m[2][0], m[2][2] = c, s, -s, c
	default:
		m[0][0], m[0][1], m[1][0], m[1][1] = c, -s, s, c
	}
	return m
}

// Mul returns m * o
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}

// TransformPoint applies the full affine transform to p
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// TransformDirection applies only the linear part of the transform
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*d.X + m[0][1]*d.Y + m[0][2]*d.Z,
		Y: m[1][0]*d.X + m[1][1]*d.Y + m[1][2]*d.Z,
		Z: m[2][0]*d.X + m[2][1]*d.Y + m[2][2]*d.Z,
	}
}

func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Inverse computes the inverse with Gauss-Jordan elimination and partial
// pivoting.
func (m Mat4) Inverse() (Mat4, error) {
	a := m
	inv := Identity()

	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return Mat4{}, ErrSingularMatrix
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		scale := 1 / a[col][col]
		for j := 0; j < 4; j++ {
			a[col][j] *= scale
			inv[col][j] *= scale
		}

		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			f := a[row][col]
			for j := 0; j < 4; j++ {
				a[row][j] -= f * a[col][j]
				inv[row][j] -= f * inv[col][j]
			}
		}
	}
	return inv, nil
}
