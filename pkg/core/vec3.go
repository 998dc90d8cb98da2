package core

import "math"

// Epsilon is the shared tolerance for degenerate geometry and surface offsets.
const Epsilon = 1e-7

// Vec3 is a 3D vector. It doubles as an RGB color.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Splat returns a vector with all components set to s
func Splat(s float64) Vec3 {
	return Vec3{s, s, s}
}

// Add returns the sum of two vectors
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Multiply scales the vector
func (v Vec3) Multiply(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// MultiplyVec multiplies component-wise
func (v Vec3) MultiplyVec(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// DivideVec divides component-wise. Zero divisors yield zero components.
func (v Vec3) DivideVec(o Vec3) Vec3 {
	div := func(a, b float64) float64 {
		if b == 0 {
			return 0
		}
		return a / b
	}
	return Vec3{div(v.X, o.X), div(v.Y, o.Y), div(v.Z, o.Z)}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Normalize returns the unit vector, or the zero vector for zero input
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Multiply(1 / l)
}

func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Avg returns the arithmetic mean of the components. For colors this is
// the "color power" used by the photon tracer.
func (v Vec3) Avg() float64 {
	return (v.X + v.Y + v.Z) / 3
}

// MaxComponent returns the largest component
func (v Vec3) MaxComponent() float64 {
	return max(v.X, v.Y, v.Z)
}

// Exp returns e raised to each component
func (v Vec3) Exp() Vec3 {
	return Vec3{math.Exp(v.X), math.Exp(v.Y), math.Exp(v.Z)}
}

// Clamp limits every component to [lo, hi]
func (v Vec3) Clamp(lo, hi float64) Vec3 {
	return Vec3{
		X: max(lo, min(hi, v.X)),
		Y: max(lo, min(hi, v.Y)),
		Z: max(lo, min(hi, v.Z)),
	}
}

// GammaCorrect raises each component to 1/gamma
func (v Vec3) GammaCorrect(gamma float64) Vec3 {
	if gamma == 1 {
		return v
	}
	g := 1 / gamma
	return Vec3{math.Pow(v.X, g), math.Pow(v.Y, g), math.Pow(v.Z, g)}
}

// Axis returns the component for axis 0, 1 or 2
func (v Vec3) Axis(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithAxis returns a copy of v with the given axis component replaced
func (v Vec3) WithAxis(axis int, value float64) Vec3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// Min returns the component-wise minimum
func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{min(v.X, o.X), min(v.Y, o.Y), min(v.Z, o.Z)}
}

// Max returns the component-wise maximum
func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{max(v.X, o.X), max(v.Y, o.Y), max(v.Z, o.Z)}
}

// IsZero reports whether every component is exactly zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// RotateAroundAxis rotates v by angle radians around the unit axis k
// (Rodrigues' rotation formula).
func (v Vec3) RotateAroundAxis(k Vec3, angle float64) Vec3 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return v.Multiply(cos).
		Add(k.Cross(v).Multiply(sin)).
		Add(k.Multiply(k.Dot(v) * (1 - cos)))
}

// Vec2 is a 2D vector, used for sample pairs and texture coordinates
type Vec2 struct {
	X, Y float64
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Ray is a half-line with an origin and a direction. Direction is expected
// to be unit length everywhere a distance is derived from t.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
