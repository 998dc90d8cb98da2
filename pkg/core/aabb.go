package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns an inverted box that any Extend call replaces
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Splat(inf), Max: Splat(-inf)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.Extend(p)
	}
	return box
}

// Extend grows the box to include p
func (b AABB) Extend(p Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns an AABB that bounds both boxes
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// IsEmpty reports whether the box is inverted on any axis
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Size returns the extent along each axis
func (b AABB) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// SurfaceArea returns the surface area of the box. Empty boxes have zero area.
func (b AABB) SurfaceArea() float64 {
	if b.IsEmpty() {
		return 0
	}
	s := b.Size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent
func (b AABB) LongestAxis() int {
	s := b.Size()
	if s.X >= s.Y && s.X >= s.Z {
		return 0
	}
	if s.Y >= s.Z {
		return 1
	}
	return 2
}

// Contains reports whether p lies inside the box grown by eps on every side
func (b AABB) Contains(p Vec3, eps float64) bool {
	return p.X >= b.Min.X-eps && p.X <= b.Max.X+eps &&
		p.Y >= b.Min.Y-eps && p.Y <= b.Max.Y+eps &&
		p.Z >= b.Min.Z-eps && p.Z <= b.Max.Z+eps
}

// Split returns the two halves of the box on either side of the plane
// axis = value.
func (b AABB) Split(axis int, value float64) (AABB, AABB) {
	left, right := b, b
	left.Max = left.Max.WithAxis(axis, value)
	right.Min = right.Min.WithAxis(axis, value)
	return left, right
}

// Hit reports whether the ray crosses the box within [tMin, tMax]
func (b AABB) Hit(ray Ray, tMin, tMax float64) bool {
	_, ok := b.Entry(ray, tMin, tMax)
	return ok
}

// Entry returns the parametric distance at which the ray enters the box
// using the slab method, clipped to [tMin, tMax]. A ray starting inside the
// box enters at tMin.
func (b AABB) Entry(ray Ray, tMin, tMax float64) (float64, bool) {
	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		dir := ray.Direction.Axis(axis)
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)

		if math.Abs(dir) < 1e-12 {
			if origin < lo || origin > hi {
				return 0, false
			}
			continue
		}

		inv := 1 / dir
		t0 := (lo - origin) * inv
		t1 := (hi - origin) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = max(tMin, t0)
		tMax = min(tMax, t1)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
