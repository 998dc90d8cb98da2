package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
)

func TestSphere_Hit(t *testing.T) {
	mat := material.NewDiffuse(core.Splat(1))
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1, mat)

	tests := []struct {
		name      string
		ray       core.Ray
		wantHit   bool
		wantT     float64
		wantFront bool
	}{
		{"Head on", core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), true, 4, true},
		{"Miss", core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), false, 0, false},
		{"From inside", core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, -1)), true, 1, false},
		{"Behind origin", core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, -1)), false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := sphere.Hit(tt.ray, 1e-6, math.Inf(1))
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(rec.T-tt.wantT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.wantT, rec.T)
			}
			if rec.FrontFace != tt.wantFront {
				t.Errorf("Expected front face %v, got %v", tt.wantFront, rec.FrontFace)
			}
			if rec.Normal.Dot(tt.ray.Direction) >= 0 {
				t.Errorf("Expected normal %v to oppose ray direction", rec.Normal)
			}
			if rec.Material != mat {
				t.Error("Expected material to be attached to hit record")
			}
		})
	}
}

func TestPlane_Hit(t *testing.T) {
	mat := material.NewDiffuse(core.Splat(1))
	floor := NewPlane(core.NewVec3(0, 1, 0), -1, mat)

	rec, ok := floor.Hit(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected ray to hit the floor")
	}
	if math.Abs(rec.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", rec.T)
	}
	if rec.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected up normal, got %v", rec.Normal)
	}

	// From below the normal flips.
	rec, ok = floor.Hit(core.NewRay(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0)), 0, math.Inf(1))
	if !ok || rec.Normal != core.NewVec3(0, -1, 0) {
		t.Errorf("Expected flipped normal from below, got %v", rec)
	}

	if _, ok := floor.Hit(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), 0, math.Inf(1)); ok {
		t.Error("Expected parallel ray to miss")
	}
}

func TestPlane_TextureCoordinatesFollowSurface(t *testing.T) {
	mat := material.NewDiffuse(core.Splat(1))
	floor := NewPlaneThroughPoint(core.Vec3{}, core.NewVec3(0, 1, 0), mat)
	down := core.NewVec3(0, -1, 0)

	a, _ := floor.Hit(core.NewRay(core.NewVec3(0, 1, 0), down), 0, math.Inf(1))
	b, _ := floor.Hit(core.NewRay(core.NewVec3(3, 1, 4), down), 0, math.Inf(1))

	du, dv := b.UV.X-a.UV.X, b.UV.Y-a.UV.Y
	if math.Abs(math.Hypot(du, dv)-5) > 1e-9 {
		t.Errorf("Expected texture distance 5 for world distance 5, got %f", math.Hypot(du, dv))
	}
}

func TestTriangle_Hit(t *testing.T) {
	mat := material.NewDiffuse(core.Splat(1))
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), mat).
		WithUV(core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1))

	rec, ok := tri.Hit(core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)), 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit inside triangle")
	}
	if math.Abs(rec.UV.X-0.25) > 1e-9 || math.Abs(rec.UV.Y-0.25) > 1e-9 {
		t.Errorf("Expected interpolated UV (0.25,0.25), got %v", rec.UV)
	}

	if _, ok := tri.Hit(core.NewRay(core.NewVec3(0.8, 0.8, 1), core.NewVec3(0, 0, -1)), 0, math.Inf(1)); ok {
		t.Error("Expected miss outside the hypotenuse")
	}
	if tri.MinCoord(0) != 0 || tri.MaxCoord(1) != 1 {
		t.Errorf("Unexpected extent %v", tri.BoundingBox())
	}
}

func TestGroup_ReturnsNearest(t *testing.T) {
	near := material.NewDiffuse(core.NewVec3(1, 0, 0))
	far := material.NewDiffuse(core.NewVec3(0, 1, 0))
	group := NewGroup(
		NewSphere(core.NewVec3(0, 0, -10), 1, far),
		NewSphere(core.NewVec3(0, 0, -4), 1, near),
	)

	rec, ok := group.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if rec.Material != near {
		t.Error("Expected the nearer sphere to win regardless of insertion order")
	}
	if math.Abs(rec.T-3) > 1e-9 {
		t.Errorf("Expected t=3, got %f", rec.T)
	}
}

func TestTransform_Hit(t *testing.T) {
	mat := material.NewDiffuse(core.Splat(1))
	unit := NewSphere(core.Vec3{}, 1, mat)
	m := core.Translate(core.NewVec3(0, 0, -5)).Mul(core.Scale(core.NewVec3(2, 2, 2)))

	tf, err := NewTransform(unit, m)
	if err != nil {
		t.Fatalf("Expected invertible transform, got %v", err)
	}

	rec, ok := tf.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit on transformed sphere")
	}
	if math.Abs(rec.T-3) > 1e-9 {
		t.Errorf("Expected t=3, got %f", rec.T)
	}
	if rec.Point.Subtract(core.NewVec3(0, 0, -3)).Length() > 1e-9 {
		t.Errorf("Expected world hit point (0,0,-3), got %v", rec.Point)
	}
	if rec.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,0,1), got %v", rec.Normal)
	}

	if _, err := NewTransform(unit, core.Scale(core.Vec3{})); err == nil {
		t.Error("Expected error for singular transform")
	}
}

func TestTriangleMesh_Hit(t *testing.T) {
	mat := material.NewDiffuse(core.Splat(1))
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	faces := []int{0, 1, 2, 0, 2, 3}

	mesh, err := NewTriangleMesh(vertices, faces, mat, nil)
	if err != nil {
		t.Fatalf("Expected mesh, got %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}

	for _, p := range []core.Vec3{core.NewVec3(0.7, 0.2, 1), core.NewVec3(0.2, 0.7, 1)} {
		if _, ok := mesh.Hit(core.NewRay(p, core.NewVec3(0, 0, -1)), 0, math.Inf(1)); !ok {
			t.Errorf("Expected hit at %v", p)
		}
	}

	if _, err := NewTriangleMesh(vertices, []int{0, 1}, mat, nil); err == nil {
		t.Error("Expected error for incomplete face list")
	}
	if _, err := NewTriangleMesh(vertices, []int{0, 1, 9}, mat, nil); err == nil {
		t.Error("Expected error for out of range index")
	}
}
