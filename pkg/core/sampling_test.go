package core

import (
	"math"
	"testing"
)

func TestSampleDiffuseBounce_StaysInHemisphere(t *testing.T) {
	sampler := NewRandomSampler(1, 2)
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(0, 0, -1),
		NewVec3(1.1, 0.2, 0.23).Normalize(), // parallel to the bounce reference
	}

	for _, n := range normals {
		for i := 0; i < 500; i++ {
			d := SampleDiffuseBounce(n, sampler.Get2D())
			if math.Abs(d.Length()-1) > 1e-9 {
				t.Fatalf("Expected unit direction, got length %f", d.Length())
			}
			if d.Dot(n) < -1e-9 {
				t.Fatalf("Expected direction in hemisphere of %v, got %v", n, d)
			}
		}
	}
}

func TestRandomSampler_ReseedIsReproducible(t *testing.T) {
	s := NewRandomSampler(7, 0)
	s.Reseed(42, 3)
	a := []float64{s.Get1D(), s.Get1D(), s.Get1D()}
	s.Reseed(42, 3)
	b := []float64{s.Get1D(), s.Get1D(), s.Get1D()}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Expected identical sequence after reseed, got %v vs %v", a, b)
		}
	}
}
