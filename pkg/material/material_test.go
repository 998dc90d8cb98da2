package material

import (
	"math"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflect(t *testing.T) {
	d := core.NewVec3(1, -1, 0).Normalize()
	n := core.NewVec3(0, 1, 0)

	r := Reflect(d, n)
	assert.InDelta(t, 1.0, r.Length(), 1e-12)
	assert.InDelta(t, d.X, r.X, 1e-12)
	assert.InDelta(t, -d.Y, r.Y, 1e-12)
	assert.InDelta(t, -d.Dot(n), r.Dot(n), 1e-12, "reflection law")
}

func TestRefract_EnterAndLeave(t *testing.T) {
	glass := NewGlass(1.5, core.NewVec3(0.1, 0.2, 0.3))
	n := core.NewVec3(0, 1, 0)
	d := core.NewVec3(math.Sin(0.5), -math.Cos(0.5), 0)

	in := Refract(d, n, FreeSpaceIndex, core.Vec3{}, glass)
	require.True(t, in.Refracted)
	assert.Equal(t, 1.5, in.Index)
	assert.Equal(t, glass.Absorption, in.Absorption)

	// Snell: sin(theta_t) = sin(theta_i) / 1.5
	sinT := math.Sqrt(in.Direction.X*in.Direction.X + in.Direction.Z*in.Direction.Z)
	assert.InDelta(t, math.Sin(0.5)/1.5, sinT, 1e-9)
	assert.Less(t, in.Direction.Y, 0.0)

	// Leaving through a parallel face restores the original direction.
	out := Refract(in.Direction, n, in.Index, in.Absorption, glass)
	require.True(t, out.Refracted)
	assert.Equal(t, FreeSpaceIndex, out.Index)
	assert.InDelta(t, 0, out.Direction.Subtract(d).Length(), 1e-9)
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	glass := NewGlass(1.5, core.Vec3{})
	n := core.NewVec3(0, 1, 0)
	// Grazing ray inside the medium: sin(theta) = 0.9 > 1/1.5
	d := core.NewVec3(0.9, -math.Sqrt(1-0.81), 0)
	absorb := core.NewVec3(1, 2, 3)

	tr := Refract(d, n, 1.5, absorb, glass)
	assert.False(t, tr.Refracted)
	assert.Equal(t, 1.5, tr.Index, "medium state is kept on reflection")
	assert.Equal(t, absorb, tr.Absorption)

	// Angle of reflection equals angle of incidence.
	assert.InDelta(t, -d.Dot(n), tr.Direction.Dot(n), 1e-12)
	assert.InDelta(t, d.X, tr.Direction.X, 1e-12)
}

func TestTransmittance(t *testing.T) {
	tr := Transmittance(core.NewVec3(0, 1, 2), 0.5)
	assert.InDelta(t, 1, tr.X, 1e-12)
	assert.InDelta(t, math.Exp(-0.5), tr.Y, 1e-12)
	assert.InDelta(t, math.Exp(-1), tr.Z, 1e-12)
}

func TestImageTexture_LookupWraps(t *testing.T) {
	red, green := core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)
	blue, white := core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1)
	tex := NewImageTexture(2, 2, []core.Vec3{red, green, blue, white})

	tests := []struct {
		name     string
		uv       core.Vec2
		scale    float64
		expected core.Vec3
	}{
		{"Origin", core.NewVec2(0, 0), 1, red},
		{"Next texel in x", core.NewVec2(1.5, 0), 1, green},
		{"Wrap in x", core.NewVec2(2.2, 1), 1, blue},
		{"Negative wraps", core.NewVec2(-1, -1), 1, white},
		{"Scale applies before truncation", core.NewVec2(0.5, 0.5), 2, white},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tex.Lookup(tt.uv, tt.scale))
		})
	}
}

func TestMaterial_ColorAt(t *testing.T) {
	m := NewDiffuse(core.NewVec3(0.2, 0.4, 0.6))
	assert.Equal(t, m.Color, m.ColorAt(core.NewVec2(3, 4)))
	assert.InDelta(t, 0.4, m.ColorPower(), 1e-12)

	m.Texture = NewImageTexture(1, 1, []core.Vec3{core.NewVec3(0.9, 0.9, 0.9)})
	assert.Equal(t, core.NewVec3(0.9, 0.9, 0.9), m.ColorAt(core.NewVec2(3, 4)))
}

func TestMaterial_TextureFrame(t *testing.T) {
	m := NewDiffuse(core.Splat(1))
	for _, n := range []core.Vec3{core.NewVec3(0, 1, 0), DefaultTextureDirection} {
		x, y := m.TextureFrame(n)
		assert.InDelta(t, 0, x.Dot(n), 1e-9)
		assert.InDelta(t, 0, y.Dot(n), 1e-9)
		assert.InDelta(t, 0, x.Dot(y), 1e-9)
		assert.InDelta(t, 1, x.Length(), 1e-9)
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	var rec HitRecord
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	rec.SetFaceNormal(ray, core.NewVec3(0, 0, 1))
	assert.True(t, rec.FrontFace)
	assert.Equal(t, core.NewVec3(0, 0, 1), rec.Normal)

	rec.SetFaceNormal(ray, core.NewVec3(0, 0, -1))
	assert.False(t, rec.FrontFace)
	assert.Equal(t, core.NewVec3(0, 0, 1), rec.Normal)
}
