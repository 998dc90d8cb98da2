package integrator

import (
	"context"
	"math"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
	"github.com/df07/go-photon-mapper/pkg/photonmap"
	"github.com/df07/go-photon-mapper/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Photons = 20000
	cfg.GatherRadius = 0.5
	cfg.GatherCount = 500
	cfg.Workers = 4
	return cfg
}

func emptyMap(t *testing.T) *photonmap.PhotonMap {
	t.Helper()
	pm := photonmap.New(10, nil)
	require.NoError(t, pm.Build())
	return pm
}

func TestRadiance_MirrorSphereShowsBackground(t *testing.T) {
	bg := core.NewVec3(0.2, 0.4, 0.6)
	s := scene.New("mirror")
	s.Background = bg
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewMirror(core.Splat(1))))

	in := NewIntegrator(s, emptyMap(t), testConfig())
	for _, dir := range []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(0.1, 0.05, -1).Normalize(),
		core.NewVec3(-0.15, 0, -1).Normalize(),
		core.NewVec3(1, 0, 0), // misses
	} {
		got := in.RayColor(core.NewRay(core.Vec3{}, dir))
		assert.InDelta(t, bg.X, got.X, 1e-12, "dir %v", dir)
		assert.InDelta(t, bg.Y, got.Y, 1e-12, "dir %v", dir)
		assert.InDelta(t, bg.Z, got.Z, 1e-12, "dir %v", dir)
	}
}

func TestRadiance_DepthLimit(t *testing.T) {
	s := scene.New("depth")
	s.Background = core.Splat(0.5)
	cfg := testConfig()
	in := NewIntegrator(s, emptyMap(t), cfg)

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	assert.Equal(t, core.Vec3{}, in.Radiance(ray, cfg.MaxDepth+1, 1, core.Vec3{}))
	assert.Equal(t, core.Splat(0.5), in.Radiance(ray, 1, 1, core.Vec3{}))
	// Only the camera ray sees the background
	assert.Equal(t, core.Vec3{}, in.Radiance(ray, 2, 1, core.Vec3{}))
}

func TestRadiance_TopLevelClamp(t *testing.T) {
	s := scene.New("bright")
	s.Background = core.NewVec3(3, 0.5, 1.5)
	in := NewIntegrator(s, emptyMap(t), testConfig())

	got := in.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))
	assert.Equal(t, core.NewVec3(1, 0.5, 1), got)
}

func TestRadiance_VisibleLightSurface(t *testing.T) {
	s := scene.New("light")
	s.AddLight(lights.NewAreaLight(core.NewVec3(0, 0, -10), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.Splat(1)))
	in := NewIntegrator(s, emptyMap(t), testConfig())

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	assert.Equal(t, core.Splat(1), in.RayColor(ray))

	// An occluder in front hides it
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewDiffuse(core.Splat(1))))
	assert.Equal(t, core.Vec3{}, in.RayColor(ray))

	// An occluder behind does not
	s.Root = geometry.NewGroup(geometry.NewSphere(core.NewVec3(0, 0, -20), 1, material.NewDiffuse(core.Splat(1))))
	assert.Equal(t, core.Splat(1), in.RayColor(ray))
}

func TestRadiance_GlassAttenuatesInside(t *testing.T) {
	absorb := core.NewVec3(0.1, 0.2, 0.4)
	s := scene.New("glass")
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewGlass(1.5, absorb)))
	s.AddLight(lights.NewAreaLight(core.NewVec3(0, 0, -20), core.NewVec3(5, 0, 0), core.NewVec3(0, 5, 0), core.Splat(1)))

	cfg := testConfig()
	in := NewIntegrator(s, emptyMap(t), cfg)

	// Straight through the center: no bending, the path inside runs from the
	// offset entry point to the far side.
	got := in.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))
	inside := 2 - cfg.SurfaceOffset
	want := absorb.Multiply(-inside).Exp()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
	assert.InDelta(t, want.Z, got.Z, 1e-9)
}

func TestRadiance_TotalInternalReflectionStaysInside(t *testing.T) {
	glass := material.NewGlass(1.5, core.Vec3{})
	s := scene.New("tir")
	s.Add(geometry.NewSphere(core.Vec3{}, 1, glass))
	s.AddLight(lights.NewAreaLight(core.NewVec3(0, 10, 0), core.NewVec3(50, 0, 0), core.NewVec3(0, 0, 50), core.Splat(1)))
	in := NewIntegrator(s, emptyMap(t), testConfig())

	// Leaving along the normal escapes and sees the light
	steep := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	assert.Equal(t, core.Splat(1), in.Radiance(steep, 2, 1.5, core.Vec3{}))

	// Close to tangent the path is beyond the critical angle and is mirrored
	// inside the sphere at every bounce, so it never reaches the light.
	dir := core.NewVec3(1, 0.05, 0).Normalize()
	origin := core.NewVec3(0, -0.95, 0)
	hit, ok := s.HitAny(core.NewRay(origin, dir), hitEpsilon)
	require.True(t, ok)
	require.Less(t, math.Abs(hit.Normal.Dot(dir)), math.Sqrt(1-1/(1.5*1.5)), "incidence beyond the critical angle")

	tr := material.Refract(dir, hit.Normal, 1.5, core.Vec3{}, glass)
	assert.False(t, tr.Refracted)
	assert.Equal(t, 1.5, tr.Index)
	assert.InDelta(t, -dir.Dot(hit.Normal), tr.Direction.Dot(hit.Normal), 1e-9)

	assert.Equal(t, core.Vec3{}, in.Radiance(core.NewRay(origin, dir), 2, 1.5, core.Vec3{}))
}

func TestPhotonTracer_LightsFacingSide(t *testing.T) {
	s := scene.New("lit sphere")
	s.Add(geometry.NewSphere(core.Vec3{}, 1, material.NewDiffuse(core.Splat(1))))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.Splat(1)))

	cfg := testConfig()
	cfg.Photons = 100000
	pm := photonmap.New(cfg.Photons, nil)
	stats, err := NewPhotonTracer(s, pm, cfg, nil).Trace(context.Background())
	require.NoError(t, err)
	require.NoError(t, pm.Build())

	assert.Equal(t, cfg.Photons, stats.Emitted)
	assert.Equal(t, []int{cfg.Photons}, stats.PerLight)
	assert.Equal(t, cfg.Photons, pm.Emitted())
	assert.Greater(t, stats.Stored, 0)
	assert.Zero(t, stats.Dropped)

	in := NewIntegrator(s, pm, cfg)
	top := in.RayColor(core.NewRay(core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0)))
	bottom := in.RayColor(core.NewRay(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0)))
	assert.Greater(t, top.Avg(), 0.0, "side facing the light must be lit")
	assert.Equal(t, core.Vec3{}, bottom, "far side receives no photons")

	// Every stored photon sits on the surface and arrived from outside
	for _, p := range pm.Photons() {
		assert.InDelta(t, 1.0, p.Position.Length(), 1e-6)
		assert.Less(t, p.Direction.Dot(p.Position), 0.0)
	}
}

func TestPhotonTracer_Deterministic(t *testing.T) {
	s := scene.New("box")
	floor := material.NewDiffuse(core.NewVec3(0.8, 0.6, 0.4))
	s.Add(
		geometry.NewPlaneThroughPoint(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewSphere(core.NewVec3(0, 0, 0), 0.5, material.NewGlass(1.5, core.NewVec3(0.1, 0.1, 0.1))),
		geometry.NewSphere(core.NewVec3(1.5, 0, 0), 0.5, material.NewMirror(core.Splat(0.9))),
	)
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 4, 0), core.Splat(1)))
	s.AddLight(lights.NewAreaLight(core.NewVec3(2, 4, 0), core.NewVec3(0.5, 0, 0), core.NewVec3(0, 0, 0.5), core.NewVec3(2, 2, 1)))

	run := func(workers int) []photonmap.Photon {
		cfg := testConfig()
		cfg.Workers = workers
		cfg.Photons = 10000
		pm := photonmap.New(200000, nil)
		_, err := NewPhotonTracer(s, pm, cfg, nil).Trace(context.Background())
		require.NoError(t, err)
		return pm.Photons()
	}

	a, b := run(1), run(8)
	require.NotEmpty(t, a)
	assert.Equal(t, a, b, "the map contents must not depend on scheduling")
}

func TestPhotonTracer_PowerSplitAcrossLights(t *testing.T) {
	s := scene.New("two lights")
	s.Add(geometry.NewPlaneThroughPoint(core.Vec3{}, core.NewVec3(0, 1, 0), material.NewDiffuse(core.Splat(1))))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 1, 0), core.Splat(3)))
	s.AddLight(lights.NewPointLight(core.NewVec3(5, 1, 0), core.Splat(1)))

	cfg := testConfig()
	cfg.Photons = 4000
	pm := photonmap.New(200000, nil)
	stats, err := NewPhotonTracer(s, pm, cfg, nil).Trace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{3000, 1000}, stats.PerLight)

	// Bounced photons leave the plane for good, so every stored photon is a
	// first landing and carries the same power whichever light emitted it.
	require.NotEmpty(t, pm.Photons())
	for _, p := range pm.Photons() {
		assert.InDelta(t, 4.0, p.Power.X, 1e-9)
	}
}

func TestPhotonTracer_Cancelled(t *testing.T) {
	s := scene.New("cancel")
	s.AddLight(lights.NewPointLight(core.Vec3{}, core.Splat(1)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPhotonTracer(s, photonmap.New(10, nil), testConfig(), nil).Trace(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// spherePoints returns well separated unit vectors: the axes, the edge
// midpoints and the corners of a cube.
func spherePoints() []core.Vec3 {
	var points []core.Vec3
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				points = append(points, core.NewVec3(float64(x), float64(y), float64(z)).Normalize())
			}
		}
	}
	return points
}

func TestPhotonTracer_ClosedDiffuseSphereConservesEnergy(t *testing.T) {
	// A point light at the center of a closed sphere with albedo 0.5. Each
	// bounce keeps half the photons at full power, so a walk deposits
	// sum(0.5^k) for k < MaxDepth times the emitted power, and every wall
	// point receives that much over the whole area.
	s := scene.New("closed sphere")
	s.Add(geometry.NewSphere(core.Vec3{}, 1, material.NewDiffuse(core.Splat(0.5))))
	s.AddLight(lights.NewPointLight(core.Vec3{}, core.Splat(1)))

	cfg := testConfig()
	cfg.SurfaceOffset = 1e-4
	cfg.GatherRadius = 0.2
	cfg.GatherCount = 100000

	deposited := 0.0
	for k := 0; k < cfg.MaxDepth; k++ {
		deposited += math.Pow(0.5, float64(k))
	}

	tests := []struct {
		photons   int
		tolerance float64
	}{
		{10000, 0.1},
		{40000, 0.05},
		{160000, 0.03},
	}
	for _, tt := range tests {
		cfg.Photons = tt.photons
		pm := photonmap.New(1<<20, nil)
		stats, err := NewPhotonTracer(s, pm, cfg, nil).Trace(context.Background())
		require.NoError(t, err)
		require.Zero(t, stats.Dropped)
		require.NoError(t, pm.Build())

		var power float64
		for _, p := range pm.Photons() {
			power += p.Power.Avg()
		}
		assert.InEpsilon(t, deposited, power/float64(stats.Emitted), tt.tolerance,
			"stored power with %d photons", tt.photons)

		// The estimate at r on a unit sphere gathers a cap of area pi r^2,
		// so 4 * sum / (N r^2) settles at 4 * pi * deposited / (4 * pi).
		points := spherePoints()
		var irradiance float64
		for _, p := range points {
			irradiance += pm.Irradiance(p, p.Negate(), cfg.GatherRadius*cfg.GatherRadius, cfg.GatherCount).Avg()
		}
		irradiance /= float64(len(points))
		assert.InEpsilon(t, deposited, irradiance, tt.tolerance,
			"mean wall irradiance with %d photons", tt.photons)
	}
}

func TestPhotonTracer_LambertianFalloff(t *testing.T) {
	light := core.NewVec3(0, 5, 0)
	s := scene.New("lit sphere")
	s.Add(geometry.NewSphere(core.Vec3{}, 1, material.NewDiffuse(core.Splat(1))))
	s.AddLight(lights.NewPointLight(light, core.Splat(1)))

	cfg := testConfig()
	cfg.Photons = 1000000
	cfg.GatherRadius = 0.25
	cfg.GatherCount = 100000
	pm := photonmap.New(1<<20, nil)
	_, err := NewPhotonTracer(s, pm, cfg, nil).Trace(context.Background())
	require.NoError(t, err)
	require.NoError(t, pm.Build())

	// Mean irradiance over a ring of points at polar angle theta from the
	// light. The exact value for a point light is cos(incidence) / d^2.
	ring := func(theta float64) (got, want float64) {
		azimuths := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
		if theta == 0 {
			azimuths = azimuths[:1]
		}
		for _, phi := range azimuths {
			p := core.NewVec3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi))
			toLight := light.Subtract(p)
			d := toLight.Length()
			want += toLight.Dot(p) / (d * d * d)
			got += pm.Irradiance(p, p, cfg.GatherRadius*cfg.GatherRadius, cfg.GatherCount).Avg()
		}
		n := float64(len(azimuths))
		return got / n, want / n
	}

	prev := math.Inf(1)
	for _, deg := range []float64{0, 30, 50, 70} {
		got, want := ring(deg * math.Pi / 180)
		assert.Less(t, got, prev, "irradiance must fall off away from the light (theta=%v)", deg)
		assert.Greater(t, got, 0.0, "theta=%v is lit", deg)
		if deg <= 30 {
			assert.InEpsilon(t, want, got, 0.1, "theta=%v", deg)
		}
		prev = got
	}
}
