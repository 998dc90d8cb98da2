package core

import (
	"math"
	"math/rand/v2"
)

// Sampler provides random numbers in [0, 1) to sampling routines.
// Implementations are not safe for concurrent use; give each worker its own.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler draws from a PCG generator
type RandomSampler struct {
	pcg    *rand.PCG
	random *rand.Rand
}

// NewRandomSampler creates a sampler seeded with (seed, stream)
func NewRandomSampler(seed, stream uint64) *RandomSampler {
	pcg := rand.NewPCG(seed, stream)
	return &RandomSampler{pcg: pcg, random: rand.New(pcg)}
}

// Reseed restarts the sequence at (seed, stream). Used so every photon walk
// is reproducible regardless of which worker runs it.
func (r *RandomSampler) Reseed(seed, stream uint64) {
	r.pcg.Seed(seed, stream)
}

func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// photonBounceAxis is the fixed reference vector used to build a tangent for
// diffuse photon bounces.
var photonBounceAxis = NewVec3(1.1, 0.2, 0.23)

// SampleDiffuseBounce returns a cosine-distributed direction around the unit
// normal n. The polar angle is acos(sqrt(u1)) and the azimuth 2*pi*u2; n is
// tilted about a tangent axis by the polar angle and then spun about itself.
func SampleDiffuseBounce(n Vec3, sample Vec2) Vec3 {
	theta := math.Acos(math.Sqrt(sample.X))
	phi := 2 * math.Pi * sample.Y

	axis := n.Cross(photonBounceAxis)
	if axis.LengthSquared() < 1e-12 {
		axis = n.Cross(NewVec3(0, 1, 0))
	}
	axis = axis.Normalize()

	return n.RotateAroundAxis(axis, theta).RotateAroundAxis(n, phi).Normalize()
}

// SampleCosineHemisphere generates a cosine-weighted direction around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	phi := 2 * math.Pi * sample.X
	r := math.Sqrt(sample.Y)
	x, y := r*math.Cos(phi), r*math.Sin(phi)
	z := math.Sqrt(max(0, 1-sample.Y))

	tangent, bitangent := OrthonormalBasis(normal)
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(z))
}

// OrthonormalBasis returns two unit vectors perpendicular to n and each other
func OrthonormalBasis(n Vec3) (Vec3, Vec3) {
	helper := NewVec3(1, 0, 0)
	if math.Abs(n.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	}
	tangent := helper.Cross(n).Normalize()
	return tangent, n.Cross(tangent)
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1 - 2*sample.X
	r := math.Sqrt(max(0, 1-z*z))
	phi := 2 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SamplePointInUnitDisk maps a sample to the unit disk with the concentric
// mapping. The result lies in the XY plane.
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	ox, oy := 2*sample.X-1, 2*sample.Y-1
	if ox == 0 && oy == 0 {
		return Vec3{}
	}

	var r, theta float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = math.Pi / 4 * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - math.Pi/4*(ox/oy)
	}
	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}
