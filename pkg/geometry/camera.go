package geometry

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// CameraConfig describes a perspective camera. Angle is the vertical field
// of view in degrees.
type CameraConfig struct {
	Center    core.Vec3
	Direction core.Vec3
	Up        core.Vec3
	Width     int
	Height    int
	Angle     float64

	// Thin lens; a zero radius or sample count disables depth of field
	LensRadius    float64
	LensSamples   int
	FocusDistance float64
}

// Camera is a pinhole camera with an optional thin lens. Pixel (0,0) is the
// bottom-left corner of the image.
type Camera struct {
	config     CameraConfig
	direction  core.Vec3
	horizontal core.Vec3
	up         core.Vec3
	dist       float64 // distance from the center to the image plane in pixels
}

// NewCamera builds the camera frame from its configuration
func NewCamera(config CameraConfig) *Camera {
	direction := config.Direction.Normalize()
	horizontal := direction.Cross(config.Up).Normalize()
	return &Camera{
		config:     config,
		direction:  direction,
		horizontal: horizontal,
		up:         horizontal.Cross(direction),
		dist:       0.5 * float64(config.Height) / math.Tan(config.Angle*math.Pi/360),
	}
}

func (c *Camera) Width() int           { return c.config.Width }
func (c *Camera) Height() int          { return c.config.Height }
func (c *Camera) Config() CameraConfig { return c.config }

// DepthOfField reports whether rays should be jittered over the lens
func (c *Camera) DepthOfField() bool {
	return c.config.LensRadius > 0 && c.config.LensSamples > 0
}

// GenerateRay returns the pinhole ray through pixel coordinate (x, y)
func (c *Camera) GenerateRay(x, y float64) core.Ray {
	w, h := float64(c.config.Width), float64(c.config.Height)
	dir := c.horizontal.Multiply(x - w/2).
		Add(c.up.Multiply(y - h/2)).
		Add(c.direction.Multiply(c.dist))
	return core.NewRay(c.config.Center, dir.Normalize())
}

// GenerateLensRay returns a ray through pixel (x, y) leaving from a point on
// the lens chosen by sample. All lens rays for a pixel meet at the focus
// distance along the pinhole ray.
func (c *Camera) GenerateLensRay(x, y float64, sample core.Vec2) core.Ray {
	pinhole := c.GenerateRay(x, y)
	if !c.DepthOfField() {
		return pinhole
	}
	focus := pinhole.At(c.config.FocusDistance)
	disk := core.SamplePointInUnitDisk(sample).Multiply(c.config.LensRadius)
	origin := c.config.Center.
		Add(c.horizontal.Multiply(disk.X)).
		Add(c.up.Multiply(disk.Y))
	return core.NewRay(origin, focus.Subtract(origin).Normalize())
}
