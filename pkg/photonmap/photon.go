package photonmap

import "github.com/df07/go-photon-mapper/pkg/core"

const noChild int32 = -1

// Photon is a packet of light power traveling through the scene. Stored
// photons also carry the links of the map's embedded k-d tree.
type Photon struct {
	Position  core.Vec3
	Direction core.Vec3 // unit direction of travel when it arrived
	Power     core.Vec3

	// Medium state while the photon travels inside a refractive object
	Absorption  core.Vec3
	MediumIndex float64

	left, right int32
	axis        int8
}

// NewPhoton creates a photon in free space
func NewPhoton(position, direction, power core.Vec3) Photon {
	return Photon{
		Position:    position,
		Direction:   direction,
		Power:       power,
		MediumIndex: 1,
		left:        noChild,
		right:       noChild,
	}
}

// Axis returns the split axis assigned by Build
func (p *Photon) Axis() int {
	return int(p.axis)
}
