package lights

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// TotalPower sums the color power of every light
func TotalPower(lights []Light) float64 {
	total := 0.0
	for _, l := range lights {
		total += ColorPower(l)
	}
	return total
}

// PhotonBudget splits a photon count across lights in proportion to their
// color power so that every photon carries the same power. A light with
// positive power always gets at least one photon.
func PhotonBudget(lights []Light, photons int) []int {
	counts := make([]int, len(lights))
	total := TotalPower(lights)
	if total <= 0 || photons <= 0 {
		return counts
	}

	for i, l := range lights {
		p := ColorPower(l)
		if p <= 0 {
			continue
		}
		counts[i] = max(1, int(math.Floor(p*float64(photons)/total)))
	}
	return counts
}

// NearestHit returns the closest light surface struck by the ray
func NearestHit(lights []Light, origin, direction core.Vec3) (float64, int, bool) {
	best, idx := math.Inf(1), -1
	for i, l := range lights {
		if t, ok := l.IsHit(origin, direction); ok && t < best {
			best, idx = t, i
		}
	}
	return best, idx, idx >= 0
}
