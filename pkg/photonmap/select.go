package photonmap

// selectMedian reorders photons so that photons[k] holds the element that
// would be there if the slice were sorted on axis, with no larger element
// before it and no smaller element after it. Equal keys are grouped
// so runs of photons sharing a coordinate do not degrade the selection.
func selectMedian(photons []Photon, k, axis int) {
	lo, hi := 0, len(photons)-1
	for lo < hi {
		pivot := medianOfThree(photons, lo, hi, axis)

		// Three-way partition: [lo,lt) < pivot, [lt,gt] == pivot, (gt,hi] > pivot
		lt, i, gt := lo, lo, hi
		for i <= gt {
			v := photons[i].Position.Axis(axis)
			switch {
			case v < pivot:
				photons[lt], photons[i] = photons[i], photons[lt]
				lt++
				i++
			case v > pivot:
				photons[i], photons[gt] = photons[gt], photons[i]
				gt--
			default:
				i++
			}
		}

		switch {
		case k < lt:
			hi = lt - 1
		case k > gt:
			lo = gt + 1
		default:
			return
		}
	}
}

func medianOfThree(photons []Photon, lo, hi, axis int) float64 {
	a := photons[lo].Position.Axis(axis)
	b := photons[(lo+hi)/2].Position.Axis(axis)
	c := photons[hi].Position.Axis(axis)
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	return max(a, b)
}
