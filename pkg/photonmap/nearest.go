package photonmap

import "container/heap"

type candidate struct {
	distSq float64
	index  int32
}

// farthestFirst is a max-heap on squared distance
type farthestFirst []candidate

func (h farthestFirst) Len() int           { return len(h) }
func (h farthestFirst) Less(i, j int) bool { return h[i].distSq > h[j].distSq }
func (h farthestFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *farthestFirst) Push(x any)        { *h = append(*h, x.(candidate)) }
func (h *farthestFirst) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// nearestSet keeps every candidate until the budget is reached, then only
// the closest budget-many.
type nearestSet struct {
	budget   int
	radiusSq float64
	items    farthestFirst
	heaped   bool
}

func newNearestSet(budget int, radiusSq float64) *nearestSet {
	return &nearestSet{
		budget:   budget,
		radiusSq: radiusSq,
		items:    make(farthestFirst, 0, min(budget, 1024)),
	}
}

// bound is the squared distance a subtree must beat to be worth visiting
func (s *nearestSet) bound() float64 {
	if !s.heaped {
		return s.radiusSq
	}
	return min(s.radiusSq, s.items[0].distSq)
}

func (s *nearestSet) offer(distSq float64, index int32) {
	if distSq > s.radiusSq {
		return
	}
	if len(s.items) < s.budget {
		s.items = append(s.items, candidate{distSq, index})
		if len(s.items) == s.budget {
			heap.Init(&s.items)
			s.heaped = true
		}
		return
	}
	if distSq < s.items[0].distSq {
		s.items[0] = candidate{distSq, index}
		heap.Fix(&s.items, 0)
	}
}
