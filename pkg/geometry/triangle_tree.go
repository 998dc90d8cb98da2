package geometry

import (
	"sort"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/log"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// splitEpsilon is the tolerance used when classifying triangles against a
// split plane and points against node boxes.
const splitEpsilon = 1e-7

// maxTreeDepth bounds recursion for pathological inputs.
const maxTreeDepth = 64

const leafAxis = -1

type kdNode struct {
	box   core.AABB
	axis  int8
	split float64
	left  int32
	right int32
	tris  []int32 // leaves only
}

func (n *kdNode) isLeaf() bool {
	return n.axis == leafAxis
}

// TriangleTree is a k-d tree over triangles built with the surface area
// heuristic. Triangles that straddle or touch a split plane are referenced
// from both children; a leaf only accepts hits that lie inside its own box
// so the nearest hit is found even though references are duplicated.
type TriangleTree struct {
	triangles []*Triangle
	nodes     []kdNode
	logger    log.Logger
}

// TreeStats summarizes the shape of a built tree
type TreeStats struct {
	Triangles  int
	Nodes      int
	Leaves     int
	MaxDepth   int
	References int
}

// Duplication is the average number of leaves that reference each triangle
func (s TreeStats) Duplication() float64 {
	if s.Triangles == 0 {
		return 0
	}
	return float64(s.References) / float64(s.Triangles)
}

// NewTriangleTree builds a tree over the given triangles. The slice is not
// modified.
func NewTriangleTree(triangles []*Triangle, logger log.Logger) *TriangleTree {
	tree := &TriangleTree{
		triangles: triangles,
		logger:    log.OrDefault(logger, "geometry"),
	}
	if len(triangles) == 0 {
		return tree
	}

	box := core.EmptyAABB()
	refs := make([]int32, len(triangles))
	for i, tri := range triangles {
		refs[i] = int32(i)
		box = box.Union(tri.BoundingBox())
	}

	tree.nodes = append(tree.nodes, kdNode{box: box, axis: leafAxis})
	tree.build(0, refs, 0)

	stats := tree.Stats()
	tree.logger.Debugf("triangle tree: %d triangles, %d nodes, %d leaves, depth %d, %.2f refs/triangle",
		stats.Triangles, stats.Nodes, stats.Leaves, stats.MaxDepth, stats.Duplication())
	return tree
}

// build turns node idx into either a leaf holding refs or an interior node
// with two children.
func (tr *TriangleTree) build(idx int32, refs []int32, depth int) {
	box := tr.nodes[idx].box
	noSplitCost := box.SurfaceArea() * float64(len(refs)-1)

	axis, split, found := tr.findSplit(box, refs, noSplitCost)
	if !found || depth >= maxTreeDepth {
		tr.nodes[idx].tris = refs
		return
	}

	var leftRefs, rightRefs []int32
	for _, ref := range refs {
		tri := tr.triangles[ref]
		if goesLeft(tri, axis, split) {
			leftRefs = append(leftRefs, ref)
		}
		if goesRight(tri, axis, split) {
			rightRefs = append(rightRefs, ref)
		}
	}

	leftBox, rightBox := box.Split(axis, split)
	cost := leftBox.SurfaceArea()*float64(len(leftRefs)) + rightBox.SurfaceArea()*float64(len(rightRefs))
	if cost >= noSplitCost {
		tr.nodes[idx].tris = refs
		return
	}

	left := int32(len(tr.nodes))
	tr.nodes = append(tr.nodes,
		kdNode{box: leftBox, axis: leafAxis},
		kdNode{box: rightBox, axis: leafAxis},
	)
	tr.nodes[idx].axis = int8(axis)
	tr.nodes[idx].split = split
	tr.nodes[idx].left = left
	tr.nodes[idx].right = left + 1

	tr.build(left, leftRefs, depth+1)
	tr.build(left+1, rightRefs, depth+1)
}

// goesLeft and goesRight place a triangle that touches the plane within
// splitEpsilon in both children.
func goesLeft(tri *Triangle, axis int, split float64) bool {
	return tri.MinCoord(axis) <= split+splitEpsilon
}

func goesRight(tri *Triangle, axis int, split float64) bool {
	return tri.MaxCoord(axis) >= split-splitEpsilon
}

// findSplit sweeps every triangle's min and max coordinate on every axis as
// a candidate plane and returns the one with the lowest estimated cost, if
// any beats bestCost.
func (tr *TriangleTree) findSplit(box core.AABB, refs []int32, bestCost float64) (int, float64, bool) {
	n := len(refs)
	byMin := make([]int32, n)
	byMax := make([]int32, n)
	planes := make([]float64, 0, 2*n)
	bestAxis, bestSplit := leafAxis, 0.0

	for axis := 0; axis < 3; axis++ {
		lo, hi := box.Min.Axis(axis), box.Max.Axis(axis)
		if hi-lo <= splitEpsilon {
			continue
		}

		copy(byMin, refs)
		copy(byMax, refs)
		sort.SliceStable(byMin, func(i, j int) bool {
			return tr.triangles[byMin[i]].MinCoord(axis) < tr.triangles[byMin[j]].MinCoord(axis)
		})
		sort.SliceStable(byMax, func(i, j int) bool {
			return tr.triangles[byMax[i]].MaxCoord(axis) < tr.triangles[byMax[j]].MaxCoord(axis)
		})

		consider := func(split float64, leftCount, rightCount int) {
			if split <= lo || split >= hi {
				return
			}
			leftBox, rightBox := box.Split(axis, split)
			cost := leftBox.SurfaceArea()*float64(leftCount) + rightBox.SurfaceArea()*float64(rightCount)
			if cost < bestCost {
				bestCost, bestAxis, bestSplit = cost, axis, split
			}
		}

		planes = planes[:0]
		for _, ref := range refs {
			tri := tr.triangles[ref]
			planes = append(planes, tri.MinCoord(axis), tri.MaxCoord(axis))
		}
		sort.Float64s(planes)

		// Counts match goesLeft and goesRight for every candidate.
		left, notRight := 0, 0
		for _, split := range planes {
			for left < n && tr.triangles[byMin[left]].MinCoord(axis) <= split+splitEpsilon {
				left++
			}
			for notRight < n && tr.triangles[byMax[notRight]].MaxCoord(axis) < split-splitEpsilon {
				notRight++
			}
			consider(split, left, n-notRight)
		}
	}

	return bestAxis, bestSplit, bestAxis != leafAxis
}

// Hit returns the nearest triangle hit with t in [tMin, tMax]
func (tr *TriangleTree) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if len(tr.nodes) == 0 {
		return nil, false
	}
	return tr.search(0, ray, tMin, tMax)
}

func (tr *TriangleTree) search(idx int32, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	node := &tr.nodes[idx]
	if !node.box.Contains(ray.Origin, splitEpsilon) && !node.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if node.isLeaf() {
		var closest *material.HitRecord
		for _, ref := range node.tris {
			rec, ok := tr.triangles[ref].Hit(ray, tMin, tMax)
			if !ok || !node.box.Contains(rec.Point, splitEpsilon) {
				continue
			}
			closest, tMax = rec, rec.T
		}
		return closest, closest != nil
	}

	first, second := node.left, node.right
	switch {
	case tr.nodes[first].box.Contains(ray.Origin, splitEpsilon):
	case tr.nodes[second].box.Contains(ray.Origin, splitEpsilon):
		first, second = second, first
	default:
		tFirst, okFirst := tr.nodes[first].box.Entry(ray, tMin, tMax)
		tSecond, okSecond := tr.nodes[second].box.Entry(ray, tMin, tMax)
		switch {
		case !okFirst && !okSecond:
			return nil, false
		case !okSecond:
			return tr.search(first, ray, tMin, tMax)
		case !okFirst:
			return tr.search(second, ray, tMin, tMax)
		case tSecond < tFirst:
			first, second = second, first
		}
	}

	if rec, ok := tr.search(first, ray, tMin, tMax); ok {
		return rec, true
	}
	return tr.search(second, ray, tMin, tMax)
}

// BruteForceHit tests every triangle. It gives the reference answer for
// the tree.
func (tr *TriangleTree) BruteForceHit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	for _, tri := range tr.triangles {
		if rec, ok := tri.Hit(ray, tMin, tMax); ok {
			closest, tMax = rec, rec.T
		}
	}
	return closest, closest != nil
}

// BoundingBox returns the root box
func (tr *TriangleTree) BoundingBox() core.AABB {
	if len(tr.nodes) == 0 {
		return core.EmptyAABB()
	}
	return tr.nodes[0].box
}

// Stats walks the tree and reports its shape
func (tr *TriangleTree) Stats() TreeStats {
	stats := TreeStats{Triangles: len(tr.triangles), Nodes: len(tr.nodes)}
	if len(tr.nodes) == 0 {
		return stats
	}

	var walk func(idx int32, depth int)
	walk = func(idx int32, depth int) {
		node := &tr.nodes[idx]
		stats.MaxDepth = max(stats.MaxDepth, depth)
		if node.isLeaf() {
			stats.Leaves++
			stats.References += len(node.tris)
			return
		}
		walk(node.left, depth+1)
		walk(node.right, depth+1)
	}
	walk(0, 0)
	return stats
}
