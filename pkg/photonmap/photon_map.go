package photonmap

import (
	"sync"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/log"
)

// MinPhotonsForEstimate is the number of photons a query must find before
// an irradiance estimate is trusted.
const MinPhotonsForEstimate = 8

// PhotonMap stores photons in a flat slice. Build rearranges the slice into
// a balanced k-d tree whose links live inside the photons themselves; after
// that the map is read-only and safe for concurrent queries.
type PhotonMap struct {
	mu       sync.Mutex
	photons  []Photon
	capacity int
	bounds   core.AABB
	root     int32
	built    bool
	emitted  int
	dropped  int
	logger   log.Logger

	// fixed by Build; queries read it without locking
	estimateScale float64
}

// Stats describes the contents and shape of a map
type Stats struct {
	Stored   int
	Dropped  int
	Emitted  int
	Capacity int
	Depth    int
	Bounds   core.AABB
}

// New creates an empty map holding at most capacity photons
func New(capacity int, logger log.Logger) *PhotonMap {
	return &PhotonMap{
		photons:  make([]Photon, 0, min(capacity, 1<<20)),
		capacity: capacity,
		bounds:   core.EmptyAABB(),
		root:     noChild,
		logger:   log.OrDefault(logger, "photonmap"),
	}
}

// Insert stores a photon. It reports false when the photon was dropped
// because the map is full, and returns ErrAlreadyBuilt after Build.
func (pm *PhotonMap) Insert(p Photon) (bool, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.built {
		return false, ErrAlreadyBuilt
	}
	return pm.insertLocked(p), nil
}

// InsertBatch stores photons in order and returns how many were kept
func (pm *PhotonMap) InsertBatch(batch []Photon) (int, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.built {
		return 0, ErrAlreadyBuilt
	}
	stored := 0
	for _, p := range batch {
		if pm.insertLocked(p) {
			stored++
		}
	}
	return stored, nil
}

func (pm *PhotonMap) insertLocked(p Photon) bool {
	if len(pm.photons) >= pm.capacity {
		if pm.dropped == 0 {
			pm.logger.Warningf("photon map capacity of %d reached, dropping further photons", pm.capacity)
		}
		pm.dropped++
		return false
	}
	p.left, p.right, p.axis = noChild, noChild, 0
	pm.photons = append(pm.photons, p)
	pm.bounds = pm.bounds.Extend(p.Position)
	return true
}

// AddEmitted records photons emitted by lights, whether or not they were
// stored. The irradiance estimate is normalized by the count at Build time.
func (pm *PhotonMap) AddEmitted(n int) {
	pm.mu.Lock()
	pm.emitted += n
	pm.mu.Unlock()
}

// Emitted returns the number of photons emitted so far
func (pm *PhotonMap) Emitted() int {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.emitted
}

// Len returns the number of stored photons
func (pm *PhotonMap) Len() int {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return len(pm.photons)
}

// Dropped returns the number of photons rejected for lack of capacity
func (pm *PhotonMap) Dropped() int {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.dropped
}

// Bounds returns the box enclosing every stored photon
func (pm *PhotonMap) Bounds() core.AABB {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.bounds
}

// Photons returns the stored photons. After Build the order is the tree
// layout. The slice is shared with the map and must not be modified.
func (pm *PhotonMap) Photons() []Photon {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.photons
}

// Build arranges the stored photons into a balanced k-d tree. Each node
// splits on the longest axis of the box it covers, with the median photon
// at the node. It may only be called once.
func (pm *PhotonMap) Build() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.built {
		return ErrAlreadyBuilt
	}
	pm.built = true
	if pm.emitted > 0 {
		pm.estimateScale = 4 / float64(pm.emitted)
	}
	pm.root = pm.build(0, len(pm.photons)-1, pm.bounds)
	pm.logger.Debugf("built photon map: %d photons, depth %d", len(pm.photons), pm.depth(pm.root))
	return nil
}

func (pm *PhotonMap) build(l, r int, box core.AABB) int32 {
	if l > r {
		return noChild
	}

	axis := box.LongestAxis()
	mid := (l + r) / 2
	selectMedian(pm.photons[l:r+1], mid-l, axis)

	node := &pm.photons[mid]
	node.axis = int8(axis)
	split := node.Position.Axis(axis)
	leftBox, rightBox := box.Split(axis, split)

	left := pm.build(l, mid-1, leftBox)
	right := pm.build(mid+1, r, rightBox)
	pm.photons[mid].left = left
	pm.photons[mid].right = right
	return int32(mid)
}

// Built reports whether Build has run
func (pm *PhotonMap) Built() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.built
}

// Find returns up to maxPhotons photons within sqrt(radiusSq) of point,
// preferring the closest. The map must be built.
func (pm *PhotonMap) Find(point core.Vec3, radiusSq float64, maxPhotons int) []Photon {
	if !pm.built || maxPhotons <= 0 || pm.root == noChild {
		return nil
	}

	set := newNearestSet(maxPhotons, radiusSq)
	pm.locate(pm.root, point, set)

	found := make([]Photon, len(set.items))
	for i, c := range set.items {
		found[i] = pm.photons[c.index]
	}
	return found
}

func (pm *PhotonMap) locate(idx int32, point core.Vec3, set *nearestSet) {
	p := &pm.photons[idx]
	axis := int(p.axis)
	delta := point.Axis(axis) - p.Position.Axis(axis)

	near, far := p.left, p.right
	if delta > 0 {
		near, far = far, near
	}

	if near != noChild {
		pm.locate(near, point, set)
	}
	set.offer(point.Subtract(p.Position).LengthSquared(), idx)
	if far != noChild && delta*delta < set.bound() {
		pm.locate(far, point, set)
	}
}

// Irradiance estimates the light arriving at a surface point with the
// given normal from the photons within sqrt(radiusSq). Only photons that
// arrived from the side the normal faces contribute. Fewer than
// MinPhotonsForEstimate photons yields zero.
//
// The estimate is 4 * sum(power) / (emitted * radiusSq). The usual 1/pi
// disk-area factor is not applied; scenes are lit with that scale in mind.
func (pm *PhotonMap) Irradiance(point, normal core.Vec3, radiusSq float64, maxPhotons int) core.Vec3 {
	found := pm.Find(point, radiusSq, maxPhotons)
	if len(found) < MinPhotonsForEstimate || pm.estimateScale == 0 || radiusSq <= 0 {
		return core.Vec3{}
	}

	var sum core.Vec3
	for i := range found {
		if normal.Dot(found[i].Direction) < 0 {
			sum = sum.Add(found[i].Power)
		}
	}
	return sum.Multiply(pm.estimateScale / radiusSq)
}

// Stats reports the map's contents
func (pm *PhotonMap) Stats() Stats {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return Stats{
		Stored:   len(pm.photons),
		Dropped:  pm.dropped,
		Emitted:  pm.emitted,
		Capacity: pm.capacity,
		Depth:    pm.depth(pm.root),
		Bounds:   pm.bounds,
	}
}

func (pm *PhotonMap) depth(idx int32) int {
	if !pm.built || idx == noChild {
		return 0
	}
	p := &pm.photons[idx]
	return 1 + max(pm.depth(p.left), pm.depth(p.right))
}
