package planck

import (
	"cmp"
	"slices"

	"github.com/setanarut/vec"
)

// SpatialIndex is the broad-phase surface fixtures talk to. Fixtures only
// register, move, and deregister proxies; pair management stays behind the
// interface.
type SpatialIndex interface {
	// RegisterProxy adds a proxy for aabb and returns its ID.
	RegisterProxy(aabb AABB, userData any) ProxyID

	// DeregisterProxy removes a proxy. It is an error to reuse the ID after.
	DeregisterProxy(id ProxyID)

	// MoveProxy updates a proxy's bounds. displacement is a motion hint used
	// to predict where bounds will be needed next.
	MoveProxy(id ProxyID, aabb AABB, displacement vec.Vec2)

	// TouchProxy re-queues a proxy for pair generation without moving it.
	TouchProxy(id ProxyID)
}

type proxyPair struct {
	a, b ProxyID
}

// BroadPhase wraps a DynamicTree with move buffering and pair generation.
// Moved proxies accumulate in a buffer; UpdatePairs queries the tree around
// each buffered proxy and reports the overlapping pairs, deduplicated.
type BroadPhase struct {
	tree       *DynamicTree
	proxyCount int
	moveBuffer []ProxyID
	pairs      []proxyPair
	queryProxy ProxyID
}

var _ SpatialIndex = (*BroadPhase)(nil)

// NewBroadPhase returns an empty broad-phase.
func NewBroadPhase() *BroadPhase {
	return &BroadPhase{
		tree:       NewDynamicTree(),
		queryProxy: NullProxy,
	}
}

func (bp *BroadPhase) RegisterProxy(aabb AABB, userData any) ProxyID {
	id := bp.tree.CreateProxy(aabb, userData)
	bp.proxyCount++
	bp.bufferMove(id)
	return id
}

func (bp *BroadPhase) DeregisterProxy(id ProxyID) {
	bp.unbufferMove(id)
	bp.proxyCount--
	bp.tree.DestroyProxy(id)
}

func (bp *BroadPhase) MoveProxy(id ProxyID, aabb AABB, displacement vec.Vec2) {
	if bp.tree.MoveProxy(id, aabb, displacement) {
		bp.bufferMove(id)
	}
}

func (bp *BroadPhase) TouchProxy(id ProxyID) {
	bp.bufferMove(id)
}

// ProxyCount returns the number of live proxies.
func (bp *BroadPhase) ProxyCount() int {
	return bp.proxyCount
}

// UserData returns the data registered with the proxy.
func (bp *BroadPhase) UserData(id ProxyID) any {
	return bp.tree.UserData(id)
}

// FatAABB returns the fattened bounds stored for the proxy.
func (bp *BroadPhase) FatAABB(id ProxyID) AABB {
	return bp.tree.FatAABB(id)
}

// TestOverlap reports whether the fat bounds of two proxies overlap.
func (bp *BroadPhase) TestOverlap(a, b ProxyID) bool {
	return bp.tree.FatAABB(a).Overlaps(bp.tree.FatAABB(b))
}

// Query calls fn for every proxy whose fat bounds overlap aabb. Return false
// from fn to stop early.
func (bp *BroadPhase) Query(aabb AABB, fn func(ProxyID) bool) {
	bp.tree.Query(aabb, fn)
}

func (bp *BroadPhase) bufferMove(id ProxyID) {
	bp.moveBuffer = append(bp.moveBuffer, id)
}

func (bp *BroadPhase) unbufferMove(id ProxyID) {
	for i := range bp.moveBuffer {
		if bp.moveBuffer[i] == id {
			bp.moveBuffer[i] = NullProxy
		}
	}
}

// UpdatePairs queries the tree around every buffered proxy, then reports each
// distinct overlapping pair once through emit with the user data of both
// proxies. The move buffer is cleared.
func (bp *BroadPhase) UpdatePairs(emit func(a, b any)) {
	bp.pairs = bp.pairs[:0]

	for _, id := range bp.moveBuffer {
		if id == NullProxy {
			continue
		}
		bp.queryProxy = id

		// The fat bounds, not the tight bounds, drive pair generation.
		fat := bp.tree.FatAABB(id)
		bp.tree.Query(fat, bp.queryCallback)
	}
	bp.moveBuffer = bp.moveBuffer[:0]

	slices.SortFunc(bp.pairs, func(p, q proxyPair) int {
		if c := cmp.Compare(p.a, q.a); c != 0 {
			return c
		}
		return cmp.Compare(p.b, q.b)
	})

	for i := 0; i < len(bp.pairs); {
		pair := bp.pairs[i]
		emit(bp.tree.UserData(pair.a), bp.tree.UserData(pair.b))

		// Skip duplicates of the same pair.
		i++
		for i < len(bp.pairs) && bp.pairs[i] == pair {
			i++
		}
	}
}

func (bp *BroadPhase) queryCallback(id ProxyID) bool {
	// A proxy does not pair with itself. Pairs between two buffered proxies
	// would be found twice; storing them in sorted order makes the duplicates
	// identical so the sweep in UpdatePairs can drop them.
	if id == bp.queryProxy {
		return true
	}
	bp.pairs = append(bp.pairs, proxyPair{
		a: min(id, bp.queryProxy),
		b: max(id, bp.queryProxy),
	})
	return true
}
