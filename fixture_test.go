package planck_test

import (
	"math"
	"testing"

	"github.com/d-pollard/planck"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixtureDef(t *testing.T) {
	def := planck.DefaultFixtureDef()
	assert.Equal(t, 0.2, def.Friction)
	assert.Zero(t, def.Restitution)
	assert.Zero(t, def.Density)
	assert.False(t, def.IsSensor)
	assert.Equal(t, planck.Filter{CategoryBits: 0x0001, MaskBits: 0xFFFF}, def.Filter)
}

func TestFilterShouldCollide(t *testing.T) {
	body := planck.NewBody(planck.StaticBody, vec.Vec2{}, 0)
	mk := func(filter planck.Filter) *planck.Fixture {
		def := planck.DefaultFixtureDef()
		def.Shape = planck.NewCircle(1)
		def.Filter = filter
		return body.CreateFixture(def)
	}

	// Same positive group collides regardless of category and mask.
	a := mk(planck.Filter{GroupIndex: 2, CategoryBits: 0x0002, MaskBits: 0x0004})
	b := mk(planck.Filter{GroupIndex: 2, CategoryBits: 0x0008, MaskBits: 0x0010})
	assert.True(t, a.ShouldCollide(b))
	assert.True(t, b.ShouldCollide(a))

	// Same negative group never collides.
	c := mk(planck.Filter{GroupIndex: -3, CategoryBits: 0x0001, MaskBits: 0xFFFF})
	d := mk(planck.Filter{GroupIndex: -3, CategoryBits: 0x0001, MaskBits: 0xFFFF})
	assert.False(t, c.ShouldCollide(d))

	// Different groups fall through to category and mask, both directions.
	e := mk(planck.Filter{CategoryBits: 0x0002, MaskBits: 0x0004})
	f := mk(planck.Filter{CategoryBits: 0x0004, MaskBits: 0x0002})
	assert.True(t, e.ShouldCollide(f))

	g := mk(planck.Filter{CategoryBits: 0x0002, MaskBits: 0x0004})
	h := mk(planck.Filter{CategoryBits: 0x0004, MaskBits: 0x0008})
	assert.False(t, g.ShouldCollide(h))
	assert.False(t, h.ShouldCollide(g))
}

func TestZeroFilterCollidesWithNothing(t *testing.T) {
	body := planck.NewBody(planck.StaticBody, vec.Vec2{}, 0)

	// A def built by hand keeps its filter as given, zero included.
	silent := body.CreateFixture(planck.FixtureDef{Shape: planck.NewCircle(1)})
	assert.Equal(t, planck.Filter{}, silent.FilterData())

	def := planck.DefaultFixtureDef()
	def.Shape = planck.NewCircle(1)
	stock := body.CreateFixture(def)

	assert.False(t, silent.ShouldCollide(stock))
	assert.False(t, stock.ShouldCollide(silent))
	assert.False(t, silent.ShouldCollide(silent))
	assert.True(t, stock.ShouldCollide(stock))
}

func TestFixtureProxyLifecycle(t *testing.T) {
	world := planck.NewWorld(vec.Vec2{})
	body := planck.NewBody(planck.DynamicBody, vec.Vec2{}, 0)

	// Detached bodies carry no proxies.
	f := body.CreateFixtureFromShape(planck.NewCircle(0.5), 1.0)
	assert.Zero(t, f.ProxyCount())

	world.AddBody(body)
	assert.Equal(t, 1, f.ProxyCount())
	assert.Equal(t, 1, world.BroadPhase().ProxyCount())

	// A chain contributes one proxy per segment.
	chain := planck.NewChain([]vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}})
	cf := body.CreateFixtureFromShape(chain, 0)
	assert.Equal(t, 2, cf.ProxyCount())
	assert.Equal(t, 3, world.BroadPhase().ProxyCount())

	world.RemoveBody(body)
	assert.Zero(t, f.ProxyCount())
	assert.Zero(t, cf.ProxyCount())
	assert.Zero(t, world.BroadPhase().ProxyCount())

	// The cycle can repeat.
	world.AddBody(body)
	assert.Equal(t, 1, f.ProxyCount())
	assert.Equal(t, 2, cf.ProxyCount())
}

func TestCreateProxiesTwicePanics(t *testing.T) {
	body := planck.NewBody(planck.StaticBody, vec.Vec2{}, 0)
	f := body.CreateFixtureFromShape(planck.NewCircle(1), 0)

	bp := planck.NewBroadPhase()
	f.CreateProxies(bp, body.Transform())
	require.Panics(t, func() {
		f.CreateProxies(bp, body.Transform())
	})
}

func TestDestroyProxiesIsIdempotent(t *testing.T) {
	body := planck.NewBody(planck.StaticBody, vec.Vec2{}, 0)
	f := body.CreateFixtureFromShape(planck.NewCircle(1), 0)

	bp := planck.NewBroadPhase()
	f.CreateProxies(bp, body.Transform())
	f.DestroyProxies(bp)
	f.DestroyProxies(bp)
	assert.Zero(t, f.ProxyCount())
	assert.Zero(t, bp.ProxyCount())
}

func TestFixtureAABBOutOfRangePanics(t *testing.T) {
	world := planck.NewWorld(vec.Vec2{})
	body := planck.NewBody(planck.StaticBody, vec.Vec2{}, 0)
	f := body.CreateFixtureFromShape(planck.NewCircle(1), 0)
	world.AddBody(body)

	require.NotPanics(t, func() { f.AABB(0) })
	require.Panics(t, func() { f.AABB(1) })
	require.Panics(t, func() { f.AABB(-1) })
}

// recordingIndex captures the calls a fixture makes against its spatial
// index.
type recordingIndex struct {
	next  planck.ProxyID
	moves []recordedMove
}

type recordedMove struct {
	id           planck.ProxyID
	aabb         planck.AABB
	displacement vec.Vec2
}

func (r *recordingIndex) RegisterProxy(aabb planck.AABB, userData any) planck.ProxyID {
	r.next++
	return r.next - 1
}
func (r *recordingIndex) DeregisterProxy(id planck.ProxyID) {}
func (r *recordingIndex) MoveProxy(id planck.ProxyID, aabb planck.AABB, displacement vec.Vec2) {
	r.moves = append(r.moves, recordedMove{id, aabb, displacement})
}
func (r *recordingIndex) TouchProxy(id planck.ProxyID) {}

func TestSynchronizeSweptBounds(t *testing.T) {
	body := planck.NewBody(planck.DynamicBody, vec.Vec2{}, 0)
	f := body.CreateFixtureFromShape(planck.NewCircle(0.5), 1)

	idx := &recordingIndex{}
	f.CreateProxies(idx, planck.TransformIdentity())

	xf1 := planck.TransformIdentity()
	xf2 := planck.NewTransform(vec.Vec2{X: 1, Y: 0}, 0)
	f.Synchronize(idx, xf1, xf2)

	require.Len(t, idx.moves, 1)
	mv := idx.moves[0]

	// The bounds cover the shape under both transforms.
	assert.InDelta(t, -0.5, mv.aabb.Lower.X, 1e-12)
	assert.InDelta(t, 1.5, mv.aabb.Upper.X, 1e-12)
	assert.InDelta(t, -0.5, mv.aabb.Lower.Y, 1e-12)
	assert.InDelta(t, 0.5, mv.aabb.Upper.Y, 1e-12)

	// The hint is the translation between the transforms.
	assert.Equal(t, vec.Vec2{X: 1, Y: 0}, mv.displacement)

	// A degenerate sweep moves nothing but still updates the bounds.
	f.Synchronize(idx, xf2, xf2)
	require.Len(t, idx.moves, 2)
	assert.Equal(t, vec.Vec2{}, idx.moves[1].displacement)
	assert.InDelta(t, 0.5, idx.moves[1].aabb.Lower.X, 1e-12)
}

func TestRefilterDetachedIsNoOp(t *testing.T) {
	body := planck.NewBody(planck.StaticBody, vec.Vec2{}, 0)
	f := body.CreateFixtureFromShape(planck.NewCircle(1), 0)

	// No world, no proxies: refilter has nothing to do but must not panic.
	require.NotPanics(t, func() {
		f.SetFilterData(planck.Filter{CategoryBits: 0x0002, MaskBits: 0x0002})
	})
	assert.Equal(t, uint16(0x0002), f.FilterData().CategoryBits)
}

func TestSetDensity(t *testing.T) {
	body := planck.NewBody(planck.DynamicBody, vec.Vec2{}, 0)
	f := body.CreateFixtureFromShape(planck.NewCircle(1), 1)
	assert.InDelta(t, math.Pi, body.Mass(), 1e-12)

	f.SetDensity(2)
	body.ResetMassData()
	assert.InDelta(t, 2*math.Pi, body.Mass(), 1e-12)

	require.Panics(t, func() { f.SetDensity(-1) })
	require.Panics(t, func() { f.SetDensity(math.NaN()) })
}

func TestFixtureMaterialAccessors(t *testing.T) {
	body := planck.NewBody(planck.StaticBody, vec.Vec2{}, 0)
	def := planck.DefaultFixtureDef()
	def.Shape = planck.NewBox(1, 1)
	def.Friction = 0.7
	def.Restitution = 0.3
	def.UserData = "crate"
	f := body.CreateFixture(def)

	assert.Equal(t, planck.PolygonType, f.Type())
	assert.Equal(t, 0.7, f.Friction())
	assert.Equal(t, 0.3, f.Restitution())
	assert.Equal(t, "crate", f.UserData())
	assert.Same(t, body, f.Body())

	f.SetFriction(0.1)
	f.SetRestitution(0.9)
	f.SetUserData(42)
	assert.Equal(t, 0.1, f.Friction())
	assert.Equal(t, 0.9, f.Restitution())
	assert.Equal(t, 42, f.UserData())
}

func TestFixtureTestPointAndRayCast(t *testing.T) {
	world := planck.NewWorld(vec.Vec2{})
	body := planck.NewBody(planck.StaticBody, vec.Vec2{X: 3, Y: 0}, 0)
	f := body.CreateFixtureFromShape(planck.NewCircle(1), 0)
	world.AddBody(body)

	assert.True(t, f.TestPoint(vec.Vec2{X: 3.5, Y: 0}))
	assert.False(t, f.TestPoint(vec.Vec2{X: 0, Y: 0}))

	var out planck.RayCastOutput
	in := planck.RayCastInput{
		P1:          vec.Vec2{X: 0, Y: 0},
		P2:          vec.Vec2{X: 6, Y: 0},
		MaxFraction: 1,
	}
	require.True(t, f.RayCast(&out, in, 0))
	assert.InDelta(t, 2.0/6.0, out.Fraction, 1e-12)
}

func TestFixtureReset(t *testing.T) {
	world := planck.NewWorld(vec.Vec2{})
	body := planck.NewBody(planck.DynamicBody, vec.Vec2{}, 0)
	shape := planck.NewBox(1, 1)
	f := body.CreateFixtureFromShape(shape, 1)
	world.AddBody(body)

	massBefore := body.Mass()

	// Stretch the box in place, then reset the fixture.
	for i := range shape.Vertices {
		shape.Vertices[i].X *= 2
	}
	f.Reset()

	assert.Equal(t, 1, f.ProxyCount())
	assert.InDelta(t, 2*massBefore, body.Mass(), 1e-9)

	aabb := f.AABB(0)
	assert.Less(t, aabb.Lower.X, -1.9)
	assert.Greater(t, aabb.Upper.X, 1.9)
}
