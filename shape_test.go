package planck_test

import (
	"math"
	"testing"

	"github.com/d-pollard/planck"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleAABB(t *testing.T) {
	c := planck.NewCircleAt(vec.Vec2{X: 1, Y: 2}, 0.5)
	xf := planck.NewTransform(vec.Vec2{X: 10, Y: 0}, 0)

	aabb := c.ComputeAABB(xf, 0)
	assert.InDelta(t, 10.5, aabb.Lower.X, 1e-12)
	assert.InDelta(t, 1.5, aabb.Lower.Y, 1e-12)
	assert.InDelta(t, 11.5, aabb.Upper.X, 1e-12)
	assert.InDelta(t, 2.5, aabb.Upper.Y, 1e-12)
}

func TestCircleTestPoint(t *testing.T) {
	c := planck.NewCircle(1.0)
	xf := planck.NewTransform(vec.Vec2{X: 5, Y: 5}, 0)

	assert.True(t, c.TestPoint(xf, vec.Vec2{X: 5.5, Y: 5}))
	assert.False(t, c.TestPoint(xf, vec.Vec2{X: 6.5, Y: 5}))
}

func TestCircleRayCast(t *testing.T) {
	c := planck.NewCircle(1.0)
	xf := planck.TransformIdentity()

	var out planck.RayCastOutput
	in := planck.RayCastInput{
		P1:          vec.Vec2{X: -3, Y: 0},
		P2:          vec.Vec2{X: 3, Y: 0},
		MaxFraction: 1,
	}
	require.True(t, c.RayCast(&out, in, xf, 0))
	assert.InDelta(t, 1.0/3.0, out.Fraction, 1e-12)
	assert.InDelta(t, -1.0, out.Normal.X, 1e-12)
	assert.InDelta(t, 0.0, out.Normal.Y, 1e-12)

	// Ray pointing away misses.
	in.P2 = vec.Vec2{X: -9, Y: 0}
	assert.False(t, c.RayCast(&out, in, xf, 0))
}

func TestCircleMass(t *testing.T) {
	c := planck.NewCircle(2.0)
	md := c.ComputeMass(1.5)
	assert.InDelta(t, 1.5*math.Pi*4.0, md.Mass, 1e-12)
	assert.Equal(t, vec.Vec2{}, md.Center)
}

func TestEdgeHasNoInterior(t *testing.T) {
	e := planck.NewEdge(vec.Vec2{X: -1, Y: 0}, vec.Vec2{X: 1, Y: 0})
	assert.False(t, e.TestPoint(planck.TransformIdentity(), vec.Vec2{}))

	md := e.ComputeMass(10.0)
	assert.Zero(t, md.Mass)
	assert.Equal(t, vec.Vec2{X: 0, Y: 0}, md.Center)
}

func TestEdgeAABB(t *testing.T) {
	e := planck.NewEdge(vec.Vec2{X: -1, Y: 0}, vec.Vec2{X: 1, Y: 2})
	aabb := e.ComputeAABB(planck.TransformIdentity(), 0)

	// The skin radius pads every side.
	assert.Less(t, aabb.Lower.X, -1.0)
	assert.Less(t, aabb.Lower.Y, 0.0)
	assert.Greater(t, aabb.Upper.X, 1.0)
	assert.Greater(t, aabb.Upper.Y, 2.0)
	assert.True(t, aabb.Valid())
}

func TestEdgeRayCast(t *testing.T) {
	e := planck.NewEdge(vec.Vec2{X: 0, Y: -1}, vec.Vec2{X: 0, Y: 1})

	var out planck.RayCastOutput
	in := planck.RayCastInput{
		P1:          vec.Vec2{X: -1, Y: 0},
		P2:          vec.Vec2{X: 1, Y: 0},
		MaxFraction: 1,
	}
	require.True(t, e.RayCast(&out, in, planck.TransformIdentity(), 0))
	assert.InDelta(t, 0.5, out.Fraction, 1e-12)
	assert.InDelta(t, -1.0, out.Normal.X, 1e-12)

	// Parallel ray misses.
	in.P1 = vec.Vec2{X: -1, Y: 2}
	in.P2 = vec.Vec2{X: 1, Y: 2}
	assert.False(t, e.RayCast(&out, in, planck.TransformIdentity(), 0))
}

func TestBoxPolygon(t *testing.T) {
	p := planck.NewBox(1, 1)
	require.Len(t, p.Vertices, 4)

	xf := planck.TransformIdentity()
	assert.True(t, p.TestPoint(xf, vec.Vec2{X: 0.5, Y: 0.5}))
	assert.False(t, p.TestPoint(xf, vec.Vec2{X: 1.5, Y: 0}))

	md := p.ComputeMass(1.0)
	assert.InDelta(t, 4.0, md.Mass, 1e-12)
	assert.InDelta(t, 0.0, md.Center.X, 1e-12)
	assert.InDelta(t, 0.0, md.Center.Y, 1e-12)
	assert.InDelta(t, 8.0/3.0, md.I, 1e-9)
}

func TestPolygonHullDropsInteriorPoints(t *testing.T) {
	p := planck.NewPolygon([]vec.Vec2{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 0, Y: 0}, // interior
		{X: 1, Y: 1},
		{X: -1, Y: 1},
	})
	assert.Len(t, p.Vertices, 4)
}

func TestPolygonDegeneratePanics(t *testing.T) {
	require.Panics(t, func() {
		planck.NewPolygon([]vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}})
	})
}

func TestPolygonRayCast(t *testing.T) {
	p := planck.NewBox(1, 1)

	var out planck.RayCastOutput
	in := planck.RayCastInput{
		P1:          vec.Vec2{X: -3, Y: 0},
		P2:          vec.Vec2{X: 3, Y: 0},
		MaxFraction: 1,
	}
	require.True(t, p.RayCast(&out, in, planck.TransformIdentity(), 0))
	assert.InDelta(t, 2.0/6.0, out.Fraction, 1e-12)
	assert.InDelta(t, -1.0, out.Normal.X, 1e-12)
}

func TestChainChildCount(t *testing.T) {
	vs := []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1}}

	open := planck.NewChain(vs)
	assert.Equal(t, 3, open.ChildCount())

	loop := planck.NewChainLoop(vs)
	assert.Equal(t, 4, loop.ChildCount())
}

func TestChainChildEdgeGhosts(t *testing.T) {
	vs := []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	open := planck.NewChain(vs)

	first := open.ChildEdge(0)
	assert.False(t, first.HasV0)
	assert.True(t, first.HasV3)

	mid := open.ChildEdge(1)
	assert.True(t, mid.HasV0)
	assert.True(t, mid.HasV3)
	assert.Equal(t, vs[0], mid.V0)
	assert.Equal(t, vs[3], mid.V3)

	last := open.ChildEdge(2)
	assert.True(t, last.HasV0)
	assert.False(t, last.HasV3)

	loop := planck.NewChainLoop(vs)
	closing := loop.ChildEdge(3)
	assert.True(t, closing.HasV0)
	assert.True(t, closing.HasV3)
	assert.Equal(t, vs[3], closing.V1)
	assert.Equal(t, vs[0], closing.V2)
}

func TestChainChildAABBWrapsForLoop(t *testing.T) {
	vs := []vec.Vec2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}}
	loop := planck.NewChainLoop(vs)

	// The closing segment runs from the last vertex back to the first.
	aabb := loop.ComputeAABB(planck.TransformIdentity(), 2)
	assert.LessOrEqual(t, aabb.Lower.X, 0.0)
	assert.GreaterOrEqual(t, aabb.Upper.X, 2.0)
	assert.GreaterOrEqual(t, aabb.Upper.Y, 2.0)
}

func TestChainChildIndexOutOfRangePanics(t *testing.T) {
	open := planck.NewChain([]vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}})
	require.Panics(t, func() {
		open.ComputeAABB(planck.TransformIdentity(), 1)
	})
}
