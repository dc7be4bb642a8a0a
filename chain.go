package planck

import "github.com/setanarut/vec"

// Chain is a sequence of connected line segments, either an open run or a
// closed loop. Each segment is one child; adjacent vertices serve as ghost
// vertices so contact generation does not snag on the interior joins. Like
// Edge, a chain has no interior and no mass.
type Chain struct {
	Vertices []vec.Vec2
	Loop     bool
}

// NewChain returns an open chain through vertices.
func NewChain(vertices []vec.Vec2) *Chain {
	assert(len(vertices) >= 2, "chain needs at least 2 vertices")
	return &Chain{Vertices: vertices}
}

// NewChainLoop returns a closed loop through vertices. The closing segment
// from the last vertex back to the first is implicit.
func NewChainLoop(vertices []vec.Vec2) *Chain {
	assert(len(vertices) >= 3, "chain loop needs at least 3 vertices")
	return &Chain{Vertices: vertices, Loop: true}
}

func (c *Chain) Type() ShapeType { return ChainType }

func (c *Chain) Radius() float64 { return polygonRadius }

// ChildCount returns the segment count: one per vertex for a loop, one less
// for an open chain.
func (c *Chain) ChildCount() int {
	if c.Loop {
		return len(c.Vertices)
	}
	return len(c.Vertices) - 1
}

// ChildEdge materializes segment childIndex as an Edge, ghost vertices
// included where a neighboring segment exists.
func (c *Chain) ChildEdge(childIndex int) *Edge {
	assert(0 <= childIndex && childIndex < c.ChildCount(), "chain child index out of range")
	n := len(c.Vertices)

	edge := &Edge{
		V1: c.Vertices[childIndex],
		V2: c.Vertices[(childIndex+1)%n],
	}
	if c.Loop {
		edge.V0 = c.Vertices[(childIndex+n-1)%n]
		edge.V3 = c.Vertices[(childIndex+2)%n]
		edge.HasV0, edge.HasV3 = true, true
	} else {
		if childIndex > 0 {
			edge.V0 = c.Vertices[childIndex-1]
			edge.HasV0 = true
		}
		if childIndex < n-2 {
			edge.V3 = c.Vertices[childIndex+2]
			edge.HasV3 = true
		}
	}
	return edge
}

func (c *Chain) ComputeAABB(xf Transform, childIndex int) AABB {
	assert(0 <= childIndex && childIndex < c.ChildCount(), "chain child index out of range")
	n := len(c.Vertices)

	v1 := xf.Apply(c.Vertices[childIndex])
	v2 := xf.Apply(c.Vertices[(childIndex+1)%n])
	r := vec.Vec2{X: polygonRadius, Y: polygonRadius}
	return AABB{
		Lower: vecMin(v1, v2).Sub(r),
		Upper: vecMax(v1, v2).Add(r),
	}
}

// TestPoint always reports false. A chain has no interior.
func (c *Chain) TestPoint(xf Transform, p vec.Vec2) bool {
	return false
}

func (c *Chain) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	assert(0 <= childIndex && childIndex < c.ChildCount(), "chain child index out of range")
	n := len(c.Vertices)

	edge := Edge{
		V1: c.Vertices[childIndex],
		V2: c.Vertices[(childIndex+1)%n],
	}
	return edge.RayCast(output, input, xf, 0)
}

// ComputeMass reports zero mass.
func (c *Chain) ComputeMass(density float64) MassData {
	return MassData{}
}
