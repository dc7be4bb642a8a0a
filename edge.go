package planck

import "github.com/setanarut/vec"

// Edge is a line segment shape. Edges have no interior and no mass; they are
// meant for static terrain. The optional ghost vertices V0 and V3 let contact
// generation smooth over the joins between adjacent edges.
type Edge struct {
	// V1 and V2 are the segment endpoints.
	V1, V2 vec.Vec2
	// V0 and V3 are the ghost vertices used when the edge is part of a chain.
	V0, V3       vec.Vec2
	HasV0, HasV3 bool
}

// NewEdge returns the segment from v1 to v2.
func NewEdge(v1, v2 vec.Vec2) *Edge {
	return &Edge{V1: v1, V2: v2}
}

// SetGhosts installs both ghost vertices.
func (e *Edge) SetGhosts(v0, v3 vec.Vec2) {
	e.V0, e.V3 = v0, v3
	e.HasV0, e.HasV3 = true, true
}

func (e *Edge) Type() ShapeType { return EdgeType }

func (e *Edge) Radius() float64 { return polygonRadius }

func (e *Edge) ChildCount() int { return 1 }

func (e *Edge) ComputeAABB(xf Transform, childIndex int) AABB {
	v1 := xf.Apply(e.V1)
	v2 := xf.Apply(e.V2)
	r := vec.Vec2{X: polygonRadius, Y: polygonRadius}
	return AABB{
		Lower: vecMin(v1, v2).Sub(r),
		Upper: vecMax(v1, v2).Add(r),
	}
}

// TestPoint always reports false. A segment has no interior.
func (e *Edge) TestPoint(xf Transform, p vec.Vec2) bool {
	return false
}

// RayCast intersects the ray with the segment in the edge's local frame.
//
//	p = p1 + t * d
//	v = v1 + s * e
//	p1 + t * d = v1 + s * e
//	s * e - t * d = p1 - v1
func (e *Edge) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	p1 := xf.Q.ApplyInverse(input.P1.Sub(xf.P))
	p2 := xf.Q.ApplyInverse(input.P2.Sub(xf.P))
	d := p2.Sub(p1)

	v1 := e.V1
	v2 := e.V2
	seg := v2.Sub(v1)
	normal := vec.Vec2{X: seg.Y, Y: -seg.X}.Unit()

	// t = dot(normal, v1 - p1) / dot(normal, d)
	numerator := normal.Dot(v1.Sub(p1))
	denominator := normal.Dot(d)
	if denominator == 0.0 {
		return false
	}

	t := numerator / denominator
	if t < 0.0 || input.MaxFraction < t {
		return false
	}

	q := p1.Add(d.Scale(t))

	// q = v1 + s * seg; s = dot(q - v1, seg) / dot(seg, seg)
	rr := seg.Dot(seg)
	if rr == 0.0 {
		return false
	}
	s := q.Sub(v1).Dot(seg) / rr
	if s < 0.0 || 1.0 < s {
		return false
	}

	output.Fraction = t
	if numerator > 0.0 {
		output.Normal = xf.Q.Apply(normal).Neg()
	} else {
		output.Normal = xf.Q.Apply(normal)
	}
	return true
}

// ComputeMass reports zero mass with the centroid at the segment midpoint.
func (e *Edge) ComputeMass(density float64) MassData {
	return MassData{Center: e.V1.Lerp(e.V2, 0.5)}
}
