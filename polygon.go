package planck

import "github.com/setanarut/vec"

// Polygon is a solid convex polygon with up to maxPolygonVertices vertices,
// wound counter-clockwise. The constructor computes the convex hull of the
// points it is given, so collinear and interior points are discarded.
type Polygon struct {
	// Vertices and Normals are hull data in shape-local coordinates. Mutating
	// them directly requires a Fixture.Reset (or RefreshCachedData) afterward.
	Vertices []vec.Vec2
	Normals  []vec.Vec2
	centroid vec.Vec2
}

// NewPolygon returns the convex hull of points.
func NewPolygon(points []vec.Vec2) *Polygon {
	p := &Polygon{}
	p.set(points)
	return p
}

// NewBox returns an axis-aligned box with the given half-widths, centered on
// the local origin.
func NewBox(halfWidth, halfHeight float64) *Polygon {
	p := &Polygon{
		Vertices: []vec.Vec2{
			{X: -halfWidth, Y: -halfHeight},
			{X: halfWidth, Y: -halfHeight},
			{X: halfWidth, Y: halfHeight},
			{X: -halfWidth, Y: halfHeight},
		},
		Normals: []vec.Vec2{
			{X: 0, Y: -1},
			{X: 1, Y: 0},
			{X: 0, Y: 1},
			{X: -1, Y: 0},
		},
	}
	return p
}

func (p *Polygon) Type() ShapeType { return PolygonType }

func (p *Polygon) Radius() float64 { return polygonRadius }

func (p *Polygon) ChildCount() int { return 1 }

// set computes the convex hull of points by gift wrapping and derives the
// edge normals and centroid.
func (p *Polygon) set(points []vec.Vec2) {
	assert(3 <= len(points) && len(points) <= maxPolygonVertices,
		"polygon needs between 3 and 8 points")

	// Weld nearly identical points.
	unique := make([]vec.Vec2, 0, len(points))
	for _, v := range points {
		keep := true
		for _, u := range unique {
			d := v.Sub(u)
			if d.Dot(d) < (0.5*linearSlop)*(0.5*linearSlop) {
				keep = false
				break
			}
		}
		if keep {
			unique = append(unique, v)
		}
	}
	assert(len(unique) >= 3, "polygon is degenerate")

	// Start the wrap at the rightmost point.
	i0 := 0
	x0 := unique[0].X
	for i := 1; i < len(unique); i++ {
		x := unique[i].X
		if x > x0 || (x == x0 && unique[i].Y < unique[i0].Y) {
			i0 = i
			x0 = x
		}
	}

	hull := make([]int, 0, len(unique))
	ih := i0
	for {
		hull = append(hull, ih)

		ie := 0
		for j := 1; j < len(unique); j++ {
			if ie == ih {
				ie = j
				continue
			}
			r := unique[ie].Sub(unique[ih])
			v := unique[j].Sub(unique[ih])
			c := r.Cross(v)
			if c < 0.0 {
				ie = j
			}
			// Collinear: keep the farthest point.
			if c == 0.0 && v.Dot(v) > r.Dot(r) {
				ie = j
			}
		}

		ih = ie
		if ie == i0 {
			break
		}
	}
	assert(len(hull) >= 3, "polygon is degenerate")

	p.Vertices = make([]vec.Vec2, len(hull))
	for i, idx := range hull {
		p.Vertices[i] = unique[idx]
	}
	p.RefreshCachedData()
}

// RefreshCachedData recomputes the edge normals and centroid from Vertices.
func (p *Polygon) RefreshCachedData() {
	n := len(p.Vertices)
	p.Normals = make([]vec.Vec2, n)
	for i := 0; i < n; i++ {
		edge := p.Vertices[(i+1)%n].Sub(p.Vertices[i])
		assert(edge.Dot(edge) > epsilon*epsilon, "polygon has a zero-length edge")
		p.Normals[i] = vec.Vec2{X: edge.Y, Y: -edge.X}.Unit()
	}
	p.centroid = polygonCentroid(p.Vertices)
}

// Centroid returns the polygon centroid in local coordinates.
func (p *Polygon) Centroid() vec.Vec2 {
	return p.centroid
}

func polygonCentroid(vs []vec.Vec2) vec.Vec2 {
	var c vec.Vec2
	area := 0.0
	ref := vs[0]

	const inv3 = 1.0 / 3.0
	for i := 0; i < len(vs); i++ {
		e1 := vs[i].Sub(ref)
		e2 := vs[(i+1)%len(vs)].Sub(ref)
		d := e1.Cross(e2)

		triangleArea := 0.5 * d
		area += triangleArea
		c = c.Add(e1.Add(e2).Scale(triangleArea * inv3))
	}
	assert(area > epsilon, "polygon area is too small")
	return c.Scale(1.0 / area).Add(ref)
}

func (p *Polygon) ComputeAABB(xf Transform, childIndex int) AABB {
	lower := xf.Apply(p.Vertices[0])
	upper := lower
	for i := 1; i < len(p.Vertices); i++ {
		v := xf.Apply(p.Vertices[i])
		lower = vecMin(lower, v)
		upper = vecMax(upper, v)
	}
	r := vec.Vec2{X: polygonRadius, Y: polygonRadius}
	return AABB{Lower: lower.Sub(r), Upper: upper.Add(r)}
}

func (p *Polygon) TestPoint(xf Transform, pt vec.Vec2) bool {
	local := xf.Q.ApplyInverse(pt.Sub(xf.P))
	for i := range p.Vertices {
		if p.Normals[i].Dot(local.Sub(p.Vertices[i])) > 0.0 {
			return false
		}
	}
	return true
}

// RayCast clips the ray against each half-plane of the hull and keeps the
// entering intersection with the largest parameter.
func (p *Polygon) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	p1 := xf.Q.ApplyInverse(input.P1.Sub(xf.P))
	p2 := xf.Q.ApplyInverse(input.P2.Sub(xf.P))
	d := p2.Sub(p1)

	lower, upper := 0.0, input.MaxFraction
	index := -1

	for i := range p.Vertices {
		// numerator < 0 means p1 is outside half-plane i.
		numerator := p.Normals[i].Dot(p.Vertices[i].Sub(p1))
		denominator := p.Normals[i].Dot(d)

		if denominator == 0.0 {
			if numerator < 0.0 {
				return false
			}
		} else {
			t := numerator / denominator
			if denominator < 0.0 && t > lower {
				// The ray enters this half-plane.
				lower = t
				index = i
			} else if denominator > 0.0 && t < upper {
				upper = t
			}
		}

		if upper < lower {
			return false
		}
	}

	if index >= 0 {
		output.Fraction = lower
		output.Normal = xf.Q.Apply(p.Normals[index])
		return true
	}
	return false
}

// ComputeMass integrates over the triangles fanned out from the first vertex.
func (p *Polygon) ComputeMass(density float64) MassData {
	n := len(p.Vertices)
	assert(n >= 3, "polygon is degenerate")

	var center vec.Vec2
	area := 0.0
	inertia := 0.0
	ref := p.Vertices[0]

	const inv3 = 1.0 / 3.0
	for i := 0; i < n; i++ {
		e1 := p.Vertices[i].Sub(ref)
		e2 := p.Vertices[(i+1)%n].Sub(ref)
		d := e1.Cross(e2)

		triangleArea := 0.5 * d
		area += triangleArea
		center = center.Add(e1.Add(e2).Scale(triangleArea * inv3))

		intx2 := e1.X*e1.X + e2.X*e1.X + e2.X*e2.X
		inty2 := e1.Y*e1.Y + e2.Y*e1.Y + e2.Y*e2.Y
		inertia += (0.25 * inv3 * d) * (intx2 + inty2)
	}

	assert(area > epsilon, "polygon area is too small")
	mass := density * area
	center = center.Scale(1.0 / area)
	worldCenter := center.Add(ref)

	// Shift inertia from the reference point to the local origin.
	i := density*inertia + mass*(worldCenter.Dot(worldCenter)-center.Dot(center))
	return MassData{Mass: mass, Center: worldCenter, I: i}
}
