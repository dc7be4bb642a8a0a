package planck

import "github.com/setanarut/vec"

// ShapeType identifies one of the fixed set of shape kinds. The set is closed:
// code interpreting a Shape may switch over the concrete types exhaustively.
type ShapeType uint8

const (
	CircleType ShapeType = iota
	EdgeType
	PolygonType
	ChainType
)

func (st ShapeType) String() string {
	switch st {
	case CircleType:
		return "circle"
	case EdgeType:
		return "edge"
	case PolygonType:
		return "polygon"
	case ChainType:
		return "chain"
	}
	return "unknown"
}

// MassData holds the mass properties computed for a shape.
type MassData struct {
	// Mass of the shape, usually in kilograms.
	Mass float64
	// Center is the position of the shape's centroid relative to the shape's
	// origin.
	Center vec.Vec2
	// I is the rotational inertia of the shape about the local origin.
	I float64
}

// RayCastInput is a ray cast query from P1 toward P2, truncated at
// MaxFraction of that segment.
type RayCastInput struct {
	P1, P2      vec.Vec2
	MaxFraction float64
}

// RayCastOutput reports a hit at P1 + Fraction*(P2-P1) with the surface
// normal at the hit point.
type RayCastOutput struct {
	Normal   vec.Vec2
	Fraction float64
}

// Shape is a piece of collision geometry. Shapes are positioned by the
// transform of whatever they are attached to; they hold no world coordinates
// of their own. A shape may consist of several indivisible children (a chain
// is a run of edges); per-child queries take a child index.
type Shape interface {
	// Type returns the shape kind for dispatch over the closed shape set.
	Type() ShapeType

	// Radius returns the shape's skin thickness.
	Radius() float64

	// ChildCount returns the number of indivisible children.
	ChildCount() int

	// ComputeAABB returns the bounding box of one child under xf.
	ComputeAABB(xf Transform, childIndex int) AABB

	// TestPoint reports whether the world point p is inside the shape under
	// xf. Only meaningful for solid shapes; edges and chains always report
	// false.
	TestPoint(xf Transform, p vec.Vec2) bool

	// RayCast casts a ray against one child. It returns false on a miss and
	// leaves output untouched.
	RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool

	// ComputeMass returns the mass properties for the given density.
	ComputeMass(density float64) MassData
}

// shapeRefresher is implemented by shapes that cache data derived from their
// geometry. Fixture.Reset calls it after callers mutate shape contents.
type shapeRefresher interface {
	RefreshCachedData()
}
