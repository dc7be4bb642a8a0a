package planck

import (
	"math"

	"github.com/setanarut/vec"
)

// Circle is a solid circle shape with a local center offset.
type Circle struct {
	// Center is the circle center in shape-local coordinates.
	Center vec.Vec2
	radius float64
}

// NewCircle returns a circle of the given radius centered on the local origin.
func NewCircle(radius float64) *Circle {
	return &Circle{radius: radius}
}

// NewCircleAt returns a circle of the given radius centered on center.
func NewCircleAt(center vec.Vec2, radius float64) *Circle {
	return &Circle{Center: center, radius: radius}
}

func (c *Circle) Type() ShapeType { return CircleType }

func (c *Circle) Radius() float64 { return c.radius }

func (c *Circle) ChildCount() int { return 1 }

func (c *Circle) ComputeAABB(xf Transform, childIndex int) AABB {
	p := xf.Apply(c.Center)
	r := vec.Vec2{X: c.radius, Y: c.radius}
	return AABB{Lower: p.Sub(r), Upper: p.Add(r)}
}

func (c *Circle) TestPoint(xf Transform, p vec.Vec2) bool {
	center := xf.Apply(c.Center)
	d := p.Sub(center)
	return d.Dot(d) <= c.radius*c.radius
}

// RayCast solves |s + t*r| = radius for the smallest t in range. From
// Collision Detection in Interactive 3D Environments, p.179.
func (c *Circle) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	position := xf.Apply(c.Center)
	s := input.P1.Sub(position)
	b := s.Dot(s) - c.radius*c.radius

	r := input.P2.Sub(input.P1)
	cc := s.Dot(r)
	rr := r.Dot(r)
	sigma := cc*cc - rr*b

	// Negative discriminant means the ray line misses entirely.
	if sigma < 0.0 || rr < epsilon {
		return false
	}

	t := -(cc + math.Sqrt(sigma))
	if 0.0 <= t && t <= input.MaxFraction*rr {
		t /= rr
		output.Fraction = t
		output.Normal = s.Add(r.Scale(t)).Unit()
		return true
	}
	return false
}

func (c *Circle) ComputeMass(density float64) MassData {
	mass := density * math.Pi * c.radius * c.radius
	return MassData{
		Mass:   mass,
		Center: c.Center,
		// Inertia about the local origin.
		I: mass * (0.5*c.radius*c.radius + c.Center.Dot(c.Center)),
	}
}
