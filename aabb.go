package planck

import (
	"fmt"

	"github.com/setanarut/vec"
)

// AABB is an axis-aligned bounding box given by its lower and upper corners.
type AABB struct {
	Lower, Upper vec.Vec2
}

// NewAABB is a convenience constructor for AABB values.
func NewAABB(lower, upper vec.Vec2) AABB {
	return AABB{Lower: lower, Upper: upper}
}

func (a AABB) String() string {
	return fmt.Sprintf("%v %v", a.Lower, a.Upper)
}

// Valid reports whether the bounds are ordered and finite.
func (a AABB) Valid() bool {
	d := a.Upper.Sub(a.Lower)
	return d.X >= 0 && d.Y >= 0 &&
		validFloat(a.Lower.X) && validFloat(a.Lower.Y) &&
		validFloat(a.Upper.X) && validFloat(a.Upper.Y)
}

// Center returns the center of the bounding box.
func (a AABB) Center() vec.Vec2 {
	return a.Lower.Lerp(a.Upper, 0.5)
}

// Extents returns the half-widths of the bounding box.
func (a AABB) Extents() vec.Vec2 {
	return a.Upper.Sub(a.Lower).Scale(0.5)
}

// Perimeter returns the perimeter length of the bounding box.
func (a AABB) Perimeter() float64 {
	return 2.0 * ((a.Upper.X - a.Lower.X) + (a.Upper.Y - a.Lower.Y))
}

// Combine returns a bounding box that holds both a and b.
func (a AABB) Combine(b AABB) AABB {
	return AABB{
		Lower: vecMin(a.Lower, b.Lower),
		Upper: vecMax(a.Upper, b.Upper),
	}
}

// Contains reports whether b lies completely within a.
func (a AABB) Contains(b AABB) bool {
	return a.Lower.X <= b.Lower.X && a.Lower.Y <= b.Lower.Y &&
		b.Upper.X <= a.Upper.X && b.Upper.Y <= a.Upper.Y
}

// Overlaps reports whether a and b intersect.
func (a AABB) Overlaps(b AABB) bool {
	if b.Lower.X-a.Upper.X > 0 || b.Lower.Y-a.Upper.Y > 0 {
		return false
	}
	if a.Lower.X-b.Upper.X > 0 || a.Lower.Y-b.Upper.Y > 0 {
		return false
	}
	return true
}

// Extend returns the bounding box grown by r on every side.
func (a AABB) Extend(r float64) AABB {
	d := vec.Vec2{X: r, Y: r}
	return AABB{Lower: a.Lower.Sub(d), Upper: a.Upper.Add(d)}
}
