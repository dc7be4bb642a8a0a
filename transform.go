package planck

import (
	"math"

	"github.com/setanarut/vec"
)

// Rot is a 2D rotation stored as the sine/cosine pair of its angle, so that
// applying it to a point costs four multiplies and no trigonometry.
type Rot struct {
	S, C float64
}

// NewRot returns the rotation for angle (radians).
func NewRot(angle float64) Rot {
	r := vec.ForAngle(angle)
	return Rot{S: r.Y, C: r.X}
}

// RotIdentity returns the zero rotation.
func RotIdentity() Rot {
	return Rot{S: 0, C: 1}
}

// Angle returns the rotation angle in radians.
func (q Rot) Angle() float64 {
	return math.Atan2(q.S, q.C)
}

// Apply rotates v.
func (q Rot) Apply(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: q.C*v.X - q.S*v.Y,
		Y: q.S*v.X + q.C*v.Y,
	}
}

// ApplyInverse rotates v by the inverse rotation.
func (q Rot) ApplyInverse(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: q.C*v.X + q.S*v.Y,
		Y: -q.S*v.X + q.C*v.Y,
	}
}

// Transform is a rigid body transform: a rotation followed by a translation.
// P is the position of the local origin in world coordinates.
type Transform struct {
	P vec.Vec2
	Q Rot
}

// NewTransform returns the transform with the given world position and angle.
func NewTransform(position vec.Vec2, angle float64) Transform {
	return Transform{P: position, Q: NewRot(angle)}
}

// TransformIdentity returns the identity transform.
func TransformIdentity() Transform {
	return Transform{Q: RotIdentity()}
}

// Apply maps a local point to world coordinates.
func (t Transform) Apply(p vec.Vec2) vec.Vec2 {
	return t.Q.Apply(p).Add(t.P)
}

// ApplyInverse maps a world point to local coordinates.
func (t Transform) ApplyInverse(p vec.Vec2) vec.Vec2 {
	return t.Q.ApplyInverse(p.Sub(t.P))
}
