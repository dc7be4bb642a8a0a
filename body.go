package planck

import (
	"slices"

	"github.com/setanarut/vec"
)

// BodyType classifies how a body moves.
type BodyType uint8

const (
	// StaticBody never moves and has infinite mass.
	StaticBody BodyType = iota
	// KinematicBody moves under its velocity but is unaffected by mass.
	KinematicBody
	// DynamicBody moves under its velocity and has finite mass.
	DynamicBody
)

// Body is a rigid body: a transform, velocities, mass data, and the fixtures
// attached to it. Bodies are stepped by the World they are added to; a body
// can also exist detached, in which case its fixtures have no proxies.
type Body struct {
	world    *World
	bodyType BodyType

	transform Transform
	// xf0 is the transform at the start of the current step, kept so fixture
	// proxies can cover the swept volume.
	xf0   Transform
	angle float64

	linearVelocity  vec.Vec2
	angularVelocity float64

	mass       float64
	invMass    float64
	inertia    float64
	invInertia float64
	// localCenter is the center of mass in body-local coordinates.
	localCenter vec.Vec2

	fixtures []*Fixture
	contacts []*Contact

	awake    bool
	enabled  bool
	userData any
}

// NewBody returns a detached body of the given type at position/angle.
func NewBody(bodyType BodyType, position vec.Vec2, angle float64) *Body {
	xf := NewTransform(position, angle)
	b := &Body{
		bodyType:  bodyType,
		transform: xf,
		xf0:       xf,
		angle:     angle,
		awake:     true,
		enabled:   true,
	}
	if bodyType == DynamicBody {
		b.mass = 1.0
		b.invMass = 1.0
	}
	return b
}

// Type returns the body type.
func (b *Body) Type() BodyType { return b.bodyType }

// World returns the world the body belongs to, or nil when detached.
func (b *Body) World() *World { return b.world }

// Fixtures returns the body's fixtures. The slice is owned by the body.
func (b *Body) Fixtures() []*Fixture { return b.fixtures }

// Contacts returns the contacts involving this body's fixtures.
func (b *Body) Contacts() []*Contact { return b.contacts }

// UserData returns the application data attached to the body.
func (b *Body) UserData() any { return b.userData }

// SetUserData attaches application data to the body.
func (b *Body) SetUserData(data any) { b.userData = data }

// Position returns the world position of the body origin.
func (b *Body) Position() vec.Vec2 { return b.transform.P }

// Angle returns the body angle in radians.
func (b *Body) Angle() float64 { return b.angle }

// Transform returns the body transform.
func (b *Body) Transform() Transform { return b.transform }

// WorldCenter returns the center of mass in world coordinates.
func (b *Body) WorldCenter() vec.Vec2 { return b.transform.Apply(b.localCenter) }

// LocalCenter returns the center of mass in body-local coordinates.
func (b *Body) LocalCenter() vec.Vec2 { return b.localCenter }

// Mass returns the body mass in kilograms.
func (b *Body) Mass() float64 { return b.mass }

// Inertia returns the rotational inertia about the local origin.
func (b *Body) Inertia() float64 { return b.inertia }

// LinearVelocity returns the linear velocity of the body origin.
func (b *Body) LinearVelocity() vec.Vec2 { return b.linearVelocity }

// SetLinearVelocity sets the linear velocity. Setting a nonzero velocity
// wakes the body.
func (b *Body) SetLinearVelocity(v vec.Vec2) {
	if b.bodyType == StaticBody {
		return
	}
	if v.Dot(v) > 0.0 {
		b.SetAwake(true)
	}
	b.linearVelocity = v
}

// AngularVelocity returns the angular velocity in radians per second.
func (b *Body) AngularVelocity() float64 { return b.angularVelocity }

// SetAngularVelocity sets the angular velocity. Setting a nonzero velocity
// wakes the body.
func (b *Body) SetAngularVelocity(w float64) {
	if b.bodyType == StaticBody {
		return
	}
	if w*w > 0.0 {
		b.SetAwake(true)
	}
	b.angularVelocity = w
}

// IsAwake reports whether the body participates in simulation this step.
func (b *Body) IsAwake() bool { return b.awake }

// SetAwake wakes or sleeps the body. Sleeping zeroes the velocities.
func (b *Body) SetAwake(awake bool) {
	if awake {
		b.awake = true
	} else {
		b.awake = false
		b.linearVelocity = vec.Vec2{}
		b.angularVelocity = 0.0
	}
}

// IsEnabled reports whether the body's fixtures are registered in the
// broad-phase.
func (b *Body) IsEnabled() bool { return b.enabled }

// SetEnabled adds or removes all of the body's proxies from the broad-phase.
// Disabling also destroys the body's contacts. Fixtures stay attached either
// way.
func (b *Body) SetEnabled(enabled bool) {
	if enabled == b.enabled {
		return
	}
	b.enabled = enabled

	if b.world == nil {
		return
	}
	assert(!b.world.locked, "world is locked")

	bp := b.world.contactManager.broadPhase
	if enabled {
		for _, f := range b.fixtures {
			f.CreateProxies(bp, b.transform)
		}
		// Contacts are created the next time the world steps.
		return
	}

	for _, f := range b.fixtures {
		f.DestroyProxies(bp)
	}
	for len(b.contacts) > 0 {
		b.world.contactManager.destroy(b.contacts[0])
	}
}

// CreateFixture attaches a fixture built from def. When the body is in a
// world and enabled the fixture's proxies are registered immediately. A
// nonzero density updates the body's mass data.
func (b *Body) CreateFixture(def FixtureDef) *Fixture {
	if b.world != nil {
		assert(!b.world.locked, "world is locked")
	}

	f := newFixture(b, def)
	if b.world != nil && b.enabled {
		f.CreateProxies(b.world.contactManager.broadPhase, b.transform)
	}
	b.fixtures = append(b.fixtures, f)

	if f.density > 0.0 {
		b.ResetMassData()
	}
	return f
}

// CreateFixtureFromShape attaches a fixture for shape with the given density
// and default material values.
func (b *Body) CreateFixtureFromShape(shape Shape, density float64) *Fixture {
	def := DefaultFixtureDef()
	def.Shape = shape
	def.Density = density
	return b.CreateFixture(def)
}

// DestroyFixture detaches a fixture, destroying its contacts and proxies and
// updating the body's mass data. Destroying a fixture not attached to this
// body is a programming error.
func (b *Body) DestroyFixture(f *Fixture) {
	if b.world != nil {
		assert(!b.world.locked, "world is locked")
	}
	assert(f.body == b, "fixture is not attached to this body")

	i := slices.Index(b.fixtures, f)
	assert(i >= 0, "fixture is not attached to this body")
	b.fixtures = slices.Delete(b.fixtures, i, i+1)

	if b.world != nil {
		for j := 0; j < len(b.contacts); {
			c := b.contacts[j]
			if c.fixtureA == f || c.fixtureB == f {
				b.world.contactManager.destroy(c)
			} else {
				j++
			}
		}
		f.DestroyProxies(b.world.contactManager.broadPhase)
	}

	f.body = nil
	b.ResetMassData()
}

// SetTransform teleports the body. The proxies are synchronized under the new
// transform only, so no swept volume is generated.
func (b *Body) SetTransform(position vec.Vec2, angle float64) {
	if b.world != nil {
		assert(!b.world.locked, "world is locked")
	}

	b.transform = NewTransform(position, angle)
	b.angle = angle
	b.xf0 = b.transform

	if b.world == nil || !b.enabled {
		return
	}
	bp := b.world.contactManager.broadPhase
	for _, f := range b.fixtures {
		f.Synchronize(bp, b.transform, b.transform)
	}
}

// synchronizeFixtures moves every proxy to cover the step from xf0 to the
// current transform.
func (b *Body) synchronizeFixtures() {
	if b.world == nil || !b.enabled {
		return
	}
	bp := b.world.contactManager.broadPhase
	for _, f := range b.fixtures {
		f.Synchronize(bp, b.xf0, b.transform)
	}
}

// ShouldCollide reports whether this body may collide with other at all.
// Two non-dynamic bodies never collide.
func (b *Body) ShouldCollide(other *Body) bool {
	return b.bodyType == DynamicBody || other.bodyType == DynamicBody
}

// ResetMassData recomputes mass, inertia, and center of mass from the
// fixtures. Static and kinematic bodies always have zero mass; a dynamic body
// whose fixtures carry no density gets one kilogram so it stays movable.
func (b *Body) ResetMassData() {
	b.mass = 0.0
	b.invMass = 0.0
	b.inertia = 0.0
	b.invInertia = 0.0
	b.localCenter = vec.Vec2{}

	if b.bodyType != DynamicBody {
		return
	}

	var center vec.Vec2
	for _, f := range b.fixtures {
		if f.density == 0.0 {
			continue
		}
		md := f.MassData()
		b.mass += md.Mass
		center = center.Add(md.Center.Scale(md.Mass))
		b.inertia += md.I
	}

	if b.mass > 0.0 {
		b.invMass = 1.0 / b.mass
		center = center.Scale(b.invMass)
	} else {
		b.mass = 1.0
		b.invMass = 1.0
	}

	if b.inertia > 0.0 {
		// Center the inertia about the center of mass.
		b.inertia -= b.mass * center.Dot(center)
		assert(b.inertia > 0.0, "body inertia must be positive")
		b.invInertia = 1.0 / b.inertia
	} else {
		b.inertia = 0.0
		b.invInertia = 0.0
	}

	b.localCenter = center
}
