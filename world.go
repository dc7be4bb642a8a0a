package planck

import (
	"slices"

	"github.com/setanarut/vec"
)

// World holds the bodies and the contact manager and advances the simulation.
// The world is locked during a step; creating or destroying bodies and
// fixtures from inside a step is a programming error.
type World struct {
	contactManager *ContactManager
	bodies         []*Body
	gravity        vec.Vec2
	locked         bool
}

// NewWorld returns an empty world with the given gravity.
func NewWorld(gravity vec.Vec2) *World {
	return &World{
		contactManager: newContactManager(),
		gravity:        gravity,
	}
}

// Gravity returns the world gravity.
func (w *World) Gravity() vec.Vec2 { return w.gravity }

// SetGravity changes the world gravity.
func (w *World) SetGravity(gravity vec.Vec2) { w.gravity = gravity }

// Bodies returns the bodies in the world. The slice is owned by the world.
func (w *World) Bodies() []*Body { return w.bodies }

// Contacts returns the live contacts.
func (w *World) Contacts() []*Contact { return w.contactManager.Contacts() }

// BroadPhase returns the world's spatial index, for queries.
func (w *World) BroadPhase() *BroadPhase { return w.contactManager.broadPhase }

// IsLocked reports whether a step is in progress.
func (w *World) IsLocked() bool { return w.locked }

// AddBody puts a detached body into the world. If the body is enabled its
// fixtures get proxies immediately; the contacts appear on the next step.
func (w *World) AddBody(b *Body) {
	assert(!w.locked, "world is locked")
	assert(b.world == nil, "body is already in a world")

	b.world = w
	w.bodies = append(w.bodies, b)

	if b.enabled {
		for _, f := range b.fixtures {
			f.CreateProxies(w.contactManager.broadPhase, b.transform)
		}
	}
}

// RemoveBody takes a body out of the world, destroying its contacts and
// proxies. The body and its fixtures stay intact and can be re-added.
func (w *World) RemoveBody(b *Body) {
	assert(!w.locked, "world is locked")
	assert(b.world == w, "body is not in this world")

	for len(b.contacts) > 0 {
		w.contactManager.destroy(b.contacts[0])
	}
	if b.enabled {
		for _, f := range b.fixtures {
			f.DestroyProxies(w.contactManager.broadPhase)
		}
	}

	if i := slices.Index(w.bodies, b); i >= 0 {
		w.bodies = slices.Delete(w.bodies, i, i+1)
	}
	b.world = nil
}

// Step advances the simulation by dt seconds: integrate the awake dynamic
// and kinematic bodies, synchronize their proxies over the motion, then
// update the contact set from the broad-phase.
func (w *World) Step(dt float64) {
	assert(!w.locked, "world is locked")
	w.locked = true

	for _, b := range w.bodies {
		if b.bodyType == StaticBody || !b.awake || !b.enabled {
			continue
		}

		if b.bodyType == DynamicBody {
			b.linearVelocity = b.linearVelocity.Add(w.gravity.Scale(dt))
		}

		b.xf0 = b.transform
		position := b.transform.P.Add(b.linearVelocity.Scale(dt))
		b.angle += b.angularVelocity * dt
		b.transform = NewTransform(position, b.angle)

		b.synchronizeFixtures()
	}

	w.contactManager.FindNewContacts()
	w.contactManager.Collide()

	w.locked = false
}
