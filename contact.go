package planck

import "slices"

// Contact tracks one potentially colliding fixture pair, down to the child
// index on each side. Contacts are created and destroyed by the
// ContactManager as broad-phase pairs come and go; a flagged contact gets its
// filter re-checked on the next collide pass.
type Contact struct {
	fixtureA, fixtureB *Fixture
	indexA, indexB     int

	filterFlag bool
	touching   bool
}

// FixtureA returns the first fixture of the pair.
func (c *Contact) FixtureA() *Fixture { return c.fixtureA }

// FixtureB returns the second fixture of the pair.
func (c *Contact) FixtureB() *Fixture { return c.fixtureB }

// ChildIndexA returns the shape child on fixture A's side.
func (c *Contact) ChildIndexA() int { return c.indexA }

// ChildIndexB returns the shape child on fixture B's side.
func (c *Contact) ChildIndexB() int { return c.indexB }

// IsTouching reports whether the pair's proxies overlapped on the last
// collide pass.
func (c *Contact) IsTouching() bool { return c.touching }

// FlagForFiltering marks the contact for a filter re-check on the next
// collide pass.
func (c *Contact) FlagForFiltering() { c.filterFlag = true }

// ContactManager owns the broad-phase and the contact list. It turns new
// broad-phase pairs into contacts and destroys contacts whose pairs stop
// overlapping or stop passing the filters.
type ContactManager struct {
	broadPhase *BroadPhase
	contacts   []*Contact
}

func newContactManager() *ContactManager {
	return &ContactManager{broadPhase: NewBroadPhase()}
}

// Contacts returns the live contact list.
func (cm *ContactManager) Contacts() []*Contact { return cm.contacts }

// FindNewContacts drains the broad-phase move buffer into new contacts.
func (cm *ContactManager) FindNewContacts() {
	cm.broadPhase.UpdatePairs(cm.addPair)
}

// addPair creates a contact for a new broad-phase pair, unless the pair is
// within one body, already tracked, or rejected by body or fixture filtering.
func (cm *ContactManager) addPair(a, b any) {
	proxyA := a.(*FixtureProxy)
	proxyB := b.(*FixtureProxy)

	fixtureA := proxyA.Fixture
	fixtureB := proxyB.Fixture
	bodyA := fixtureA.body
	bodyB := fixtureB.body

	if bodyA == bodyB {
		return
	}

	// The pair may already exist from an earlier pass. The shorter per-body
	// contact list is enough to check.
	for _, c := range bodyB.contacts {
		if c.fixtureA == fixtureA && c.fixtureB == fixtureB &&
			c.indexA == proxyA.ChildIndex && c.indexB == proxyB.ChildIndex {
			return
		}
		if c.fixtureA == fixtureB && c.fixtureB == fixtureA &&
			c.indexA == proxyB.ChildIndex && c.indexB == proxyA.ChildIndex {
			return
		}
	}

	if !bodyA.ShouldCollide(bodyB) {
		return
	}
	if !fixtureA.ShouldCollide(fixtureB) {
		return
	}

	c := &Contact{
		fixtureA: fixtureA,
		fixtureB: fixtureB,
		indexA:   proxyA.ChildIndex,
		indexB:   proxyB.ChildIndex,
	}
	cm.contacts = append(cm.contacts, c)
	bodyA.contacts = append(bodyA.contacts, c)
	bodyB.contacts = append(bodyB.contacts, c)

	if !fixtureA.sensor && !fixtureB.sensor {
		bodyA.SetAwake(true)
		bodyB.SetAwake(true)
	}
}

// Collide updates every contact: flagged contacts are re-filtered and
// destroyed if they no longer pass, contacts whose proxies stopped
// overlapping are destroyed, and the rest are marked touching.
func (cm *ContactManager) Collide() {
	for i := 0; i < len(cm.contacts); {
		c := cm.contacts[i]
		fixtureA := c.fixtureA
		fixtureB := c.fixtureB

		if c.filterFlag {
			c.filterFlag = false
			if !fixtureA.body.ShouldCollide(fixtureB.body) ||
				!fixtureA.ShouldCollide(fixtureB) {
				cm.destroy(c)
				continue
			}
		}

		idA := fixtureA.proxies[c.indexA].ID
		idB := fixtureB.proxies[c.indexB].ID
		if !cm.broadPhase.TestOverlap(idA, idB) {
			cm.destroy(c)
			continue
		}

		c.touching = true
		i++
	}
}

// destroy removes the contact from the manager and from both bodies.
func (cm *ContactManager) destroy(c *Contact) {
	if i := slices.Index(cm.contacts, c); i >= 0 {
		cm.contacts = slices.Delete(cm.contacts, i, i+1)
	}

	bodyA := c.fixtureA.body
	bodyB := c.fixtureB.body
	if bodyA != nil {
		if i := slices.Index(bodyA.contacts, c); i >= 0 {
			bodyA.contacts = slices.Delete(bodyA.contacts, i, i+1)
		}
	}
	if bodyB != nil {
		if i := slices.Index(bodyB.contacts, c); i >= 0 {
			bodyB.contacts = slices.Delete(bodyB.contacts, i, i+1)
		}
	}
}
