package planck

import "github.com/setanarut/vec"

// Filter controls which fixture pairs may collide.
//
// Two fixtures on the same nonzero GroupIndex always collide when the index
// is positive and never when it is negative, regardless of category and mask.
// Otherwise each fixture's CategoryBits must be accepted by the other's
// MaskBits, in both directions.
type Filter struct {
	CategoryBits uint16
	MaskBits     uint16
	GroupIndex   int16
}

// DefaultFilter returns the default filter: category 1, all mask bits set,
// no group.
func DefaultFilter() Filter {
	return Filter{CategoryBits: 0x0001, MaskBits: 0xFFFF}
}

// Accepts reports whether f and other collide under the group/category/mask
// rules.
func (f Filter) Accepts(other Filter) bool {
	if f.GroupIndex == other.GroupIndex && f.GroupIndex != 0 {
		return f.GroupIndex > 0
	}
	return f.MaskBits&other.CategoryBits != 0 && f.CategoryBits&other.MaskBits != 0
}

// FixtureDef collects the parameters for creating a fixture. The fields are
// used exactly as given; build defs from DefaultFixtureDef to start from the
// stock values. A zero Filter collides with nothing.
type FixtureDef struct {
	// Shape is required. The fixture keeps a reference, not a copy.
	Shape Shape

	UserData    any
	Friction    float64
	Restitution float64
	Density     float64
	IsSensor    bool
	Filter      Filter
}

// DefaultFixtureDef returns a def with the stock material values: friction
// 0.2, zero restitution and density, not a sensor, default filter.
func DefaultFixtureDef() FixtureDef {
	return FixtureDef{
		Friction: 0.2,
		Filter:   DefaultFilter(),
	}
}

// FixtureProxy connects one shape child to its broad-phase proxy.
type FixtureProxy struct {
	// AABB is the tight bounds last pushed to the index, before fattening.
	AABB       AABB
	Fixture    *Fixture
	ChildIndex int
	ID         ProxyID
}

// Fixture binds a shape to a body. It carries the material and filter data
// the shape itself does not, and owns one broad-phase proxy per shape child.
// Fixtures are created through Body.CreateFixture; the shape reference is
// fixed for the fixture's lifetime.
type Fixture struct {
	body  *Body
	shape Shape

	friction    float64
	restitution float64
	density     float64
	sensor      bool
	filter      Filter
	userData    any

	proxies    []FixtureProxy
	proxyCount int
}

func newFixture(body *Body, def FixtureDef) *Fixture {
	assert(def.Shape != nil, "fixture def has no shape")
	assert(def.Density >= 0.0 && validFloat(def.Density), "fixture density must be finite and non-negative")

	f := &Fixture{
		body:        body,
		shape:       def.Shape,
		friction:    def.Friction,
		restitution: def.Restitution,
		density:     def.Density,
		sensor:      def.IsSensor,
		filter:      def.Filter,
		userData:    def.UserData,
	}
	f.proxies = make([]FixtureProxy, def.Shape.ChildCount())
	return f
}

// Body returns the body this fixture is attached to.
func (f *Fixture) Body() *Body { return f.body }

// Shape returns the fixture's shape. Do not swap the shape out; geometry
// edits need a Reset afterward.
func (f *Fixture) Shape() Shape { return f.shape }

// Type returns the shape kind.
func (f *Fixture) Type() ShapeType { return f.shape.Type() }

// IsSensor reports whether the fixture detects overlap without generating a
// collision response.
func (f *Fixture) IsSensor() bool { return f.sensor }

// SetSensor flips the sensor flag and wakes the body so existing contacts
// get re-evaluated.
func (f *Fixture) SetSensor(sensor bool) {
	if sensor != f.sensor {
		if f.body != nil {
			f.body.SetAwake(true)
		}
		f.sensor = sensor
	}
}

// UserData returns the application data attached to the fixture.
func (f *Fixture) UserData() any { return f.userData }

// SetUserData attaches application data to the fixture.
func (f *Fixture) SetUserData(data any) { f.userData = data }

// Friction returns the friction coefficient.
func (f *Fixture) Friction() float64 { return f.friction }

// SetFriction sets the friction coefficient. Existing contacts keep their
// mixed friction until they are re-evaluated.
func (f *Fixture) SetFriction(friction float64) { f.friction = friction }

// Restitution returns the restitution (bounciness).
func (f *Fixture) Restitution() float64 { return f.restitution }

// SetRestitution sets the restitution. Existing contacts keep their mixed
// restitution until they are re-evaluated.
func (f *Fixture) SetRestitution(restitution float64) { f.restitution = restitution }

// Density returns the mass density.
func (f *Fixture) Density() float64 { return f.density }

// SetDensity sets the mass density. Call Body.ResetMassData to make it take
// effect.
func (f *Fixture) SetDensity(density float64) {
	assert(density >= 0.0 && validFloat(density), "fixture density must be finite and non-negative")
	f.density = density
}

// FilterData returns the collision filter.
func (f *Fixture) FilterData() Filter { return f.filter }

// SetFilterData replaces the collision filter and re-evaluates existing
// contacts.
func (f *Fixture) SetFilterData(filter Filter) {
	f.filter = filter
	f.Refilter()
}

// SetGroupIndex updates only the filter group.
func (f *Fixture) SetGroupIndex(group int16) {
	f.filter.GroupIndex = group
	f.Refilter()
}

// SetCategoryBits updates only the filter category.
func (f *Fixture) SetCategoryBits(bits uint16) {
	f.filter.CategoryBits = bits
	f.Refilter()
}

// SetMaskBits updates only the filter mask.
func (f *Fixture) SetMaskBits(bits uint16) {
	f.filter.MaskBits = bits
	f.Refilter()
}

// Refilter flags every contact involving this fixture for a filter recheck
// and touches the fixture's proxies so dropped pairs can be rediscovered. It
// is a no-op on a detached fixture.
func (f *Fixture) Refilter() {
	if f.body == nil {
		return
	}

	for _, c := range f.body.contacts {
		if c.fixtureA == f || c.fixtureB == f {
			c.FlagForFiltering()
		}
	}

	world := f.body.world
	if world == nil {
		return
	}
	for i := 0; i < f.proxyCount; i++ {
		world.contactManager.broadPhase.TouchProxy(f.proxies[i].ID)
	}
}

// ShouldCollide reports whether this fixture's filter and other's accept
// each other. The relation is symmetric.
func (f *Fixture) ShouldCollide(other *Fixture) bool {
	return f.filter.Accepts(other.filter)
}

// ProxyCount returns the number of live broad-phase proxies, which is the
// shape's child count while registered and zero otherwise.
func (f *Fixture) ProxyCount() int { return f.proxyCount }

// AABB returns the tight bounds last pushed to the broad-phase for one child.
func (f *Fixture) AABB(childIndex int) AABB {
	assert(0 <= childIndex && childIndex < f.proxyCount, "fixture child index out of range")
	return f.proxies[childIndex].AABB
}

// TestPoint reports whether the world point p is inside the fixture's shape.
func (f *Fixture) TestPoint(p vec.Vec2) bool {
	return f.shape.TestPoint(f.body.transform, p)
}

// RayCast casts a ray against one child of the fixture's shape.
func (f *Fixture) RayCast(output *RayCastOutput, input RayCastInput, childIndex int) bool {
	return f.shape.RayCast(output, input, f.body.transform, childIndex)
}

// MassData returns the mass properties of the shape at the fixture's density.
func (f *Fixture) MassData() MassData {
	return f.shape.ComputeMass(f.density)
}

// CreateProxies registers one proxy per shape child under xf. The fixture
// must not already have proxies; double registration would leak the old ones.
func (f *Fixture) CreateProxies(index SpatialIndex, xf Transform) {
	assert(f.proxyCount == 0, "fixture proxies already created")

	f.proxyCount = f.shape.ChildCount()
	for i := 0; i < f.proxyCount; i++ {
		proxy := &f.proxies[i]
		proxy.AABB = f.shape.ComputeAABB(xf, i)
		proxy.Fixture = f
		proxy.ChildIndex = i
		proxy.ID = index.RegisterProxy(proxy.AABB, proxy)
	}
}

// DestroyProxies deregisters the fixture's proxies. Safe to call when none
// exist.
func (f *Fixture) DestroyProxies(index SpatialIndex) {
	for i := 0; i < f.proxyCount; i++ {
		index.DeregisterProxy(f.proxies[i].ID)
		f.proxies[i].ID = NullProxy
	}
	f.proxyCount = 0
}

// Synchronize moves the proxies to cover a step from xf1 to xf2. Each proxy's
// new bounds are the union of the child's bounds under both transforms, an
// approximation of the volume swept during the step, and the displacement
// hint is the translation between the transforms.
func (f *Fixture) Synchronize(index SpatialIndex, xf1, xf2 Transform) {
	for i := 0; i < f.proxyCount; i++ {
		proxy := &f.proxies[i]

		aabb1 := f.shape.ComputeAABB(xf1, proxy.ChildIndex)
		aabb2 := f.shape.ComputeAABB(xf2, proxy.ChildIndex)
		proxy.AABB = aabb1.Combine(aabb2)

		displacement := xf2.P.Sub(xf1.P)
		index.MoveProxy(proxy.ID, proxy.AABB, displacement)
	}
}

// Reset re-derives everything cached from the shape after its geometry was
// mutated in place: cached shape data, the proxy set (the child count may
// have changed), and the body's mass data. Contacts involving the fixture are
// destroyed, since their child indices point into the proxy set being
// replaced; overlapping pairs are rediscovered on the next step.
func (f *Fixture) Reset() {
	if r, ok := f.shape.(shapeRefresher); ok {
		r.RefreshCachedData()
	}

	body := f.body
	if body == nil {
		return
	}

	if body.world != nil {
		for i := 0; i < len(body.contacts); {
			c := body.contacts[i]
			if c.fixtureA == f || c.fixtureB == f {
				body.world.contactManager.destroy(c)
			} else {
				i++
			}
		}
	}

	var index SpatialIndex
	if body.world != nil {
		index = body.world.contactManager.broadPhase
	}

	if index != nil && f.proxyCount > 0 {
		f.DestroyProxies(index)
	}
	f.proxies = make([]FixtureProxy, f.shape.ChildCount())
	if index != nil && body.enabled {
		f.CreateProxies(index, body.transform)
	}
	body.ResetMassData()
}
