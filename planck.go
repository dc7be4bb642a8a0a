// Package planck is a small 2D rigid body physics library built around a
// fixture layer: immutable collision shapes are bound to movable bodies, each
// indivisible piece of a shape gets one proxy in a shared broad-phase index,
// and a three-tier filter (group, category, mask) decides which fixture pairs
// may generate contacts at all.
package planck

import (
	"math"

	"github.com/setanarut/vec"
)

const (
	// maxPolygonVertices is the vertex limit for convex polygon shapes.
	maxPolygonVertices = 8

	// aabbExtension fattens proxy bounds in the dynamic tree so that shapes
	// can move by small amounts without triggering a tree update.
	aabbExtension = 0.1

	// aabbMultiplier scales the displacement hint when predicting where a
	// moving proxy will need bounds next.
	aabbMultiplier = 2.0

	// linearSlop is a small length used as a collision tolerance.
	linearSlop = 0.005

	// polygonRadius is the skin thickness around polygon and edge shapes.
	polygonRadius = 2.0 * linearSlop

	epsilon = math.SmallestNonzeroFloat64
)

// assert reports a broken invariant. These are programming errors, not
// recoverable runtime conditions, so execution does not continue.
func assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

func vecMin(a, b vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

func vecMax(a, b vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

func validFloat(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
