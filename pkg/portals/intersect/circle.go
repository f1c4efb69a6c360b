// Package intersect holds the leaf geometry used by portal planning:
// circle vs segment, circle vs rectangle and ray vs axis-aligned box.
package intersect

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// roots this close outside [0, 1] are clamped onto the segment end
	rootClampEpsilon = float32(1e-5)
	// two roots closer than this are the same tangent point
	doubleRootEpsilon = 1e-6
	degenerateEpsilon = 1e-12
)

// CircleSegment intersects the circle (center, radius) lying in the plane
// with the given normal against the segment a-b.
//
// Distances are measured inside the circle's plane: the component of
// (point - center) along normal is ignored. A circle whose center sits a
// little off the segment's plane (a snapped portal) therefore still meets
// the segment at its in-plane radius. A zero normal turns the test into a
// sphere test.
//
// Returns 0, 1 or 2 points, larger parameter first.
func CircleSegment(center mgl32.Vec3, radius float32, normal, a, b mgl32.Vec3) []mgl32.Vec3 {
	edge := b.Sub(a)

	n := widen(normal)
	edgeInPlane := inPlane(widen(edge), n)
	startInPlane := inPlane(widen(a.Sub(center)), n)

	qa := edgeInPlane.LenSqr()
	if qa < degenerateEpsilon {
		// segment runs along the normal, it has no extent in the circle's plane
		return nil
	}

	// Solved about the foot of the perpendicular from the center. Expanding
	// from a instead loses r² against |a - center|² once the crossing is far
	// along a long edge.
	t0 := -startInPlane.Dot(edgeInPlane) / qa
	foot := startInPlane.Add(edgeInPlane.Mul(t0))

	r := float64(radius)

	halfChordSqr := r*r - foot.LenSqr()
	if halfChordSqr < 0 {
		return nil
	}

	dt := math.Sqrt(halfChordSqr / qa)
	t1 := float32(t0 + dt)
	t2 := float32(t0 - dt)

	var points []mgl32.Vec3

	if t, ok := clampRoot(t1); ok {
		points = append(points, a.Add(edge.Mul(t)))
	}

	if t, ok := clampRoot(t2); ok && 2*dt > doubleRootEpsilon {
		points = append(points, a.Add(edge.Mul(t)))
	}

	return points
}

func widen(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

func inPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(normal.Mul(v.Dot(normal)))
}

func clampRoot(t float32) (float32, bool) {
	switch {
	case t < -rootClampEpsilon || t > 1+rootClampEpsilon:
		return 0, false
	case t < 0:
		return 0, true
	case t > 1:
		return 1, true
	default:
		return t, true
	}
}

// CircleRectangle intersects the circle with each edge
// (corners[i], corners[(i+1)%4]) of a rectangle and concatenates the results.
// Points are not deduplicated: a circle passing exactly through a corner
// yields that corner once per adjacent edge.
func CircleRectangle(center mgl32.Vec3, radius float32, normal mgl32.Vec3, corners [4]mgl32.Vec3) []mgl32.Vec3 {
	var points []mgl32.Vec3

	for i := range corners {
		points = append(points, CircleSegment(center, radius, normal, corners[i], corners[(i+1)%len(corners)])...)
	}

	return points
}
