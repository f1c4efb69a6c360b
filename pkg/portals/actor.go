package portals

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// PortalSmallest is the smallest actor size a portal is sized for.
	PortalSmallest = float32(5)
	// PortalScalar turns an actor size into a portal radius.
	PortalScalar = float32(2)

	// DefaultApproachFraction and DefaultShrinkFraction scale the smallest
	// boundary extent into the distances from the wall at which an
	// approaching portal opens and starts to shrink.
	DefaultApproachFraction = float32(0.5)
	DefaultShrinkFraction   = float32(0.25)

	// a shrunk portal keeps half its radius so the actor's box still fits
	minRadiusFraction = float32(0.5)

	// wrapped positions farther than this many half diagonals from the
	// center were thrown there by the physics step and get no portal
	burstHalfDiagonals = float32(2)
)

// ActorRadius is the portal radius for an actor whose bounding box has the
// given size (full edge lengths).
func ActorRadius(size mgl32.Vec3) float32 {
	largest := math32.Max(size[0], math32.Max(size[1], size[2]))

	return math32.Max(largest, PortalSmallest) * PortalScalar
}

// Approach holds the distances from the wall at which an approaching actor's
// portal opens (Distance) and starts to shrink (Shrink).
type Approach struct {
	Distance float32
	Shrink   float32
}

// DefaultApproach scales the smallest extent of b by DefaultApproachFraction
// and DefaultShrinkFraction.
func (b Boundary) DefaultApproach() Approach {
	smallest := b.SmallestExtent()

	return Approach{
		Distance: DefaultApproachFraction * smallest,
		Shrink:   DefaultShrinkFraction * smallest,
	}
}

// ApproachingRadius is the radius of an approaching portal whose actor is
// distance away from the wall. The full radius is kept outside the shrink
// zone, inside it the radius falls linearly to half of radius at the wall.
// A shrink zone of zero or less never shrinks.
func ApproachingRadius(radius, distance, shrink float32) float32 {
	if !(shrink > 0) || distance > shrink {
		return radius
	}

	floor := radius * minRadiusFraction
	scale := mgl32.Clamp(distance/shrink, 0, 1)

	return floor + (radius-floor)*scale
}

// IsBurst reports whether p is more than two half diagonals from the center
// of b, farther than any wrap can move an actor.
func (b Boundary) IsBurst(p mgl32.Vec3) bool {
	return p.Sub(b.Center).Len() > b.Extents.Mul(0.5).Len()*burstHalfDiagonals
}

// EmergingPortal returns the portal an actor at position comes out of: the
// portal at its wrapped position on the opposite side. ok is false when
// position does not wrap, or wraps to a burst position.
func (b Boundary) EmergingPortal(position mgl32.Vec3, radius float32) (p Portal, ok bool) {
	wrapped := b.Wrap(position)
	if wrapped == position || b.IsBurst(wrapped) {
		return Portal{}, false
	}

	return b.PortalAt(wrapped, radius), true
}
