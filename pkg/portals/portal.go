// Package portals works out how a portal circle wraps around the faces of
// the axis-aligned playfield boundary. A portal inside its face is drawn as
// a full circle; one crossing an edge or a corner is split into two or three
// arcs, one per face, that meet along the shared edges.
package portals

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Portal is the circle shown on a boundary face when an actor nears it.
// Center sits on, or within SnapEpsilon of, the plane of Face.
type Portal struct {
	Center mgl32.Vec3
	Radius float32
	Face   BoundaryFace
}

// NewPortal validates radius and face.
func NewPortal(center mgl32.Vec3, radius float32, face BoundaryFace) (Portal, error) {
	if !(radius > 0) {
		return Portal{}, errors.Errorf("portal radius must be positive, got %v", radius)
	}

	if !face.Valid() {
		return Portal{}, errors.Errorf("invalid boundary face %d", int(face))
	}

	return Portal{Center: center, Radius: radius, Face: face}, nil
}

// Normal is the outward normal of the portal's face.
func (p Portal) Normal() mgl32.Vec3 {
	return p.Face.Normal()
}
