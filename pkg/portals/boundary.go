package portals

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/saiko-tech/boundary-portals/pkg/portals/intersect"
)

const (
	// SnapEpsilon is how far inside a face plane Snap puts a position.
	SnapEpsilon = float32(0.01)

	// OverextensionEpsilon is the slack a portal circle may poke past a
	// neighbouring face before that face counts as overextended. It must
	// exceed SnapEpsilon so a portal snapped flush against an adjacent wall
	// is not classified as crossing it.
	OverextensionEpsilon = SnapEpsilon * 2

	nearestFaceEpsilon = float32(0.001)

	// DefaultScalar and DefaultCellCount size the default playfield.
	DefaultScalar = float32(110)
)

// DefaultCellCount is the default playfield grid in cells per axis.
var DefaultCellCount = [3]uint32{3, 2, 1}

// Boundary is the axis-aligned box enclosing the playfield.
// Extents are full edge lengths and must be positive on every axis.
type Boundary struct {
	Center  mgl32.Vec3
	Extents mgl32.Vec3
}

// NewBoundary validates extents and returns the boundary.
func NewBoundary(center, extents mgl32.Vec3) (Boundary, error) {
	for i, e := range extents {
		if !(e > 0) || e > mgl32.MaxValue {
			return Boundary{}, errors.Errorf("boundary extent on %s must be positive and finite, got %v", Axis(i), e)
		}
	}

	return Boundary{Center: center, Extents: extents}, nil
}

// BoundaryFromCells sizes a boundary centered at center as scalar * cells.
func BoundaryFromCells(center mgl32.Vec3, scalar float32, cells [3]uint32) (Boundary, error) {
	extents := mgl32.Vec3{float32(cells[0]), float32(cells[1]), float32(cells[2])}.Mul(scalar)

	return NewBoundary(center, extents)
}

// DefaultBoundary is the playfield the game starts with.
func DefaultBoundary() Boundary {
	b, _ := BoundaryFromCells(mgl32.Vec3{}, DefaultScalar, DefaultCellCount)
	return b
}

// Min is the low corner.
func (b Boundary) Min() mgl32.Vec3 {
	return b.Center.Sub(b.Extents.Mul(0.5))
}

// Max is the high corner.
func (b Boundary) Max() mgl32.Vec3 {
	return b.Center.Add(b.Extents.Mul(0.5))
}

// Plane is the coordinate of the face's plane along the face's axis.
func (b Boundary) Plane(f BoundaryFace) float32 {
	if f.High() {
		return b.Max()[f.Axis()]
	}

	return b.Min()[f.Axis()]
}

// FacePoints returns the four corners of face f.
func (b Boundary) FacePoints(f BoundaryFace) [4]mgl32.Vec3 {
	return f.Points(b.Min(), b.Max())
}

// Contains reports whether p lies inside or on the box.
func (b Boundary) Contains(p mgl32.Vec3) bool {
	min, max := b.Min(), b.Max()
	for i := range p {
		if p[i] < min[i] || p[i] > max[i] {
			return false
		}
	}

	return true
}

// Corners returns the 8 corners of the box.
func (b Boundary) Corners() [8]mgl32.Vec3 {
	min, max := b.Min(), b.Max()

	var corners [8]mgl32.Vec3
	for i := range corners {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				corners[i][axis] = max[axis]
			} else {
				corners[i][axis] = min[axis]
			}
		}
	}

	return corners
}

// LongestDiagonal is the corner to corner distance.
func (b Boundary) LongestDiagonal() float32 {
	return b.Extents.Len()
}

// SmallestExtent is the shortest edge length of the box.
func (b Boundary) SmallestExtent() float32 {
	return math32.Min(b.Extents[0], math32.Min(b.Extents[1], b.Extents[2]))
}

// Wrap teleports a position that reached or crossed a face to the opposite
// side, keeping its offset past the face. Each axis wraps independently.
func (b Boundary) Wrap(p mgl32.Vec3) mgl32.Vec3 {
	min, max := b.Min(), b.Max()

	out := p
	for i := range p {
		if p[i] >= max[i] {
			out[i] = min[i] + (p[i] - max[i])
		} else if p[i] <= min[i] {
			out[i] = max[i] - (min[i] - p[i])
		}
	}

	return out
}

// Snap moves p SnapEpsilon inside the plane of face f and clamps the other
// two axes into the box.
func (b Boundary) Snap(p mgl32.Vec3, f BoundaryFace) mgl32.Vec3 {
	min, max := b.Min(), b.Max()
	axis := f.Axis()
	u, v := axis.others()

	out := p
	if f.High() {
		out[axis] = max[axis] - SnapEpsilon
	} else {
		out[axis] = min[axis] + SnapEpsilon
	}

	out[u] = mgl32.Clamp(out[u], min[u], max[u])
	out[v] = mgl32.Clamp(out[v], min[v], max[v])

	return out
}

// NearestFace returns the face whose plane is closest to p. Ties within a
// small tolerance go to the face that comes first in AllFaces.
func (b Boundary) NearestFace(p mgl32.Vec3) BoundaryFace {
	var distances [6]float32

	closest := mgl32.MaxValue
	for _, f := range AllFaces {
		distances[f] = math32.Abs(p[f.Axis()] - b.Plane(f))
		closest = math32.Min(closest, distances[f])
	}

	for _, f := range AllFaces {
		if distances[f]-closest < nearestFaceEpsilon {
			return f
		}
	}

	return Left
}

// EdgePoint returns where a ray from origin along direction first crosses
// the boundary.
func (b Boundary) EdgePoint(origin, direction mgl32.Vec3) (mgl32.Vec3, bool) {
	r := intersect.RayAxisAlignedBox(origin, direction, b.Min(), b.Max())
	if !r.Hit {
		return mgl32.Vec3{}, false
	}

	return r.Point, true
}

// PortalAt snaps position onto its nearest face and returns a portal there.
// The face is looked up again after snapping since clamping near a corner
// can leave the position closer to a different face.
func (b Boundary) PortalAt(position mgl32.Vec3, radius float32) Portal {
	snapped := b.Snap(position, b.NearestFace(position))

	return Portal{
		Center: snapped,
		Radius: radius,
		Face:   b.NearestFace(snapped),
	}
}

// ApproachingPortal returns the portal for an actor at position moving with
// velocity, if the wall it is heading for is within approach.Distance. The
// radius shrinks once the actor is within approach.Shrink of the wall, see
// ApproachingRadius.
func (b Boundary) ApproachingPortal(position, velocity mgl32.Vec3, radius float32, approach Approach) (Portal, bool) {
	if velocity.Len() == 0 {
		return Portal{}, false
	}

	hit, ok := b.EdgePoint(position, velocity.Normalize())
	if !ok {
		return Portal{}, false
	}

	distance := position.Sub(hit).Len()
	if distance > approach.Distance {
		return Portal{}, false
	}

	return b.PortalAt(hit, ApproachingRadius(radius, distance, approach.Shrink)), true
}
