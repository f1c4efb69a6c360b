package portals

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/saiko-tech/boundary-portals/pkg/portals/intersect"
)

const (
	minPointsForArc = 2

	// slack when testing whether an arc midpoint lies on its face
	arcFaceTolerance = float32(1e-3)
)

// ArcMode tells how an arc's center was chosen.
type ArcMode int

const (
	// PrimaryArc is drawn around the portal's own center on its own face.
	PrimaryArc ArcMode = iota
	// WrappedArc is drawn around the portal center folded onto a
	// neighbouring face about the edge it shares with the primary face.
	WrappedArc
)

func (m ArcMode) String() string {
	if m == WrappedArc {
		return "wrapped"
	}

	return "primary"
}

// Circle is a full circle in the plane through Center with the given Normal.
type Circle struct {
	Center mgl32.Vec3
	Normal mgl32.Vec3
	Radius float32
}

// Arc is the visible piece of a portal on one face. It starts at From and
// sweeps Sweep radians counter-clockwise about Normal around Center, ending
// at To.
type Arc struct {
	Face   BoundaryFace
	Mode   ArcMode
	Center mgl32.Vec3
	Normal mgl32.Vec3
	Radius float32
	From   mgl32.Vec3
	To     mgl32.Vec3
	Sweep  float32
}

// Plan is everything a drawer needs to render one portal.
type Plan struct {
	Portal   Portal
	Geometry Geometry
	// Arcs is empty for SingleFace geometry. Faces whose circle leaves fewer
	// than two constrained points are left out.
	Arcs []Arc
}

// BuildPlan classifies the portal and computes its arcs.
func BuildPlan(b Boundary, p Portal) Plan {
	overextended := OverextendedFaces(b, p)
	geometry := classify(p.Face, overextended)

	plan := Plan{Portal: p, Geometry: geometry}
	if len(overextended) == 0 {
		return plan
	}

	for _, face := range geometry.Faces() {
		if arc, ok := faceArc(b, p, face, overextended); ok {
			plan.Arcs = append(plan.Arcs, arc)
		}
	}

	return plan
}

// FaceCount is how many faces the portal is visible on.
func FaceCount(b Boundary, p Portal) int {
	return BuildPlan(b, p).FaceCount()
}

// FaceCount is 1 for a single-face portal, else the number of arcs.
func (p Plan) FaceCount() int {
	if _, ok := p.Geometry.(SingleFace); ok {
		return 1
	}

	return len(p.Arcs)
}

// FullCircle returns the circle to draw for a single-face portal.
func (p Plan) FullCircle() (Circle, bool) {
	if _, ok := p.Geometry.(SingleFace); !ok {
		return Circle{}, false
	}

	return Circle{Center: p.Portal.Center, Normal: p.Portal.Normal(), Radius: p.Portal.Radius}, true
}

func faceArc(b Boundary, p Portal, face BoundaryFace, overextended []BoundaryFace) (Arc, bool) {
	arc := Arc{
		Face:   face,
		Mode:   PrimaryArc,
		Center: p.Center,
		Normal: face.Normal(),
		Radius: p.Radius,
	}

	if face != p.Face {
		arc.Mode = WrappedArc
		arc.Center = b.wrapCenter(p.Center, p.Face, face)
	}

	// wrapped faces meet the folded circle, not the primary one projected
	min, max := b.Min(), b.Max()
	raw := intersect.CircleRectangle(arc.Center, arc.Radius, arc.Normal, face.Points(min, max))

	points := ConstrainPoints(raw, face, overextended, min, max)
	if len(points) < minPointsForArc {
		return Arc{}, false
	}

	arc.From, arc.To, arc.Sweep = sweepOnFace(b, face, arc.Center, arc.Normal, points[0], points[1])

	return arc, true
}

// wrapCenter folds a portal center lying on primary over the edge shared
// with target: a quarter turn about that edge, then pinned onto target's
// plane. Points on the shared edge keep their distance to the center, so
// both arcs meet there.
func (b Boundary) wrapCenter(center mgl32.Vec3, primary, target BoundaryFace) mgl32.Vec3 {
	axis := primary.Normal().Cross(target.Normal()).Normalize()
	pivot := b.sharedEdgePoint(center, primary, target)

	rotation := mgl32.QuatRotate(math32.Pi/2, axis)
	wrapped := pivot.Add(rotation.Rotate(center.Sub(pivot)))

	// the inset from the primary plane rotates off the target plane
	wrapped[target.Axis()] = b.Plane(target)

	return wrapped
}

// sharedEdgePoint is the point on the edge between two adjacent faces
// closest to p.
func (b Boundary) sharedEdgePoint(p mgl32.Vec3, f1, f2 BoundaryFace) mgl32.Vec3 {
	out := p
	out[f1.Axis()] = b.Plane(f1)
	out[f2.Axis()] = b.Plane(f2)

	return out
}

// sweepOnFace picks which of the two arcs between from and to lies on the
// face: the one whose midpoint is inside the face rectangle. When neither
// or both qualify the shorter arc is used.
func sweepOnFace(b Boundary, face BoundaryFace, center, normal, from, to mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3, float32) {
	u := inPlane(from.Sub(center), normal)
	v := inPlane(to.Sub(center), normal)

	angle := math32.Atan2(normal.Dot(u.Cross(v)), u.Dot(v))
	if angle < 0 {
		angle += 2 * math32.Pi
	}

	shortest := func() (mgl32.Vec3, mgl32.Vec3, float32) {
		if angle <= math32.Pi {
			return from, to, angle
		}

		return to, from, 2*math32.Pi - angle
	}

	mid := center.Add(mgl32.QuatRotate(angle/2, normal).Rotate(u))
	opposite := center.Sub(mid.Sub(center))

	midOnFace := b.onFace(face, mid)
	oppositeOnFace := b.onFace(face, opposite)

	switch {
	case midOnFace && !oppositeOnFace:
		return from, to, angle
	case oppositeOnFace && !midOnFace:
		return to, from, 2*math32.Pi - angle
	default:
		return shortest()
	}
}

func inPlane(v, normal mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(normal.Mul(v.Dot(normal)))
}

// onFace tests the two in-plane coordinates of p against face f.
func (b Boundary) onFace(f BoundaryFace, p mgl32.Vec3) bool {
	min, max := b.Min(), b.Max()
	u, v := f.Axis().others()

	for _, axis := range [2]Axis{u, v} {
		if p[axis] < min[axis]-arcFaceTolerance || p[axis] > max[axis]+arcFaceTolerance {
			return false
		}
	}

	return true
}
