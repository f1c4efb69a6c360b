package portals

import "fmt"

// Geometry classifies how a portal circle sits on the boundary:
// SingleFace, Edge or Corner.
type Geometry interface {
	// Faces lists the primary face followed by any overextended faces.
	Faces() []BoundaryFace
	fmt.Stringer

	geometry()
}

// SingleFace is a portal circle lying entirely within its own face.
type SingleFace struct {
	Primary BoundaryFace
}

// Edge is a portal circle crossing one neighbouring face.
type Edge struct {
	Primary      BoundaryFace
	Overextended BoundaryFace
}

// Corner is a portal circle crossing two neighbouring faces at once.
type Corner struct {
	Primary      BoundaryFace
	Overextended [2]BoundaryFace
}

func (SingleFace) geometry() {}
func (Edge) geometry()       {}
func (Corner) geometry()     {}

func (g SingleFace) Faces() []BoundaryFace { return []BoundaryFace{g.Primary} }
func (g Edge) Faces() []BoundaryFace       { return []BoundaryFace{g.Primary, g.Overextended} }
func (g Corner) Faces() []BoundaryFace {
	return []BoundaryFace{g.Primary, g.Overextended[0], g.Overextended[1]}
}

func (g SingleFace) String() string { return fmt.Sprintf("SingleFace{%v}", g.Primary) }
func (g Edge) String() string       { return fmt.Sprintf("Edge{%v %v}", g.Primary, g.Overextended) }
func (g Corner) String() string {
	return fmt.Sprintf("Corner{%v %v %v}", g.Primary, g.Overextended[0], g.Overextended[1])
}

// OverextendedFaces returns the faces, other than the portal's own and its
// opposite, whose planes the portal circle pokes past by more than
// OverextensionEpsilon. Each of the two in-plane axes contributes at most one
// face, the low side winning if a circle is wider than the box.
func OverextendedFaces(b Boundary, p Portal) []BoundaryFace {
	min, max := b.Min(), b.Max()
	u, v := p.Face.Axis().others()

	var faces []BoundaryFace
	for _, axis := range [2]Axis{u, v} {
		switch {
		case p.Center[axis]-p.Radius < min[axis]-OverextensionEpsilon:
			faces = append(faces, faceOn(axis, false))
		case p.Center[axis]+p.Radius > max[axis]+OverextensionEpsilon:
			faces = append(faces, faceOn(axis, true))
		}
	}

	return faces
}

// Classify works out the portal's Geometry.
func Classify(b Boundary, p Portal) Geometry {
	return classify(p.Face, OverextendedFaces(b, p))
}

func classify(primary BoundaryFace, overextended []BoundaryFace) Geometry {
	switch len(overextended) {
	case 0:
		return SingleFace{Primary: primary}
	case 1:
		return Edge{Primary: primary, Overextended: overextended[0]}
	default:
		return Corner{Primary: primary, Overextended: [2]BoundaryFace{overextended[0], overextended[1]}}
	}
}
