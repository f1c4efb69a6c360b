package portals

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Axis is one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "invalid"
	}
}

// others returns the two axes perpendicular to a, in ascending order.
func (a Axis) others() (Axis, Axis) {
	switch a {
	case AxisX:
		return AxisY, AxisZ
	case AxisY:
		return AxisX, AxisZ
	default:
		return AxisX, AxisY
	}
}

// BoundaryFace is one of the six faces of the boundary box.
// Faces come in low/high pairs per axis: Left/Right on x, Bottom/Top on y,
// Back/Front on z.
type BoundaryFace int

const (
	Left BoundaryFace = iota
	Right
	Bottom
	Top
	Back
	Front
)

// AllFaces lists every face in declaration order.
var AllFaces = [6]BoundaryFace{Left, Right, Bottom, Top, Back, Front}

var faceNames = [6]string{"Left", "Right", "Bottom", "Top", "Back", "Front"}

func (f BoundaryFace) String() string {
	if !f.Valid() {
		return "BoundaryFace(invalid)"
	}

	return faceNames[f]
}

// Valid reports whether f is one of the six faces.
func (f BoundaryFace) Valid() bool {
	return f >= Left && f <= Front
}

// ParseFace parses a face name, case-insensitively.
func ParseFace(s string) (BoundaryFace, error) {
	for _, f := range AllFaces {
		if strings.EqualFold(strings.TrimSpace(s), faceNames[f]) {
			return f, nil
		}
	}

	return 0, errors.Errorf("unknown boundary face %q", s)
}

// faceOn returns the face at the high end of axis when high is set,
// otherwise the one at the low end.
func faceOn(axis Axis, high bool) BoundaryFace {
	f := BoundaryFace(axis) * 2
	if high {
		f++
	}

	return f
}

// Axis is the axis the face is perpendicular to.
func (f BoundaryFace) Axis() Axis {
	return Axis(f / 2)
}

// High reports whether the face bounds the high end of its axis.
func (f BoundaryFace) High() bool {
	return f%2 == 1
}

// Opposite is the parallel face on the other end of the same axis.
func (f BoundaryFace) Opposite() BoundaryFace {
	return f ^ 1
}

// Normal is the outward unit normal of the face.
func (f BoundaryFace) Normal() mgl32.Vec3 {
	var n mgl32.Vec3
	if f.High() {
		n[f.Axis()] = 1
	} else {
		n[f.Axis()] = -1
	}

	return n
}

// FaceForNormal looks up the face with exactly the given outward normal.
// Only the six axis-aligned unit vectors match.
func FaceForNormal(normal mgl32.Vec3) (BoundaryFace, bool) {
	for _, f := range AllFaces {
		if f.Normal() == normal {
			return f, true
		}
	}

	return 0, false
}

// Points returns the four corners of the face for a box spanning min..max.
// The face's own axis is held at its plane; the other two axes u < v walk
// (umin,vmin), (umax,vmin), (umax,vmax), (umin,vmax).
func (f BoundaryFace) Points(min, max mgl32.Vec3) [4]mgl32.Vec3 {
	axis := f.Axis()
	u, v := axis.others()

	plane := min[axis]
	if f.High() {
		plane = max[axis]
	}

	var points [4]mgl32.Vec3
	for i, uv := range [4][2]mgl32.Vec3{{min, min}, {max, min}, {max, max}, {min, max}} {
		points[i][axis] = plane
		points[i][u] = uv[0][u]
		points[i][v] = uv[1][v]
	}

	return points
}

// SharesAxis reports whether a and b are the same face or opposite faces.
// Points on one such face can never cross the plane of the other.
func SharesAxis(a, b BoundaryFace) bool {
	return a.Axis() == b.Axis()
}
