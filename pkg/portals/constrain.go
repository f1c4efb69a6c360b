package portals

import "github.com/go-gl/mathgl/mgl32"

// ConstrainPoints drops the points that lie past the plane of any
// overextended face, i.e. points belonging to a neighbouring face. Faces
// sharing an axis with current are skipped since current's points all sit on
// its own plane.
//
// The comparison is exact: intersection points land exactly on face edges.
func ConstrainPoints(points []mgl32.Vec3, current BoundaryFace, overextended []BoundaryFace, min, max mgl32.Vec3) []mgl32.Vec3 {
	kept := make([]mgl32.Vec3, 0, len(points))

	for _, p := range points {
		if withinFace(p, current, overextended, min, max) {
			kept = append(kept, p)
		}
	}

	return kept
}

func withinFace(p mgl32.Vec3, current BoundaryFace, overextended []BoundaryFace, min, max mgl32.Vec3) bool {
	for _, other := range overextended {
		if SharesAxis(current, other) {
			continue
		}

		axis := other.Axis()
		if other.High() {
			if p[axis] > max[axis] {
				return false
			}
		} else if p[axis] < min[axis] {
			return false
		}
	}

	return true
}
