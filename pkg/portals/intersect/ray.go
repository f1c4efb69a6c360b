package intersect

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RayCastResult is the outcome of a ray test.
type RayCastResult struct {
	T     float32
	Hit   bool
	Point mgl32.Vec3
}

// RayAxisAlignedBox finds where a ray first crosses the surface of an
// axis-aligned box using the slab method. For an origin inside the box that
// is the exit point, for an origin outside it is the entry point.
func RayAxisAlignedBox(origin, direction, min, max mgl32.Vec3) (r RayCastResult) {
	if direction.Len() == 0 {
		return r
	}

	// zero components would divide by zero, a tiny step keeps the slabs finite
	dir := direction
	for i := range dir {
		if dir[i] == 0 {
			dir[i] = 0.00001
		}
	}

	t1 := (min[0] - origin[0]) / dir[0]
	t2 := (max[0] - origin[0]) / dir[0]
	t3 := (min[1] - origin[1]) / dir[1]
	t4 := (max[1] - origin[1]) / dir[1]
	t5 := (min[2] - origin[2]) / dir[2]
	t6 := (max[2] - origin[2]) / dir[2]

	tmin := math32.Max(math32.Max(math32.Min(t1, t2), math32.Min(t3, t4)), math32.Min(t5, t6))
	tmax := math32.Min(math32.Min(math32.Max(t1, t2), math32.Max(t3, t4)), math32.Max(t5, t6))

	// box entirely behind the origin
	if tmax < 0 {
		return r
	}

	// slabs never overlap, ray misses the box
	if tmin > tmax {
		return r
	}

	t := tmin
	if tmin <= 0 {
		t = tmax
	}

	if t <= 0 {
		return r
	}

	r.Hit = true
	r.T = t
	r.Point = origin.Add(direction.Mul(t))

	return r
}
