package portals

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Drawer turns plans into screen output. Color and line styling are the
// drawer's business.
type Drawer interface {
	Circle(c Circle)
	Arc(a Arc)
}

// Draw hands the plan to d: one full circle for a single-face portal,
// otherwise one call per arc.
func (p Plan) Draw(d Drawer) {
	if c, ok := p.FullCircle(); ok {
		d.Circle(c)
		return
	}

	for _, a := range p.Arcs {
		d.Arc(a)
	}
}

// Points samples the circle into resolution+1 points, first and last equal.
func (c Circle) Points(resolution int) []mgl32.Vec3 {
	if resolution < 1 {
		resolution = 1
	}

	start := perpendicular(c.Normal).Mul(c.Radius)

	points := make([]mgl32.Vec3, resolution+1)
	for i := range points {
		angle := 2 * math32.Pi * float32(i) / float32(resolution)
		points[i] = c.Center.Add(mgl32.QuatRotate(angle, c.Normal).Rotate(start))
	}

	return points
}

// Points samples the arc from From to To into resolution+1 points.
func (a Arc) Points(resolution int) []mgl32.Vec3 {
	if resolution < 1 {
		resolution = 1
	}

	start := a.From.Sub(a.Center)

	points := make([]mgl32.Vec3, resolution+1)
	for i := range points {
		angle := a.Sweep * float32(i) / float32(resolution)
		points[i] = a.Center.Add(mgl32.QuatRotate(angle, a.Normal).Rotate(start))
	}

	return points
}

// perpendicular returns a unit vector orthogonal to n.
func perpendicular(n mgl32.Vec3) mgl32.Vec3 {
	other := mgl32.Vec3{1, 0, 0}
	if math32.Abs(n.X()) > 0.9 {
		other = mgl32.Vec3{0, 1, 0}
	}

	return n.Cross(other).Normalize()
}
