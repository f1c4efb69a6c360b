package intersect

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backNormal = mgl32.Vec3{0, 0, -1}

func TestCircleSegment(t *testing.T) {
	t.Parallel()

	type args struct {
		center mgl32.Vec3
		radius float32
		a, b   mgl32.Vec3
	}
	tests := []struct {
		name string
		args args
		want []mgl32.Vec3
	}{
		{
			name: "miss",
			args: args{center: mgl32.Vec3{0, 0, -55}, radius: 10, a: mgl32.Vec3{-55, 55, -55}, b: mgl32.Vec3{55, 55, -55}},
			want: nil,
		},
		{
			name: "chord",
			args: args{center: mgl32.Vec3{0, 50, -55}, radius: 13, a: mgl32.Vec3{-55, 55, -55}, b: mgl32.Vec3{55, 55, -55}},
			want: []mgl32.Vec3{{12, 55, -55}, {-12, 55, -55}},
		},
		{
			name: "one root past segment end",
			args: args{center: mgl32.Vec3{-50, 50, -55}, radius: 13, a: mgl32.Vec3{-55, 55, -55}, b: mgl32.Vec3{55, 55, -55}},
			want: []mgl32.Vec3{{-38, 55, -55}},
		},
		{
			name: "tangent yields one point",
			args: args{center: mgl32.Vec3{0, 45, -55}, radius: 10, a: mgl32.Vec3{-55, 55, -55}, b: mgl32.Vec3{55, 55, -55}},
			want: []mgl32.Vec3{{0, 55, -55}},
		},
		{
			name: "off-plane center measured in plane",
			args: args{center: mgl32.Vec3{0, 50, -54.99}, radius: 13, a: mgl32.Vec3{-55, 55, -55}, b: mgl32.Vec3{55, 55, -55}},
			want: []mgl32.Vec3{{12, 55, -55}, {-12, 55, -55}},
		},
		{
			name: "segment along normal",
			args: args{center: mgl32.Vec3{0, 0, -55}, radius: 10, a: mgl32.Vec3{0, 0, -55}, b: mgl32.Vec3{0, 0, 55}},
			want: nil,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CircleSegment(tt.args.center, tt.args.radius, backNormal, tt.args.a, tt.args.b)
			require.Len(t, got, len(tt.want))

			for i := range tt.want {
				assert.InDeltaSlice(t, tt.want[i][:], got[i][:], 1e-3, "point %d", i)
			}
		})
	}
}

func TestCircleSegment_ClampsRootJustPastEnd(t *testing.T) {
	t.Parallel()

	// the exact root sits at t = 1 + 5e-7, inside the clamp window
	a := mgl32.Vec3{0, 0, 0}
	b := mgl32.Vec3{10, 0, 0}
	center := mgl32.Vec3{0, 0, 0}

	got := CircleSegment(center, 10.000005, mgl32.Vec3{0, 0, 1}, a, b)
	require.Len(t, got, 1)
	assert.Equal(t, b, got[0])
}

func TestCircleSegment_SmallCircleFarAlongLongEdge(t *testing.T) {
	t.Parallel()

	// the crossings sit near b, 110 units from a
	a := mgl32.Vec3{-55, 55, -55}
	b := mgl32.Vec3{-55, -55, -55}
	center := mgl32.Vec3{-54.98, -54.98, -54.99}

	tests := []struct {
		radius float32
		count  int
	}{
		{radius: 0.5, count: 1},
		{radius: 0.05, count: 1},
		{radius: 0.03, count: 1},
		{radius: 0.025, count: 2},
		{radius: 0.021, count: 2},
	}
	for _, tt := range tests {
		got := CircleSegment(center, tt.radius, backNormal, a, b)
		require.Len(t, got, tt.count, "radius %v", tt.radius)

		for _, p := range got {
			assert.InDelta(t, -55, p.X(), 1e-5)
			assert.InDelta(t, tt.radius, inPlaneDistance(p, center), 1e-4, "radius %v at %v", tt.radius, p)
		}

		if tt.count == 2 {
			assert.Less(t, got[0].Y(), got[1].Y(), "larger parameter first")
		}
	}
}

func TestCircleRectangle_SmallCircleNearCorner(t *testing.T) {
	t.Parallel()

	corners := [4]mgl32.Vec3{
		{-55, -55, -55},
		{55, -55, -55},
		{55, 55, -55},
		{-55, 55, -55},
	}
	center := mgl32.Vec3{-54.98, -54.98, -54.99}

	for _, radius := range []float32{0.05, 0.03} {
		got := CircleRectangle(center, radius, backNormal, corners)
		require.Len(t, got, 2, "radius %v", radius)

		// bottom edge first, then the left edge which runs from y = 55 down
		assert.InDelta(t, -55, got[0].Y(), 1e-5)
		assert.InDelta(t, -55, got[1].X(), 1e-5)

		for _, p := range got {
			assert.InDelta(t, radius, inPlaneDistance(p, center), 1e-4, "radius %v at %v", radius, p)
		}
	}
}

func inPlaneDistance(p, center mgl32.Vec3) float32 {
	d := p.Sub(center)
	d[2] = 0

	return d.Len()
}

func TestCircleSegment_ZeroNormalIsSphere(t *testing.T) {
	t.Parallel()

	// center 3 units off the line, sphere radius 5 leaves a half chord of 4
	got := CircleSegment(mgl32.Vec3{0, 0, 3}, 5, mgl32.Vec3{}, mgl32.Vec3{-10, 0, 0}, mgl32.Vec3{10, 0, 0})
	require.Len(t, got, 2)
	assert.InDelta(t, 4, got[0].X(), 1e-4)
	assert.InDelta(t, -4, got[1].X(), 1e-4)
}

func TestCircleRectangle(t *testing.T) {
	t.Parallel()

	corners := [4]mgl32.Vec3{
		{-55, -55, -55},
		{55, -55, -55},
		{55, 55, -55},
		{-55, 55, -55},
	}

	tests := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		count  int
	}{
		{name: "inside", center: mgl32.Vec3{0, 0, -55}, radius: 10, count: 0},
		{name: "crosses one edge", center: mgl32.Vec3{0, 50, -55}, radius: 10, count: 2},
		{name: "contains a corner", center: mgl32.Vec3{50, 50, -55}, radius: 10, count: 2},
		{name: "crosses two edges twice", center: mgl32.Vec3{40, 40, -55}, radius: 18, count: 4},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CircleRectangle(tt.center, tt.radius, backNormal, corners)
			assert.Len(t, got, tt.count)

			for _, p := range got {
				assert.InDelta(t, tt.radius, p.Sub(tt.center).Len(), 1e-3)
			}
		})
	}
}

func TestCircleRectangle_CornerTouchIsNotDeduplicated(t *testing.T) {
	t.Parallel()

	corners := [4]mgl32.Vec3{
		{0, 0, 0},
		{10, 0, 0},
		{10, 10, 0},
		{0, 10, 0},
	}

	// the circle passes through corner (10, 10) and crosses edges elsewhere
	center := mgl32.Vec3{13, 14, 0}

	got := CircleRectangle(center, 5, mgl32.Vec3{0, 0, 1}, corners)

	var atCorner int
	for _, p := range got {
		if p.Sub(mgl32.Vec3{10, 10, 0}).Len() < 1e-4 {
			atCorner++
		}
	}

	assert.Equal(t, 2, atCorner)
}
