package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiko-tech/boundary-portals/pkg/portals"
)

const sceneYAML = `
boundary:
  center: [0, 0, 0]
  cell_count: [1, 1, 1]
  scalar: 110
resolution: 64
approach: 20
shrink: 10
portals:
  - name: corner
    position: [-50, -50, -60]
    radius: 15
    face: back
  - name: nearest
    position: [0, 54.9, -55]
    radius: 15
  - name: runner
    position: [40, 0, 0]
    velocity: [3, 0, 0]
    radius: 10
  - name: idle
    position: [0, 0, 0]
    velocity: [3, 0, 0]
    radius: 10
`

func TestParse(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(sceneYAML))
	require.NoError(t, err)

	assert.Equal(t, 64, s.Resolution)
	assert.Len(t, s.Portals, 4)

	b, err := s.BoundaryBox()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{110, 110, 110}, b.Extents)
	assert.Equal(t, portals.Approach{Distance: 20, Shrink: 10}, s.ApproachZone(b))
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	for _, data := range []string{"", "portals: []\n"} {
		s, err := Parse([]byte(data))
		require.NoError(t, err)

		assert.Equal(t, DefaultResolution, s.Resolution)

		b, err := s.BoundaryBox()
		require.NoError(t, err)
		assert.Equal(t, portals.DefaultBoundary(), b)
		assert.Equal(t, portals.Approach{Distance: 55, Shrink: 27.5}, s.ApproachZone(b))
	}

	assert.Equal(t, Default(), mustParse(t, ""))
}

func mustParse(t *testing.T, data string) *Scene {
	t.Helper()

	s, err := Parse([]byte(data))
	require.NoError(t, err)

	return s
}

func TestParse_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("boundary:\n  size: 3\n"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		yaml   string
		fields []string
	}{
		{
			name:   "cell count",
			yaml:   "boundary:\n  cell_count: [1, 0]\n",
			fields: []string{"boundary.cell_count"},
		},
		{
			name:   "zero cell",
			yaml:   "boundary:\n  cell_count: [1, 0, 2]\n",
			fields: []string{"boundary.cell_count[1]"},
		},
		{
			name:   "negative scalar and resolution",
			yaml:   "boundary:\n  scalar: -1\nresolution: -4\n",
			fields: []string{"boundary.scalar", "resolution"},
		},
		{
			name: "portal",
			yaml: `
portals:
  - position: [1, 2]
    radius: 0
    face: ceiling
    velocity: [1, 0, 0]
`,
			fields: []string{"portals[0].position", "portals[0].radius", "portals[0].face", "portals[0]"},
		},
		{
			name:   "negative shrink",
			yaml:   "shrink: -2\n",
			fields: []string{"shrink"},
		},
		{
			name:   "radius and size",
			yaml:   "portals:\n  - position: [0, 0, 0]\n    radius: 1\n    size: [1, 1, 1]\n",
			fields: []string{"portals[0]"},
		},
		{
			name:   "bad size",
			yaml:   "portals:\n  - position: [0, 0, 0]\n    size: [1, -1, 1]\n  - position: [0, 0, 0]\n    size: [1]\n",
			fields: []string{"portals[0].size[1]", "portals[1].size"},
		},
		{
			name:   "emerging with velocity",
			yaml:   "portals:\n  - position: [0, 0, 0]\n    radius: 1\n    velocity: [1, 0, 0]\n    emerging: true\n",
			fields: []string{"portals[0]"},
		},
		{
			name:   "short velocity",
			yaml:   "portals:\n  - position: [0, 0, 0]\n    radius: 1\n    velocity: [1]\n",
			fields: []string{"portals[0].velocity"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)

			var verr ValidationError
			require.True(t, errors.As(err, &verr), "%v", err)

			var fields []string
			for _, fe := range verr {
				fields = append(fields, fe.Field)
			}

			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Portals, 4)

	_, err = Load(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
	assert.Error(t, err)
}

func TestScene_Resolve(t *testing.T) {
	t.Parallel()

	s := mustParse(t, sceneYAML)

	b, err := s.BoundaryBox()
	require.NoError(t, err)

	placed, hidden, err := s.Resolve(b)
	require.NoError(t, err)

	assert.Equal(t, []string{"idle"}, hidden)
	require.Len(t, placed, 3)

	corner := placed[0]
	assert.Equal(t, "corner", corner.Name)
	assert.Equal(t, PlacementFace, corner.Placement)
	assert.Equal(t, portals.Back, corner.Portal.Face)
	assert.InDeltaSlice(t, []float32{-50, -50, -54.99}, corner.Portal.Center[:], 1e-4)
	assert.Equal(t, portals.Corner{Primary: portals.Back, Overextended: [2]portals.BoundaryFace{portals.Left, portals.Bottom}}, portals.Classify(b, corner.Portal))

	nearest := placed[1]
	assert.Equal(t, PlacementNearest, nearest.Placement)
	assert.Equal(t, portals.Back, nearest.Portal.Face)
	assert.InDeltaSlice(t, []float32{0, 54.9, -54.99}, nearest.Portal.Center[:], 1e-4)

	// 15 from the wall, outside the shrink zone of 10
	runner := placed[2]
	assert.Equal(t, PlacementApproaching, runner.Placement)
	assert.Equal(t, portals.Right, runner.Portal.Face)
	assert.Equal(t, float32(10), runner.Portal.Radius)
}

func TestScene_Resolve_ActorPortals(t *testing.T) {
	t.Parallel()

	s := mustParse(t, `
boundary:
  cell_count: [1, 1, 1]
portals:
  - name: sized
    position: [0, 0, 0]
    size: [3, 8, 2]
  - name: shrinking
    position: [45, 0, 0]
    velocity: [1, 0, 0]
    size: [1, 1, 1]
  - name: emerging
    position: [56, 10, -3]
    radius: 6
    emerging: true
  - name: not-wrapped
    position: [10, 10, 10]
    radius: 6
    emerging: true
  - name: burst
    position: [400, 0, 0]
    radius: 6
    emerging: true
`)

	b, err := s.BoundaryBox()
	require.NoError(t, err)

	placed, hidden, err := s.Resolve(b)
	require.NoError(t, err)

	assert.Equal(t, []string{"not-wrapped", "burst"}, hidden)
	require.Len(t, placed, 3)

	assert.Equal(t, float32(16), placed[0].Portal.Radius)

	// radius 10 from the smallest portal size, 10 from the wall inside the
	// default shrink zone of 27.5
	shrinking := placed[1]
	assert.Equal(t, PlacementApproaching, shrinking.Placement)
	assert.InDelta(t, 5+5*10/27.5, shrinking.Portal.Radius, 1e-4)

	emerging := placed[2]
	assert.Equal(t, PlacementEmerging, emerging.Placement)
	assert.Equal(t, portals.Left, emerging.Portal.Face)
	assert.InDeltaSlice(t, []float32{-54.99, 10, -3}, emerging.Portal.Center[:], 1e-4)
	assert.Equal(t, float32(6), emerging.Portal.Radius)
}

func TestScene_Resolve_DefaultNames(t *testing.T) {
	t.Parallel()

	s := mustParse(t, "portals:\n  - position: [0, 0, 0]\n    radius: 1\n")

	placed, hidden, err := s.Resolve(portals.DefaultBoundary())
	require.NoError(t, err)
	assert.Empty(t, hidden)
	require.Len(t, placed, 1)
	assert.Equal(t, "portal-0", placed[0].Name)
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := ValidationError{
		{Field: "resolution", Problem: "must be positive, got 0"},
		{Field: "boundary.scalar", Problem: "must be positive, got -1"},
	}

	assert.Equal(t, "invalid scene: resolution: must be positive, got 0; boundary.scalar: must be positive, got -1", err.Error())
}
