// Package config loads portal scenes from YAML.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/saiko-tech/boundary-portals/pkg/portals"
)

// DefaultResolution is how many segments a full circle is drawn with.
const DefaultResolution = 128

// Placement says how a portal's position was turned into a portal.
type Placement string

const (
	PlacementFace        Placement = "face"
	PlacementNearest     Placement = "nearest"
	PlacementApproaching Placement = "approaching"
	PlacementEmerging    Placement = "emerging"
)

// Scene is a boundary plus the portals shown on it.
type Scene struct {
	Boundary   BoundaryConfig `yaml:"boundary"`
	Resolution int            `yaml:"resolution"`
	// Approach and Shrink are absolute distances from the wall. Zero means
	// portals.DefaultApproachFraction and portals.DefaultShrinkFraction of
	// the smallest boundary extent.
	Approach float32        `yaml:"approach"`
	Shrink   float32        `yaml:"shrink"`
	Portals  []PortalConfig `yaml:"portals"`
}

// BoundaryConfig sizes the playfield as Scalar * CellCount around Center.
type BoundaryConfig struct {
	Center    []float32 `yaml:"center"`
	CellCount []uint32  `yaml:"cell_count"`
	Scalar    float32   `yaml:"scalar"`
}

// PortalConfig places one portal. Position is snapped onto Face when given,
// onto the wall the actor is heading for when Velocity is given, onto the
// opposite side when Emerging is set and the actor is past a wall, and onto
// the nearest face otherwise.
//
// The radius is Radius, or sized from the actor's bounding box Size.
type PortalConfig struct {
	Name     string    `yaml:"name"`
	Position []float32 `yaml:"position"`
	Radius   float32   `yaml:"radius"`
	Size     []float32 `yaml:"size"`
	Face     string    `yaml:"face"`
	Velocity []float32 `yaml:"velocity"`
	Emerging bool      `yaml:"emerging"`
}

// Placed is a portal resolved against the boundary.
type Placed struct {
	Name      string
	Placement Placement
	Portal    portals.Portal
}

// FieldError reports a bad value at a YAML path.
type FieldError struct {
	Field   string
	Problem string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Problem
}

// ValidationError lists every problem found in a scene.
type ValidationError []FieldError

func (e ValidationError) Error() string {
	problems := make([]string, len(e))
	for i, fe := range e {
		problems[i] = fe.Error()
	}

	return "invalid scene: " + strings.Join(problems, "; ")
}

// Default returns the scene used when no file is given: the default
// boundary with no portals.
func Default() *Scene {
	s := &Scene{}
	s.applyDefaults()

	return s
}

// Load reads and validates the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scene %q", path)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %q", path)
	}

	return s, nil
}

// Parse decodes and validates a YAML scene. Unknown fields are rejected.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	s := &Scene{}
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to decode scene")
	}

	s.applyDefaults()

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scene) applyDefaults() {
	if s.Boundary.Center == nil {
		s.Boundary.Center = []float32{0, 0, 0}
	}

	if s.Boundary.CellCount == nil {
		s.Boundary.CellCount = append([]uint32(nil), portals.DefaultCellCount[:]...)
	}

	if s.Boundary.Scalar == 0 {
		s.Boundary.Scalar = portals.DefaultScalar
	}

	if s.Resolution == 0 {
		s.Resolution = DefaultResolution
	}
}

func (s *Scene) validate() error {
	var problems ValidationError

	add := func(field, format string, args ...any) {
		problems = append(problems, FieldError{Field: field, Problem: fmt.Sprintf(format, args...)})
	}

	if len(s.Boundary.Center) != 3 {
		add("boundary.center", "want 3 components, got %d", len(s.Boundary.Center))
	}

	if len(s.Boundary.CellCount) != 3 {
		add("boundary.cell_count", "want 3 components, got %d", len(s.Boundary.CellCount))
	} else {
		for i, c := range s.Boundary.CellCount {
			if c == 0 {
				add(fmt.Sprintf("boundary.cell_count[%d]", i), "must be positive")
			}
		}
	}

	if !(s.Boundary.Scalar > 0) {
		add("boundary.scalar", "must be positive, got %v", s.Boundary.Scalar)
	}

	if s.Resolution < 1 {
		add("resolution", "must be positive, got %d", s.Resolution)
	}

	if s.Approach < 0 {
		add("approach", "must not be negative, got %v", s.Approach)
	}

	if s.Shrink < 0 {
		add("shrink", "must not be negative, got %v", s.Shrink)
	}

	for i, p := range s.Portals {
		field := fmt.Sprintf("portals[%d]", i)

		if len(p.Position) != 3 {
			add(field+".position", "want 3 components, got %d", len(p.Position))
		}

		switch {
		case p.Size == nil:
			if !(p.Radius > 0) {
				add(field+".radius", "must be positive, got %v", p.Radius)
			}
		case len(p.Size) != 3:
			add(field+".size", "want 3 components, got %d", len(p.Size))
		case p.Radius != 0:
			add(field, "radius and size are mutually exclusive")
		default:
			for j, c := range p.Size {
				if !(c >= 0) {
					add(fmt.Sprintf("%s.size[%d]", field, j), "must not be negative, got %v", c)
				}
			}
		}

		if p.Face != "" {
			if _, err := portals.ParseFace(p.Face); err != nil {
				add(field+".face", "%v", err)
			}
		}

		if p.Velocity != nil && len(p.Velocity) != 3 {
			add(field+".velocity", "want 3 components, got %d", len(p.Velocity))
		}

		placements := 0
		for _, set := range []bool{p.Face != "", p.Velocity != nil, p.Emerging} {
			if set {
				placements++
			}
		}

		if placements > 1 {
			add(field, "face, velocity and emerging are mutually exclusive")
		}
	}

	if len(problems) > 0 {
		return problems
	}

	return nil
}

// BoundaryBox builds the scene's boundary.
func (s *Scene) BoundaryBox() (portals.Boundary, error) {
	var cells [3]uint32
	copy(cells[:], s.Boundary.CellCount)

	b, err := portals.BoundaryFromCells(vec3(s.Boundary.Center), s.Boundary.Scalar, cells)
	if err != nil {
		return portals.Boundary{}, errors.Wrap(err, "bad boundary")
	}

	return b, nil
}

// ApproachZone is the configured approach and shrink distances for b.
func (s *Scene) ApproachZone(b portals.Boundary) portals.Approach {
	approach := b.DefaultApproach()

	if s.Approach > 0 {
		approach.Distance = s.Approach
	}

	if s.Shrink > 0 {
		approach.Shrink = s.Shrink
	}

	return approach
}

// Resolve places every portal on b. Approaching portals whose actor is not
// close enough to a wall and emerging portals whose actor does not wrap are
// returned by name in hidden.
func (s *Scene) Resolve(b portals.Boundary) (placed []Placed, hidden []string, err error) {
	approach := s.ApproachZone(b)

	for i, pc := range s.Portals {
		name := pc.Name
		if name == "" {
			name = fmt.Sprintf("portal-%d", i)
		}

		position := vec3(pc.Position)

		radius := pc.Radius
		if pc.Size != nil {
			radius = portals.ActorRadius(vec3(pc.Size))
		}

		var (
			p         portals.Portal
			placement Placement
			ok        = true
		)

		switch {
		case pc.Face != "":
			placement = PlacementFace

			face, err := portals.ParseFace(pc.Face)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "portal %q", name)
			}

			p, err = portals.NewPortal(b.Snap(position, face), radius, face)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "portal %q", name)
			}

		case pc.Velocity != nil:
			placement = PlacementApproaching
			p, ok = b.ApproachingPortal(position, vec3(pc.Velocity), radius, approach)

		case pc.Emerging:
			placement = PlacementEmerging
			p, ok = b.EmergingPortal(position, radius)

		default:
			placement = PlacementNearest
			p = b.PortalAt(position, radius)
		}

		if !ok {
			hidden = append(hidden, name)
			continue
		}

		placed = append(placed, Placed{Name: name, Placement: placement, Portal: p})
	}

	return placed, hidden, nil
}

func vec3(v []float32) mgl32.Vec3 {
	var out mgl32.Vec3
	copy(out[:], v)

	return out
}
