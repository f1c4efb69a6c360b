// Command portalplan loads a portal scene, builds the render plan of every
// portal and prints the plans as YAML.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/saiko-tech/boundary-portals/internal/config"
	"github.com/saiko-tech/boundary-portals/pkg/bspbounds"
	"github.com/saiko-tech/boundary-portals/pkg/portals"
)

type options struct {
	scene      string
	bsp        string
	resolution int
	points     bool
}

func main() {
	var (
		opts     options
		logLevel string
	)

	flag.StringVar(&opts.scene, "scene", "", "Path to a scene YAML file (default boundary, no portals if empty)")
	flag.StringVar(&opts.bsp, "bsp", "", "Path to a BSP map whose world bounds replace the scene boundary")
	flag.IntVar(&opts.resolution, "resolution", 0, "Segments per full circle, overrides the scene")
	flag.BoolVar(&opts.points, "points", false, "Include tessellated points for every circle and arc")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		fmt.Fprintln(os.Stderr, "bad -log-level:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	rep, err := build(opts, logger)
	if err != nil {
		logger.Error("failed to build plans", slog.Any("err", err))
		os.Exit(2)
	}

	if err := write(os.Stdout, rep); err != nil {
		logger.Error("failed to write report", slog.Any("err", err))
		os.Exit(3)
	}
}

func build(opts options, logger *slog.Logger) (*report, error) {
	scene := config.Default()

	if opts.scene != "" {
		var err error

		scene, err = config.Load(opts.scene)
		if err != nil {
			return nil, err
		}
	}

	b, err := scene.BoundaryBox()
	if err != nil {
		return nil, err
	}

	if opts.bsp != "" {
		b, err = bspbounds.LoadBoundary(opts.bsp)
		if err != nil {
			return nil, err
		}

		logger.Debug("boundary from map", slog.String("bsp", opts.bsp), slog.Any("extents", b.Extents))
	}

	resolution := scene.Resolution
	if opts.resolution > 0 {
		resolution = opts.resolution
	}

	placed, hidden, err := scene.Resolve(b)
	if err != nil {
		return nil, errors.Wrap(err, "failed to place portals")
	}

	for _, name := range hidden {
		logger.Info("portal not shown, skipping", slog.String("portal", name))
	}

	ps := make([]portals.Portal, len(placed))
	for i, p := range placed {
		ps[i] = p.Portal
	}

	plans := portals.PlanAll(b, ps)

	rep := &report{
		Boundary: boundaryReport{Center: vec(b.Center), Extents: vec(b.Extents)},
		Portals:  make([]portalReport, len(plans)),
	}

	for i, plan := range plans {
		d := &reportDrawer{resolution: resolution, points: opts.points}
		plan.Draw(d)

		rep.Portals[i] = portalReport{
			Name:      placed[i].Name,
			Placement: string(placed[i].Placement),
			Face:      plan.Portal.Face.String(),
			Center:    vec(plan.Portal.Center),
			Radius:    plan.Portal.Radius,
			Geometry:  plan.Geometry.String(),
			Faces:     plan.FaceCount(),
			Circle:    d.circle,
			Arcs:      d.arcs,
		}

		logger.Debug("planned portal",
			slog.String("portal", placed[i].Name),
			slog.String("geometry", plan.Geometry.String()),
			slog.Int("arcs", len(plan.Arcs)))
	}

	return rep, nil
}

func write(w io.Writer, rep *report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(rep); err != nil {
		return errors.Wrap(err, "failed to encode report")
	}

	return errors.Wrap(enc.Close(), "failed to flush report")
}

type report struct {
	Boundary boundaryReport `yaml:"boundary"`
	Portals  []portalReport `yaml:"portals"`
}

type boundaryReport struct {
	Center  []float32 `yaml:"center,flow"`
	Extents []float32 `yaml:"extents,flow"`
}

type portalReport struct {
	Name      string        `yaml:"name"`
	Placement string        `yaml:"placement"`
	Face      string        `yaml:"face"`
	Center    []float32     `yaml:"center,flow"`
	Radius    float32       `yaml:"radius"`
	Geometry  string        `yaml:"geometry"`
	Faces     int           `yaml:"faces"`
	Circle    *circleReport `yaml:"circle,omitempty"`
	Arcs      []arcReport   `yaml:"arcs,omitempty"`
}

type circleReport struct {
	Center []float32   `yaml:"center,flow"`
	Normal []float32   `yaml:"normal,flow"`
	Radius float32     `yaml:"radius"`
	Points [][]float32 `yaml:"points,omitempty"`
}

type arcReport struct {
	Face   string      `yaml:"face"`
	Mode   string      `yaml:"mode"`
	Center []float32   `yaml:"center,flow"`
	From   []float32   `yaml:"from,flow"`
	To     []float32   `yaml:"to,flow"`
	Sweep  float32     `yaml:"sweep_degrees"`
	Points [][]float32 `yaml:"points,omitempty"`
}

// reportDrawer records what a plan draws.
type reportDrawer struct {
	resolution int
	points     bool

	circle *circleReport
	arcs   []arcReport
}

func (d *reportDrawer) Circle(c portals.Circle) {
	d.circle = &circleReport{
		Center: vec(c.Center),
		Normal: vec(c.Normal),
		Radius: c.Radius,
	}

	if d.points {
		d.circle.Points = vecs(c.Points(d.resolution))
	}
}

func (d *reportDrawer) Arc(a portals.Arc) {
	ar := arcReport{
		Face:   a.Face.String(),
		Mode:   a.Mode.String(),
		Center: vec(a.Center),
		From:   vec(a.From),
		To:     vec(a.To),
		Sweep:  mgl32.RadToDeg(a.Sweep),
	}

	if d.points {
		// arcs get their share of the full circle's segments
		segments := int(float32(d.resolution)*a.Sweep/(2*math32.Pi)) + 1
		ar.Points = vecs(a.Points(segments))
	}

	d.arcs = append(d.arcs, ar)
}

func vec(v mgl32.Vec3) []float32 {
	return []float32{v[0], v[1], v[2]}
}

func vecs(vs []mgl32.Vec3) [][]float32 {
	out := make([][]float32, len(vs))
	for i, v := range vs {
		out[i] = vec(v)
	}

	return out
}
