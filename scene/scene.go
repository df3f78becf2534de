// Package scene reads a YAML world description and builds the Manifold
// and entity World it describes.
//
// Charts are referenced by name. The first chart must be Euclidean: it
// becomes the manifold's chart 0. Charts, portals and entities are created
// in file order, so ids are predictable.
package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/metatopia/ecs"
	"github.com/katalvlaran/metatopia/manifold"
)

// Sentinel errors for scene building.
var (
	// ErrUnknownGeometry indicates a chart geometry that cannot be parsed.
	ErrUnknownGeometry = errors.New("scene: unknown geometry")

	// ErrUnknownChart indicates a reference to an undeclared chart name.
	ErrUnknownChart = errors.New("scene: unknown chart")

	// ErrDuplicateChart indicates two charts share a name.
	ErrDuplicateChart = errors.New("scene: duplicate chart")

	// ErrInvalidScene indicates a structural problem (no charts, a
	// non-Euclidean first chart, a bad enum value, two followed entities).
	ErrInvalidScene = errors.New("scene: invalid scene")
)

//go:embed cycle.yaml
var cycleYAML []byte

// Scene is the decoded file.
type Scene struct {
	Active   string   `yaml:"active"`
	Charts   []Chart  `yaml:"charts"`
	Portals  []Portal `yaml:"portals"`
	Entities []Entity `yaml:"entities"`
}

// Chart declares one chart.
type Chart struct {
	Name     string      `yaml:"name"`
	Geometry string      `yaml:"geometry"`
	Radius   float64     `yaml:"radius"`
	Wrap     string      `yaml:"wrap"`
	Min      *mgl64.Vec3 `yaml:"min"`
	Max      *mgl64.Vec3 `yaml:"max"`
}

// Portal declares one portal. Yaw is in degrees about +y; Scale 0 means 1.
type Portal struct {
	From         string      `yaml:"from"`
	To           string      `yaml:"to"`
	FromPosition mgl64.Vec3  `yaml:"from_position"`
	ToPosition   mgl64.Vec3  `yaml:"to_position"`
	Scale        float64     `yaml:"scale"`
	Yaw          float64     `yaml:"yaw"`
	Shape        string      `yaml:"shape"`
	Size         *[2]float64 `yaml:"size"`
	Normal       *mgl64.Vec3 `yaml:"normal"`
	MaxDistance  float64     `yaml:"max_distance"`
	Reverse      bool        `yaml:"reverse"`
	Inactive     bool        `yaml:"inactive"`
}

// Entity declares one entity.
type Entity struct {
	Name     string     `yaml:"name"`
	Chart    string     `yaml:"chart"`
	Position mgl64.Vec3 `yaml:"position"`
	Velocity mgl64.Vec3 `yaml:"velocity"`
	Angular  mgl64.Vec3 `yaml:"angular"`
	Mesh     string     `yaml:"mesh"`
	Shader   string     `yaml:"shader"`
	Follow   bool       `yaml:"follow"`
}

// Built is the result of Build.
type Built struct {
	Manifold *manifold.Manifold
	World    *ecs.World
	Charts   map[string]manifold.ChartID
	Entities map[string]ecs.Entity

	// Follow is the entity whose chart drives the active chart.
	Follow    ecs.Entity
	HasFollow bool
}

// Parse decodes a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: parse: %w", err)
	}
	return &s, nil
}

// Load reads and decodes the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	return Parse(data)
}

// Cycle returns the built-in three-chart loop.
func Cycle() *Scene {
	s, err := Parse(cycleYAML)
	if err != nil {
		panic(err)
	}
	return s
}

// Build creates the manifold and world. opts configure the manifold.
func (s *Scene) Build(opts ...manifold.Option) (*Built, error) {
	if len(s.Charts) == 0 {
		return nil, fmt.Errorf("%w: no charts", ErrInvalidScene)
	}

	root, err := chartOptions(s.Charts[0])
	if err != nil {
		return nil, err
	}
	if g, _ := manifold.ParseGeometry(s.Charts[0].Geometry); g != manifold.Euclidean {
		return nil, fmt.Errorf("%w: first chart %q must be euclidean", ErrInvalidScene, s.Charts[0].Name)
	}

	mopts := append(append([]manifold.Option(nil), opts...), manifold.WithRootChart(root...))
	b := &Built{
		Manifold: manifold.New(mopts...),
		World:    ecs.NewWorld(),
		Charts:   map[string]manifold.ChartID{s.Charts[0].Name: 0},
		Entities: make(map[string]ecs.Entity),
	}
	for _, c := range s.Charts[1:] {
		if _, dup := b.Charts[c.Name]; dup {
			return nil, fmt.Errorf("Build: chart %q: %w", c.Name, ErrDuplicateChart)
		}
		copts, err := chartOptions(c)
		if err != nil {
			return nil, err
		}
		g, _ := manifold.ParseGeometry(c.Geometry)
		b.Charts[c.Name] = b.Manifold.AddChart(g, copts...)
	}

	for i, p := range s.Portals {
		if err := b.addPortal(p); err != nil {
			return nil, fmt.Errorf("Build: portal %d: %w", i, err)
		}
	}
	for _, e := range s.Entities {
		if err := b.addEntity(e); err != nil {
			return nil, fmt.Errorf("Build: entity %q: %w", e.Name, err)
		}
	}

	if s.Active != "" {
		id, ok := b.Charts[s.Active]
		if !ok {
			return nil, fmt.Errorf("Build: active %q: %w", s.Active, ErrUnknownChart)
		}
		b.Manifold.SetActiveChart(id)
	}
	manifold.Logger().Debug("scene: built",
		"charts", b.Manifold.ChartCount(), "portals", b.Manifold.PortalCount(), "entities", b.World.Len())

	return b, nil
}

func chartOptions(c Chart) ([]manifold.ChartOption, error) {
	if _, ok := manifold.ParseGeometry(c.Geometry); !ok {
		return nil, fmt.Errorf("chart %q: %q: %w", c.Name, c.Geometry, ErrUnknownGeometry)
	}
	var opts []manifold.ChartOption
	if c.Radius > 0 {
		opts = append(opts, manifold.WithMetric(manifold.WithRadius(c.Radius)))
	}
	if c.Min != nil && c.Max != nil {
		opts = append(opts, manifold.WithBounds(*c.Min, *c.Max))
	}
	if c.Wrap != "" {
		w, ok := parseWrap(c.Wrap)
		if !ok {
			return nil, fmt.Errorf("%w: chart %q: wrap %q", ErrInvalidScene, c.Name, c.Wrap)
		}
		opts = append(opts, manifold.WithWrapMode(w))
	}
	return opts, nil
}

func (b *Built) addPortal(p Portal) error {
	from, ok := b.Charts[p.From]
	if !ok {
		return fmt.Errorf("from %q: %w", p.From, ErrUnknownChart)
	}
	to, ok := b.Charts[p.To]
	if !ok {
		return fmt.Errorf("to %q: %w", p.To, ErrUnknownChart)
	}

	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	transform := mgl64.HomogRotate3DY(mgl64.DegToRad(p.Yaw)).Mul4(mgl64.Scale3D(scale, scale, scale))

	var opts []manifold.PortalOption
	if p.Shape != "" {
		shape, ok := parseShape(p.Shape)
		if !ok {
			return fmt.Errorf("%w: shape %q", ErrInvalidScene, p.Shape)
		}
		opts = append(opts, manifold.WithShape(shape))
	}
	if p.Size != nil {
		opts = append(opts, manifold.WithSize(p.Size[0], p.Size[1]))
	}
	if p.Normal != nil {
		opts = append(opts, manifold.WithNormal(*p.Normal))
	}
	if p.MaxDistance > 0 {
		opts = append(opts, manifold.WithMaxDistance(p.MaxDistance))
	}
	if p.Inactive {
		opts = append(opts, manifold.WithActive(false))
	}

	id, err := b.Manifold.CreatePortal(from, to, p.FromPosition, p.ToPosition, transform, opts...)
	if err != nil {
		return err
	}
	if p.Reverse {
		if _, err := b.Manifold.CreateReversePortal(id); err != nil {
			return err
		}
	}
	return nil
}

func (b *Built) addEntity(e Entity) error {
	chart, ok := b.Charts[e.Chart]
	if !ok {
		return fmt.Errorf("chart %q: %w", e.Chart, ErrUnknownChart)
	}
	components := []ecs.Component{
		ecs.NewTransform(chart, e.Position),
		ecs.Velocity{Linear: e.Velocity, Angular: e.Angular},
	}
	if e.Mesh != "" {
		components = append(components, ecs.Renderable{Mesh: e.Mesh, Shader: e.Shader, Visible: true})
	}
	id := b.World.Spawn(components...)
	if e.Name != "" {
		b.Entities[e.Name] = id
	}
	if e.Follow {
		if b.HasFollow {
			return fmt.Errorf("%w: more than one followed entity", ErrInvalidScene)
		}
		b.Follow, b.HasFollow = id, true
	}
	return nil
}

func parseWrap(s string) (manifold.WrapMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return manifold.WrapNone, true
	case "periodic", "torus":
		return manifold.WrapPeriodic, true
	case "spherical":
		return manifold.WrapSpherical, true
	case "hyperbolic":
		return manifold.WrapHyperbolic, true
	default:
		return manifold.WrapNone, false
	}
}

func parseShape(s string) (manifold.PortalShape, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangular", "rectangle":
		return manifold.Rectangular, true
	case "circular", "circle":
		return manifold.Circular, true
	case "custom":
		return manifold.CustomShape, true
	default:
		return manifold.Rectangular, false
	}
}
