package manifold

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/katalvlaran/metatopia/topology"
)

// Manifold owns every chart and portal of a world and the active-chart
// pointer. It only grows: there is no removal.
//
// All methods are safe for concurrent use. See the package documentation
// for the locking contract.
type Manifold struct {
	mu sync.RWMutex // guards a
	a  atlas
}

// Option configures a Manifold in New.
type Option func(*config)

type config struct {
	hitPolicy  HitPolicy
	routeDepth int
	root       []ChartOption
}

// WithHitPolicy selects how RayPortalIntersection resolves several hits
// (default FirstHit).
func WithHitPolicy(p HitPolicy) Option {
	return func(c *config) { c.hitPolicy = p }
}

// WithRouteDepth caps the number of portals a route may use; 0 means
// unlimited. Negative values are ignored.
func WithRouteDepth(d int) Option {
	return func(c *config) {
		if d >= 0 {
			c.routeDepth = d
		}
	}
}

// WithRootChart configures chart 0, which is always Euclidean.
func WithRootChart(opts ...ChartOption) Option {
	return func(c *config) { c.root = append(c.root, opts...) }
}

// New returns a manifold holding only chart 0 (Euclidean), which is active.
func New(opts ...Option) *Manifold {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	g := topology.NewGraph()
	g.AddVertex(0)

	return &Manifold{a: atlas{
		charts:     []*Chart{NewChart(0, Euclidean, cfg.root...)},
		graph:      g,
		hitPolicy:  cfg.hitPolicy,
		routeDepth: cfg.routeDepth,
	}}
}

// AddChart creates a chart with the next sequential id.
func (m *Manifold) AddChart(geometry GeometryType, opts ...ChartOption) ChartID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := ChartID(len(m.a.charts))
	m.a.charts = append(m.a.charts, NewChart(id, geometry, opts...))
	m.a.graph.AddVertex(uint32(id))
	Logger().Debug("manifold: chart added", "chart", uint32(id), "geometry", geometry.String())

	return id
}

// CreatePortal connects chart from to chart to. Returns ErrChartNotFound,
// leaving the manifold untouched, if either chart is unknown.
func (m *Manifold) CreatePortal(from, to ChartID, fromPos, toPos mgl64.Vec3, transform mgl64.Mat4, opts ...PortalOption) (PortalID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range [...]ChartID{from, to} {
		if _, ok := m.a.chart(id); !ok {
			Logger().Warn("manifold: portal rejected", "from", uint32(from), "to", uint32(to), "missing", uint32(id))
			return 0, fmt.Errorf("CreatePortal(%s→%s): %s: %w", from, to, id, ErrChartNotFound)
		}
	}

	id := PortalID(len(m.a.portals))
	if err := m.insert(NewPortal(id, from, to, fromPos, toPos, transform, opts...)); err != nil {
		return 0, err
	}

	return id, nil
}

// CreateReversePortal adds the reverse of portal id as a new, independent
// portal (see Portal.Reverse).
func (m *Manifold) CreateReversePortal(id PortalID) (PortalID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.a.portal(id)
	if !ok {
		return 0, fmt.Errorf("CreateReversePortal: %s: %w", id, ErrPortalNotFound)
	}

	rid := PortalID(len(m.a.portals))
	if err := m.insert(p.Reverse(rid)); err != nil {
		return 0, err
	}

	return rid, nil
}

// insert stores p and its connection record. Caller holds the write lock.
func (m *Manifold) insert(p *Portal) error {
	if err := m.a.graph.AddEdge(uint32(p.id), uint32(p.from), uint32(p.to)); err != nil {
		return fmt.Errorf("manifold: portal %s: %w", p.id, err)
	}
	m.a.portals = append(m.a.portals, p)
	m.a.connections = append(m.a.connections, p.Connection())
	Logger().Debug("manifold: portal added",
		"portal", uint32(p.id), "from", uint32(p.from), "to", uint32(p.to))

	return nil
}

// SetPortalActive enables or disables portal id. Inactive portals are never
// hit and never routed through.
func (m *Manifold) SetPortalActive(id PortalID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.a.portal(id)
	if !ok {
		return fmt.Errorf("SetPortalActive: %s: %w", id, ErrPortalNotFound)
	}
	m.a.portals[id] = p.withActive(active)

	return nil
}

// SetActiveChart makes id the active chart. Unknown ids are ignored and
// reported as false.
func (m *Manifold) SetActiveChart(id ChartID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.a.chart(id); !ok {
		return false
	}
	if m.a.active != id {
		Logger().Debug("manifold: active chart", "from", uint32(m.a.active), "to", uint32(id))
	}
	m.a.active = id

	return true
}

// Snapshot returns a read-only copy of the current tables.
func (m *Manifold) Snapshot() *View {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return &View{a: m.a.clone()}
}

// Chart returns chart id in O(1).
func (m *Manifold) Chart(id ChartID) (*Chart, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.chart(id)
}

// HasChart reports whether chart id exists.
func (m *Manifold) HasChart(id ChartID) bool {
	_, ok := m.Chart(id)
	return ok
}

// ChartIDs returns all chart ids in ascending order.
func (m *Manifold) ChartIDs() []ChartID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.chartIDs()
}

// ChartCount returns the number of charts (at least 1).
func (m *Manifold) ChartCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.a.charts)
}

// Portal returns portal id.
func (m *Manifold) Portal(id PortalID) (*Portal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.portal(id)
}

// PortalCount returns the number of portals.
func (m *Manifold) PortalCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.a.portals)
}

// PortalsFrom returns the portals leaving chart id, in insertion order.
func (m *Manifold) PortalsFrom(id ChartID) []*Portal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.portalsFrom(id)
}

// Connections returns the from/to record of every portal, in insertion order.
func (m *Manifold) Connections() []Connection {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]Connection(nil), m.a.connections...)
}

// MetricAt returns the metric of chart id.
func (m *Manifold) MetricAt(id ChartID) (Metric, bool) {
	c, ok := m.Chart(id)
	if !ok {
		return Metric{}, false
	}
	return c.Metric(), true
}

// ActiveChartID returns the active chart id.
func (m *Manifold) ActiveChartID() ChartID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.active
}

// ActiveChart returns the active chart.
func (m *Manifold) ActiveChart() *Chart {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.activeChart()
}

// RayPortalIntersection tests the ray against the portals leaving chart,
// resolving multiple hits per the HitPolicy.
func (m *Manifold) RayPortalIntersection(origin, direction mgl64.Vec3, chart ChartID) (PortalHit, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.rayPortalIntersection(origin, direction, chart)
}

// ComputeGeodesic computes a geodesic in chart with steps+1 samples.
func (m *Manifold) ComputeGeodesic(start, end mgl64.Vec3, chart ChartID, steps int) (*GeodesicPath, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.computeGeodesic(start, end, chart, steps)
}

// ParallelTransport carries v along path with chart's metric.
func (m *Manifold) ParallelTransport(v mgl64.Vec3, path *GeodesicPath, chart ChartID) (mgl64.Vec3, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.parallelTransport(v, path, chart)
}

// TransportMatrix transports the coordinate frame along path in chart.
func (m *Manifold) TransportMatrix(path *GeodesicPath, chart ChartID) (mgl64.Mat4, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.transportMatrix(path, chart)
}

// Route returns the fewest active portals leading from→to; empty when
// from == to.
func (m *Manifold) Route(from, to ChartID) ([]PortalID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.route(from, to)
}

// TransformBetweenCharts maps p from chart from into chart to by composing
// the portal transforms along Route(from, to).
func (m *Manifold) TransformBetweenCharts(p mgl64.Vec3, from, to ChartID) (mgl64.Vec3, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.a.transformBetweenCharts(p, from, to)
}
