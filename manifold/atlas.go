package manifold

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/katalvlaran/metatopia/topology"
)

// HitPolicy selects which portal RayPortalIntersection reports when several
// are hit.
type HitPolicy int

const (
	// FirstHit reports the first hit in portal insertion order.
	FirstHit HitPolicy = iota
	// ClosestHit reports the hit nearest to the ray origin.
	ClosestHit
)

// PortalHit describes a ray striking a portal.
type PortalHit struct {
	// Portal is the portal that was hit.
	Portal PortalID

	// Point is the hit point in the source chart.
	Point mgl64.Vec3

	// Chart is the portal's target chart.
	Chart ChartID

	// Distance is the ray distance from origin to Point.
	Distance float64
}

// atlas is the chart and portal tables plus the queries over them. It holds
// no lock: Manifold guards its atlas with an RWMutex, a View owns a private
// copy.
//
// Charts and portals are immutable and shared by pointer between copies.
type atlas struct {
	charts      []*Chart
	portals     []*Portal
	connections []Connection
	graph       *topology.Graph
	active      ChartID
	hitPolicy   HitPolicy
	routeDepth  int
}

// clone copies the tables so later growth of a is not visible in the copy.
func (a *atlas) clone() atlas {
	return atlas{
		charts:      append([]*Chart(nil), a.charts...),
		portals:     append([]*Portal(nil), a.portals...),
		connections: append([]Connection(nil), a.connections...),
		graph:       a.graph.Clone(),
		active:      a.active,
		hitPolicy:   a.hitPolicy,
		routeDepth:  a.routeDepth,
	}
}

func (a *atlas) chart(id ChartID) (*Chart, bool) {
	if int(id) >= len(a.charts) {
		return nil, false
	}
	return a.charts[id], true
}

func (a *atlas) portal(id PortalID) (*Portal, bool) {
	if int(id) >= len(a.portals) {
		return nil, false
	}
	return a.portals[id], true
}

func (a *atlas) chartIDs() []ChartID {
	out := make([]ChartID, len(a.charts))
	for i := range a.charts {
		out[i] = ChartID(i)
	}
	return out
}

func (a *atlas) portalsFrom(id ChartID) []*Portal {
	var out []*Portal
	for _, p := range a.portals {
		if p.from == id {
			out = append(out, p)
		}
	}
	return out
}

func (a *atlas) activeChart() *Chart {
	return a.charts[a.active]
}

func (a *atlas) rayPortalIntersection(origin, direction mgl64.Vec3, chart ChartID) (PortalHit, bool) {
	var (
		best  PortalHit
		found bool
	)
	for _, p := range a.portals {
		if p.from != chart {
			continue
		}
		point, dist, ok := p.intersect(origin, direction)
		if !ok {
			continue
		}
		hit := PortalHit{Portal: p.id, Point: point, Chart: p.to, Distance: dist}
		if a.hitPolicy == FirstHit {
			return hit, true
		}
		if !found || dist < best.Distance {
			best, found = hit, true
		}
	}
	return best, found
}

func (a *atlas) computeGeodesic(start, end mgl64.Vec3, chart ChartID, steps int) (*GeodesicPath, error) {
	c, ok := a.chart(chart)
	if !ok {
		return nil, fmt.Errorf("ComputeGeodesic: %s: %w", chart, ErrChartNotFound)
	}
	return ComputeGeodesic(start, end, c.metric, steps), nil
}

func (a *atlas) parallelTransport(v mgl64.Vec3, path *GeodesicPath, chart ChartID) (mgl64.Vec3, error) {
	c, ok := a.chart(chart)
	if !ok {
		return mgl64.Vec3{}, fmt.Errorf("ParallelTransport: %s: %w", chart, ErrChartNotFound)
	}
	return c.ParallelTransport(v, path), nil
}

func (a *atlas) transportMatrix(path *GeodesicPath, chart ChartID) (mgl64.Mat4, error) {
	c, ok := a.chart(chart)
	if !ok {
		return mgl64.Ident4(), fmt.Errorf("TransportMatrix: %s: %w", chart, ErrChartNotFound)
	}
	return c.TransportMatrix(path), nil
}

// route returns the fewest-portal chain from→to over active portals.
func (a *atlas) route(from, to ChartID) ([]PortalID, error) {
	if _, ok := a.chart(from); !ok {
		return nil, fmt.Errorf("Route: from %s: %w", from, ErrChartNotFound)
	}
	if _, ok := a.chart(to); !ok {
		return nil, fmt.Errorf("Route: to %s: %w", to, ErrChartNotFound)
	}

	edges, err := topology.ShortestPath(a.graph, uint32(from), uint32(to),
		topology.WithMaxDepth(a.routeDepth),
		topology.WithEdgeFilter(func(e topology.Edge) bool {
			p, ok := a.portal(PortalID(e.ID))
			return ok && p.active
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("Route(%s→%s): %w", from, to, ErrNoRoute)
	}

	out := make([]PortalID, len(edges))
	for i, e := range edges {
		out[i] = PortalID(e.ID)
	}
	return out, nil
}

func (a *atlas) transformBetweenCharts(p mgl64.Vec3, from, to ChartID) (mgl64.Vec3, error) {
	hops, err := a.route(from, to)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	for _, id := range hops {
		p = a.portals[id].TransformPoint(p)
	}
	return p, nil
}
