package manifold

import "github.com/go-gl/mathgl/mgl64"

// ChartLookup resolves chart ids.
type ChartLookup interface {
	Chart(id ChartID) (*Chart, bool)
}

// Reader is the read-only query surface shared by *Manifold and *View.
type Reader interface {
	ChartLookup
	ChartIDs() []ChartID
	Portal(id PortalID) (*Portal, bool)
	PortalsFrom(id ChartID) []*Portal
	ActiveChartID() ChartID
	ActiveChart() *Chart
	RayPortalIntersection(origin, direction mgl64.Vec3, chart ChartID) (PortalHit, bool)
	ComputeGeodesic(start, end mgl64.Vec3, chart ChartID, steps int) (*GeodesicPath, error)
	ParallelTransport(v mgl64.Vec3, path *GeodesicPath, chart ChartID) (mgl64.Vec3, error)
	TransportMatrix(path *GeodesicPath, chart ChartID) (mgl64.Mat4, error)
	TransformBetweenCharts(p mgl64.Vec3, from, to ChartID) (mgl64.Vec3, error)
}

var (
	_ Reader = (*Manifold)(nil)
	_ Reader = (*View)(nil)
)

// View is a point-in-time, read-only copy of a Manifold. It never changes,
// needs no locking, and is unaffected by later mutations of its Manifold.
type View struct {
	a atlas
}

// Chart returns chart id.
func (v *View) Chart(id ChartID) (*Chart, bool) { return v.a.chart(id) }

// ChartIDs returns all chart ids in ascending order.
func (v *View) ChartIDs() []ChartID { return v.a.chartIDs() }

// ChartCount returns the number of charts.
func (v *View) ChartCount() int { return len(v.a.charts) }

// Portal returns portal id.
func (v *View) Portal(id PortalID) (*Portal, bool) { return v.a.portal(id) }

// PortalCount returns the number of portals.
func (v *View) PortalCount() int { return len(v.a.portals) }

// PortalsFrom returns the portals leaving chart id.
func (v *View) PortalsFrom(id ChartID) []*Portal { return v.a.portalsFrom(id) }

// Connections returns the from/to record of every portal.
func (v *View) Connections() []Connection {
	return append([]Connection(nil), v.a.connections...)
}

// ActiveChartID returns the active chart id at snapshot time.
func (v *View) ActiveChartID() ChartID { return v.a.active }

// ActiveChart returns the active chart at snapshot time.
func (v *View) ActiveChart() *Chart { return v.a.activeChart() }

// RayPortalIntersection is Manifold.RayPortalIntersection on the snapshot.
func (v *View) RayPortalIntersection(origin, direction mgl64.Vec3, chart ChartID) (PortalHit, bool) {
	return v.a.rayPortalIntersection(origin, direction, chart)
}

// ComputeGeodesic is Manifold.ComputeGeodesic on the snapshot.
func (v *View) ComputeGeodesic(start, end mgl64.Vec3, chart ChartID, steps int) (*GeodesicPath, error) {
	return v.a.computeGeodesic(start, end, chart, steps)
}

// ParallelTransport is Manifold.ParallelTransport on the snapshot.
func (v *View) ParallelTransport(vec mgl64.Vec3, path *GeodesicPath, chart ChartID) (mgl64.Vec3, error) {
	return v.a.parallelTransport(vec, path, chart)
}

// TransportMatrix is Manifold.TransportMatrix on the snapshot.
func (v *View) TransportMatrix(path *GeodesicPath, chart ChartID) (mgl64.Mat4, error) {
	return v.a.transportMatrix(path, chart)
}

// Route is Manifold.Route on the snapshot.
func (v *View) Route(from, to ChartID) ([]PortalID, error) { return v.a.route(from, to) }

// TransformBetweenCharts is Manifold.TransformBetweenCharts on the snapshot.
func (v *View) TransformBetweenCharts(p mgl64.Vec3, from, to ChartID) (mgl64.Vec3, error) {
	return v.a.transformBetweenCharts(p, from, to)
}
