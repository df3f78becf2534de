// Package manifold models a non-Euclidean world as a set of coordinate
// charts glued together by portals.
//
// 🚀 What is a manifold here?
//
//	A Manifold owns:
//		• Charts: local coordinate patches, each with a fixed GeometryType
//		  (Euclidean, Spherical, Hyperbolic or Custom) and its Metric
//		• Portals: directed, spatially bounded connectors mapping points and
//		  vectors from one chart into another
//		• The active chart: the single chart a renderer treats as "here"
//
// Chart 0 always exists and is Euclidean. Charts and portals are only ever
// added; identifiers are assigned sequentially and never reused.
//
// ✨ Geometry toolkit:
//
//   - MetricTensor / Metric: distances, Christoffel symbols, parallel transport
//   - ComputeGeodesic: N+1 samples of the shortest path under a metric
//     (straight lines, great circles, Poincaré-disk arcs, relaxed paths)
//   - Portal: ray/plane hit testing and the point/vector transform
//   - Manifold: ray–portal queries, cross-chart transforms and routing
//
// Concurrency:
//
//	Manifold guards its tables with a single sync.RWMutex. Every query holds
//	the read lock for its whole duration, so an in-flight query never sees a
//	half-applied mutation; every mutation holds the write lock. Snapshot
//	returns a View, a read-only copy that needs no locking at all and is the
//	intended hand-off from an update phase to rendering/camera code.
//
// Errors:
//
//	ErrChartNotFound  - a chart id is not known to the manifold.
//	ErrPortalNotFound - a portal id is not known to the manifold.
//	ErrNoRoute        - no chain of active portals connects two charts.
//
// Degenerate numeric input (zero vectors, points on the Poincaré rim,
// rays parallel to a portal) is never an error: it is clamped, falls back
// to a simpler computation, or reports "no hit".
//
// Quick example:
//
//	m := manifold.New()
//	disk := m.AddChart(manifold.Hyperbolic)
//	_, err := m.CreatePortal(0, disk,
//		mgl64.Vec3{10, 0, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Ident4())
//	hit, ok := m.RayPortalIntersection(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 0)
package manifold
