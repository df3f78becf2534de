package manifold

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ChartID identifies a chart within its Manifold. Ids are assigned
// sequentially from 0 and never change.
type ChartID uint32

// String renders the id as "chart#N".
func (id ChartID) String() string { return fmt.Sprintf("chart#%d", uint32(id)) }

// LocalCoordinate is a point expressed in a chart's own coordinates. It has
// no meaning outside its chart.
type LocalCoordinate mgl64.Vec3

// Local builds a LocalCoordinate from components.
func Local(x, y, z float64) LocalCoordinate { return LocalCoordinate{x, y, z} }

// Vec3 returns the coordinate as a plain vector.
func (l LocalCoordinate) Vec3() mgl64.Vec3 { return mgl64.Vec3(l) }

// WrapMode selects how a chart treats coordinates leaving its bounds.
type WrapMode int

const (
	// WrapNone leaves coordinates alone; Contains is a box test.
	WrapNone WrapMode = iota
	// WrapPeriodic wraps x and y like a torus.
	WrapPeriodic
	// WrapSpherical treats the chart as the unit ball.
	WrapSpherical
	// WrapHyperbolic keeps points inside the Poincaré disk.
	WrapHyperbolic
)

// String returns the wrap mode name.
func (w WrapMode) String() string {
	switch w {
	case WrapNone:
		return "none"
	case WrapPeriodic:
		return "periodic"
	case WrapSpherical:
		return "spherical"
	case WrapHyperbolic:
		return "hyperbolic"
	default:
		return fmt.Sprintf("wrap(%d)", int(w))
	}
}

// ChartBounds are a chart's local extents and wrap policy.
type ChartBounds struct {
	Min, Max mgl64.Vec3
	Wrap     WrapMode
}

// defaultBounds returns the bounds a fresh chart of geometry g starts with.
func defaultBounds(g GeometryType) ChartBounds {
	switch g {
	case Spherical:
		return ChartBounds{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}, Wrap: WrapSpherical}
	case Hyperbolic:
		return ChartBounds{Min: mgl64.Vec3{-1, -1, -10}, Max: mgl64.Vec3{1, 1, 10}, Wrap: WrapHyperbolic}
	case Custom:
		return ChartBounds{Min: mgl64.Vec3{-100, -100, -100}, Max: mgl64.Vec3{100, 100, 100}, Wrap: WrapNone}
	default:
		return ChartBounds{Min: mgl64.Vec3{-1000, -1000, -1000}, Max: mgl64.Vec3{1000, 1000, 1000}, Wrap: WrapNone}
	}
}

// Chart is one coordinate patch of a manifold: a metric, bounds and a
// local-to-world affine transform. A Chart never changes after NewChart
// returns, so it may be shared freely between goroutines.
type Chart struct {
	id        ChartID
	geometry  GeometryType
	metric    Metric
	bounds    ChartBounds
	transform mgl64.Mat4
	inverse   mgl64.Mat4
}

// ChartOption configures a Chart in NewChart.
type ChartOption func(*Chart)

// WithBounds replaces the default extents, keeping the wrap mode.
func WithBounds(min, max mgl64.Vec3) ChartOption {
	return func(c *Chart) {
		c.bounds.Min = min
		c.bounds.Max = max
	}
}

// WithWrapMode replaces the default wrap mode.
func WithWrapMode(w WrapMode) ChartOption {
	return func(c *Chart) { c.bounds.Wrap = w }
}

// WithTransform sets the local-to-world affine transform used by Euclidean
// and Custom charts.
func WithTransform(m mgl64.Mat4) ChartOption {
	return func(c *Chart) { c.transform = m }
}

// WithMetric applies metric options to the chart's metric.
func WithMetric(opts ...MetricOption) ChartOption {
	return func(c *Chart) {
		for _, opt := range opts {
			opt(&c.metric)
		}
	}
}

// NewChart builds a chart with geometry-specific defaults:
//
//	Euclidean  ±1000 box, WrapNone
//	Spherical  unit cube, WrapSpherical
//	Hyperbolic ±1 in x/y, ±10 in z, WrapHyperbolic
//	Custom     ±100 box, WrapNone
//
// A singular transform is replaced by the identity.
func NewChart(id ChartID, geometry GeometryType, opts ...ChartOption) *Chart {
	c := &Chart{
		id:        id,
		geometry:  geometry,
		metric:    NewMetric(geometry),
		bounds:    defaultBounds(geometry),
		transform: mgl64.Ident4(),
	}
	for _, opt := range opts {
		opt(c)
	}

	inv, ok := invertOrIdentity(c.transform)
	if !ok {
		Logger().Warn("manifold: singular chart transform replaced by identity", "chart", uint32(id))
		c.transform = mgl64.Ident4()
	}
	c.inverse = inv

	return c
}

// ID returns the chart id.
func (c *Chart) ID() ChartID { return c.id }

// Geometry returns the chart geometry.
func (c *Chart) Geometry() GeometryType { return c.geometry }

// Metric returns a copy of the chart metric.
func (c *Chart) Metric() Metric { return c.metric }

// Bounds returns the chart bounds.
func (c *Chart) Bounds() ChartBounds { return c.bounds }

// Transform returns the local-to-world transform.
func (c *Chart) Transform() mgl64.Mat4 { return c.transform }

// ToWorld maps a local coordinate to world space.
//
//   - Euclidean, Custom: the affine transform.
//   - Spherical: projection onto the sphere of the metric radius; radial
//     information is discarded and the zero vector maps to the origin.
//   - Hyperbolic: points on or beyond the 0.99 rim are pulled back onto it,
//     everything else passes through.
func (c *Chart) ToWorld(local LocalCoordinate) mgl64.Vec3 {
	p := local.Vec3()

	switch c.geometry {
	case Spherical:
		n, ok := normalize(p)
		if !ok {
			return mgl64.Vec3{}
		}
		return n.Mul(c.metric.Radius)
	case Hyperbolic:
		return clampToDisk(p, diskRim, diskRim)
	default:
		return mgl64.TransformCoordinate(p, c.transform)
	}
}

// ToLocal maps a world point back into chart coordinates.
//
//   - Euclidean, Custom: the inverse affine transform.
//   - Spherical: the world vector renormalised onto the unit sphere. Points
//     that were off the sphere before ToWorld cannot be recovered.
//   - Hyperbolic: ToWorld is the identity on the open disk r < 0.99, so this
//     is its exact inverse there; rim points stay on the rim.
func (c *Chart) ToLocal(world mgl64.Vec3) LocalCoordinate {
	switch c.geometry {
	case Spherical:
		n, _ := normalize(world)
		return LocalCoordinate(n)
	case Hyperbolic:
		return LocalCoordinate(clampToDisk(world, diskRim, diskRim))
	default:
		return LocalCoordinate(mgl64.TransformCoordinate(world, c.inverse))
	}
}

// Contains reports whether local lies within the chart per its wrap mode.
func (c *Chart) Contains(local LocalCoordinate) bool {
	p := local.Vec3()
	b := c.bounds

	switch b.Wrap {
	case WrapPeriodic:
		return true
	case WrapSpherical:
		return p.Len() <= b.Max[0]
	case WrapHyperbolic:
		return diskRadius(p) < 1
	default:
		for i := 0; i < 3; i++ {
			if p[i] < b.Min[i] || p[i] > b.Max[i] {
				return false
			}
		}
		return true
	}
}

// WrapCoordinates applies the wrap policy: Periodic wraps x and y modulo the
// bounds extents, Hyperbolic pulls rim points in to radius 0.98, other modes
// return local unchanged.
func (c *Chart) WrapCoordinates(local LocalCoordinate) LocalCoordinate {
	p := local.Vec3()
	b := c.bounds

	switch b.Wrap {
	case WrapPeriodic:
		for i := 0; i < 2; i++ {
			extent := b.Max[i] - b.Min[i]
			if extent <= 0 || (p[i] >= b.Min[i] && p[i] <= b.Max[i]) {
				continue
			}
			off := math.Mod(p[i]-b.Min[i], extent)
			if off < 0 {
				off += extent
			}
			p[i] = b.Min[i] + off
		}
		return LocalCoordinate(p)
	case WrapHyperbolic:
		return LocalCoordinate(clampToDisk(p, diskRim, diskWrap))
	default:
		return local
	}
}

// Distance measures between two local coordinates with the chart metric.
func (c *Chart) Distance(a, b LocalCoordinate) float64 {
	return c.metric.Distance(a.Vec3(), b.Vec3())
}

// ParallelTransport carries v along path with the chart metric.
func (c *Chart) ParallelTransport(v mgl64.Vec3, path *GeodesicPath) mgl64.Vec3 {
	return c.metric.ParallelTransport(v, path)
}

// TransportMatrix transports the coordinate frame along path.
func (c *Chart) TransportMatrix(path *GeodesicPath) mgl64.Mat4 {
	return c.metric.TransportMatrix(path)
}

// clampToDisk scales x/y of p to radius `to` when its disk radius is at
// least `limit`; z is untouched.
func clampToDisk(p mgl64.Vec3, limit, to float64) mgl64.Vec3 {
	r := diskRadius(p)
	if r < limit {
		return p
	}
	s := to / r
	return mgl64.Vec3{p[0] * s, p[1] * s, p[2]}
}
