package manifold

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Metric defaults.
const (
	// DefaultSphereRadius is the radius of a spherical chart's sphere.
	DefaultSphereRadius = 10.0

	// DefaultTransportStep scales each parallel-transport correction.
	DefaultTransportStep = 0.01
)

// MetricFunc evaluates a custom metric at a point.
type MetricFunc func(p mgl64.Vec3) MetricTensor

// Metric measures distances and curvature for one geometry.
//
// A Metric is a plain value; copies are independent. Func is only consulted
// for Custom geometry.
type Metric struct {
	// Geometry selects the formulas used by every method.
	Geometry GeometryType

	// Scale uniformly scales reported distances (default 1).
	Scale float64

	// Curvature is the scalar curvature reported for the geometry.
	Curvature float64

	// Radius is the sphere radius for Spherical geometry.
	Radius float64

	// Func is the custom metric field; nil means identity.
	Func MetricFunc

	// TransportStep is the per-segment scale of the parallel-transport
	// correction. It is the accuracy knob of the transport approximation:
	// larger values react more strongly to curvature.
	TransportStep float64
}

// MetricOption configures a Metric in NewMetric.
type MetricOption func(*Metric)

// WithRadius sets the sphere radius (and the derived spherical curvature).
// Non-positive radii are ignored.
func WithRadius(r float64) MetricOption {
	return func(m *Metric) {
		if r <= 0 {
			return
		}
		m.Radius = r
		if m.Geometry == Spherical {
			m.Curvature = 2 / (r * r)
		}
	}
}

// WithMetricFunc installs the evaluator used by Custom geometry.
func WithMetricFunc(f MetricFunc) MetricOption {
	return func(m *Metric) { m.Func = f }
}

// WithTransportStep overrides DefaultTransportStep. Non-positive values are ignored.
func WithTransportStep(step float64) MetricOption {
	return func(m *Metric) {
		if step > 0 {
			m.TransportStep = step
		}
	}
}

// WithScale sets the distance scale. Non-positive values are ignored.
func WithScale(s float64) MetricOption {
	return func(m *Metric) {
		if s > 0 {
			m.Scale = s
		}
	}
}

// NewMetric returns the metric for geometry with its default parameters:
// Euclidean curvature 0; Spherical radius 10 and curvature 2/radius²;
// Hyperbolic curvature −1; Custom identity unless WithMetricFunc is given.
func NewMetric(geometry GeometryType, opts ...MetricOption) Metric {
	m := Metric{
		Geometry:      geometry,
		Scale:         1,
		Radius:        1,
		TransportStep: DefaultTransportStep,
	}
	switch geometry {
	case Spherical:
		m.Radius = DefaultSphereRadius
		m.Curvature = 2 / (DefaultSphereRadius * DefaultSphereRadius)
	case Hyperbolic:
		m.Curvature = -1
	}
	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// TensorAt evaluates the metric tensor at p.
func (m Metric) TensorAt(p mgl64.Vec3) MetricTensor {
	switch m.Geometry {
	case Spherical:
		r := p.Len()
		theta := math.Pi / 2
		if r > lengthEpsilon {
			theta = math.Acos(clamp(p[2]/r, -1, 1))
		}
		return SphericalTensor(m.Radius, theta, math.Atan2(p[1], p[0]))
	case Hyperbolic:
		return PoincareTensor(p[0], p[1])
	case Custom:
		if m.Func != nil {
			return m.Func(p)
		}
		return IdentityTensor()
	default:
		return IdentityTensor()
	}
}

// Christoffel returns the Christoffel symbols of this metric at p.
func (m Metric) Christoffel(p mgl64.Vec3) ChristoffelSymbols {
	if m.flat() {
		return ChristoffelSymbols{}
	}
	return Christoffel(m.TensorAt, p)
}

// flat reports whether the metric is the identity everywhere.
func (m Metric) flat() bool {
	return m.Geometry == Euclidean || (m.Geometry == Custom && m.Func == nil)
}

// Distance returns the distance between a and b.
//
//   - Euclidean: |b − a|.
//   - Spherical: great-circle distance R·acos(â·b̂); assumes both points lie
//     near the sphere. Zero-length inputs fall back to |b − a|.
//   - Hyperbolic: product of the Poincaré disk in (x, y) with a Euclidean z
//     axis, √(d_disk² + Δz²); +Inf when either point is on or beyond the
//     0.99 rim.
//   - Custom: metric norm of b − a evaluated at the midpoint.
func (m Metric) Distance(a, b mgl64.Vec3) float64 {
	if a == b {
		return 0
	}

	var d float64
	switch m.Geometry {
	case Spherical:
		an, okA := normalize(a)
		bn, okB := normalize(b)
		if !okA || !okB {
			d = b.Sub(a).Len()
			break
		}
		d = m.Radius * math.Acos(clamp(an.Dot(bn), -1, 1))
	case Hyperbolic:
		ra, rb := diskRadius(a), diskRadius(b)
		if ra >= diskRim || rb >= diskRim {
			return math.Inf(1)
		}
		dx, dy := a[0]-b[0], a[1]-b[1]
		delta2 := dx*dx + dy*dy
		d = math.Hypot(math.Acosh(1+2*delta2/((1-ra*ra)*(1-rb*rb))), a[2]-b[2])
	case Custom:
		mid := lerp(a, b, 0.5)
		d = m.TensorAt(mid).Norm(b.Sub(a))
	default:
		d = b.Sub(a).Len()
	}

	return d * m.Scale
}

// ParallelTransport carries v along path.
//
// For each segment the Christoffel symbols at the segment start are applied
// as a geodesic-acceleration correction scaled by TransportStep; the result
// is rescaled to |v|. This is a first-order approximation, not an exact
// integrator. A nil or single-point path, or a zero v, returns v unchanged.
func (m Metric) ParallelTransport(v mgl64.Vec3, path *GeodesicPath) mgl64.Vec3 {
	if path == nil || path.Len() < 2 || m.flat() {
		return v
	}
	magnitude := v.Len()
	if magnitude < lengthEpsilon {
		return v
	}

	transported := v
	for i := 1; i < len(path.points); i++ {
		p0, p1 := path.points[i-1], path.points[i]
		tangent, ok := normalize(p1.Sub(p0))
		if !ok {
			continue
		}
		correction := m.Christoffel(p0).GeodesicAcceleration(tangent)
		transported = transported.Sub(correction.Mul(m.TransportStep))
	}

	dir, ok := normalize(transported)
	if !ok {
		return v
	}
	return dir.Mul(magnitude)
}

// TransportMatrix transports the x, y and z axes along path and returns
// them as the columns of a 4x4 frame.
func (m Metric) TransportMatrix(path *GeodesicPath) mgl64.Mat4 {
	tx := m.ParallelTransport(mgl64.Vec3{1, 0, 0}, path)
	ty := m.ParallelTransport(mgl64.Vec3{0, 1, 0}, path)
	tz := m.ParallelTransport(mgl64.Vec3{0, 0, 1}, path)

	return mgl64.Mat4FromCols(tx.Vec4(0), ty.Vec4(0), tz.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
}
