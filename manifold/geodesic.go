package manifold

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Solver parameters.
const (
	// RelaxIterations is the number of relaxation sweeps of the Custom solver.
	RelaxIterations = 20

	// RelaxRate is the gradient step of the Custom solver.
	RelaxRate = 0.1

	// minSphericalAngle is the great-circle angle below which slerp degrades
	// to a linear blend.
	minSphericalAngle = 1e-3

	// relaxProbe is the finite-difference step of the energy gradient.
	relaxProbe = 1e-5
)

// ComputeGeodesic samples a geodesic from start to end under metric with
// exactly steps+1 points (steps < 0 counts as 0).
//
//   - Euclidean: uniform linear interpolation.
//   - Spherical: great-circle arc on the sphere of the metric radius; the
//     endpoints are projected onto that sphere first.
//   - Hyperbolic: the arc of the circle orthogonal to the unit circle through
//     both points, z interpolated linearly. Endpoints near the origin or
//     collinear with it give a diameter; endpoints on the rim fall back to a
//     straight line tagged Euclidean.
//   - Custom: a relaxed polyline; best effort, not a rigorous solver.
func ComputeGeodesic(start, end mgl64.Vec3, metric Metric, steps int) *GeodesicPath {
	if steps < 0 {
		steps = 0
	}

	switch metric.Geometry {
	case Spherical:
		return sphericalGeodesic(start, end, metric.Radius, steps)
	case Hyperbolic:
		return hyperbolicGeodesic(start, end, steps)
	case Custom:
		return relaxedGeodesic(start, end, metric, steps)
	default:
		return linearGeodesic(start, end, steps, Euclidean)
	}
}

func linearGeodesic(start, end mgl64.Vec3, steps int, tag GeometryType) *GeodesicPath {
	path := newGeodesicPath(tag, steps+1)
	dir, _ := normalize(end.Sub(start))

	path.add(start, dir)
	for i := 1; i <= steps; i++ {
		if i == steps {
			path.add(end, dir)
			break
		}
		path.add(lerp(start, end, float64(i)/float64(steps)), dir)
	}

	return path
}

// sphericalGeodesic walks the great circle p(θ) = R(a cos θ + u sin θ), where
// u is the unit vector in the a,b plane orthogonal to a. Antipodal endpoints
// have no unique plane; any perpendicular axis is used.
func sphericalGeodesic(start, end mgl64.Vec3, radius float64, steps int) *GeodesicPath {
	a, okA := normalize(start)
	b, okB := normalize(end)
	if !okA || !okB {
		return linearGeodesic(start, end, steps, Spherical)
	}

	omega := math.Acos(clamp(a.Dot(b), -1, 1))
	if omega <= minSphericalAngle {
		return linearGeodesic(a.Mul(radius), b.Mul(radius), steps, Spherical)
	}

	u, ok := normalize(b.Sub(a.Mul(a.Dot(b))))
	if !ok {
		u = perpendicular(a)
	}

	path := newGeodesicPath(Spherical, steps+1)
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		theta := t * omega
		sin, cos := math.Sincos(theta)
		point := a.Mul(cos).Add(u.Mul(sin)).Mul(radius)
		tangent := a.Mul(-sin).Add(u.Mul(cos))
		path.add(point, tangent)
	}

	return path
}

// hyperbolicGeodesic samples the Poincaré-disk geodesic between start and
// end in the xy plane.
//
// The geodesic circle with centre c is orthogonal to the unit circle iff
// |c|² = ρ² + 1; passing through p gives c·p = (|p|² + 1)/2. Two points fix c.
func hyperbolicGeodesic(start, end mgl64.Vec3, steps int) *GeodesicPath {
	ra, rb := diskRadius(start), diskRadius(end)
	if ra >= diskRim || rb >= diskRim {
		return linearGeodesic(start, end, steps, Euclidean)
	}

	det := start[0]*end[1] - start[1]*end[0]
	if ra < nearOrigin || rb < nearOrigin || math.Abs(det) < 1e-9 {
		return linearGeodesic(start, end, steps, Hyperbolic)
	}

	ka := (ra*ra + 1) / 2
	kb := (rb*rb + 1) / 2
	cx := (ka*end[1] - kb*start[1]) / det
	cy := (start[0]*kb - end[0]*ka) / det
	rho := math.Hypot(start[0]-cx, start[1]-cy)

	alpha0 := math.Atan2(start[1]-cy, start[0]-cx)
	alpha1 := math.Atan2(end[1]-cy, end[0]-cx)
	sweep := alpha1 - alpha0
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep <= -math.Pi {
		sweep += 2 * math.Pi
	}
	dz := end[2] - start[2]

	path := newGeodesicPath(Hyperbolic, steps+1)
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		theta := alpha0 + t*sweep
		sin, cos := math.Sincos(theta)

		var point mgl64.Vec3
		switch {
		case i == 0:
			point = start
		case i == steps:
			point = end
		default:
			point = mgl64.Vec3{cx + rho*cos, cy + rho*sin, start[2] + t*dz}
		}
		tangent, _ := normalize(mgl64.Vec3{-rho * sin * sweep, rho * cos * sweep, dz})
		path.add(point, tangent)
	}

	return path
}

// relaxedGeodesic starts from the straight line and lowers the discrete
// energy Σ Δᵢᵀ g(midᵢ) Δᵢ by gradient descent on the interior points.
//
// Each gradient component is divided by its diagonal stiffness
// 2(gₖₖ⁻ + gₖₖ⁺), so the fixed rate is stable for any metric scale. Each move
// is capped at the shorter neighbouring segment so the polyline cannot fold
// over itself.
func relaxedGeodesic(start, end mgl64.Vec3, metric Metric, steps int) *GeodesicPath {
	if steps < 2 || metric.flat() {
		return linearGeodesic(start, end, steps, Custom)
	}

	pts := make([]mgl64.Vec3, steps+1)
	for i := range pts {
		pts[i] = lerp(start, end, float64(i)/float64(steps))
	}
	pts[steps] = end

	seg := func(a, b mgl64.Vec3) float64 {
		d := b.Sub(a)
		return metric.TensorAt(lerp(a, b, 0.5)).InnerProduct(d, d)
	}
	energy := func(j int, pj mgl64.Vec3) float64 {
		return seg(pts[j-1], pj) + seg(pj, pts[j+1])
	}

	moves := make([]mgl64.Vec3, len(pts))
	for iter := 0; iter < RelaxIterations; iter++ {
		for j := 1; j < steps; j++ {
			left := metric.TensorAt(lerp(pts[j-1], pts[j], 0.5)).G
			right := metric.TensorAt(lerp(pts[j], pts[j+1], 0.5)).G

			var move mgl64.Vec3
			for k := 0; k < 3; k++ {
				plus, minus := pts[j], pts[j]
				plus[k] += relaxProbe
				minus[k] -= relaxProbe
				grad := (energy(j, plus) - energy(j, minus)) / (2 * relaxProbe)

				stiffness := 2 * (left.At(k, k) + right.At(k, k))
				if stiffness <= lengthEpsilon {
					stiffness = 1
				}
				move[k] = -RelaxRate * grad / stiffness
			}

			limit := math.Min(pts[j].Sub(pts[j-1]).Len(), pts[j+1].Sub(pts[j]).Len())
			if l := move.Len(); l > limit && l > 0 {
				move = move.Mul(limit / l)
			}
			moves[j] = move
		}
		for j := 1; j < steps; j++ {
			pts[j] = pts[j].Add(moves[j])
		}
	}

	path := newGeodesicPath(Custom, len(pts))
	var last mgl64.Vec3
	for i, p := range pts {
		if i+1 < len(pts) {
			if t, ok := normalize(pts[i+1].Sub(p)); ok {
				last = t
			}
		}
		path.add(p, last)
	}

	return path
}

// GeodesicRay is a ray cast through curved space: the geodesic from origin
// to the point maxDistance along direction.
type GeodesicRay struct {
	Origin      mgl64.Vec3
	Direction   mgl64.Vec3
	MaxDistance float64
	Path        *GeodesicPath
}

// CastGeodesicRay traces a geodesic of length maxDistance from origin along
// direction under metric.
func CastGeodesicRay(origin, direction mgl64.Vec3, metric Metric, maxDistance float64, steps int) *GeodesicRay {
	dir, _ := normalize(direction)
	end := origin.Add(dir.Mul(maxDistance))

	return &GeodesicRay{
		Origin:      origin,
		Direction:   dir,
		MaxDistance: maxDistance,
		Path:        ComputeGeodesic(origin, end, metric, steps),
	}
}

// PointAt returns the point at distance d along the ray.
func (r *GeodesicRay) PointAt(d float64) (mgl64.Vec3, bool) {
	if r.MaxDistance <= 0 {
		return r.Path.Start()
	}
	return r.Path.Interpolate(d / r.MaxDistance)
}

// DirectionAt returns the tangent at distance d along the ray.
func (r *GeodesicRay) DirectionAt(d float64) (mgl64.Vec3, bool) {
	if r.MaxDistance <= 0 {
		return r.Path.TangentAt(0)
	}
	return r.Path.TangentAt(d / r.MaxDistance)
}
