package manifold

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// GeodesicPath is an ordered sequence of (point, unit tangent) samples with
// the cumulative arc length, tagged with the geometry it was computed under.
//
// Arc length is the sum of consecutive sample distances in the ambient space,
// not an intrinsic metric length. A path is immutable once returned by the
// solver; accessors hand out copies.
type GeodesicPath struct {
	points    []mgl64.Vec3
	tangents  []mgl64.Vec3
	arcLength float64
	geometry  GeometryType
}

func newGeodesicPath(g GeometryType, capacity int) *GeodesicPath {
	return &GeodesicPath{
		points:   make([]mgl64.Vec3, 0, capacity),
		tangents: make([]mgl64.Vec3, 0, capacity),
		geometry: g,
	}
}

// add appends a sample and grows the arc length by the segment it closes.
func (p *GeodesicPath) add(point, tangent mgl64.Vec3) {
	if n := len(p.points); n > 0 {
		p.arcLength += point.Sub(p.points[n-1]).Len()
	}
	p.points = append(p.points, point)
	p.tangents = append(p.tangents, tangent)
}

// Len returns the number of samples.
func (p *GeodesicPath) Len() int { return len(p.points) }

// ArcLength returns the ambient length of the polyline.
func (p *GeodesicPath) ArcLength() float64 { return p.arcLength }

// Geometry returns the geometry the path was computed under. A hyperbolic
// request that fell back to a straight line reports Euclidean.
func (p *GeodesicPath) Geometry() GeometryType { return p.geometry }

// Points returns a copy of the samples.
func (p *GeodesicPath) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(p.points))
	copy(out, p.points)
	return out
}

// Tangents returns a copy of the unit tangents, one per sample.
func (p *GeodesicPath) Tangents() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(p.tangents))
	copy(out, p.tangents)
	return out
}

// Start returns the first sample.
func (p *GeodesicPath) Start() (mgl64.Vec3, bool) {
	if len(p.points) == 0 {
		return mgl64.Vec3{}, false
	}
	return p.points[0], true
}

// End returns the last sample.
func (p *GeodesicPath) End() (mgl64.Vec3, bool) {
	if len(p.points) == 0 {
		return mgl64.Vec3{}, false
	}
	return p.points[len(p.points)-1], true
}

// Interpolate returns the point at fraction t of the arc length, linearly
// blended inside the segment that contains it. t ≤ 0 yields the first
// sample and t ≥ 1 the last. ok is false only for an empty path.
func (p *GeodesicPath) Interpolate(t float64) (point mgl64.Vec3, ok bool) {
	n := len(p.points)
	if n == 0 {
		return mgl64.Vec3{}, false
	}
	if t <= 0 || n == 1 || p.arcLength <= 0 {
		return p.points[0], true
	}
	if t >= 1 {
		return p.points[n-1], true
	}

	target := t * p.arcLength
	var walked float64
	for i := 1; i < n; i++ {
		seg := p.points[i].Sub(p.points[i-1]).Len()
		if walked+seg >= target {
			if seg <= 0 {
				return p.points[i], true
			}
			return lerp(p.points[i-1], p.points[i], (target-walked)/seg), true
		}
		walked += seg
	}

	return p.points[n-1], true
}

// TangentAt returns the stored tangent of the sample nearest to fraction t
// of the sample index range. No interpolation is done.
func (p *GeodesicPath) TangentAt(t float64) (mgl64.Vec3, bool) {
	n := len(p.tangents)
	if n == 0 {
		return mgl64.Vec3{}, false
	}
	idx := int(math.Round(clamp(t, 0, 1) * float64(n-1)))
	return p.tangents[idx], true
}
