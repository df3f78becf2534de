package manifold

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Numeric thresholds shared by the geometry code.
const (
	// lengthEpsilon is the length below which a vector counts as zero.
	lengthEpsilon = 1e-12

	// parallelEpsilon is the minimum |direction·normal| for a ray to count as
	// crossing a portal plane.
	parallelEpsilon = 1e-6

	// diskRim is the Poincaré radius treated as the boundary of the model.
	diskRim = 0.99

	// diskWrap is the radius points are pulled back to by WrapCoordinates.
	diskWrap = 0.98

	// nearOrigin is the Poincaré radius under which geodesics are diameters.
	nearOrigin = 0.01
)

var (
	worldUp      = mgl64.Vec3{0, 1, 0}
	worldForward = mgl64.Vec3{0, 0, 1}
)

// normalize returns v/|v| and true, or the zero vector and false when v is
// (numerically) zero.
func normalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < lengthEpsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// lerp blends a toward b by t.
func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// diskRadius is the distance of p from the z axis.
func diskRadius(p mgl64.Vec3) float64 {
	return math.Hypot(p[0], p[1])
}

// clamp limits x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// perpendicular returns a unit vector orthogonal to v (v must be non-zero).
func perpendicular(v mgl64.Vec3) mgl64.Vec3 {
	axis := worldUp
	if math.Abs(v.Dot(axis)) > 0.9*v.Len() {
		axis = mgl64.Vec3{1, 0, 0}
	}
	p, _ := normalize(v.Cross(axis))
	return p
}

// invertOrIdentity returns the inverse of m, or the identity when m is singular.
func invertOrIdentity(m mgl64.Mat4) (mgl64.Mat4, bool) {
	if math.Abs(m.Det()) < lengthEpsilon {
		return mgl64.Ident4(), false
	}
	return m.Inv(), true
}
