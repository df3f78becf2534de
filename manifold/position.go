package manifold

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ManifoldPosition locates an object: a chart and a point in it.
type ManifoldPosition struct {
	Chart ChartID
	Local LocalCoordinate
}

// At builds a ManifoldPosition.
func At(chart ChartID, x, y, z float64) ManifoldPosition {
	return ManifoldPosition{Chart: chart, Local: Local(x, y, z)}
}

// String formats the position as "chart#N(x, y, z)".
func (p ManifoldPosition) String() string {
	return fmt.Sprintf("%s(%.3f, %.3f, %.3f)", p.Chart, p.Local[0], p.Local[1], p.Local[2])
}

// ToWorld places the position in world space. ok is false when the chart is
// unknown to lookup.
func (p ManifoldPosition) ToWorld(lookup ChartLookup) (mgl64.Vec3, bool) {
	c, ok := lookup.Chart(p.Chart)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return c.ToWorld(p.Local), true
}

// Orientation is an object's rotation relative to its chart axes. The zero
// value is not a valid rotation; use IdentityOrientation.
type Orientation struct {
	Rotation mgl64.Quat
}

// IdentityOrientation faces +z with +y up.
func IdentityOrientation() Orientation {
	return Orientation{Rotation: mgl64.QuatIdent()}
}

// Forward returns the rotated +z axis.
func (o Orientation) Forward() mgl64.Vec3 { return o.Rotation.Rotate(worldForward) }

// Up returns the rotated +y axis.
func (o Orientation) Up() mgl64.Vec3 { return o.Rotation.Rotate(worldUp) }

// Right returns the rotated +x axis.
func (o Orientation) Right() mgl64.Vec3 { return o.Rotation.Rotate(mgl64.Vec3{1, 0, 0}) }

// TransportAlong carries the orientation along path under metric: the
// transported axes are re-orthonormalised and composed with the rotation.
// A degenerate frame leaves the orientation unchanged.
func (o Orientation) TransportAlong(path *GeodesicPath, metric Metric) Orientation {
	frame := metric.TransportMatrix(path)
	x, ok := normalize(frame.Col(0).Vec3())
	if !ok {
		return o
	}
	y, ok := normalize(frame.Col(1).Vec3().Sub(x.Mul(x.Dot(frame.Col(1).Vec3()))))
	if !ok {
		return o
	}
	z := x.Cross(y)

	rot := mgl64.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	return Orientation{Rotation: mgl64.Mat4ToQuat(rot).Mul(o.Rotation).Normalize()}
}

// ThroughPortal rotates the orientation by the linear part of p's transform.
// Scaling and shear are dropped.
func (o Orientation) ThroughPortal(p *Portal) Orientation {
	fwd, ok := normalize(p.TransformVector(o.Forward()))
	if !ok {
		return o
	}
	up, ok := normalize(p.TransformVector(o.Up()))
	if !ok {
		return o
	}
	right, ok := normalize(up.Cross(fwd))
	if !ok {
		return o
	}
	up = fwd.Cross(right)

	rot := mgl64.Mat4FromCols(right.Vec4(0), up.Vec4(0), fwd.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	return Orientation{Rotation: mgl64.Mat4ToQuat(rot).Normalize()}
}
