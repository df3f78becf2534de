package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/katalvlaran/metatopia/manifold"
)

// Camera defaults.
const (
	DefaultFovY = 45.0 // degrees
	DefaultNear = 0.1
	DefaultFar  = 1000.0

	hyperbolicFovScale = 1.5
	hyperbolicFovMax   = 170.0 // degrees
	sphericalFovScale  = 0.9
	sphericalFovMin    = 30.0 // degrees

	upProbeLength = 0.1
	upProbeSteps  = 5
	diskRim       = 0.99
)

var worldUp = mgl64.Vec3{0, 1, 0}

// Camera is a perspective camera placed in a chart. Target is a point in
// the same chart. Fields may be set directly; call Update afterwards.
type Camera struct {
	Position manifold.ManifoldPosition
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	// FovY is the base vertical field of view in radians; Update widens or
	// narrows it per geometry.
	FovY   float64
	Aspect float64
	Near   float64
	Far    float64

	View       mgl64.Mat4
	Projection mgl64.Mat4
	Geometry   manifold.GeometryType

	metric manifold.Metric
}

// Option configures a Camera in New.
type Option func(*Camera)

// WithFovY sets the base vertical field of view in degrees.
func WithFovY(deg float64) Option {
	return func(c *Camera) {
		if deg > 0 && deg < 180 {
			c.FovY = mgl64.DegToRad(deg)
		}
	}
}

// WithClip sets the near and far planes; ignored unless 0 < near < far.
func WithClip(near, far float64) Option {
	return func(c *Camera) {
		if near > 0 && far > near {
			c.Near, c.Far = near, far
		}
	}
}

// WithUp sets the up vector.
func WithUp(up mgl64.Vec3) Option {
	return func(c *Camera) {
		if up.Len() > 0 {
			c.Up = up.Normalize()
		}
	}
}

// New returns a camera at position in chart looking at target. Matrices
// are valid for a Euclidean chart until the first Update.
func New(chart manifold.ChartID, position, target mgl64.Vec3, aspect float64, opts ...Option) *Camera {
	c := &Camera{
		Position: manifold.ManifoldPosition{Chart: chart, Local: manifold.LocalCoordinate(position)},
		Target:   target,
		Up:       worldUp,
		FovY:     mgl64.DegToRad(DefaultFovY),
		Aspect:   aspect,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Geometry: manifold.Euclidean,
		metric:   manifold.NewMetric(manifold.Euclidean),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Aspect <= 0 {
		c.Aspect = 1
	}
	c.View = lookAt(position, c.Target, c.Up)
	c.updateProjection()

	return c
}

// Update rebuilds the view and projection for the camera's chart. It
// reports false, leaving the matrices untouched, when the chart is unknown.
func (c *Camera) Update(r manifold.Reader) bool {
	chart, ok := r.Chart(c.Position.Chart)
	if !ok {
		return false
	}
	c.Geometry = chart.Geometry()
	c.metric = chart.Metric()

	eye := c.eye()
	switch c.Geometry {
	case manifold.Spherical:
		c.View = lookAt(eye, c.Target, c.transportedUp(r))
	case manifold.Hyperbolic:
		c.View = lookAt(MobiusEye(eye), c.Target, c.Up)
	default:
		c.View = lookAt(eye, c.Target, c.Up)
	}
	c.updateProjection()

	return true
}

// transportedUp carries Up along a short geodesic leaving the eye in the
// up direction; any failure keeps Up.
func (c *Camera) transportedUp(r manifold.Reader) mgl64.Vec3 {
	eye := c.eye()
	path, err := r.ComputeGeodesic(eye, eye.Add(c.Up.Mul(upProbeLength)), c.Position.Chart, upProbeSteps)
	if err != nil {
		return c.Up
	}
	up, err := r.ParallelTransport(c.Up, path, c.Position.Chart)
	if err != nil || up.Len() == 0 {
		return c.Up
	}
	return up.Normalize()
}

// MobiusEye scales the disk-plane components of eye by 2/(1+r²) when it
// lies inside the Poincaré rim; z and points on the rim are unchanged.
func MobiusEye(eye mgl64.Vec3) mgl64.Vec3 {
	r2 := eye[0]*eye[0] + eye[1]*eye[1]
	if math.Sqrt(r2) >= diskRim {
		return eye
	}
	f := 2 / (1 + r2)
	return mgl64.Vec3{eye[0] * f, eye[1] * f, eye[2]}
}

// EffectiveFovY returns the vertical field of view, in radians, used for
// the camera's current geometry.
func (c *Camera) EffectiveFovY() float64 {
	switch c.Geometry {
	case manifold.Hyperbolic:
		return math.Min(c.FovY*hyperbolicFovScale, mgl64.DegToRad(hyperbolicFovMax))
	case manifold.Spherical:
		return math.Max(c.FovY*sphericalFovScale, mgl64.DegToRad(sphericalFovMin))
	default:
		return c.FovY
	}
}

func (c *Camera) updateProjection() {
	c.Projection = mgl64.Perspective(c.EffectiveFovY(), c.Aspect, c.Near, c.Far)
}

func (c *Camera) eye() mgl64.Vec3 { return c.Position.Local.Vec3() }

// MoveLocal shifts the camera and its target by delta in chart coordinates.
func (c *Camera) MoveLocal(delta mgl64.Vec3) {
	c.Position.Local = manifold.LocalCoordinate(c.eye().Add(delta))
	c.Target = c.Target.Add(delta)
}

// Rotate turns the view direction by yaw about Up, then by pitch about the
// camera's right axis. Target is kept one unit in front of the eye.
func (c *Camera) Rotate(yaw, pitch float64) {
	fwd := mgl64.QuatRotate(yaw, c.Up).Rotate(c.Forward())
	if right := fwd.Cross(c.Up); right.Len() > 1e-9 {
		pitched := mgl64.QuatRotate(pitch, right.Normalize()).Rotate(fwd)
		// never pitch through the pole
		if c.horizontal(pitched).Dot(c.horizontal(fwd)) > 1e-9 {
			fwd = pitched
		}
	}
	c.Target = c.eye().Add(fwd.Normalize())
}

func (c *Camera) horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(c.Up.Mul(v.Dot(c.Up)))
}

// SetPosition moves the camera to p in chart, keeping the view direction.
func (c *Camera) SetPosition(chart manifold.ChartID, p mgl64.Vec3) {
	fwd := c.Forward()
	c.Position = manifold.ManifoldPosition{Chart: chart, Local: manifold.LocalCoordinate(p)}
	c.Target = p.Add(fwd)
}

// Forward returns the unit view direction; (0,0,−1) when Target is the eye.
func (c *Camera) Forward() mgl64.Vec3 {
	d := c.Target.Sub(c.eye())
	if d.Len() < 1e-12 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// Right returns the unit right direction, Forward × Up.
func (c *Camera) Right() mgl64.Vec3 {
	r := c.Forward().Cross(c.Up)
	if r.Len() < 1e-12 {
		return mgl64.Vec3{1, 0, 0}
	}
	return r.Normalize()
}

// Resize updates the aspect ratio for a width×height viewport.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
	c.updateProjection()
}

// ViewProjection returns Projection·View.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection.Mul4(c.View)
}

// lookAt is LookAtV with a substitute up vector when the view direction is
// parallel to up.
func lookAt(eye, target, up mgl64.Vec3) mgl64.Mat4 {
	dir := target.Sub(eye)
	if dir.Len() < 1e-12 {
		return mgl64.Translate3D(-eye[0], -eye[1], -eye[2])
	}
	if dir.Cross(up).Len() < 1e-9*dir.Len() {
		up = mgl64.Vec3{0, 0, 1}
		if dir.Cross(up).Len() < 1e-9*dir.Len() {
			up = mgl64.Vec3{1, 0, 0}
		}
	}
	return mgl64.LookAtV(eye, target, up)
}
