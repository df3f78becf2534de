package manifold

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Portal defaults.
const (
	DefaultPortalWidth  = 2.0
	DefaultPortalHeight = 3.0
)

// PortalID identifies a portal within its Manifold, assigned sequentially
// from 0.
type PortalID uint32

// String renders the id as "portal#N".
func (id PortalID) String() string { return fmt.Sprintf("portal#%d", uint32(id)) }

// PortalShape selects the hit test applied inside the portal plane.
type PortalShape int

const (
	// Rectangular is a Width x Height box in the portal plane.
	Rectangular PortalShape = iota
	// Circular is a disk of diameter Width.
	Circular
	// CustomShape defers to PortalBounds.Inside, accepting everything when nil.
	CustomShape
)

// String returns the shape name.
func (s PortalShape) String() string {
	switch s {
	case Rectangular:
		return "rectangular"
	case Circular:
		return "circular"
	case CustomShape:
		return "custom"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// PortalBounds is the hit-test region of a portal: a plane through Center
// with unit Normal, clipped by Shape.
type PortalBounds struct {
	Center mgl64.Vec3
	Normal mgl64.Vec3
	Width  float64
	Height float64
	Shape  PortalShape

	// Inside is the CustomShape predicate; it receives the hit point relative
	// to Center.
	Inside func(offset mgl64.Vec3) bool

	// MaxDistance limits how far along a ray a hit may be; 0 means unlimited.
	MaxDistance float64
}

// Connection is the from/to record kept for every portal.
type Connection struct {
	Portal PortalID
	From   ChartID
	To     ChartID
}

// Portal is a directed, bounded connector from one chart to another. Points
// crossing it are mapped by the affine Transform followed by the offset
// ToPosition − FromPosition.
//
// A Portal is immutable; Manifold.SetPortalActive swaps in a modified copy.
type Portal struct {
	id            PortalID
	from, to      ChartID
	fromPosition  mgl64.Vec3
	toPosition    mgl64.Vec3
	transform     mgl64.Mat4
	bounds        PortalBounds
	active        bool
	bidirectional bool
}

// PortalOption configures a Portal in NewPortal.
type PortalOption func(*Portal)

// WithNormal sets the portal plane normal. Zero vectors are ignored.
func WithNormal(n mgl64.Vec3) PortalOption {
	return func(p *Portal) {
		if u, ok := normalize(n); ok {
			p.bounds.Normal = u
		}
	}
}

// WithSize sets the portal width and height. Non-positive values are ignored.
func WithSize(width, height float64) PortalOption {
	return func(p *Portal) {
		if width > 0 {
			p.bounds.Width = width
		}
		if height > 0 {
			p.bounds.Height = height
		}
	}
}

// WithShape sets the portal shape.
func WithShape(s PortalShape) PortalOption {
	return func(p *Portal) { p.bounds.Shape = s }
}

// WithInside installs a CustomShape predicate and selects CustomShape.
func WithInside(inside func(offset mgl64.Vec3) bool) PortalOption {
	return func(p *Portal) {
		p.bounds.Shape = CustomShape
		p.bounds.Inside = inside
	}
}

// WithMaxDistance limits ray hits to distance d; 0 means unlimited.
func WithMaxDistance(d float64) PortalOption {
	return func(p *Portal) {
		if d >= 0 {
			p.bounds.MaxDistance = d
		}
	}
}

// WithBidirectional sets the bidirectional flag (default true).
func WithBidirectional(b bool) PortalOption {
	return func(p *Portal) { p.bidirectional = b }
}

// WithActive sets the initial active flag (default true).
func WithActive(a bool) PortalOption {
	return func(p *Portal) { p.active = a }
}

// NewPortal builds a portal from chart from to chart to.
//
// Defaults: centre fromPos, a 2 x 3 rectangle, active and bidirectional. The
// normal faces the source chart origin (−fromPos normalised), or +z when
// fromPos is the origin. A singular transform is replaced by the identity.
func NewPortal(id PortalID, from, to ChartID, fromPos, toPos mgl64.Vec3, transform mgl64.Mat4, opts ...PortalOption) *Portal {
	normal, ok := normalize(fromPos.Mul(-1))
	if !ok {
		normal = worldForward
	}

	if _, ok := invertOrIdentity(transform); !ok {
		Logger().Warn("manifold: singular portal transform replaced by identity", "portal", uint32(id))
		transform = mgl64.Ident4()
	}

	p := &Portal{
		id:           id,
		from:         from,
		to:           to,
		fromPosition: fromPos,
		toPosition:   toPos,
		transform:    transform,
		bounds: PortalBounds{
			Center: fromPos,
			Normal: normal,
			Width:  DefaultPortalWidth,
			Height: DefaultPortalHeight,
			Shape:  Rectangular,
		},
		active:        true,
		bidirectional: true,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ID returns the portal id.
func (p *Portal) ID() PortalID { return p.id }

// Source returns the chart the portal leaves.
func (p *Portal) Source() ChartID { return p.from }

// Target returns the chart the portal enters.
func (p *Portal) Target() ChartID { return p.to }

// FromPosition returns the portal location in the source chart.
func (p *Portal) FromPosition() mgl64.Vec3 { return p.fromPosition }

// ToPosition returns the portal location in the target chart.
func (p *Portal) ToPosition() mgl64.Vec3 { return p.toPosition }

// Transform returns the affine transform applied to crossing points.
func (p *Portal) Transform() mgl64.Mat4 { return p.transform }

// Bounds returns the hit-test region.
func (p *Portal) Bounds() PortalBounds { return p.bounds }

// Active reports whether the portal takes part in ray tests and routing.
func (p *Portal) Active() bool { return p.active }

// Bidirectional reports the bidirectional flag.
func (p *Portal) Bidirectional() bool { return p.bidirectional }

// Connection returns the portal's from/to record.
func (p *Portal) Connection() Connection {
	return Connection{Portal: p.id, From: p.from, To: p.to}
}

// RayIntersection intersects the ray origin + t·direction (t ≥ 0) with the
// portal. Inactive portals, rays parallel to the plane, hits behind the
// origin or beyond MaxDistance, and hits outside the shape all miss.
func (p *Portal) RayIntersection(origin, direction mgl64.Vec3) (mgl64.Vec3, bool) {
	hit, _, ok := p.intersect(origin, direction)
	return hit, ok
}

// intersect is RayIntersection plus the hit distance from origin.
func (p *Portal) intersect(origin, direction mgl64.Vec3) (hit mgl64.Vec3, dist float64, ok bool) {
	if !p.active {
		return mgl64.Vec3{}, 0, false
	}

	n := p.bounds.Normal
	denom := direction.Dot(n)
	if math.Abs(denom) < parallelEpsilon {
		return mgl64.Vec3{}, 0, false
	}

	t := p.bounds.Center.Sub(origin).Dot(n) / denom
	if t < 0 {
		return mgl64.Vec3{}, 0, false
	}

	dist = t * direction.Len()
	if p.bounds.MaxDistance > 0 && dist > p.bounds.MaxDistance {
		return mgl64.Vec3{}, 0, false
	}

	hit = origin.Add(direction.Mul(t))
	if !p.ContainsPoint(hit) {
		return mgl64.Vec3{}, 0, false
	}

	return hit, dist, true
}

// ContainsPoint tests a point already on the portal plane against the shape.
func (p *Portal) ContainsPoint(point mgl64.Vec3) bool {
	offset := point.Sub(p.bounds.Center)

	switch p.bounds.Shape {
	case Rectangular:
		right, up := p.planeAxes()
		return math.Abs(offset.Dot(right)) <= p.bounds.Width/2 &&
			math.Abs(offset.Dot(up)) <= p.bounds.Height/2
	case Circular:
		n := p.bounds.Normal
		planar := offset.Sub(n.Mul(offset.Dot(n)))
		return planar.Len() <= p.bounds.Width/2
	default:
		if p.bounds.Inside == nil {
			return true
		}
		return p.bounds.Inside(offset)
	}
}

// planeAxes returns the right and up vectors spanning the portal plane:
// right = normal × worldUp, falling back to normal × worldForward when the
// normal is vertical.
func (p *Portal) planeAxes() (right, up mgl64.Vec3) {
	n := p.bounds.Normal
	right, ok := normalize(n.Cross(worldUp))
	if !ok {
		right, _ = normalize(n.Cross(worldForward))
	}
	return right, n.Cross(right)
}

// TransformPoint maps a source-chart point into the target chart: the affine
// transform first, then the ToPosition − FromPosition offset.
func (p *Portal) TransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(point, p.transform).Add(p.toPosition.Sub(p.fromPosition))
}

// TransformVector maps a direction through the linear part of the transform.
func (p *Portal) TransformVector(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformNormal(v, p.transform)
}

// ViewMatrix returns the view from a camera at eye (source chart) looking out
// of the portal exit, for rendering the far side.
func (p *Portal) ViewMatrix(eye mgl64.Vec3) mgl64.Mat4 {
	from := p.TransformPoint(eye)
	target := p.toPosition.Add(p.TransformVector(p.bounds.Normal))
	up := p.TransformVector(worldUp)
	if target.Sub(from).Cross(up).Len() < lengthEpsilon {
		up = p.TransformVector(worldForward)
	}
	return mgl64.LookAtV(from, target, up)
}

// Outline returns the edge loop of the portal in its plane: the four corners
// of a rectangle, segments points around a circle (minimum 3), or the centre
// alone for a custom shape.
func (p *Portal) Outline(segments int) []mgl64.Vec3 {
	c := p.bounds.Center
	right, up := p.planeAxes()
	hw, hh := p.bounds.Width/2, p.bounds.Height/2

	switch p.bounds.Shape {
	case Rectangular:
		return []mgl64.Vec3{
			c.Sub(right.Mul(hw)).Sub(up.Mul(hh)),
			c.Add(right.Mul(hw)).Sub(up.Mul(hh)),
			c.Add(right.Mul(hw)).Add(up.Mul(hh)),
			c.Sub(right.Mul(hw)).Add(up.Mul(hh)),
		}
	case Circular:
		if segments < 3 {
			segments = 3
		}
		out := make([]mgl64.Vec3, segments)
		for i := range out {
			sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
			out[i] = c.Add(right.Mul(hw * cos)).Add(up.Mul(hw * sin))
		}
		return out
	default:
		return []mgl64.Vec3{c}
	}
}

// Reverse builds the independent opposite portal with id: endpoints swapped,
// centre at ToPosition, normal mapped through the transform.
//
// With d = ToPosition − FromPosition the reverse transform is
// T(d)·A⁻¹·T(−d), so reverse.TransformPoint(p.TransformPoint(x)) == x for
// any invertible A. The two portals are not linked afterwards.
func (p *Portal) Reverse(id PortalID) *Portal {
	inv, _ := invertOrIdentity(p.transform)
	d := p.toPosition.Sub(p.fromPosition)
	back := mgl64.Translate3D(d[0], d[1], d[2]).Mul4(inv).Mul4(mgl64.Translate3D(-d[0], -d[1], -d[2]))

	normal, ok := normalize(p.TransformVector(p.bounds.Normal))
	if !ok {
		normal = p.bounds.Normal
	}

	bounds := p.bounds
	bounds.Center = p.toPosition
	bounds.Normal = normal

	return &Portal{
		id:            id,
		from:          p.to,
		to:            p.from,
		fromPosition:  p.toPosition,
		toPosition:    p.fromPosition,
		transform:     back,
		bounds:        bounds,
		active:        p.active,
		bidirectional: p.bidirectional,
	}
}

// withActive returns a copy of p with the active flag set.
func (p *Portal) withActive(active bool) *Portal {
	cp := *p
	cp.active = active
	return &cp
}
