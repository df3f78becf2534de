package manifold_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatopia/manifold"
)

func TestNewPortal_Defaults(t *testing.T) {
	p := manifold.NewPortal(4, 0, 1, mgl64.Vec3{10, 0, 0}, mgl64.Vec3{}, mgl64.Ident4())
	b := p.Bounds()

	assert.Equal(t, manifold.PortalID(4), p.ID())
	assert.Equal(t, manifold.ChartID(0), p.Source())
	assert.Equal(t, manifold.ChartID(1), p.Target())
	assert.Equal(t, mgl64.Vec3{10, 0, 0}, b.Center)
	assert.Equal(t, mgl64.Vec3{-1, 0, 0}, b.Normal, "faces the chart origin")
	assert.Equal(t, 2.0, b.Width)
	assert.Equal(t, 3.0, b.Height)
	assert.Equal(t, manifold.Rectangular, b.Shape)
	assert.True(t, p.Active())
	assert.True(t, p.Bidirectional())

	atOrigin := manifold.NewPortal(0, 0, 1, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, mgl64.Ident4())
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, atOrigin.Bounds().Normal)

	singular := manifold.NewPortal(0, 0, 1, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}, mgl64.Mat4{})
	assert.Equal(t, mgl64.Ident4(), singular.Transform())
}

func TestRayIntersection_AlongNormalHitsCentre(t *testing.T) {
	normals := []mgl64.Vec3{
		{0, 0, 1}, {1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {1, 1, 1}, {-0.3, 0.2, 0.9},
	}
	shapes := []manifold.PortalShape{manifold.Rectangular, manifold.Circular, manifold.CustomShape}
	centre := mgl64.Vec3{3, -2, 7}

	for _, n := range normals {
		for _, shape := range shapes {
			p := manifold.NewPortal(0, 0, 1, centre, mgl64.Vec3{}, mgl64.Ident4(),
				manifold.WithNormal(n), manifold.WithShape(shape))
			unit := n.Normalize()
			origin := centre.Add(unit.Mul(5))

			hit, ok := p.RayIntersection(origin, unit.Mul(-1))
			require.True(t, ok, "normal %v shape %s", n, shape)
			assertVec(t, centre, hit, 1e-9)

			// parallel to the plane never hits
			_, ok = p.RayIntersection(origin, perpendicularTo(unit))
			assert.False(t, ok, "parallel ray hit: normal %v shape %s", n, shape)

			// pointing away never hits
			_, ok = p.RayIntersection(origin, unit)
			assert.False(t, ok)
		}
	}
}

func perpendicularTo(n mgl64.Vec3) mgl64.Vec3 {
	axis := mgl64.Vec3{1, 0, 0}
	if math.Abs(n.Dot(axis)) > 0.9 {
		axis = mgl64.Vec3{0, 1, 0}
	}
	return n.Cross(axis).Normalize()
}

func TestRayIntersection_Rejections(t *testing.T) {
	centre := mgl64.Vec3{0, 0, 10}
	newPortal := func(opts ...manifold.PortalOption) *manifold.Portal {
		return manifold.NewPortal(0, 0, 1, centre, mgl64.Vec3{}, mgl64.Ident4(), opts...)
	}
	forward := mgl64.Vec3{0, 0, 1}

	_, ok := newPortal(manifold.WithActive(false)).RayIntersection(mgl64.Vec3{}, forward)
	assert.False(t, ok, "inactive")

	_, ok = newPortal(manifold.WithMaxDistance(5)).RayIntersection(mgl64.Vec3{}, forward)
	assert.False(t, ok, "beyond max distance")
	_, ok = newPortal(manifold.WithMaxDistance(10)).RayIntersection(mgl64.Vec3{}, forward)
	assert.True(t, ok, "at max distance")

	// rectangle: 2 wide (x), 3 tall (y)
	rect := newPortal()
	_, ok = rect.RayIntersection(mgl64.Vec3{0.9, 1.4, 0}, forward)
	assert.True(t, ok)
	_, ok = rect.RayIntersection(mgl64.Vec3{1.1, 0, 0}, forward)
	assert.False(t, ok)
	_, ok = rect.RayIntersection(mgl64.Vec3{0, 1.6, 0}, forward)
	assert.False(t, ok)

	circle := newPortal(manifold.WithShape(manifold.Circular), manifold.WithSize(4, 0))
	_, ok = circle.RayIntersection(mgl64.Vec3{1.4, 1.4, 0}, forward)
	assert.True(t, ok)
	_, ok = circle.RayIntersection(mgl64.Vec3{1.5, 1.5, 0}, forward)
	assert.False(t, ok)

	upperHalf := newPortal(manifold.WithInside(func(off mgl64.Vec3) bool { return off[1] > 0 }))
	_, ok = upperHalf.RayIntersection(mgl64.Vec3{0, 50, 0}, forward)
	assert.True(t, ok)
	_, ok = upperHalf.RayIntersection(mgl64.Vec3{0, -1, 0}, forward)
	assert.False(t, ok)
}

func TestRayIntersection_VerticalNormal(t *testing.T) {
	floor := manifold.NewPortal(0, 0, 1, mgl64.Vec3{0, -5, 0}, mgl64.Vec3{}, mgl64.Ident4())
	require.Equal(t, mgl64.Vec3{0, 1, 0}, floor.Bounds().Normal)

	_, ok := floor.RayIntersection(mgl64.Vec3{0.5, 0, 1}, mgl64.Vec3{0, -1, 0})
	assert.True(t, ok)
	_, ok = floor.RayIntersection(mgl64.Vec3{0.5, 0, 2}, mgl64.Vec3{0, -1, 0})
	assert.False(t, ok, "outside the 3-unit side")
}

func TestTransformPoint_Order(t *testing.T) {
	rot := mgl64.HomogRotate3DZ(math.Pi / 2)
	p := manifold.NewPortal(0, 0, 1, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 5, 0}, rot)

	// rotate first: (2,0,0) → (0,2,0); then offset (−1,5,0)
	assertVec(t, mgl64.Vec3{-1, 7, 0}, p.TransformPoint(mgl64.Vec3{2, 0, 0}), 1e-12)
	assertVec(t, mgl64.Vec3{0, 1, 0}, p.TransformVector(mgl64.Vec3{1, 0, 0}), 1e-12)

	shifted := manifold.NewPortal(0, 0, 1, mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Translate3D(3, 0, 0))
	assertVec(t, mgl64.Vec3{1, 0, 0}, shifted.TransformVector(mgl64.Vec3{1, 0, 0}), 0, "vectors ignore translation")
}

func TestReverse_RoundTrip(t *testing.T) {
	transforms := map[string]mgl64.Mat4{
		"identity": mgl64.Ident4(),
		"yaw":      mgl64.HomogRotate3DY(math.Pi / 3),
		"scaled":   mgl64.Scale3D(2, 2, 2),
		"affine":   mgl64.Translate3D(1, -2, 3).Mul4(mgl64.HomogRotate3DX(0.7)).Mul4(mgl64.Scale3D(1.5, 0.5, 2)),
	}
	points := []mgl64.Vec3{{}, {10, 0, 0}, {0.5, 0.5, 0}, {-3, 4, 12}}

	for name, tr := range transforms {
		t.Run(name, func(t *testing.T) {
			p := manifold.NewPortal(0, 0, 1, mgl64.Vec3{10, 0, 0}, mgl64.Vec3{0, 0, 1}, tr)
			r := p.Reverse(1)

			assert.Equal(t, manifold.PortalID(1), r.ID())
			assert.Equal(t, p.Target(), r.Source())
			assert.Equal(t, p.Source(), r.Target())
			assert.Equal(t, p.ToPosition(), r.FromPosition())
			assert.Equal(t, p.FromPosition(), r.ToPosition())
			assert.Equal(t, p.ToPosition(), r.Bounds().Center)

			for _, x := range points {
				assertVec(t, x, r.TransformPoint(p.TransformPoint(x)), 1e-9, "%s %v", name, x)
				assertVec(t, x, p.TransformPoint(r.TransformPoint(x)), 1e-9, "%s %v", name, x)
			}
		})
	}
}

func TestReverse_IndependentOfOriginal(t *testing.T) {
	p := manifold.NewPortal(0, 0, 1, mgl64.Vec3{10, 0, 0}, mgl64.Vec3{}, mgl64.HomogRotate3DY(math.Pi/2))
	r := p.Reverse(1)

	// normal (−1,0,0) yawed by 90° about y becomes (0,0,1)
	assertVec(t, mgl64.Vec3{0, 0, 1}, r.Bounds().Normal, 1e-12)
	assert.Equal(t, p.Bounds().Width, r.Bounds().Width)
}

func TestOutline(t *testing.T) {
	rect := manifold.NewPortal(0, 0, 1, mgl64.Vec3{0, 0, 4}, mgl64.Vec3{}, mgl64.Ident4())
	corners := rect.Outline(0)
	require.Len(t, corners, 4)
	for _, c := range corners {
		off := c.Sub(rect.Bounds().Center)
		assert.InDelta(t, math.Hypot(1, 1.5), off.Len(), 1e-12)
		assert.InDelta(t, 0.0, off.Dot(rect.Bounds().Normal), 1e-12)
	}

	disk := manifold.NewPortal(0, 0, 1, mgl64.Vec3{0, 0, 4}, mgl64.Vec3{}, mgl64.Ident4(),
		manifold.WithShape(manifold.Circular))
	ring := disk.Outline(32)
	require.Len(t, ring, 32)
	for _, c := range ring {
		assert.InDelta(t, 1.0, c.Sub(disk.Bounds().Center).Len(), 1e-12)
	}
	assert.Len(t, disk.Outline(1), 3)

	custom := manifold.NewPortal(0, 0, 1, mgl64.Vec3{0, 0, 4}, mgl64.Vec3{}, mgl64.Ident4(),
		manifold.WithShape(manifold.CustomShape))
	assert.Equal(t, []mgl64.Vec3{{0, 0, 4}}, custom.Outline(8))
}

func TestViewMatrix_LooksOutOfExit(t *testing.T) {
	p := manifold.NewPortal(0, 0, 1, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, mgl64.Ident4())
	view := p.ViewMatrix(mgl64.Vec3{})

	// eye lands at (0,0,−5) in the target chart and looks toward (0,0,−1)
	target := mgl64.TransformCoordinate(mgl64.Vec3{0, 0, -1}, view)
	assert.InDelta(t, 0.0, target[0], 1e-9)
	assert.InDelta(t, 0.0, target[1], 1e-9)
	assert.Less(t, target[2], 0.0, "target is in front of the camera")
}
