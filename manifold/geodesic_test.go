package manifold_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatopia/manifold"
)

func TestComputeGeodesic_Euclidean(t *testing.T) {
	m := manifold.NewMetric(manifold.Euclidean)
	start, end := mgl64.Vec3{1, 2, 3}, mgl64.Vec3{7, -2, 3}

	for _, n := range []int{1, 2, 10, 33} {
		path := manifold.ComputeGeodesic(start, end, m, n)
		require.Equal(t, n+1, path.Len(), "steps=%d", n)
		assert.Equal(t, manifold.Euclidean, path.Geometry())
		assert.InDelta(t, end.Sub(start).Len(), path.ArcLength(), 1e-9)

		first, ok := path.Interpolate(0)
		require.True(t, ok)
		assertVec(t, start, first, eps)
		last, ok := path.Interpolate(1)
		require.True(t, ok)
		assertVec(t, end, last, eps)

		dir := end.Sub(start).Normalize()
		for _, tan := range path.Tangents() {
			assertVec(t, dir, tan, eps)
		}
	}

	path := manifold.ComputeGeodesic(start, end, m, 4)
	mid, _ := path.Interpolate(0.5)
	assertVec(t, mgl64.Vec3{4, 0, 3}, mid, eps)
	quarter, _ := path.Interpolate(0.3)
	assertVec(t, start.Add(end.Sub(start).Mul(0.3)), quarter, eps)
}

func TestComputeGeodesic_DegenerateSteps(t *testing.T) {
	m := manifold.NewMetric(manifold.Euclidean)
	for _, n := range []int{0, -3} {
		path := manifold.ComputeGeodesic(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 2, 2}, m, n)
		require.Equal(t, 1, path.Len())
		p, ok := path.Interpolate(0.7)
		require.True(t, ok)
		assert.Equal(t, mgl64.Vec3{1, 1, 1}, p)
		assert.Zero(t, path.ArcLength())
	}

	same := manifold.ComputeGeodesic(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 0}, m, 5)
	assert.Equal(t, 6, same.Len())
	p, _ := same.Interpolate(0.5)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, p)
}

func TestComputeGeodesic_Spherical(t *testing.T) {
	m := manifold.NewMetric(manifold.Spherical)
	path := manifold.ComputeGeodesic(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{0, 10, 0}, m, 64)

	require.Equal(t, 65, path.Len())
	assert.Equal(t, manifold.Spherical, path.Geometry())
	points, tangents := path.Points(), path.Tangents()
	for i, p := range points {
		assert.InDelta(t, 10.0, p.Len(), 1e-9, "sample %d leaves the sphere", i)
		assert.InDelta(t, 1.0, tangents[i].Len(), 1e-9)
		assert.InDelta(t, 0.0, tangents[i].Dot(p), 1e-9, "tangent not tangent at %d", i)
	}
	assert.InDelta(t, 10*math.Pi/2, path.ArcLength(), 1e-2)
	assertVec(t, mgl64.Vec3{0, 10, 0}, points[64], 1e-9)

	// endpoints off the sphere are projected onto it
	proj := manifold.ComputeGeodesic(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 3}, m, 4)
	first, _ := proj.Start()
	assertVec(t, mgl64.Vec3{10, 0, 0}, first, 1e-9)
}

func TestComputeGeodesic_SphericalAntipodal(t *testing.T) {
	m := manifold.NewMetric(manifold.Spherical)
	path := manifold.ComputeGeodesic(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{-10, 0, 0}, m, 8)

	mid := path.Points()[4]
	assert.InDelta(t, 10.0, mid.Len(), 1e-9)
	assert.InDelta(t, 0.0, mid[0], 1e-9, "halfway round is perpendicular to the axis")
	end, _ := path.End()
	assertVec(t, mgl64.Vec3{-10, 0, 0}, end, 1e-9)
}

func TestComputeGeodesic_SphericalTinyAngle(t *testing.T) {
	m := manifold.NewMetric(manifold.Spherical)
	a := mgl64.Vec3{10, 0, 0}
	b := mgl64.Vec3{10, 0.001, 0}
	path := manifold.ComputeGeodesic(a, b, m, 4)
	require.Equal(t, 5, path.Len())
	tan, ok := path.TangentAt(0.5)
	require.True(t, ok)
	assertVec(t, mgl64.Vec3{0, 1, 0}, tan, 1e-4)
}

func TestComputeGeodesic_Hyperbolic(t *testing.T) {
	m := manifold.NewMetric(manifold.Hyperbolic)
	a, b := mgl64.Vec3{0.5, 0.1, 0}, mgl64.Vec3{-0.2, 0.6, 0}
	path := manifold.ComputeGeodesic(a, b, m, 200)

	require.Equal(t, 201, path.Len())
	assert.Equal(t, manifold.Hyperbolic, path.Geometry())

	// Along a true geodesic the hyperbolic lengths of the pieces add up to
	// the direct distance; along the straight chord they do not.
	points := path.Points()
	var along float64
	for i := 1; i < len(points); i++ {
		along += m.Distance(points[i-1], points[i])
		assert.Less(t, math.Hypot(points[i][0], points[i][1]), 1.0)
	}
	direct := m.Distance(a, b)
	assert.InDelta(t, direct, along, 1e-4)

	chord := manifold.ComputeGeodesic(a, b, manifold.NewMetric(manifold.Euclidean), 200).Points()
	var straight float64
	for i := 1; i < len(chord); i++ {
		straight += m.Distance(chord[i-1], chord[i])
	}
	assert.Greater(t, straight, direct+1e-3)

	assertVec(t, a, points[0], 0)
	assertVec(t, b, points[200], 0)
}

func TestComputeGeodesic_HyperbolicSpecialCases(t *testing.T) {
	m := manifold.NewMetric(manifold.Hyperbolic)

	rim := manifold.ComputeGeodesic(mgl64.Vec3{0.995, 0, 0}, mgl64.Vec3{0, 0.5, 0}, m, 4)
	assert.Equal(t, manifold.Euclidean, rim.Geometry(), "boundary fallback is tagged Euclidean")

	near := manifold.ComputeGeodesic(mgl64.Vec3{0.001, 0, 0}, mgl64.Vec3{0.3, 0.4, 2}, m, 4)
	assert.Equal(t, manifold.Hyperbolic, near.Geometry())
	mid, _ := near.Interpolate(0.5)
	assertVec(t, mgl64.Vec3{0.1505, 0.2, 1}, mid, 1e-9)

	diameter := manifold.ComputeGeodesic(mgl64.Vec3{-0.4, -0.4, 0}, mgl64.Vec3{0.2, 0.2, 0}, m, 6)
	for _, p := range diameter.Points() {
		assert.InDelta(t, p[0], p[1], 1e-12, "collinear with origin stays on the diameter")
	}

	lifted := manifold.ComputeGeodesic(mgl64.Vec3{0.5, 0.1, -1}, mgl64.Vec3{-0.2, 0.6, 1}, m, 10)
	pts := lifted.Points()
	for i, p := range pts {
		assert.InDelta(t, -1+0.2*float64(i), p[2], 1e-9, "z is interpolated linearly")
	}
}

func TestComputeGeodesic_Custom(t *testing.T) {
	// Cheap near y = 0, expensive away from it.
	valley := func(p mgl64.Vec3) manifold.MetricTensor {
		w := 1 + 4*p[1]*p[1]
		return manifold.MetricTensor{G: mgl64.Diag3(mgl64.Vec3{w, w, 1})}
	}
	m := manifold.NewMetric(manifold.Custom, manifold.WithMetricFunc(valley))
	start, end := mgl64.Vec3{-1, 1, 0}, mgl64.Vec3{1, 1, 0}

	path := manifold.ComputeGeodesic(start, end, m, 10)
	require.Equal(t, 11, path.Len())
	assert.Equal(t, manifold.Custom, path.Geometry())

	points := path.Points()
	assert.Equal(t, start, points[0])
	assert.Equal(t, end, points[10])

	energy := func(pts []mgl64.Vec3) float64 {
		var e float64
		for i := 1; i < len(pts); i++ {
			d := pts[i].Sub(pts[i-1])
			e += m.TensorAt(pts[i-1].Add(d.Mul(0.5))).InnerProduct(d, d)
		}
		return e
	}
	straight := manifold.ComputeGeodesic(start, end, manifold.NewMetric(manifold.Euclidean), 10).Points()
	assert.LessOrEqual(t, energy(points), energy(straight)+1e-12)
	assert.Less(t, points[5][1], 1.0, "relaxation bends the path toward the valley")

	plain := manifold.ComputeGeodesic(start, end, manifold.NewMetric(manifold.Custom), 10)
	for _, p := range plain.Points() {
		assert.InDelta(t, 1.0, p[1], eps)
	}
}

func TestGeodesicPath_TangentAtNearest(t *testing.T) {
	m := manifold.NewMetric(manifold.Spherical)
	path := manifold.ComputeGeodesic(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{0, 10, 0}, m, 2)
	tangents := path.Tangents()

	for tt, idx := range map[float64]int{-1: 0, 0: 0, 0.2: 0, 0.3: 1, 0.5: 1, 0.8: 2, 2: 2} {
		got, ok := path.TangentAt(tt)
		require.True(t, ok)
		assert.Equal(t, tangents[idx], got, "t=%v", tt)
	}
}

func TestCastGeodesicRay(t *testing.T) {
	ray := manifold.CastGeodesicRay(mgl64.Vec3{}, mgl64.Vec3{0, 0, 2}, manifold.NewMetric(manifold.Euclidean), 10, 10)
	assertVec(t, mgl64.Vec3{0, 0, 1}, ray.Direction, eps)

	p, ok := ray.PointAt(4)
	require.True(t, ok)
	assertVec(t, mgl64.Vec3{0, 0, 4}, p, 1e-9)

	d, ok := ray.DirectionAt(7)
	require.True(t, ok)
	assertVec(t, mgl64.Vec3{0, 0, 1}, d, eps)

	far, _ := ray.PointAt(50)
	assertVec(t, mgl64.Vec3{0, 0, 10}, far, 1e-9)
}
