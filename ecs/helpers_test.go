package ecs_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatopia/manifold"
)

// cycle builds Euclidean 0 → Hyperbolic 1 → Spherical 2 → Euclidean 0.
func cycle(t testing.TB) (*manifold.Manifold, manifold.ChartID, manifold.ChartID) {
	t.Helper()
	m := manifold.New()
	disk := m.AddChart(manifold.Hyperbolic)
	sphere := m.AddChart(manifold.Spherical)

	_, err := m.CreatePortal(0, disk, mgl64.Vec3{10, 0, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Ident4())
	require.NoError(t, err)
	_, err = m.CreatePortal(disk, sphere, mgl64.Vec3{0.5, 0.5, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Ident4())
	require.NoError(t, err)
	_, err = m.CreatePortal(sphere, 0, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{-10, 0, 0}, mgl64.Ident4())
	require.NoError(t, err)

	return m, disk, sphere
}
