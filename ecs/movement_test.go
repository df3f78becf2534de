package ecs_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatopia/ecs"
	"github.com/katalvlaran/metatopia/manifold"
)

func TestMovementSystem_Integrates(t *testing.T) {
	m := manifold.New()
	w := ecs.NewWorld()
	e := w.Spawn(ecs.NewTransform(0, mgl64.Vec3{}), ecs.Velocity{Linear: mgl64.Vec3{1, 2, 0}})

	require.NoError(t, ecs.MovementSystem{}.Update(w, m, 0.5))
	tr, _ := w.Transforms.Get(e)
	assertVec(t, mgl64.Vec3{0.5, 1, 0}, tr.Position.Local.Vec3(), 1e-12)
}

func TestMovementSystem_WrapsPeriodicChart(t *testing.T) {
	m := manifold.New(manifold.WithRootChart(
		manifold.WithBounds(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}),
		manifold.WithWrapMode(manifold.WrapPeriodic),
	))
	w := ecs.NewWorld()
	e := w.Spawn(ecs.NewTransform(0, mgl64.Vec3{0.9, 0, 0}), ecs.Velocity{Linear: mgl64.Vec3{0.4, 0, 0}})

	require.NoError(t, ecs.MovementSystem{}.Update(w, m, 1))
	tr, _ := w.Transforms.Get(e)
	assert.InDelta(t, -0.7, tr.Position.Local[0], 1e-9)
}

func TestMovementSystem_Angular(t *testing.T) {
	m := manifold.New()
	w := ecs.NewWorld()
	e := w.Spawn(ecs.NewTransform(0, mgl64.Vec3{}), ecs.Velocity{Angular: mgl64.Vec3{0, math.Pi / 2, 0}})

	require.NoError(t, ecs.MovementSystem{}.Update(w, m, 1))
	tr, _ := w.Transforms.Get(e)
	assertVec(t, mgl64.Vec3{1, 0, 0}, tr.Orientation.Forward(), 1e-9)
}

func TestMovementSystem_UnknownChartUntouched(t *testing.T) {
	m := manifold.New()
	w := ecs.NewWorld()
	e := w.Spawn(ecs.NewTransform(99, mgl64.Vec3{1, 1, 1}), ecs.Velocity{Linear: mgl64.Vec3{1, 0, 0}})

	require.NoError(t, ecs.MovementSystem{}.Update(w, m, 1))
	tr, _ := w.Transforms.Get(e)
	assert.Equal(t, manifold.At(99, 1, 1, 1), tr.Position)
}
