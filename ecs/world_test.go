package ecs_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatopia/ecs"
	"github.com/katalvlaran/metatopia/manifold"
)

func TestWorld_SpawnDespawn(t *testing.T) {
	w := ecs.NewWorld()

	a := w.Spawn(ecs.NewTransform(0, mgl64.Vec3{1, 2, 3}), ecs.Velocity{Linear: mgl64.Vec3{1, 0, 0}})
	b := w.Spawn(ecs.Renderable{Mesh: "cube", Visible: true})
	c := w.Spawn()

	assert.Equal(t, []ecs.Entity{0, 1, 2}, []ecs.Entity{a, b, c})
	assert.Equal(t, 3, w.Len())
	assert.True(t, w.Transforms.Has(a))
	assert.True(t, w.Velocities.Has(a))
	assert.True(t, w.Renderables.Has(b))
	assert.False(t, w.Transforms.Has(b))

	tr, ok := w.Transforms.Get(a)
	require.True(t, ok)
	assert.Equal(t, manifold.At(0, 1, 2, 3), tr.Position)
	assert.Equal(t, 1.0, tr.Scale)

	require.True(t, w.Despawn(a))
	assert.False(t, w.Despawn(a))
	assert.False(t, w.Alive(a))
	assert.False(t, w.Transforms.Has(a))
	assert.False(t, w.Velocities.Has(a))
	assert.Equal(t, []ecs.Entity{b, c}, w.Entities())

	d := w.Spawn()
	assert.Equal(t, ecs.Entity(3), d, "ids are not reused")
}

func TestWorld_Attach(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Spawn()

	require.NoError(t, w.Attach(e, ecs.PortalMarker{Portal: 4, Active: true}))
	m, ok := w.Portals.Get(e)
	require.True(t, ok)
	assert.Equal(t, manifold.PortalID(4), m.Portal)

	w.Despawn(e)
	assert.ErrorIs(t, w.Attach(e, ecs.Velocity{}), ecs.ErrEntityNotFound)
}

func TestWorld_WithTransformVelocity(t *testing.T) {
	w := ecs.NewWorld()
	moving := w.Spawn(ecs.NewTransform(0, mgl64.Vec3{}), ecs.Velocity{Linear: mgl64.Vec3{0, 1, 0}})
	w.Spawn(ecs.NewTransform(0, mgl64.Vec3{}))
	w.Spawn(ecs.Velocity{Linear: mgl64.Vec3{1, 0, 0}})

	var seen []ecs.Entity
	require.NoError(t, w.WithTransformVelocity(func(e ecs.Entity, tr *ecs.Transform, v *ecs.Velocity) error {
		seen = append(seen, e)
		tr.Scale = 2
		return nil
	}))
	assert.Equal(t, []ecs.Entity{moving}, seen)

	tr, _ := w.Transforms.Get(moving)
	assert.Equal(t, 2.0, tr.Scale)

	stop := assert.AnError
	err := w.WithTransformVelocity(func(ecs.Entity, *ecs.Transform, *ecs.Velocity) error { return stop })
	assert.ErrorIs(t, err, stop)
}
