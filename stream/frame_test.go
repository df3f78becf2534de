package stream_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatopia/ecs"
	"github.com/katalvlaran/metatopia/manifold"
	"github.com/katalvlaran/metatopia/stream"
)

func TestNewFrame(t *testing.T) {
	m := manifold.New()
	disk := m.AddChart(manifold.Hyperbolic)

	w := ecs.NewWorld()
	walker := w.Spawn(
		ecs.NewTransform(0, mgl64.Vec3{2, 0, 0}),
		ecs.Renderable{Mesh: "capsule", Visible: false},
	)
	beacon := w.Spawn(ecs.NewTransform(disk, mgl64.Vec3{0.5, 0, 0}))
	w.Spawn(ecs.NewTransform(99, mgl64.Vec3{}))
	w.Spawn(ecs.Velocity{Linear: mgl64.Vec3{1, 0, 0}})

	f := stream.NewFrame(m.Snapshot(), w, 7)

	assert.Equal(t, uint64(7), f.Tick)
	assert.Equal(t, uint32(0), f.ActiveChart)
	assert.Equal(t, "euclidean", f.Geometry)
	assert.Equal(t, float32(0), f.GeometryTag)
	require.Len(t, f.Entities, 2, "unknown charts and bare entities are skipped")

	got := f.Entities[0]
	assert.Equal(t, uint32(walker), got.ID)
	assert.Equal(t, [3]float64{2, 0, 0}, got.Local)
	assert.Equal(t, [3]float64{2, 0, 0}, got.World)
	assert.Equal(t, [3]float64{0, 0, 1}, got.Forward)
	assert.Equal(t, "capsule", got.Mesh)
	assert.False(t, got.Visible)

	got = f.Entities[1]
	assert.Equal(t, uint32(beacon), got.ID)
	assert.Equal(t, uint32(disk), got.Chart)
	assert.True(t, got.Visible, "visible without a Renderable")
}
