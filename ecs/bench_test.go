package ecs_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/katalvlaran/metatopia/ecs"
)

// BenchmarkSchedule_Run measures one tick over 1000 moving entities in the
// three-chart cycle.
func BenchmarkSchedule_Run(b *testing.B) {
	m, _, _ := cycle(b)
	w := ecs.NewWorld()
	for i := 0; i < 1000; i++ {
		y := float64(i%30)/10 - 1.5
		w.Spawn(ecs.NewTransform(0, mgl64.Vec3{0, y, 0}), ecs.Velocity{Linear: mgl64.Vec3{1, 0, 0}})
	}
	sched := ecs.NewSchedule(ecs.NewPortalSystem(), ecs.MovementSystem{})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = sched.Run(w, m, 0.016)
	}
}

// BenchmarkStore_Each measures dense iteration.
func BenchmarkStore_Each(b *testing.B) {
	s := ecs.NewStore[ecs.Velocity]()
	for e := ecs.Entity(0); e < 10000; e++ {
		s.Set(e, ecs.Velocity{Linear: mgl64.Vec3{1, 0, 0}})
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Each(func(_ ecs.Entity, v *ecs.Velocity) { v.Linear[0] += 1e-9 })
	}
}
