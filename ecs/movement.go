package ecs

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/katalvlaran/metatopia/manifold"
)

// MovementSystem integrates linear and angular velocity in local chart
// coordinates and applies the chart's wrap policy. Entities on unknown
// charts are left where they are. Entities a PortalSystem carried through a
// portal this tick have already covered their linear step; only their wrap
// and rotation are applied.
type MovementSystem struct{}

// Name implements System.
func (MovementSystem) Name() string { return "movement" }

// Update implements System.
func (MovementSystem) Update(w *World, m *manifold.Manifold, dt float64) error {
	return w.WithTransformVelocity(func(e Entity, t *Transform, v *Velocity) error {
		c, ok := m.Chart(t.Position.Chart)
		if !ok {
			manifold.Logger().Debug("ecs: entity on unknown chart", "entity", uint32(e), "chart", uint32(t.Position.Chart))
			return nil
		}

		next := t.Position.Local.Vec3()
		if !w.takeCarried(e) {
			next = next.Add(v.Linear.Mul(dt))
		}
		t.Position.Local = c.WrapCoordinates(manifold.LocalCoordinate(next))

		if rate := v.Angular.Len(); rate > 0 {
			spin := mgl64.QuatRotate(rate*dt, v.Angular.Mul(1/rate))
			t.Orientation.Rotation = spin.Mul(t.Orientation.Rotation).Normalize()
		}
		return nil
	})
}
