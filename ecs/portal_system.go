package ecs

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/katalvlaran/metatopia/manifold"
)

const (
	// DefaultGeodesicSteps is the sample count of the path an entity's
	// orientation is transported along on its way to a portal.
	DefaultGeodesicSteps = 10

	// arrivalDistance suppresses hits on the portal an entity has just
	// come out of.
	arrivalDistance = 1e-4
)

// PortalSystem moves entities through the portals they cross this tick.
//
// For every entity with a Transform and a Velocity a ray is cast from its
// position along its velocity. The nearest portal hit within reach (|v|·dt,
// or the configured lookahead) rewrites the entity's chart and position,
// transforms its velocity and carries its orientation along the geodesic to
// the hit and then through the portal. The rest of the step is travelled in
// the destination chart, so a MovementSystem later in the tick does not
// move the entity again.
type PortalSystem struct {
	lookahead float64
	steps     int
	follow    Entity
	following bool
}

// PortalOption configures a PortalSystem.
type PortalOption func(*PortalSystem)

// WithLookahead fixes the ray reach instead of deriving it from velocity.
// Non-positive values restore the default.
func WithLookahead(d float64) PortalOption {
	return func(s *PortalSystem) {
		if d > 0 {
			s.lookahead = d
		} else {
			s.lookahead = 0
		}
	}
}

// WithGeodesicSteps sets the sample count used for orientation transport.
func WithGeodesicSteps(n int) PortalOption {
	return func(s *PortalSystem) {
		if n > 0 {
			s.steps = n
		}
	}
}

// WithFollow makes e's chart the manifold's active chart whenever e passes
// through a portal.
func WithFollow(e Entity) PortalOption {
	return func(s *PortalSystem) {
		s.follow, s.following = e, true
	}
}

// NewPortalSystem returns a PortalSystem with the given options.
func NewPortalSystem(opts ...PortalOption) *PortalSystem {
	s := &PortalSystem{steps: DefaultGeodesicSteps}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements System.
func (s *PortalSystem) Name() string { return "portal" }

// Update implements System.
func (s *PortalSystem) Update(w *World, m *manifold.Manifold, dt float64) error {
	return w.WithTransformVelocity(func(e Entity, t *Transform, v *Velocity) error {
		speed := v.Linear.Len()
		if speed < arrivalDistance {
			return nil
		}
		reach := s.lookahead
		if reach == 0 {
			reach = speed * dt
		}
		if reach <= 0 {
			return nil
		}

		from := t.Position.Chart
		origin := t.Position.Local.Vec3()
		p, hit, ok := nearestHit(m.PortalsFrom(from), origin, v.Linear.Mul(1/speed), reach)
		if !ok {
			return nil
		}

		path, err := m.ComputeGeodesic(origin, hit, from, s.steps)
		if err != nil {
			return err
		}
		if metric, ok := m.MetricAt(from); ok {
			t.Orientation = t.Orientation.TransportAlong(path, metric)
		}
		t.Orientation = t.Orientation.ThroughPortal(p)
		v.Linear = p.TransformVector(v.Linear)
		v.Angular = p.TransformVector(v.Angular)

		exit := p.TransformPoint(hit)
		if rest := dt - hit.Sub(origin).Len()/speed; rest > 0 {
			exit = exit.Add(v.Linear.Mul(rest))
		}
		t.Position = manifold.ManifoldPosition{Chart: p.Target(), Local: manifold.LocalCoordinate(exit)}
		w.markCarried(e)

		manifold.Logger().Debug("ecs: portal transition",
			"entity", uint32(e), "portal", uint32(p.ID()),
			"from", uint32(from), "to", uint32(p.Target()))

		if s.following && s.follow == e {
			m.SetActiveChart(p.Target())
		}
		return nil
	})
}

// nearestHit returns the closest portal the ray meets between
// arrivalDistance and reach. The same slack is allowed past reach so a
// portal exactly one step ahead is not skipped by rounding.
func nearestHit(portals []*manifold.Portal, origin, dir mgl64.Vec3, reach float64) (*manifold.Portal, mgl64.Vec3, bool) {
	var (
		best     *manifold.Portal
		bestHit  mgl64.Vec3
		bestDist float64
	)
	for _, p := range portals {
		hit, ok := p.RayIntersection(origin, dir)
		if !ok {
			continue
		}
		d := hit.Sub(origin).Len()
		if d < arrivalDistance || d > reach+arrivalDistance {
			continue
		}
		if best == nil || d < bestDist {
			best, bestHit, bestDist = p, hit, d
		}
	}
	return best, bestHit, best != nil
}
