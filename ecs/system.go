package ecs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/metatopia/manifold"
)

// System updates a World once per tick. It has exclusive use of the
// manifold for the duration of Update.
type System interface {
	Name() string
	Update(w *World, m *manifold.Manifold, dt float64) error
}

// Schedule runs systems in insertion order.
type Schedule struct {
	systems []System
}

// NewSchedule returns a schedule running systems in the given order.
func NewSchedule(systems ...System) *Schedule {
	return &Schedule{systems: append([]System(nil), systems...)}
}

// Add appends sys to the schedule.
func (s *Schedule) Add(sys System) { s.systems = append(s.systems, sys) }

// Systems returns the scheduled systems in run order.
func (s *Schedule) Systems() []System { return append([]System(nil), s.systems...) }

// Run performs one tick: every system updates the world against m, then a
// snapshot of m is returned for read-only consumers.
//
// A system that fails or panics is skipped with a Warn log and its error is
// joined into the returned error; the other systems still run.
func (s *Schedule) Run(w *World, m *manifold.Manifold, dt float64) (*manifold.View, error) {
	w.resetCarried()
	var errs []error
	for _, sys := range s.systems {
		if err := runSystem(sys, w, m, dt); err != nil {
			manifold.Logger().Warn("ecs: system skipped", "system", sys.Name(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", sys.Name(), err))
		}
	}

	return m.Snapshot(), errors.Join(errs...)
}

func runSystem(sys System, w *World, m *manifold.Manifold, dt float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSystemPanic, r)
		}
	}()
	return sys.Update(w, m, dt)
}
