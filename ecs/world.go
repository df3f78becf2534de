package ecs

import (
	"fmt"
	"sort"
)

// Entity identifies an object in a World. Ids are never reused.
type Entity uint32

// String returns "entity#N".
func (e Entity) String() string { return fmt.Sprintf("entity#%d", uint32(e)) }

// World holds entities and their component arenas.
type World struct {
	next  Entity
	alive map[Entity]struct{}

	// carried holds entities a portal already moved through the current tick.
	carried map[Entity]struct{}

	Transforms  *Store[Transform]
	Velocities  *Store[Velocity]
	Renderables *Store[Renderable]
	Portals     *Store[PortalMarker]
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{
		alive:       make(map[Entity]struct{}),
		carried:     make(map[Entity]struct{}),
		Transforms:  NewStore[Transform](),
		Velocities:  NewStore[Velocity](),
		Renderables: NewStore[Renderable](),
		Portals:     NewStore[PortalMarker](),
	}
}

// Spawn creates an entity carrying cs.
func (w *World) Spawn(cs ...Component) Entity {
	e := w.next
	w.next++
	w.alive[e] = struct{}{}
	for _, c := range cs {
		c.attach(w, e)
	}
	return e
}

// Attach adds or replaces components of a live entity.
func (w *World) Attach(e Entity, cs ...Component) error {
	if !w.Alive(e) {
		return fmt.Errorf("Attach: %s: %w", e, ErrEntityNotFound)
	}
	for _, c := range cs {
		c.attach(w, e)
	}
	return nil
}

// Despawn removes e and all its components. Unknown entities report false.
func (w *World) Despawn(e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	delete(w.alive, e)
	delete(w.carried, e)
	w.Transforms.Remove(e)
	w.Velocities.Remove(e)
	w.Renderables.Remove(e)
	w.Portals.Remove(e)

	return true
}

// Alive reports whether e exists.
func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.alive) }

// Entities returns the live entities in ascending order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.alive))
	for e := range w.alive {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// WithTransformVelocity calls fn for every entity carrying both a Transform
// and a Velocity, in Transform store order.
func (w *World) WithTransformVelocity(fn func(Entity, *Transform, *Velocity) error) error {
	for _, e := range w.Transforms.entities {
		v, ok := w.Velocities.Get(e)
		if !ok {
			continue
		}
		t, _ := w.Transforms.Get(e)
		if err := fn(e, t, v); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) markCarried(e Entity) { w.carried[e] = struct{}{} }

// takeCarried reports whether e was marked and clears the mark.
func (w *World) takeCarried(e Entity) bool {
	_, ok := w.carried[e]
	delete(w.carried, e)
	return ok
}

func (w *World) resetCarried() { clear(w.carried) }
