// Package ecs is a minimal entity store and system schedule that drives
// entities across a manifold's charts.
//
// Storage:
//
//	Components live in parallel typed arenas (Store[T]): a dense slice of
//	values plus a sparse entity→index map. There is no runtime type lookup;
//	the World has one field per component kind:
//
//		Transforms  *Store[Transform]    // ManifoldPosition + Orientation
//		Velocities  *Store[Velocity]     // linear + angular
//		Renderables *Store[Renderable]
//		Portals     *Store[PortalMarker]
//
// Systems:
//
//	A Schedule is an ordered list of Systems run by reference once per tick.
//	Run is the exclusive update phase: every system may query and mutate the
//	manifold. It then returns a manifold.View, a read-only snapshot that
//	camera and render code use without touching the manifold's lock.
//
//	MovementSystem  - integrates velocity and applies the chart wrap policy
//	PortalSystem    - moves entities through portals they are about to cross
//
// A failing (or panicking) system is logged at Warn and skipped; the
// remaining systems still run and the snapshot is still produced.
//
// A World is not safe for concurrent use.
package ecs
