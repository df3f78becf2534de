// Package metatopia is the core of a non-Euclidean world engine: spaces of
// different curvature glued together by portals, and the entity and camera
// plumbing that moves through them.
//
// What is in the box?
//
//	manifold/   charts (Euclidean, spherical, hyperbolic, custom metric),
//	            geodesics, parallel transport, portals, the Manifold
//	            registry and its read-only snapshots
//	topology/   the chart connectivity graph and BFS portal routing
//	ecs/        entities, typed component stores, the update schedule and
//	            the portal/movement systems
//	camera/     per-geometry view and projection, FPS controller, shader
//	            uniforms
//	clock/      frame clock, fixed-step accumulator, timers
//	scene/      YAML world descriptions and the built-in three-chart cycle
//	config/     daemon settings
//	stream/     websocket frame broadcasting
//	plot/       software-rendered chart plots
//
// Commands:
//
//	cmd/manifoldd     runs a scene and streams it to websocket clients
//	cmd/manifoldplot  renders a chart of a scene to PNG
//
// Logging is off by default; manifold.SetLogger enables it for every
// package at once.
package metatopia
