// Package clock tracks frame timing for a simulation loop.
//
//	Clock          per-frame delta, total time, frame count and a once-a-second FPS
//	FixedTimestep  accumulates frame time into whole fixed steps, capped so a
//	               long stall cannot snowball, and exposes the interpolation alpha
//	Timer          a pausable countdown
//
// Clock and Timer take their time source from a Now function so tests can
// drive them deterministically.
package clock
