// Package camera provides a manifold-aware perspective camera.
//
// A Camera sits at a ManifoldPosition. Each frame Update reads the chart it
// is in from a manifold.Reader (normally the View returned by the ecs
// schedule) and rebuilds its matrices for that chart's geometry:
//
//	Euclidean, Custom  plain look-at, base field of view
//	Spherical          up vector parallel-transported along a short
//	                   geodesic, field of view ×0.9 (at least 30°)
//	Hyperbolic         eye pushed out by the Möbius factor 2/(1+r²) inside
//	                   the disk, field of view ×1.5 (at most 170°)
//
// Input devices are opaque: FPSController reads keys and mouse motion
// through the Input interface.
package camera
