package ecs

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/katalvlaran/metatopia/manifold"
)

// Component is one of the fixed component kinds: Transform, Velocity,
// Renderable or PortalMarker.
type Component interface {
	attach(w *World, e Entity)
}

// Transform places an entity on the manifold.
type Transform struct {
	Position    manifold.ManifoldPosition
	Orientation manifold.Orientation
	Scale       float64
}

// NewTransform returns a unit-scale, identity-oriented transform at local
// point p of chart.
func NewTransform(chart manifold.ChartID, p mgl64.Vec3) Transform {
	return Transform{
		Position:    manifold.ManifoldPosition{Chart: chart, Local: manifold.LocalCoordinate(p)},
		Orientation: manifold.IdentityOrientation(),
		Scale:       1,
	}
}

// Velocity is expressed in the local coordinates of the entity's chart.
// Angular is an axis scaled by radians per second.
type Velocity struct {
	Linear  mgl64.Vec3
	Angular mgl64.Vec3
}

// Renderable names the assets a renderer draws for the entity.
type Renderable struct {
	Mesh    string
	Shader  string
	Visible bool
}

// PortalMarker tags an entity as the visual stand-in of a portal.
type PortalMarker struct {
	Portal manifold.PortalID
	Active bool
}

func (t Transform) attach(w *World, e Entity)    { w.Transforms.Set(e, t) }
func (v Velocity) attach(w *World, e Entity)     { w.Velocities.Set(e, v) }
func (r Renderable) attach(w *World, e Entity)   { w.Renderables.Set(e, r) }
func (p PortalMarker) attach(w *World, e Entity) { w.Portals.Set(e, p) }
