package stream

import (
	"github.com/katalvlaran/metatopia/ecs"
	"github.com/katalvlaran/metatopia/manifold"
)

// EntityState is one entity in a Frame.
type EntityState struct {
	ID      uint32     `json:"id"`
	Chart   uint32     `json:"chart"`
	Local   [3]float64 `json:"local"`
	World   [3]float64 `json:"world"`
	Forward [3]float64 `json:"forward"`
	Mesh    string     `json:"mesh,omitempty"`
	Visible bool       `json:"visible"`
}

// Frame is the state broadcast once per interval.
type Frame struct {
	Tick        uint64        `json:"tick"`
	ActiveChart uint32        `json:"active_chart"`
	Geometry    string        `json:"geometry"`
	GeometryTag float32       `json:"geometry_tag"`
	Entities    []EntityState `json:"entities"`
}

// NewFrame captures every entity with a Transform. Entities on charts
// unknown to r are skipped.
func NewFrame(r manifold.Reader, w *ecs.World, tick uint64) Frame {
	active := r.ActiveChart()
	f := Frame{
		Tick:        tick,
		ActiveChart: uint32(r.ActiveChartID()),
		Geometry:    active.Geometry().String(),
		GeometryTag: active.Geometry().RenderTag(),
		Entities:    make([]EntityState, 0, w.Transforms.Len()),
	}
	for _, e := range w.Entities() {
		t, ok := w.Transforms.Get(e)
		if !ok {
			continue
		}
		world, ok := t.Position.ToWorld(r)
		if !ok {
			continue
		}
		s := EntityState{
			ID:      uint32(e),
			Chart:   uint32(t.Position.Chart),
			Local:   t.Position.Local,
			World:   world,
			Forward: t.Orientation.Forward(),
			Visible: true,
		}
		if rd, ok := w.Renderables.Get(e); ok {
			s.Mesh, s.Visible = rd.Mesh, rd.Visible
		}
		f.Entities = append(f.Entities, s)
	}
	return f
}
