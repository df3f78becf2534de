package camera

import "github.com/go-gl/mathgl/mgl64"

// Uniforms is the per-frame block a renderer uploads. Matrices are
// column-major.
type Uniforms struct {
	ViewProj [16]float32
	Eye      [4]float32
	ChartID  float32
	// Geometry is the render tag: 0 Euclidean, 1 Hyperbolic, 2 Spherical.
	Geometry float32
	// MetricParams holds curvature, scale and sphere radius.
	MetricParams [4]float32
}

// Uniforms packs the camera state for a renderer.
func (c *Camera) Uniforms() Uniforms {
	eye := c.eye()
	return Uniforms{
		ViewProj: toFloat32(c.ViewProjection()),
		Eye:      [4]float32{float32(eye[0]), float32(eye[1]), float32(eye[2]), 1},
		ChartID:  float32(c.Position.Chart),
		Geometry: c.Geometry.RenderTag(),
		MetricParams: [4]float32{
			float32(c.metric.Curvature),
			float32(c.metric.Scale),
			float32(c.metric.Radius),
			0,
		},
	}
}

func toFloat32(m mgl64.Mat4) [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}
