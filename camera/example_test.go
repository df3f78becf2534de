package camera_test

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/katalvlaran/metatopia/camera"
	"github.com/katalvlaran/metatopia/manifold"
)

// ExampleCamera_Update shows the field of view following the chart geometry.
func ExampleCamera_Update() {
	m := manifold.New()
	disk := m.AddChart(manifold.Hyperbolic)
	sphere := m.AddChart(manifold.Spherical)
	view := m.Snapshot()

	cam := camera.New(0, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, 16.0/9.0)
	for _, chart := range []manifold.ChartID{0, disk, sphere} {
		cam.SetPosition(chart, mgl64.Vec3{0.2, 0, 5})
		cam.Update(view)
		fmt.Printf("%-10s fov %.1f° tag %.0f\n", cam.Geometry, mgl64.RadToDeg(cam.EffectiveFovY()), cam.Uniforms().Geometry)
	}
	// Output:
	// euclidean  fov 45.0° tag 0
	// hyperbolic fov 67.5° tag 1
	// spherical  fov 40.5° tag 2
}
