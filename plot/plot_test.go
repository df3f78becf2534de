package plot_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatopia/manifold"
	"github.com/katalvlaran/metatopia/plot"
	"github.com/katalvlaran/metatopia/scene"
)

func rgb8(c color.Color) [3]int {
	r, g, b, _ := c.RGBA()
	return [3]int{int(r >> 8), int(g >> 8), int(b >> 8)}
}

func painted(img image.Image, bg [3]int) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rgb8(img.At(x, y)) != bg {
				n++
			}
		}
	}
	return n
}

func TestRenderChart_Errors(t *testing.T) {
	m := manifold.New()

	_, err := plot.RenderChart(m, 0, plot.WithSize(0, 10))
	assert.ErrorIs(t, err, plot.ErrInvalidSize)

	_, err = plot.RenderChart(m, 5)
	assert.ErrorIs(t, err, manifold.ErrChartNotFound)
}

func TestRenderChart_EveryChartOfTheCycle(t *testing.T) {
	built, err := scene.Cycle().Build()
	require.NoError(t, err)
	view := built.Manifold.Snapshot()

	for name, id := range built.Charts {
		for _, plane := range []plot.Plane{plot.PlaneXY, plot.PlaneXZ, plot.PlaneYZ} {
			img, err := plot.RenderChart(view, id, plot.WithSize(160, 120), plot.WithPlane(plane))
			require.NoError(t, err, "%s plane %d", name, plane)
			assert.Equal(t, image.Rect(0, 0, 160, 120), img.Bounds())

			corner := rgb8(img.At(0, 0))
			assert.Greater(t, painted(img, corner), 100, "%s plane %d drew nothing", name, plane)
		}
	}
}

func TestRenderChart_DiskCornerIsBackground(t *testing.T) {
	m := manifold.New()
	disk := m.AddChart(manifold.Hyperbolic)

	img, err := plot.RenderChart(m, disk, plot.WithSize(200, 200))
	require.NoError(t, err)

	bg := rgb8(img.At(0, 0))
	assert.Equal(t, bg, rgb8(img.At(199, 199)))
	assert.Equal(t, bg, rgb8(img.At(199, 0)))
	assert.Greater(t, painted(img, bg), 0)
}

func TestRenderChart_Markers(t *testing.T) {
	m := manifold.New()
	img, err := plot.RenderChart(m, 0,
		plot.WithSize(64, 64), plot.WithFan(0, 0), plot.WithExtent(4),
		plot.WithMarkers(mgl64.Vec3{}))
	require.NoError(t, err)

	c := rgb8(img.At(32, 32))
	assert.Greater(t, c[1], c[0], "marker is green")
	assert.Greater(t, c[1], c[2])
	assert.Equal(t, rgb8(img.At(2, 2)), rgb8(img.At(61, 61)))
}

func TestSavePNG(t *testing.T) {
	m := manifold.New()
	sphere := m.AddChart(manifold.Spherical)
	path := filepath.Join(t.TempDir(), "sphere.png")

	require.NoError(t, plot.SavePNG(path, m, sphere, plot.WithSize(96, 64)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 96, 64), img.Bounds())

	assert.Error(t, plot.SavePNG(path, m, 42))
}
