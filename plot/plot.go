// Package plot rasterises a single chart to an image: a fan of geodesics
// drawn with the chart's metric, the chart boundary, and the outlines of
// the portals leaving the chart. Coordinates are projected orthographically
// onto one coordinate plane.
//
// Rendering is pure software via gogpu/gg and needs no GPU.
package plot

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/katalvlaran/metatopia/manifold"
)

// ErrInvalidSize indicates a non-positive image size.
var ErrInvalidSize = errors.New("plot: image size must be positive")

// Plot defaults.
const (
	DefaultSize     = 512
	DefaultFan      = 12
	DefaultSteps    = 48
	outlineSegments = 48
	margin          = 1.1
)

// Plane selects the two chart axes shown on the image.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

func (p Plane) project(v mgl64.Vec3) (u, w float64) {
	switch p {
	case PlaneXZ:
		return v[0], v[2]
	case PlaneYZ:
		return v[1], v[2]
	default:
		return v[0], v[1]
	}
}

// Options configures RenderChart.
type Options struct {
	Width, Height int
	Plane         Plane

	// Extent is the half-width, in chart units, of the square that is
	// visible; zero picks one from the chart and its portals.
	Extent float64

	// Fan is the number of geodesics drawn from Origin to a ring around it.
	Fan   int
	Steps int

	// Origin overrides the fan centre.
	Origin *mgl64.Vec3

	// Markers are chart points drawn as dots.
	Markers []mgl64.Vec3
}

// Option configures Options.
type Option func(*Options)

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return func(o *Options) { o.Width, o.Height = width, height }
}

// WithPlane selects the projection plane.
func WithPlane(p Plane) Option {
	return func(o *Options) { o.Plane = p }
}

// WithExtent fixes the visible half-width; non-positive values are ignored.
func WithExtent(e float64) Option {
	return func(o *Options) {
		if e > 0 {
			o.Extent = e
		}
	}
}

// WithFan sets the number of geodesics and the samples per geodesic.
func WithFan(n, steps int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Fan = n
		}
		if steps > 0 {
			o.Steps = steps
		}
	}
}

// WithOrigin sets the fan centre.
func WithOrigin(p mgl64.Vec3) Option {
	return func(o *Options) { o.Origin = &p }
}

// WithMarkers adds dots at chart points.
func WithMarkers(points ...mgl64.Vec3) Option {
	return func(o *Options) { o.Markers = append(o.Markers, points...) }
}

var (
	background   = gg.Hex("#fbfaf6")
	gridColor    = gg.RGB(0.55, 0.62, 0.75)
	rimColor     = gg.RGB(0.2, 0.2, 0.25)
	portalColor  = gg.RGB(0.85, 0.35, 0.1)
	dormantColor = gg.RGB(0.6, 0.6, 0.6)
	markerColor  = gg.RGB(0.1, 0.5, 0.25)
)

// canvas maps chart coordinates to pixels.
type canvas struct {
	dc     *gg.Context
	plane  Plane
	cx, cy float64
	scale  float64
}

func (c canvas) point(v mgl64.Vec3) (x, y float64) {
	u, w := c.plane.project(v)
	return c.cx + u*c.scale, c.cy - w*c.scale
}

func (c canvas) polyline(pts []mgl64.Vec3, closed bool) {
	for i, p := range pts {
		x, y := c.point(p)
		if i == 0 {
			c.dc.MoveTo(x, y)
			continue
		}
		c.dc.LineTo(x, y)
	}
	if closed && len(pts) > 2 {
		c.dc.ClosePath()
	}
}

// RenderChart draws chart as seen through r.
func RenderChart(r manifold.Reader, chart manifold.ChartID, opts ...Option) (image.Image, error) {
	o := Options{Width: DefaultSize, Height: DefaultSize, Fan: DefaultFan, Steps: DefaultSteps}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return nil, fmt.Errorf("RenderChart: %dx%d: %w", o.Width, o.Height, ErrInvalidSize)
	}
	c, ok := r.Chart(chart)
	if !ok {
		return nil, fmt.Errorf("RenderChart: %s: %w", chart, manifold.ErrChartNotFound)
	}
	portals := r.PortalsFrom(chart)

	extent := o.Extent
	if extent == 0 {
		extent = autoExtent(c, portals)
	}

	dc := gg.NewContext(o.Width, o.Height)
	defer dc.Close()
	cv := canvas{
		dc:    dc,
		plane: o.Plane,
		cx:    float64(o.Width) / 2,
		cy:    float64(o.Height) / 2,
		scale: math.Min(float64(o.Width), float64(o.Height)) / (2 * extent),
	}
	dc.ClearWithColor(background)

	if err := drawBoundary(cv, c); err != nil {
		return nil, err
	}
	if err := drawFan(cv, r, c, o, extent); err != nil {
		return nil, err
	}
	if err := drawPortals(cv, portals); err != nil {
		return nil, err
	}
	if len(o.Markers) > 0 {
		dc.SetColor(markerColor.Color())
		for _, m := range o.Markers {
			x, y := cv.point(m)
			dc.DrawCircle(x, y, 4)
			if err := dc.Fill(); err != nil {
				return nil, err
			}
		}
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}

	return dc.Image(), nil
}

// SavePNG renders chart and writes it to path.
func SavePNG(path string, r manifold.Reader, chart manifold.ChartID, opts ...Option) error {
	img, err := RenderChart(r, chart, opts...)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	defer dc.Close()

	return dc.SavePNG(path)
}

func autoExtent(c *manifold.Chart, portals []*manifold.Portal) float64 {
	switch c.Geometry() {
	case manifold.Hyperbolic:
		return margin
	case manifold.Spherical:
		return c.Metric().Radius * margin
	}
	e := 1.0
	for _, p := range portals {
		e = math.Max(e, p.FromPosition().Len()+p.Bounds().Height)
	}
	return e * margin
}

func fanOrigin(c *manifold.Chart, o Options) mgl64.Vec3 {
	if o.Origin != nil {
		return *o.Origin
	}
	switch c.Geometry() {
	case manifold.Hyperbolic:
		return mgl64.Vec3{0.3, 0.2, 0}
	case manifold.Spherical:
		// off the pole so the great circles do not all project to radii
		r := c.Metric().Radius
		return mgl64.Vec3{0.6 * r, 0, 0.8 * r}
	}
	return mgl64.Vec3{}
}

// fanTarget returns the i-th of n points on a ring in the projection plane.
func fanTarget(c *manifold.Chart, p Plane, i, n int, extent float64) mgl64.Vec3 {
	a := 2 * math.Pi * float64(i) / float64(n)
	rho := 0.8 * extent / margin
	if c.Geometry() == manifold.Hyperbolic {
		rho = 0.9
	}
	u, w := rho*math.Cos(a), rho*math.Sin(a)
	switch p {
	case PlaneXZ:
		return mgl64.Vec3{u, 0, w}
	case PlaneYZ:
		return mgl64.Vec3{0, u, w}
	default:
		return mgl64.Vec3{u, w, 0}
	}
}

func drawFan(cv canvas, r manifold.Reader, c *manifold.Chart, o Options, extent float64) error {
	if o.Fan == 0 {
		return nil
	}
	origin := fanOrigin(c, o)
	cv.dc.SetColor(gridColor.Color())
	cv.dc.SetLineWidth(1)
	for i := 0; i < o.Fan; i++ {
		path, err := r.ComputeGeodesic(origin, fanTarget(c, o.Plane, i, o.Fan, extent), c.ID(), o.Steps)
		if err != nil {
			return fmt.Errorf("RenderChart: %w", err)
		}
		cv.polyline(path.Points(), false)
	}
	return cv.dc.Stroke()
}

func drawBoundary(cv canvas, c *manifold.Chart) error {
	cv.dc.SetColor(rimColor.Color())
	cv.dc.SetLineWidth(2)
	switch c.Geometry() {
	case manifold.Hyperbolic:
		cv.dc.DrawCircle(cv.cx, cv.cy, cv.scale)
	case manifold.Spherical:
		cv.dc.DrawCircle(cv.cx, cv.cy, c.Metric().Radius*cv.scale)
	default:
		b := c.Bounds()
		var corners []mgl64.Vec3
		switch cv.plane {
		case PlaneXZ:
			corners = []mgl64.Vec3{b.Min, {b.Max[0], 0, b.Min[2]}, b.Max, {b.Min[0], 0, b.Max[2]}}
		case PlaneYZ:
			corners = []mgl64.Vec3{b.Min, {0, b.Max[1], b.Min[2]}, b.Max, {0, b.Min[1], b.Max[2]}}
		default:
			corners = []mgl64.Vec3{b.Min, {b.Max[0], b.Min[1], 0}, b.Max, {b.Min[0], b.Max[1], 0}}
		}
		cv.polyline(corners, true)
	}
	return cv.dc.Stroke()
}

func drawPortals(cv canvas, portals []*manifold.Portal) error {
	cv.dc.SetLineWidth(2.5)
	for _, p := range portals {
		if p.Active() {
			cv.dc.SetColor(portalColor.Color())
			cv.dc.SetDash()
		} else {
			cv.dc.SetColor(dormantColor.Color())
			cv.dc.SetDash(6, 4)
		}
		outline := p.Outline(outlineSegments)
		if len(outline) < 2 {
			x, y := cv.point(outline[0])
			cv.dc.DrawCircle(x, y, 3)
		} else {
			cv.polyline(outline, true)
		}
		if err := cv.dc.Stroke(); err != nil {
			return err
		}
	}
	cv.dc.SetDash()
	return nil
}
