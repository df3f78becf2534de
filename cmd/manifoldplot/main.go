// Command manifoldplot renders one chart of a scene to a PNG file.
//
//	manifoldplot -scene world.yaml -chart disk -out disk.png
//
// Without -scene the built-in three-chart cycle is used. Entities in the
// chart are drawn as dots.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/katalvlaran/metatopia/ecs"
	"github.com/katalvlaran/metatopia/plot"
	"github.com/katalvlaran/metatopia/scene"
)

type options struct {
	scene  string
	chart  string
	out    string
	plane  string
	size   int
	extent float64
	fan    int
}

func main() {
	var o options
	flag.StringVar(&o.scene, "scene", "", "scene YAML file (default: built-in cycle)")
	flag.StringVar(&o.chart, "chart", "", "chart name (default: the scene's active chart)")
	flag.StringVar(&o.out, "out", "chart.png", "output PNG path")
	flag.StringVar(&o.plane, "plane", "xy", "projection plane: xy, xz or yz")
	flag.IntVar(&o.size, "size", plot.DefaultSize, "image width and height in pixels")
	flag.Float64Var(&o.extent, "extent", 0, "visible half-width in chart units (0: automatic)")
	flag.IntVar(&o.fan, "fan", plot.DefaultFan, "number of geodesics to draw")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, "manifoldplot:", err)
		os.Exit(1)
	}
}

func run(o options) error {
	sc := scene.Cycle()
	if o.scene != "" {
		var err error
		if sc, err = scene.Load(o.scene); err != nil {
			return err
		}
	}
	built, err := sc.Build()
	if err != nil {
		return err
	}

	chart := built.Manifold.ActiveChartID()
	if o.chart != "" {
		id, ok := built.Charts[o.chart]
		if !ok {
			return fmt.Errorf("chart %q not in scene (have %s): %w", o.chart, chartNames(built), scene.ErrUnknownChart)
		}
		chart = id
	}
	plane, err := parsePlane(o.plane)
	if err != nil {
		return err
	}

	var markers []mgl64.Vec3
	built.World.Transforms.Each(func(_ ecs.Entity, t *ecs.Transform) {
		if t.Position.Chart == chart {
			markers = append(markers, t.Position.Local.Vec3())
		}
	})

	return plot.SavePNG(o.out, built.Manifold.Snapshot(), chart,
		plot.WithSize(o.size, o.size),
		plot.WithPlane(plane),
		plot.WithExtent(o.extent),
		plot.WithFan(o.fan, 0),
		plot.WithMarkers(markers...))
}

func parsePlane(s string) (plot.Plane, error) {
	switch strings.ToLower(s) {
	case "xy":
		return plot.PlaneXY, nil
	case "xz":
		return plot.PlaneXZ, nil
	case "yz":
		return plot.PlaneYZ, nil
	}
	return 0, fmt.Errorf("unknown plane %q", s)
}

func chartNames(b *scene.Built) string {
	names := make([]string, 0, len(b.Charts))
	for n := range b.Charts {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
