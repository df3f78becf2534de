package manifold

import (
	"fmt"
	"strings"
)

// GeometryType classifies the curvature of a chart. It is fixed for the
// lifetime of a chart.
type GeometryType int

const (
	// Euclidean is flat space (zero curvature).
	Euclidean GeometryType = iota
	// Spherical is positively curved space.
	Spherical
	// Hyperbolic is negatively curved space in the Poincaré disk model.
	Hyperbolic
	// Custom is a user-defined metric supplied via WithMetricFunc.
	Custom
)

// String returns the lower-case geometry name.
func (g GeometryType) String() string {
	switch g {
	case Euclidean:
		return "euclidean"
	case Spherical:
		return "spherical"
	case Hyperbolic:
		return "hyperbolic"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("geometry(%d)", int(g))
	}
}

// RenderTag returns the float tag renderers use to select a shading path:
// 0 = Euclidean, 1 = Hyperbolic, 2 = Spherical. Custom charts render as
// Euclidean.
func (g GeometryType) RenderTag() float32 {
	switch g {
	case Hyperbolic:
		return 1
	case Spherical:
		return 2
	default:
		return 0
	}
}

// ParseGeometry maps a case-insensitive geometry name to its GeometryType.
func ParseGeometry(s string) (GeometryType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euclidean", "flat":
		return Euclidean, true
	case "spherical", "sphere":
		return Spherical, true
	case "hyperbolic", "poincare":
		return Hyperbolic, true
	case "custom":
		return Custom, true
	default:
		return Euclidean, false
	}
}
