package manifold

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MetricTensor is the metric g evaluated at one point, plus the scalar
// curvature there. It is only meaningful at the point it was evaluated for.
type MetricTensor struct {
	// G is the symmetric 3x3 metric.
	G mgl64.Mat3

	// Curvature is the scalar curvature at the evaluation point.
	Curvature float64
}

// IdentityTensor returns the flat Euclidean metric.
func IdentityTensor() MetricTensor {
	return MetricTensor{G: mgl64.Ident3()}
}

// SphericalTensor returns diag(1, R², R² sin²θ) with curvature 2/R².
// The round metric does not depend on longitude, so the third coordinate is
// ignored.
func SphericalTensor(radius, theta, _ float64) MetricTensor {
	r2 := radius * radius
	s := math.Sin(theta)
	return MetricTensor{
		G:         mgl64.Diag3(mgl64.Vec3{1, r2, r2 * s * s}),
		Curvature: 2 / r2,
	}
}

// PoincareTensor returns the Poincaré-disk metric at (x, y): the conformal
// factor λ = 2/(1−r²) scales the disk plane, z stays flat. The denominator
// is floored at 0.01 so λ stays finite on and beyond the unit circle.
func PoincareTensor(x, y float64) MetricTensor {
	r2 := x*x + y*y
	lambda := 2 / math.Max(1-r2, 0.01)
	l2 := lambda * lambda
	return MetricTensor{
		G:         mgl64.Diag3(mgl64.Vec3{l2, l2, 1}),
		Curvature: -1,
	}
}

// Norm returns sqrt(vᵀ G v).
func (t MetricTensor) Norm(v mgl64.Vec3) float64 {
	return math.Sqrt(math.Max(0, t.InnerProduct(v, v)))
}

// InnerProduct returns aᵀ G b.
func (t MetricTensor) InnerProduct(a, b mgl64.Vec3) float64 {
	return a.Dot(t.G.Mul3x1(b))
}

// ChristoffelSymbols holds Γⁱⱼₖ indexed as Gamma[i][j][k].
type ChristoffelSymbols struct {
	Gamma [3][3][3]float64
}

// christoffelStep is the finite-difference step for metric derivatives.
const christoffelStep = 1e-4

// Christoffel computes the symbols of the metric field eval at p:
//
//	Γⁱⱼₖ = ½ gⁱˡ (∂ⱼ g_lk + ∂ₖ g_lj − ∂_l g_jk)
//
// Derivatives are central differences. A singular metric at p yields zero
// symbols.
func Christoffel(eval func(mgl64.Vec3) MetricTensor, p mgl64.Vec3) ChristoffelSymbols {
	var out ChristoffelSymbols

	g := eval(p).G
	if math.Abs(g.Det()) < lengthEpsilon {
		return out
	}
	inv := g.Inv()

	// dg[l] = ∂_l g
	var dg [3]mgl64.Mat3
	for l := 0; l < 3; l++ {
		var h mgl64.Vec3
		h[l] = christoffelStep
		plus := eval(p.Add(h)).G
		minus := eval(p.Sub(h)).G
		for k := range dg[l] {
			dg[l][k] = (plus[k] - minus[k]) / (2 * christoffelStep)
		}
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				var sum float64
				for l := 0; l < 3; l++ {
					sum += inv.At(i, l) * (dg[j].At(l, k) + dg[k].At(l, j) - dg[l].At(j, k))
				}
				out.Gamma[i][j][k] = 0.5 * sum
			}
		}
	}

	return out
}

// GeodesicAcceleration returns aⁱ = −Γⁱⱼₖ vʲ vᵏ.
func (c ChristoffelSymbols) GeodesicAcceleration(v mgl64.Vec3) mgl64.Vec3 {
	var a mgl64.Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				a[i] -= c.Gamma[i][j][k] * v[j] * v[k]
			}
		}
	}
	return a
}

// IsZero reports whether every symbol is zero (flat metric).
func (c ChristoffelSymbols) IsZero() bool {
	for i := range c.Gamma {
		for j := range c.Gamma[i] {
			for k := range c.Gamma[i][j] {
				if c.Gamma[i][j][k] != 0 {
					return false
				}
			}
		}
	}
	return true
}
