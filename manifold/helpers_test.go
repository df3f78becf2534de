package manifold_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

// assertVec compares two vectors component-wise within delta.
func assertVec(t *testing.T, want, got mgl64.Vec3, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if !assert.InDelta(t, want[i], got[i], delta, msgAndArgs...) {
			t.Logf("want %v, got %v", want, got)
			return
		}
	}
}
