package camera

import "github.com/go-gl/mathgl/mgl64"

// Key is a logical control, mapped from physical input by the Input
// implementation.
type Key int

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Input is an opaque source of held keys and mouse motion.
type Input interface {
	Pressed(k Key) bool
	// MouseDelta returns the pointer motion since the previous frame.
	MouseDelta() (dx, dy float64)
}

// FPSController defaults.
const (
	DefaultMoveSpeed   = 5.0
	DefaultSensitivity = 0.002
)

// FPSController flies a camera with WASD-style movement and mouse look.
type FPSController struct {
	MoveSpeed   float64
	Sensitivity float64
}

// NewFPSController returns a controller with the default speed and
// sensitivity.
func NewFPSController() *FPSController {
	return &FPSController{MoveSpeed: DefaultMoveSpeed, Sensitivity: DefaultSensitivity}
}

// Update moves and turns cam from in over dt seconds. Movement is
// normalised so diagonals are not faster.
func (f *FPSController) Update(cam *Camera, in Input, dt float64) {
	var move mgl64.Vec3
	if in.Pressed(KeyForward) {
		move = move.Add(cam.Forward())
	}
	if in.Pressed(KeyBack) {
		move = move.Sub(cam.Forward())
	}
	if in.Pressed(KeyLeft) {
		move = move.Sub(cam.Right())
	}
	if in.Pressed(KeyRight) {
		move = move.Add(cam.Right())
	}
	if in.Pressed(KeyUp) {
		move = move.Add(worldUp)
	}
	if in.Pressed(KeyDown) {
		move = move.Sub(worldUp)
	}
	if l := move.Len(); l > 0 {
		cam.MoveLocal(move.Mul(f.MoveSpeed * dt / l))
	}

	if dx, dy := in.MouseDelta(); dx != 0 || dy != 0 {
		cam.Rotate(-dx*f.Sensitivity, -dy*f.Sensitivity)
	}
}
