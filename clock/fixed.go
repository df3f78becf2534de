package clock

import "time"

// DefaultMaxSteps bounds the steps one Advance may return.
const DefaultMaxSteps = 10

// FixedTimestep converts variable frame time into whole fixed-size steps.
type FixedTimestep struct {
	step     time.Duration
	acc      time.Duration
	maxSteps int
}

// NewFixedTimestep returns an accumulator for rate steps per second.
// Non-positive rates default to 60.
func NewFixedTimestep(rate float64) *FixedTimestep {
	if rate <= 0 {
		rate = 60
	}
	return &FixedTimestep{
		step:     time.Duration(float64(time.Second) / rate),
		maxSteps: DefaultMaxSteps,
	}
}

// Advance adds dt and returns how many fixed steps to simulate. When the
// step cap is reached the leftover time is dropped.
func (f *FixedTimestep) Advance(dt time.Duration) int {
	if dt > 0 {
		f.acc += dt
	}
	steps := 0
	for f.acc >= f.step && steps < f.maxSteps {
		f.acc -= f.step
		steps++
	}
	if steps >= f.maxSteps {
		f.acc = 0
	}
	return steps
}

// Step returns the fixed step length.
func (f *FixedTimestep) Step() time.Duration { return f.step }

// Alpha returns the fraction of a step left in the accumulator, for
// interpolating render state between steps.
func (f *FixedTimestep) Alpha() float64 {
	return float64(f.acc) / float64(f.step)
}
