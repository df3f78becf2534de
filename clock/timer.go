package clock

import "time"

// Timer counts toward a fixed duration and can be paused.
type Timer struct {
	now       Now
	duration  time.Duration
	start     time.Time
	pausedAt  time.Time
	paused    bool
	pausedFor time.Duration
}

// NewTimer starts a timer for d.
func NewTimer(d time.Duration, opts ...Option) *Timer {
	now := resolve(opts)
	return &Timer{now: now, duration: d, start: now()}
}

// Reset restarts the timer, unpaused.
func (t *Timer) Reset() {
	t.start = t.now()
	t.paused = false
	t.pausedFor = 0
}

// Pause stops the timer; pausing a paused timer does nothing.
func (t *Timer) Pause() {
	if !t.paused {
		t.paused = true
		t.pausedAt = t.now()
	}
}

// Resume continues a paused timer.
func (t *Timer) Resume() {
	if t.paused {
		t.pausedFor += t.now().Sub(t.pausedAt)
		t.paused = false
	}
}

// Paused reports whether the timer is paused.
func (t *Timer) Paused() bool { return t.paused }

// Elapsed returns the running time, excluding pauses.
func (t *Timer) Elapsed() time.Duration {
	end := t.now()
	if t.paused {
		end = t.pausedAt
	}
	if e := end.Sub(t.start) - t.pausedFor; e > 0 {
		return e
	}
	return 0
}

// Remaining returns the time left, never negative.
func (t *Timer) Remaining() time.Duration {
	if r := t.duration - t.Elapsed(); r > 0 {
		return r
	}
	return 0
}

// Finished reports whether the duration has elapsed.
func (t *Timer) Finished() bool { return t.Elapsed() >= t.duration }

// Progress returns Elapsed/duration clamped to [0, 1]; 1 for a zero
// duration.
func (t *Timer) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	p := float64(t.Elapsed()) / float64(t.duration)
	if p > 1 {
		return 1
	}
	return p
}
