package clock

import "time"

// Now returns the current time.
type Now func() time.Time

// Clock measures frames. The zero value is not usable; call New.
type Clock struct {
	now Now

	start     time.Time
	last      time.Time
	delta     time.Duration
	total     time.Duration
	frames    uint64
	fps       float64
	fpsMark   time.Time
	fpsFrames int
}

// Option configures a Clock or Timer.
type Option func(*Now)

// WithNow replaces time.Now as the time source.
func WithNow(fn Now) Option {
	return func(n *Now) {
		if fn != nil {
			*n = fn
		}
	}
}

func resolve(opts []Option) Now {
	n := Now(time.Now)
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// New starts a clock.
func New(opts ...Option) *Clock {
	now := resolve(opts)
	t := now()
	return &Clock{now: now, start: t, last: t, fpsMark: t}
}

// Tick marks the end of a frame and returns the time since the previous
// Tick (or since New).
func (c *Clock) Tick() time.Duration {
	t := c.now()
	c.delta = t.Sub(c.last)
	c.last = t
	c.total += c.delta
	c.frames++
	c.fpsFrames++

	if since := t.Sub(c.fpsMark); since >= time.Second {
		c.fps = float64(c.fpsFrames) / since.Seconds()
		c.fpsMark = t
		c.fpsFrames = 0
	}
	return c.delta
}

// Delta returns the duration of the last frame.
func (c *Clock) Delta() time.Duration { return c.delta }

// Total returns the sum of all frame durations.
func (c *Clock) Total() time.Duration { return c.total }

// Frames returns the number of Ticks.
func (c *Clock) Frames() uint64 { return c.frames }

// FPS returns the frame rate measured over the last full second; 0 until
// a second has passed.
func (c *Clock) FPS() float64 { return c.fps }

// Elapsed returns the time since New.
func (c *Clock) Elapsed() time.Duration { return c.now().Sub(c.start) }
