package gfx

import "time"

const (
	defaultFPS   = 60
	maxEventWait = 50 * time.Millisecond
)

type frameClock struct {
	interval  time.Duration
	nextFrame time.Time
	lastFrame time.Time
}

func newFrameClock(fps int, now time.Time) *frameClock {
	c := &frameClock{lastFrame: now}
	c.setFPS(fps)
	c.nextFrame = now.Add(c.interval)
	return c
}

func (c *frameClock) setFPS(fps int) {
	if fps <= 0 {
		fps = defaultFPS
	}
	c.interval = time.Second / time.Duration(fps)
}

// timeoutMs is how long the event poll may block without delaying the
// next frame, capped so posted updates are still picked up promptly.
func (c *frameClock) timeoutMs(now time.Time) int {
	timeout := c.nextFrame.Sub(now)
	if timeout < 0 {
		timeout = 0
	}
	if timeout > maxEventWait {
		timeout = maxEventWait
	}
	ms := int(timeout / time.Millisecond)
	if timeout > 0 && ms == 0 {
		ms = 1
	}
	return ms
}

// tick reports whether a frame is due and, if so, the time elapsed since
// the previous one.
func (c *frameClock) tick(now time.Time) (time.Duration, bool) {
	if now.Before(c.nextFrame) {
		return 0, false
	}
	dt := now.Sub(c.lastFrame)
	c.lastFrame = now
	c.nextFrame = now.Add(c.interval)
	return dt, true
}
