package sprig

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// FrameClock supplies the elapsed time for one update cycle. The scene never
// measures time itself.
type FrameClock interface {
	Tick() time.Duration
}

// FixedClock reports the same step every tick. A zero Step uses one ebiten
// tick (1s / ebiten.TPS()).
type FixedClock struct {
	Step time.Duration
}

// Tick returns the fixed step.
func (c FixedClock) Tick() time.Duration {
	if c.Step > 0 {
		return c.Step
	}
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// WallClock reports the real time elapsed since the previous Tick (or since
// Restart). The first Tick after construction returns the time since the
// clock was created.
type WallClock struct {
	last time.Time
	now  func() time.Time
}

// NewWallClock starts a clock at the current time.
func NewWallClock() *WallClock {
	c := &WallClock{now: time.Now}
	c.last = c.now()
	return c
}

// Tick returns the elapsed time and restarts the clock.
func (c *WallClock) Tick() time.Duration {
	now := c.now()
	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		dt = 0
	}
	return dt
}

// Elapsed returns the time since the last Tick without restarting.
func (c *WallClock) Elapsed() time.Duration {
	return c.now().Sub(c.last)
}

// Restart resets the clock to the current time.
func (c *WallClock) Restart() {
	c.last = c.now()
}
