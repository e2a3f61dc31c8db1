package game

import (
	"fmt"
	"time"

	"github.com/hailam/chesspad/internal/board"
)

// DefaultClockTime is each side's starting time.
const DefaultClockTime = 10 * time.Minute

// Clock is a display-only chess clock. Running out of time does not end the
// game.
type Clock struct {
	initial   time.Duration
	remaining [2]time.Duration
	active    board.Color
	since     time.Time
	now       func() time.Time
}

// NewClock creates a clock giving each side d. A non-positive d uses
// DefaultClockTime.
func NewClock(d time.Duration) *Clock {
	if d <= 0 {
		d = DefaultClockTime
	}
	c := &Clock{initial: d, now: time.Now}
	c.Reset()
	return c
}

// Reset restores both sides to the initial time and stops the clock.
func (c *Clock) Reset() {
	c.remaining = [2]time.Duration{c.initial, c.initial}
	c.active = board.NoColor
	c.since = time.Time{}
}

// Sync charges elapsed time to the running side, then runs side's clock while
// live is true. Call it whenever the game may have changed.
func (c *Clock) Sync(side board.Color, live bool) {
	now := c.now()
	c.charge(now)
	if !live {
		c.active = board.NoColor
		return
	}
	c.active = side
	c.since = now
}

// SyncGame runs the clock for g's side to move while g is undecided.
func (c *Clock) SyncGame(g *Game) {
	c.Sync(g.Turn(), !g.Phase().Over())
}

func (c *Clock) charge(now time.Time) {
	if c.active == board.NoColor {
		return
	}
	c.remaining[c.active] -= now.Sub(c.since)
	if c.remaining[c.active] < 0 {
		c.remaining[c.active] = 0
	}
	c.since = now
}

// Remaining returns side's time left.
func (c *Clock) Remaining(side board.Color) time.Duration {
	r := c.remaining[side]
	if side == c.active {
		r -= c.now().Sub(c.since)
	}
	if r < 0 {
		r = 0
	}
	return r
}

// Flagged reports whether side has used up its time.
func (c *Clock) Flagged(side board.Color) bool {
	return c.Remaining(side) == 0
}

// Running returns the side whose clock is running, or board.NoColor.
func (c *Clock) Running() board.Color { return c.active }

// Format renders side's time as mm:ss.
func (c *Clock) Format(side board.Color) string {
	return FormatClock(c.Remaining(side))
}

// FormatClock renders d as mm:ss, rounding up to the next second.
func FormatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
