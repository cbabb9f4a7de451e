package game

import "time"

// Clock tracks both players' remaining time. It is wall-clock driven and
// read on demand; nothing ticks and nothing blocks. Time spent within the
// fixed extra allowance per turn does not deplete the main clock, and the
// increment is credited when a move is committed.
type Clock struct {
	remaining [2]time.Duration
	increment time.Duration
	extra     time.Duration

	turn     Color
	lastTurn time.Time
	running  bool

	now func() time.Time
}

func NewClock(initial, increment, extra time.Duration) *Clock {
	return &Clock{
		remaining: [2]time.Duration{initial, initial},
		increment: increment,
		extra:     extra,
		now:       time.Now,
	}
}

// Start begins timing the given side. Calling Start on a running clock
// restarts the current turn.
func (c *Clock) Start(turn Color) {
	c.turn = turn
	c.lastTurn = c.now()
	c.running = true
}

func (c *Clock) Stop() { c.running = false }

func (c *Clock) Running() bool { return c.running }

// OnMoveCommitted settles the mover's elapsed time, credits the increment
// and hands the turn to the opponent.
func (c *Clock) OnMoveCommitted(side Color) {
	if !c.running || side != c.turn {
		return
	}
	now := c.now()
	mainUsed := now.Sub(c.lastTurn) - c.extra
	if mainUsed < 0 {
		mainUsed = 0
	}
	c.remaining[side.Index()] += c.increment - mainUsed
	c.lastTurn = now
	c.turn = side.Opposite()
}

// Remaining returns the side's time left, accounting for the in-progress
// turn. Never negative.
func (c *Clock) Remaining(side Color) time.Duration {
	left := c.balance(side)
	if left < 0 {
		return 0
	}
	return left
}

func (c *Clock) balance(side Color) time.Duration {
	left := c.remaining[side.Index()]
	if c.running && side == c.turn {
		mainUsed := c.now().Sub(c.lastTurn) - c.extra
		if mainUsed > 0 {
			left -= mainUsed
		}
	}
	return left
}

// FlagFallen reports which side, if any, has run out of time.
func (c *Clock) FlagFallen() (Color, bool) {
	if !c.running {
		return 0, false
	}
	for _, side := range []Color{White, Black} {
		if c.balance(side) <= 0 {
			return side, true
		}
	}
	return 0, false
}
