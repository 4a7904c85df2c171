package viewer

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Countdown is the cosmetic per-question timer shown on display stations. It
// restarts whenever a different question becomes visible and has no effect
// on game state.
type Countdown struct {
	clock    clockwork.Clock
	duration time.Duration

	mu         sync.Mutex
	questionID *uuid.UUID
	deadline   time.Time
}

func NewCountdown(duration time.Duration, clock clockwork.Clock) *Countdown {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Countdown{clock: clock, duration: duration}
}

// ObserveQuestion tracks the question currently on the board. A new question
// restarts the timer; a cleared board stops it; the same question leaves the
// running timer alone.
func (c *Countdown) ObserveQuestion(id *uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case id == nil:
		c.questionID = nil
		c.deadline = time.Time{}
	case c.questionID == nil || *c.questionID != *id:
		qid := *id
		c.questionID = &qid
		c.deadline = c.clock.Now().Add(c.duration)
	}
}

// Remaining returns the time left, zero when expired or not running.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.deadline.IsZero() {
		return 0
	}
	left := c.deadline.Sub(c.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Running reports whether a question timer is active.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.deadline.IsZero()
}
