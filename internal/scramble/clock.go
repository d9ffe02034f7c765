package scramble

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs a callback on the next tick of some external clock.
type Scheduler interface {
	ScheduleNextTick(fn func())
}

// Sink receives the text of every frame.
type Sink interface {
	SetText(text string)
}

type SinkFunc func(text string)

func (f SinkFunc) SetText(text string) { f(text) }

// ManualClock queues callbacks until Advance is called. It is what tests
// drive, and the base for TickerClock.
type ManualClock struct {
	mu      sync.Mutex
	pending []func()
	ticks   int
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) ScheduleNextTick(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.pending = append(c.pending, fn)
	c.mu.Unlock()
}

// Advance runs one tick: only the callbacks queued before the call. Anything
// they schedule waits for the next Advance. It returns how many ran.
func (c *ManualClock) Advance() int {
	c.mu.Lock()
	queued := c.pending
	c.pending = nil
	c.ticks++
	c.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Ticks counts calls to Advance.
func (c *ManualClock) Ticks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// RunUntilIdle advances until nothing is pending or maxTicks ticks have run.
// It returns the number of ticks advanced.
func (c *ManualClock) RunUntilIdle(maxTicks int) int {
	n := 0
	for n < maxTicks && c.Pending() > 0 {
		c.Advance()
		n++
	}
	return n
}

// TickerClock advances a ManualClock on a wall clock interval.
type TickerClock struct {
	ManualClock
	interval time.Duration
	// AfterTick, when set, is called after every tick's callbacks have run.
	AfterTick func()
}

func NewTickerClock(interval time.Duration) *TickerClock {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickerClock{interval: interval}
}

// Run blocks until no callbacks are pending or ctx is done.
func (c *TickerClock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for c.Pending() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		c.Advance()
		if c.AfterTick != nil {
			c.AfterTick()
		}
	}
	return nil
}
