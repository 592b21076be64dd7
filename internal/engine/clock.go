package engine

import "sync/atomic"

// Clock numbers dispatches. Mount is dispatch 0; every frame dispatch takes
// the next value. It is a logical counter, not wall time.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations), which
// lets diagnostics read Current from outside the frame loop.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
