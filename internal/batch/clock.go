package batch

import "sync/atomic"

// SeqClock stamps comparisons with a monotonic sequence number.
// Implemented by Clock (production) and testutil.RecordingClock (tests).
type SeqClock interface {
	Next() int64
}

// Clock is a monotonic logical clock for comparison ordering.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
// The Runner's single collector means only one goroutine calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence number.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
