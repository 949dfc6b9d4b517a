package testutil

import "sync"

// RecordingClock is a logical clock that remembers every seq it hands out,
// so a test can check which comparisons were stamped and in what order.
// It satisfies batch.SeqClock.
type RecordingClock struct {
	mu     sync.Mutex
	issued []int64
}

// NewRecordingClock returns a clock whose first Next is 1.
func NewRecordingClock() *RecordingClock {
	return &RecordingClock{}
}

// Next stamps and returns the next seq.
func (c *RecordingClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	seq := int64(len(c.issued)) + 1
	c.issued = append(c.issued, seq)
	return seq
}

// Issued returns a copy of the seqs handed out so far.
func (c *RecordingClock) Issued() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.issued...)
}

// Reset forgets every issued seq; the next call to Next returns 1 again.
func (c *RecordingClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued = nil
}
