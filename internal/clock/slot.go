package clock

import "time"

// Slot is a single-slot timer: arming it always cancels whatever was pending.
// Not safe for concurrent use; callers own it from one loop.
type Slot struct {
	clock Clock
	timer Timer
	gen   uint64
}

// NewSlot creates an empty slot on c
func NewSlot(c Clock) *Slot {
	return &Slot{clock: c}
}

// Reset cancels any pending callback and arms f after d
func (s *Slot) Reset(d time.Duration, f func()) {
	s.Stop()
	s.gen++
	gen := s.gen
	s.timer = s.clock.AfterFunc(d, func() {
		// A stale fire from a real timer that lost the Stop race
		if gen != s.gen {
			return
		}
		s.timer = nil
		f()
	})
}

// Stop cancels the pending callback, if any
func (s *Slot) Stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// Pending reports whether a callback is armed
func (s *Slot) Pending() bool {
	return s.timer != nil
}
