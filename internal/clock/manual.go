package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a controllable clock for tests and headless replay.
// Timers fire only from Advance, on the caller's goroutine.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	m   *Manual
	due time.Time
	seq uint64
	f   func()
}

// NewManual creates a manual clock starting at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules f to run once the clock has advanced by d
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{m: m, due: m.now.Add(d), seq: m.seq, f: f}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	return t.m.remove(t)
}

func (m *Manual) remove(t *manualTimer) bool {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d, firing every timer that falls due,
// in due order. Timers armed by callbacks inside the window also fire.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.remove(next)
		m.now = next.due
		m.mu.Unlock()

		next.f()
	}
}

// nextDue returns the earliest timer due at or before target
func (m *Manual) nextDue(target time.Time) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due.Equal(m.pending[j].due) {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].due.Before(m.pending[j].due)
	})
	if m.pending[0].due.After(target) {
		return nil
	}
	return m.pending[0]
}

// Pending returns the number of armed timers
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
