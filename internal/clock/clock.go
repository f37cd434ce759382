// Package clock provides the time source and timers used by the snap engine.
//
// The engine is single-threaded: every timer callback must run on the same
// loop that delivers scroll signals. Real clocks marshal callbacks through
// Post when the host has its own event loop.
package clock

import "time"

// Clock is a source of time and deferred callbacks
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the
	// timer was still pending.
	Stop() bool
}

// Real is a Clock backed by the system clock
type Real struct {
	// Post, when set, receives each fired callback instead of running it
	// on the timer goroutine.
	Post func(func())
}

// NewReal creates a real clock that posts callbacks through post.
// A nil post runs callbacks on the timer goroutine.
func NewReal(post func(func())) *Real {
	return &Real{Post: post}
}

// Now returns the current time with monotonic clock reading
func (r *Real) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f after d
func (r *Real) AfterFunc(d time.Duration, f func()) Timer {
	post := r.Post
	return realTimer{time.AfterFunc(d, func() {
		if post != nil {
			post(f)
			return
		}
		f()
	})}
}

type realTimer struct {
	t *time.Timer
}

func (t realTimer) Stop() bool { return t.t.Stop() }
