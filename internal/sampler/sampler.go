// Package sampler turns raw scroll ticks into velocity and active-section
// readings on the engine's ScrollState.
package sampler

import (
	"math"
	"time"

	"storysnap/internal/domain"
	"storysnap/internal/geometry"
)

// Sampler owns Position, Velocity and ActiveSectionIndex of a ScrollState
type Sampler struct {
	state    *domain.ScrollState
	lastPos  float64
	lastTime time.Time
	primed   bool
}

// New creates a sampler writing into state
func New(state *domain.ScrollState) *Sampler {
	return &Sampler{state: state}
}

// Sample records one scroll tick taken at now. It reports whether the
// active section changed.
func (s *Sampler) Sample(now time.Time, snap geometry.Snapshot) bool {
	s.Track(now, snap.Position)
	return s.SetActive(ActiveIndex(snap))
}

// Track records position and velocity only. The engine uses it while a
// snap is in flight so intermediate sections are not reported as active.
func (s *Sampler) Track(now time.Time, pos float64) {
	s.state.Position = pos

	if s.primed {
		dt := float64(now.Sub(s.lastTime)) / float64(time.Millisecond)
		if dt > 0 {
			v := (pos - s.lastPos) / dt
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				s.state.Velocity = v
			}
		}
	}
	// A non-positive delta keeps the old baseline time so the next
	// tick measures against a real interval
	if !s.primed || now.After(s.lastTime) {
		s.lastTime = now
	}
	s.lastPos = pos
	s.primed = true
}

// Rebase resets the velocity baseline without producing a reading.
// Used after a programmatic jump so it is not mistaken for a fling.
func (s *Sampler) Rebase(now time.Time, position float64) {
	s.state.Position = position
	s.lastPos = position
	s.lastTime = now
	s.primed = true
}

// SetActive records index as the active section when it is a real index.
// It reports whether the value changed.
func (s *Sampler) SetActive(index int) bool {
	if index < 0 || index == s.state.ActiveSectionIndex {
		return false
	}
	s.state.ActiveSectionIndex = index
	return true
}

// ActiveIndex returns the first section straddling the viewport midpoint,
// or -1. Sections with unavailable bounds are skipped.
func ActiveIndex(snap geometry.Snapshot) int {
	mid := snap.Midpoint()
	for i, g := range snap.Sections {
		if g.OK && mid >= g.Top && mid < g.Bottom() {
			return i
		}
	}
	return -1
}
