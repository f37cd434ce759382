// Package feed holds runtime inputs that perturb section snap settings,
// such as an expanded badge pushing a section's content down.
package feed

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Toggle substitutes AnchorOffset for SectionID while it is on
type Toggle struct {
	Name         string
	SectionID    string
	AnchorOffset float64
}

// Feed is the set of named toggles and per-section interaction flags.
// Safe for concurrent use.
type Feed struct {
	mu          sync.RWMutex
	toggles     map[string]Toggle
	active      map[string]bool
	interacting map[string]bool
}

// New creates an empty feed
func New() *Feed {
	return &Feed{
		toggles:     make(map[string]Toggle),
		active:      make(map[string]bool),
		interacting: make(map[string]bool),
	}
}

// Define registers or replaces a toggle. Its on/off state is kept.
func (f *Feed) Define(t Toggle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggles[t.Name] = t
}

// Set turns a toggle on or off. It reports false for an unknown toggle.
func (f *Feed) Set(name string, on bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.toggles[name]; !ok {
		return false
	}
	if f.active[name] != on {
		log.Debug().Str("toggle", name).Bool("on", on).Msg("feed toggle changed")
	}
	f.active[name] = on
	return true
}

// Flip inverts a toggle and returns its new state
func (f *Feed) Flip(name string) bool {
	f.mu.Lock()
	on := !f.active[name]
	f.mu.Unlock()
	f.Set(name, on)
	return f.IsOn(name)
}

// IsOn reports whether a toggle is on
func (f *Feed) IsOn(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.active[name]
}

// Toggles returns the defined toggles
func (f *Feed) Toggles() []Toggle {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Toggle, 0, len(f.toggles))
	for _, t := range f.toggles {
		out = append(out, t)
	}
	return out
}

// AnchorOverride returns the anchor offset substituted for sectionID by
// active toggles. The largest offset wins when several apply.
func (f *Feed) AnchorOverride(sectionID string) (float64, bool) {
	if f == nil {
		return 0, false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	found := false
	best := 0.0
	for name, t := range f.toggles {
		if t.SectionID != sectionID || !f.active[name] {
			continue
		}
		if !found || t.AnchorOffset > best {
			best = t.AnchorOffset
			found = true
		}
	}
	return best, found
}

// SetInteracting marks a section as busy with its own user interaction
func (f *Feed) SetInteracting(sectionID string, interacting bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if interacting {
		f.interacting[sectionID] = true
		return
	}
	delete(f.interacting, sectionID)
}

// Interacting reports whether a section is busy with its own interaction
func (f *Feed) Interacting(sectionID string) bool {
	if f == nil {
		return false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.interacting[sectionID]
}
