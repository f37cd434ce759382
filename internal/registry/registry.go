// Package registry resolves section elements into typed section records
// with their effective snap configuration.
package registry

import (
	"math"

	"github.com/rs/zerolog/log"

	"storysnap/internal/domain"
	"storysnap/internal/feed"
	"storysnap/internal/geometry"
)

// DefaultThreshold applies to sections without their own threshold
const DefaultThreshold = 0.4

// Options is the static configuration surface of the registry
type Options struct {
	Default  domain.SnapConfig
	Sections map[string]domain.SnapOverride // by section id
}

// Registry resolves sections against options and the live feed
type Registry struct {
	opts Options
	feed *feed.Feed
}

// New creates a registry. A nil feed disables runtime overrides.
func New(opts Options, f *feed.Feed) *Registry {
	if !validThreshold(opts.Default.Threshold) {
		opts.Default.Threshold = DefaultThreshold
	}
	if !validOffset(opts.Default.AnchorOffset) {
		opts.Default.AnchorOffset = 0
	}
	return &Registry{opts: opts, feed: f}
}

// Resolve produces ordered sections from elements in DOM order.
//
// Resolution order, later wins: global default, per-id options, the
// element's declared config, then active feed anchor overrides.
func (r *Registry) Resolve(elements []geometry.Element) []domain.Section {
	if len(elements) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(elements))
	sections := make([]domain.Section, 0, len(elements))
	for _, el := range elements {
		if el.ID == "" {
			log.Warn().Int("position", len(sections)).Msg("section without id skipped")
			continue
		}
		if seen[el.ID] {
			log.Warn().Str("section", el.ID).Msg("duplicate section id dropped")
			continue
		}
		seen[el.ID] = true

		sections = append(sections, domain.Section{
			ID:         el.ID,
			OrderIndex: len(sections),
			Config:     r.configFor(el),
		})
	}
	return sections
}

// Config returns the effective config for a section id
func (r *Registry) Config(id string) domain.SnapConfig {
	return r.configFor(geometry.Element{ID: id})
}

func (r *Registry) configFor(el geometry.Element) domain.SnapConfig {
	cfg := r.opts.Default
	if o, ok := r.opts.Sections[el.ID]; ok {
		cfg = o.Apply(cfg)
	}
	cfg = el.Declared.Apply(cfg)
	if offset, ok := r.feed.AnchorOverride(el.ID); ok {
		cfg.AnchorOffset = offset
	}

	if !validThreshold(cfg.Threshold) {
		cfg.Threshold = r.opts.Default.Threshold
	}
	if !validOffset(cfg.AnchorOffset) {
		cfg.AnchorOffset = 0
	}
	return cfg
}

// Candidates returns the sections eligible for automatic snapping
func Candidates(sections []domain.Section) []domain.Section {
	out := make([]domain.Section, 0, len(sections))
	for _, s := range sections {
		if !s.Config.DisableSnap {
			out = append(out, s)
		}
	}
	return out
}

// IndexOf returns the position of id in sections, or -1
func IndexOf(sections []domain.Section, id string) int {
	for i, s := range sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func validThreshold(t float64) bool {
	return !math.IsNaN(t) && t > 0 && t <= 1
}

func validOffset(o float64) bool {
	return !math.IsNaN(o) && !math.IsInf(o, 0) && o >= 0
}
