package geometry

import (
	"math"

	"storysnap/internal/domain"
)

// Element is one section element in DOM order
type Element struct {
	ID       string
	Declared *domain.SnapOverride // config declared on the element itself
}

// Surface is the scroll container plus its section elements
type Surface interface {
	Elements() []Element
	// Bounds returns the live viewport-relative rectangle of a section.
	// ok is false while the bounds are unavailable (mid layout shift).
	Bounds(id string) (r Rect, ok bool)
	ViewportHeight() float64
	ScrollTop() float64
	// MaxScroll is the largest position ScrollTo can reach
	MaxScroll() float64
	ScrollTo(y float64)
}

// SectionGeom is a section's absolute extent in content coordinates
type SectionGeom struct {
	Top    float64
	Height float64
	OK     bool
}

// Bottom returns the absolute bottom edge
func (g SectionGeom) Bottom() float64 {
	return g.Top + g.Height
}

// Snapshot is the surface geometry captured for one decision cycle
type Snapshot struct {
	Position       float64
	ViewportHeight float64
	MaxScroll      float64
	Sections       []SectionGeom // indexed like the registry
}

// Take captures a snapshot for the given sections
func Take(s Surface, sections []domain.Section) Snapshot {
	snap := Snapshot{
		Position:       s.ScrollTop(),
		ViewportHeight: s.ViewportHeight(),
		MaxScroll:      s.MaxScroll(),
		Sections:       make([]SectionGeom, len(sections)),
	}
	for i, sec := range sections {
		r, ok := s.Bounds(sec.ID)
		if !ok || !finite(r.Top) || !finite(r.Height) || r.Height < 0 {
			continue
		}
		snap.Sections[i] = SectionGeom{
			Top:    snap.Position + r.Top,
			Height: r.Height,
			OK:     true,
		}
	}
	return snap
}

// Clamp limits y to the reachable scroll range [0, MaxScroll]
func (s Snapshot) Clamp(y float64) float64 {
	return math.Max(0, math.Min(y, s.MaxScroll))
}

// ViewportBottom returns the absolute bottom edge of the viewport
func (s Snapshot) ViewportBottom() float64 {
	return s.Position + s.ViewportHeight
}

// Midpoint returns the absolute vertical center of the viewport
func (s Snapshot) Midpoint() float64 {
	return s.Position + s.ViewportHeight/2
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
