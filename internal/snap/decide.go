// Package snap decides whether a settled scroll position should be pulled
// onto a section anchor. Decisions are pure functions of a geometry
// snapshot, so they can be evaluated without a rendering surface.
package snap

import (
	"math"

	"storysnap/internal/domain"
	"storysnap/internal/geometry"
)

// Outcome is the result kind of a decision cycle
type Outcome int

const (
	// Blocked: a snap is in flight or cooling down
	Blocked Outcome = iota
	// Deferred: an exclusion zone or an interacting section owns alignment
	Deferred
	// NoCandidate: no enabled section has readable bounds
	NoCandidate
	// Aligned: already within epsilon of the candidate anchor
	Aligned
	// Rejected: a gate failed
	Rejected
	// Snap: the candidate was accepted
	Snap
)

func (o Outcome) String() string {
	switch o {
	case Blocked:
		return "blocked"
	case Deferred:
		return "deferred"
	case NoCandidate:
		return "no_candidate"
	case Aligned:
		return "aligned"
	case Rejected:
		return "rejected"
	case Snap:
		return "snap"
	default:
		return "unknown"
	}
}

// Gate names for Rejected decisions
const (
	GateThreshold = "threshold"
	GateVelocity  = "velocity"
)

// Params are the tunable gates
type Params struct {
	Epsilon         float64 // px; at or below counts as aligned
	VelocityCeiling float64 // px/ms; at or above counts as flinging
	ExclusionRatio  float64 // share of a disabled section in view that defers
}

// DefaultParams returns the tuned defaults
func DefaultParams() Params {
	return Params{
		Epsilon:         5,
		VelocityCeiling: 2,
		ExclusionRatio:  0.4,
	}
}

// Input is everything a decision cycle reads
type Input struct {
	State       domain.ScrollState
	Snapshot    geometry.Snapshot
	Sections    []domain.Section
	Interacting func(sectionID string) bool
	Params      Params
}

// Decision is the outcome of one cycle
type Decision struct {
	Outcome Outcome
	Target  domain.SnapTarget // set for Aligned, Rejected and Snap
	Gate    string            // set for Rejected
	Zone    string            // section id that caused a deferral
}

// Decide runs one decision cycle
func Decide(in Input) Decision {
	if in.State.IsSnapping || in.State.IsCoolingDown {
		return Decision{Outcome: Blocked}
	}

	if zone, ok := ExclusionZone(in.Snapshot, in.Sections, in.Params.ExclusionRatio); ok {
		return Decision{Outcome: Deferred, Zone: zone}
	}

	target, threshold, ok := Nearest(in.Snapshot, in.Sections)
	if !ok {
		return Decision{Outcome: NoCandidate}
	}

	if in.Interacting != nil && in.Interacting(target.ID) {
		return Decision{Outcome: Deferred, Zone: target.ID, Target: target}
	}

	if target.Distance <= in.Params.Epsilon {
		return Decision{Outcome: Aligned, Target: target}
	}
	if target.Distance >= threshold*in.Snapshot.ViewportHeight {
		return Decision{Outcome: Rejected, Gate: GateThreshold, Target: target}
	}
	if math.Abs(in.State.Velocity) >= in.Params.VelocityCeiling {
		return Decision{Outcome: Rejected, Gate: GateVelocity, Target: target}
	}
	return Decision{Outcome: Snap, Target: target}
}

// ExclusionZone returns the first snap-disabled section the viewport is
// substantially inside. Coverage is measured against the smaller of the
// section and viewport heights so tall sections still count when they
// fill the screen.
func ExclusionZone(snap geometry.Snapshot, sections []domain.Section, ratio float64) (string, bool) {
	for i, s := range sections {
		if !s.Config.DisableSnap || i >= len(snap.Sections) {
			continue
		}
		g := snap.Sections[i]
		if !g.OK {
			continue
		}
		denom := math.Min(g.Height, snap.ViewportHeight)
		if denom <= 0 {
			continue
		}
		overlap := geometry.Overlap(g.Top, g.Bottom(), snap.Position, snap.ViewportBottom())
		if overlap/denom > ratio {
			return s.ID, true
		}
	}
	return "", false
}

// Nearest returns the enabled section whose anchored position is closest
// to the current position, and that section's threshold. Ties go to the
// lower order index.
func Nearest(snap geometry.Snapshot, sections []domain.Section) (domain.SnapTarget, float64, bool) {
	var (
		best      domain.SnapTarget
		threshold float64
		found     bool
	)
	for i, s := range sections {
		if s.Config.DisableSnap || i >= len(snap.Sections) || !snap.Sections[i].OK {
			continue
		}
		pos := AnchoredPosition(snap, snap.Sections[i].Top, s.Config.AnchorOffset)
		dist := math.Abs(snap.Position - pos)
		if !found || dist < best.Distance || (dist == best.Distance && s.OrderIndex < best.Index) {
			best = domain.SnapTarget{Index: s.OrderIndex, ID: s.ID, Position: pos, Distance: dist}
			threshold = s.Config.Threshold
			found = true
		}
	}
	return best, threshold, found
}

// AnchoredPosition is the scroll position that anchors a section, clamped
// to what the surface can reach. A section whose anchor lies past the end
// of the page anchors at the bottom.
func AnchoredPosition(snap geometry.Snapshot, top, anchorOffset float64) float64 {
	return snap.Clamp(top - anchorOffset)
}
