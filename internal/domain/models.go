package domain

// SnapConfig holds the per-section snap settings
type SnapConfig struct {
	Threshold    float64 // fraction of viewport height, in (0,1]
	AnchorOffset float64 // pixels above the section top where it anchors
	DisableSnap  bool    // section manages its own alignment (exclusion zone)
}

// Section represents one vertically stacked content block.
// Bounds are not stored here; they are read live from the surface.
type Section struct {
	ID         string
	OrderIndex int
	Config     SnapConfig
}

// SnapTarget is the chosen section and its resolved absolute scroll position
type SnapTarget struct {
	Index    int
	ID       string
	Position float64
	Distance float64
}

// ActiveSection is the section straddling the viewport's vertical center
type ActiveSection struct {
	ID    string
	Index int
}

// ScrollState is the single mutable state owned by an enabled engine.
//
// Position, Velocity and ActiveSectionIndex are written by the sampler.
// IsSnapping and IsCoolingDown are written by the animator.
type ScrollState struct {
	Position           float64 // container vertical scroll offset, px
	Velocity           float64 // px/ms from the last two samples
	IsSnapping         bool
	IsCoolingDown      bool
	ActiveSectionIndex int // -1 until a section straddles the midpoint
}

// NewScrollState returns a state with no active section
func NewScrollState(position float64) *ScrollState {
	return &ScrollState{
		Position:           position,
		ActiveSectionIndex: -1,
	}
}

// SnapOverride is a partial SnapConfig; nil fields inherit
type SnapOverride struct {
	Threshold    *float64
	AnchorOffset *float64
	DisableSnap  *bool
}

// Apply returns base with every set field of o replacing it
func (o *SnapOverride) Apply(base SnapConfig) SnapConfig {
	if o == nil {
		return base
	}
	if o.Threshold != nil {
		base.Threshold = *o.Threshold
	}
	if o.AnchorOffset != nil {
		base.AnchorOffset = *o.AnchorOffset
	}
	if o.DisableSnap != nil {
		base.DisableSnap = *o.DisableSnap
	}
	return base
}
