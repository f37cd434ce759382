package engine

import (
	"time"

	"github.com/rs/zerolog"

	"storysnap/internal/animator"
	"storysnap/internal/domain"
	"storysnap/internal/feed"
	"storysnap/internal/metrics"
	"storysnap/internal/registry"
	"storysnap/internal/snap"
)

// Default debounce windows
const (
	DefaultSettleDelay      = 150 * time.Millisecond
	DefaultTouchSettleDelay = 200 * time.Millisecond
)

// Options configure an Engine
type Options struct {
	SettleDelay      time.Duration // quiet period after the last scroll tick
	TouchSettleDelay time.Duration // longer wait after touch release for momentum
	Cooldown         time.Duration
	SnapDuration     time.Duration
	FPS              int
	SpringFrequency  float64

	Snap     snap.Params
	Registry registry.Options

	// Optional collaborators
	Feed            *feed.Feed
	Metrics         *metrics.Registry
	Logger          *zerolog.Logger
	OnSectionChange func(domain.ActiveSection)
	OnDecision      func(snap.Decision)
}

// DefaultOptions returns options with every tunable at its default
func DefaultOptions() Options {
	return Options{
		SettleDelay:      DefaultSettleDelay,
		TouchSettleDelay: DefaultTouchSettleDelay,
		Cooldown:         animator.DefaultCooldown,
		SnapDuration:     animator.DefaultDuration,
		FPS:              animator.DefaultFPS,
		SpringFrequency:  animator.DefaultFrequency,
		Snap:             snap.DefaultParams(),
		Registry: registry.Options{
			Default: domain.SnapConfig{Threshold: registry.DefaultThreshold},
		},
	}
}

// withDefaults fills zero values
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SettleDelay <= 0 {
		o.SettleDelay = d.SettleDelay
	}
	if o.TouchSettleDelay <= 0 {
		o.TouchSettleDelay = d.TouchSettleDelay
	}
	if o.Snap.Epsilon <= 0 {
		o.Snap.Epsilon = d.Snap.Epsilon
	}
	if o.Snap.VelocityCeiling <= 0 {
		o.Snap.VelocityCeiling = d.Snap.VelocityCeiling
	}
	if o.Snap.ExclusionRatio <= 0 {
		o.Snap.ExclusionRatio = d.Snap.ExclusionRatio
	}
	// animator fills its own zero values
	return o
}
