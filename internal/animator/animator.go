// Package animator moves the scroll container onto a snap target and owns
// the snapping and cooldown flags of the engine's ScrollState.
package animator

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/rs/zerolog/log"

	"storysnap/internal/clock"
	"storysnap/internal/domain"
	"storysnap/internal/eventbus"
)

// Default timings
const (
	DefaultDuration  = 400 * time.Millisecond
	DefaultCooldown  = 700 * time.Millisecond
	DefaultFPS       = 60
	DefaultFrequency = 24.0

	// Within this many px of the goal the spring counts as settled
	settleDistance = 0.5
)

// Writer is the scroll container as seen by the animator
type Writer interface {
	ScrollTop() float64
	ScrollTo(y float64)
}

// Options tune the animation
type Options struct {
	Duration  time.Duration // hard cap; the last frame lands exactly on target
	Cooldown  time.Duration
	FPS       int
	Frequency float64 // spring angular frequency

	// OnComplete runs after the final write and before SectionLocked is published
	OnComplete func(target domain.SnapTarget, at float64)
}

func (o Options) withDefaults() Options {
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.Cooldown <= 0 {
		o.Cooldown = DefaultCooldown
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.Frequency <= 0 {
		o.Frequency = DefaultFrequency
	}
	return o
}

// Animator runs one snap at a time.
// Not safe for concurrent use; drive it from the engine loop.
type Animator struct {
	state    *domain.ScrollState
	surface  Writer
	bus      eventbus.EventBus
	clock    clock.Clock
	opts     Options
	frame    *clock.Slot
	cooldown *clock.Slot

	// flight
	target   domain.SnapTarget
	goal     float64
	pos      float64
	vel      float64
	started  time.Time
	interval time.Duration
	spring   harmonica.Spring
}

// New creates an animator
func New(state *domain.ScrollState, surface Writer, bus eventbus.EventBus, c clock.Clock, opts Options) *Animator {
	opts = opts.withDefaults()
	return &Animator{
		state:    state,
		surface:  surface,
		bus:      bus,
		clock:    c,
		opts:     opts,
		frame:    clock.NewSlot(c),
		cooldown: clock.NewSlot(c),
		interval: time.Second / time.Duration(opts.FPS),
		spring:   harmonica.NewSpring(harmonica.FPS(opts.FPS), opts.Frequency, 1.0),
	}
}

// Start begins animating toward target. It returns false while another
// snap is in flight; once started a snap always runs to completion.
func (a *Animator) Start(target domain.SnapTarget) bool {
	if a.state.IsSnapping {
		log.Debug().Str("section", target.ID).Msg("snap refused, animation in flight")
		return false
	}

	// An explicit snap may land inside the previous cooldown
	a.cooldown.Stop()
	a.state.IsCoolingDown = false

	a.target = target
	a.goal = math.Max(0, target.Position)
	a.pos = a.surface.ScrollTop()
	a.vel = 0
	a.started = a.clock.Now()
	a.state.IsSnapping = true

	log.Info().
		Str("section", target.ID).
		Float64("from", a.pos).
		Float64("to", a.goal).
		Msg("snap started")

	a.bus.Publish(domain.ProgrammaticScrollEvent{
		Source: domain.EngineSource,
		Target: a.goal,
		Hold:   a.opts.Duration,
	})

	a.frame.Reset(a.interval, a.step)
	return true
}

func (a *Animator) step() {
	if !a.state.IsSnapping {
		return
	}

	last := a.pos
	next, vel := a.spring.Update(a.pos, a.vel, a.goal)
	a.pos, a.vel = monotonic(last, next, a.goal), vel

	elapsed := a.clock.Now().Sub(a.started)
	if elapsed >= a.opts.Duration || math.Abs(a.goal-a.pos) < settleDistance {
		a.finish()
		return
	}

	a.surface.ScrollTo(a.pos)
	a.frame.Reset(a.interval, a.step)
}

func (a *Animator) finish() {
	a.surface.ScrollTo(a.goal)
	a.pos = a.goal
	a.state.IsSnapping = false
	a.state.IsCoolingDown = true

	landed := a.surface.ScrollTop()
	if a.opts.OnComplete != nil {
		a.opts.OnComplete(a.target, landed)
	}

	log.Info().Str("section", a.target.ID).Float64("at", landed).Msg("section locked")
	a.bus.Publish(domain.SectionLockedEvent{
		SectionID: a.target.ID,
		Index:     a.target.Index,
		Position:  landed,
	})

	a.cooldown.Reset(a.opts.Cooldown, func() {
		a.state.IsCoolingDown = false
		log.Debug().Msg("snap cooldown elapsed")
	})
}

// Stop cancels pending frames and the cooldown and clears both flags.
// Used when the engine is disabled.
func (a *Animator) Stop() {
	a.frame.Stop()
	a.cooldown.Stop()
	a.state.IsSnapping = false
	a.state.IsCoolingDown = false
}

// Goal returns the clamped target of the current or last snap
func (a *Animator) Goal() float64 {
	return a.goal
}

// monotonic keeps next between last and goal so the trajectory never
// reverses or overshoots
func monotonic(last, next, goal float64) float64 {
	if goal >= last {
		return math.Min(math.Max(next, last), goal)
	}
	return math.Max(math.Min(next, last), goal)
}
