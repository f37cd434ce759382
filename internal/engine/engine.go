// Package engine orchestrates section snapping on a single scroll surface.
//
// An Engine is driven by discrete signals (scroll ticks, touch release,
// explicit navigation) and by timer callbacks from its clock. It is not
// safe for concurrent use: every call and every timer callback must come
// from the same loop.
package engine

import (
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"storysnap/internal/animator"
	"storysnap/internal/clock"
	"storysnap/internal/domain"
	"storysnap/internal/eventbus"
	"storysnap/internal/geometry"
	"storysnap/internal/registry"
	"storysnap/internal/sampler"
	"storysnap/internal/snap"
)

// Engine is the global snap controller
type Engine struct {
	surface  geometry.Surface
	bus      eventbus.EventBus
	clock    clock.Clock
	opts     Options
	registry *registry.Registry
	logger   zerolog.Logger

	// Live only while enabled
	state       *domain.ScrollState
	sampler     *sampler.Sampler
	animator    *animator.Animator
	settle      *clock.Slot
	sections    []domain.Section
	unsubscribe func()

	suppressedUntil time.Time
	suppressor      string
}

// New creates a disabled engine
func New(surface geometry.Surface, bus eventbus.EventBus, c clock.Clock, opts Options) *Engine {
	opts = opts.withDefaults()
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Engine{
		surface:  surface,
		bus:      bus,
		clock:    c,
		opts:     opts,
		registry: registry.New(opts.Registry, opts.Feed),
		logger:   logger.With().Str("component", "snap-engine").Logger(),
	}
}

// Enable creates the scroll state and starts listening. With no surface
// or no sections the engine stays disabled and every signal is a no-op.
func (e *Engine) Enable() bool {
	if e.Enabled() {
		return true
	}
	if e.surface == nil || e.bus == nil || e.clock == nil {
		e.logger.Debug().Msg("no surface, staying disabled")
		return false
	}
	sections := e.registry.Resolve(e.surface.Elements())
	if len(sections) == 0 {
		e.logger.Debug().Msg("no sections, staying disabled")
		return false
	}
	e.sections = sections

	e.state = domain.NewScrollState(e.surface.ScrollTop())
	e.sampler = sampler.New(e.state)
	e.settle = clock.NewSlot(e.clock)
	e.animator = animator.New(e.state, e.surface, e.bus, e.clock, animator.Options{
		Duration:   e.opts.SnapDuration,
		Cooldown:   e.opts.Cooldown,
		FPS:        e.opts.FPS,
		Frequency:  e.opts.SpringFrequency,
		OnComplete: e.snapCompleted,
	})
	e.unsubscribe = e.bus.Subscribe(eventbus.EventProgrammaticScroll, e.handleProgrammaticScroll)
	e.suppressedUntil = time.Time{}
	e.suppressor = ""

	// Initial active section detection
	if e.sampler.Sample(e.clock.Now(), geometry.Take(e.surface, sections)) {
		e.notifyActive()
	}

	e.logger.Info().Int("sections", len(sections)).Msg("snap engine enabled")
	return true
}

// Disable stops all timers and destroys the scroll state
func (e *Engine) Disable() {
	if !e.Enabled() {
		return
	}
	e.settle.Stop()
	e.animator.Stop()
	e.unsubscribe()

	e.state = nil
	e.sampler = nil
	e.animator = nil
	e.settle = nil
	e.unsubscribe = nil
	e.sections = nil
	e.logger.Info().Msg("snap engine disabled")
}

// Enabled reports whether the engine holds a live scroll state
func (e *Engine) Enabled() bool {
	return e.state != nil
}

// Scroll handles a scroll tick: samples the surface and re-arms the settle check
func (e *Engine) Scroll() {
	if !e.Enabled() {
		return
	}
	now := e.clock.Now()
	if e.state.IsSnapping {
		// The animation owns the active section until it lands
		e.sampler.Track(now, e.surface.ScrollTop())
	} else if e.sampler.Sample(now, geometry.Take(e.surface, e.resolve())) {
		e.notifyActive()
	}
	if m := e.opts.Metrics; m != nil {
		m.Velocity.Set(e.state.Velocity)
	}
	e.settle.Reset(e.opts.SettleDelay, e.settled)
}

// TouchEnd handles a touch release. Momentum may keep the surface moving,
// so the settle check waits a little longer.
func (e *Engine) TouchEnd() {
	if !e.Enabled() {
		return
	}
	e.settle.Reset(e.opts.TouchSettleDelay, e.settled)
}

func (e *Engine) settled() {
	e.Decide()
}

// Decide runs one decision cycle now and acts on it
func (e *Engine) Decide() snap.Decision {
	if !e.Enabled() {
		return snap.Decision{Outcome: snap.NoCandidate}
	}

	var d snap.Decision
	if now := e.clock.Now(); now.Before(e.suppressedUntil) {
		d = snap.Decision{Outcome: snap.Deferred, Zone: e.suppressor}
	} else {
		sections := e.resolve()
		snapshot := geometry.Take(e.surface, sections)
		d = snap.Decide(snap.Input{
			State:       *e.state,
			Snapshot:    snapshot,
			Sections:    sections,
			Interacting: e.opts.Feed.Interacting,
			Params:      e.opts.Snap,
		})
		if d.Outcome == snap.Aligned {
			e.publishLocked(d.Target, snapshot.Position)
		}
	}

	e.logger.Debug().
		Str("outcome", d.Outcome.String()).
		Str("target", d.Target.ID).
		Float64("distance", d.Target.Distance).
		Str("gate", d.Gate).
		Str("zone", d.Zone).
		Float64("velocity", e.state.Velocity).
		Msg("snap decision")
	if m := e.opts.Metrics; m != nil {
		m.Decisions.WithLabelValues(d.Outcome.String()).Inc()
	}
	if e.opts.OnDecision != nil {
		e.opts.OnDecision(d)
	}

	if d.Outcome == snap.Snap {
		e.startSnap(d.Target)
	}
	return d
}

// SnapTo navigates to the section at index, skipping the decision gates.
// It returns false when disabled, out of range, the section's bounds are
// unavailable, or another snap is in flight.
func (e *Engine) SnapTo(index int) bool {
	if !e.Enabled() {
		return false
	}
	sections := e.resolve()
	if index < 0 || index >= len(sections) {
		return false
	}
	snapshot := geometry.Take(e.surface, sections)
	g := snapshot.Sections[index]
	if !g.OK {
		return false
	}

	s := sections[index]
	pos := snap.AnchoredPosition(snapshot, g.Top, s.Config.AnchorOffset)
	e.settle.Stop()
	return e.startSnap(domain.SnapTarget{
		Index:    s.OrderIndex,
		ID:       s.ID,
		Position: pos,
		Distance: math.Abs(snapshot.Position - pos),
	})
}

// SnapToID navigates to the section with id
func (e *Engine) SnapToID(id string) bool {
	if !e.Enabled() {
		return false
	}
	return e.SnapTo(registry.IndexOf(e.resolve(), id))
}

// State returns a copy of the scroll state; zero when disabled
func (e *Engine) State() domain.ScrollState {
	if !e.Enabled() {
		return domain.ScrollState{ActiveSectionIndex: -1}
	}
	return *e.state
}

// ActiveSection returns the section last seen straddling the viewport center
func (e *Engine) ActiveSection() (domain.ActiveSection, bool) {
	if !e.Enabled() {
		return domain.ActiveSection{}, false
	}
	idx := e.state.ActiveSectionIndex
	if idx < 0 || idx >= len(e.sections) {
		return domain.ActiveSection{}, false
	}
	return domain.ActiveSection{ID: e.sections[idx].ID, Index: idx}, true
}

// Sections returns the sections as currently resolved
func (e *Engine) Sections() []domain.Section {
	if !e.Enabled() {
		return nil
	}
	return append([]domain.Section(nil), e.resolve()...)
}

func (e *Engine) resolve() []domain.Section {
	e.sections = e.registry.Resolve(e.surface.Elements())
	return e.sections
}

func (e *Engine) startSnap(target domain.SnapTarget) bool {
	if !e.animator.Start(target) {
		return false
	}
	if m := e.opts.Metrics; m != nil {
		m.SnapsStarted.Inc()
		m.SnapDistance.Observe(target.Distance)
	}
	if e.sampler.SetActive(target.Index) {
		e.notifyActive()
	}
	return true
}

func (e *Engine) snapCompleted(target domain.SnapTarget, at float64) {
	// The animator's jump must not read as velocity on the next tick
	e.sampler.Rebase(e.clock.Now(), at)
	if m := e.opts.Metrics; m != nil {
		m.SnapsCompleted.Inc()
		m.SectionLocks.WithLabelValues(target.ID).Inc()
	}
}

func (e *Engine) publishLocked(target domain.SnapTarget, at float64) {
	e.logger.Info().Str("section", target.ID).Msg("section already aligned")
	if m := e.opts.Metrics; m != nil {
		m.SectionLocks.WithLabelValues(target.ID).Inc()
	}
	e.bus.Publish(domain.SectionLockedEvent{
		SectionID: target.ID,
		Index:     target.Index,
		Position:  at,
	})
}

func (e *Engine) handleProgrammaticScroll(ev eventbus.CoordinationEvent) {
	ps, ok := ev.(domain.ProgrammaticScrollEvent)
	if !ok || !e.Enabled() || ps.Source == domain.EngineSource {
		return
	}

	hold := ps.Hold
	if hold < e.opts.SettleDelay {
		hold = e.opts.SettleDelay
	}
	now := e.clock.Now()
	e.settle.Stop()
	e.sampler.Rebase(now, ps.Target)
	e.suppressedUntil = now.Add(hold)
	e.suppressor = ps.Source

	e.logger.Debug().Str("source", ps.Source).Dur("hold", hold).Msg("engine suppressed by programmatic scroll")
	if m := e.opts.Metrics; m != nil {
		m.Suppressions.WithLabelValues(ps.Source).Inc()
	}
}

func (e *Engine) notifyActive() {
	active, ok := e.ActiveSection()
	if !ok {
		return
	}
	e.logger.Debug().Str("section", active.ID).Int("index", active.Index).Msg("active section changed")
	if m := e.opts.Metrics; m != nil {
		m.ActiveChanges.Inc()
	}
	if e.opts.OnSectionChange != nil {
		e.opts.OnSectionChange(active)
	}
}
