package scenario

import (
	"time"

	"github.com/rs/zerolog"

	"storysnap/internal/clock"
	"storysnap/internal/config"
	"storysnap/internal/domain"
	"storysnap/internal/engine"
	"storysnap/internal/eventbus"
	"storysnap/internal/geometry"
	"storysnap/internal/metrics"
	"storysnap/internal/trace"
)

// Result is the outcome of a run
type Result struct {
	Trace     *trace.Recorder
	Metrics   *metrics.Registry
	State     domain.ScrollState
	Position  float64
	Active    domain.ActiveSection
	HasActive bool
	Elapsed   time.Duration
}

// Runner replays a scenario against a fresh engine
type Runner struct {
	cfg    *config.Config
	logger zerolog.Logger

	clock   *clock.Manual
	layout  *geometry.Layout
	engine  *engine.Engine
	bus     eventbus.EventBus
	trace   *trace.Recorder
	metrics *metrics.Registry
	opts    engine.Options
}

// NewRunner creates a runner for the page and tunables in cfg
func NewRunner(cfg *config.Config, logger zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, logger: logger}
}

// Run replays sc from a clean state
func (r *Runner) Run(sc *Scenario) *Result {
	start := time.Unix(0, 0)
	r.clock = clock.NewManual(start)
	r.layout = r.cfg.NewLayout()
	r.layout.ScrollTo(sc.Start)
	r.bus = eventbus.New()
	r.trace = trace.New(r.clock, 0)
	r.trace.Attach(r.bus)
	r.metrics = metrics.NewRegistry()

	opts := r.cfg.EngineOptions()
	opts.Feed = r.cfg.Feed()
	opts.Metrics = r.metrics
	opts.Logger = &r.logger
	opts.OnDecision = r.trace.Decision
	opts.OnSectionChange = r.trace.Active
	r.opts = opts
	r.engine = engine.New(r.layout, r.bus, r.clock, opts)
	if !r.engine.Enable() {
		r.trace.Add(trace.KindInput, "engine stayed disabled")
	}

	for _, st := range sc.Steps {
		r.advanceTo(start.Add(st.At.Duration))
		r.apply(st)
	}
	r.clock.Advance(sc.Tail.Duration)

	res := &Result{
		Trace:    r.trace,
		Metrics:  r.metrics,
		State:    r.engine.State(),
		Position: r.layout.ScrollTop(),
		Elapsed:  r.clock.Now().Sub(start),
	}
	res.Active, res.HasActive = r.engine.ActiveSection()
	r.engine.Disable()
	r.trace.Detach()
	return res
}

func (r *Runner) advanceTo(t time.Time) {
	if d := t.Sub(r.clock.Now()); d > 0 {
		r.clock.Advance(d)
	}
}

func (r *Runner) apply(st Step) {
	switch st.Action {
	case ActionScroll:
		r.scroll(st)
	case ActionTouchEnd:
		r.trace.Add(trace.KindInput, "touch end")
		r.engine.TouchEnd()
	case ActionSnapTo:
		ok := r.engine.SnapToID(st.Section)
		r.trace.Add(trace.KindInput, "snap to %s accepted=%t", st.Section, ok)
	case ActionProgrammatic:
		r.trace.Add(trace.KindInput, "%s scrolls to %.0f", st.Source, st.To)
		r.bus.Publish(domain.ProgrammaticScrollEvent{
			Source: st.Source,
			Target: st.To,
			Hold:   st.Hold.Duration,
		})
		r.layout.ScrollTo(st.To)
		r.engine.Scroll()
	case ActionToggle:
		r.opts.Feed.Set(st.Name, st.On)
		r.trace.Add(trace.KindInput, "toggle %s on=%t", st.Name, st.On)
	case ActionInteract:
		r.opts.Feed.SetInteracting(st.Section, st.On)
		r.trace.Add(trace.KindInput, "interact %s on=%t", st.Section, st.On)
	case ActionSetHeight:
		r.layout.SetHeight(st.Section, st.Height)
		r.trace.Add(trace.KindInput, "height %s=%.0f", st.Section, st.Height)
	case ActionHide:
		r.layout.SetUnavailable(st.Section, st.On)
		r.trace.Add(trace.KindInput, "hide %s on=%t", st.Section, st.On)
	case ActionDisable:
		r.engine.Disable()
		r.trace.Add(trace.KindInput, "disable")
	case ActionEnable:
		ok := r.engine.Enable()
		r.trace.Add(trace.KindInput, "enable ok=%t", ok)
	}
}

// scroll moves linearly to st.To in st.Ticks scroll events spread over st.Over
func (r *Runner) scroll(st Step) {
	ticks := st.Ticks
	if ticks <= 0 {
		ticks = 1
	}
	from := r.layout.ScrollTop()
	step := st.Over.Duration / time.Duration(ticks)
	for i := 1; i <= ticks; i++ {
		if step > 0 {
			r.clock.Advance(step)
		}
		pos := from + (st.To-from)*float64(i)/float64(ticks)
		r.layout.ScrollTo(pos)
		r.engine.Scroll()
	}
	s := r.engine.State()
	r.trace.Add(trace.KindInput, "scroll to %.0f velocity=%.2f", r.layout.ScrollTop(), s.Velocity)
}
