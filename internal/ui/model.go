package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"storysnap/internal/clock"
	"storysnap/internal/config"
	"storysnap/internal/domain"
	"storysnap/internal/engine"
	"storysnap/internal/eventbus"
	"storysnap/internal/feed"
	"storysnap/internal/geometry"
	"storysnap/internal/metrics"
	"storysnap/internal/trace"
	"storysnap/internal/ui/input"
	inputtypes "storysnap/internal/ui/input/types"
	"storysnap/internal/ui/views"
)

// FAQ programmatic scroll settings
const (
	faqSectionID = "faq"
	faqHold      = 500 * time.Millisecond
)

// Mode decides when the engine is enabled
type Mode int

const (
	// ModeAuto enables snapping only on narrow terminals
	ModeAuto Mode = iota
	ModeOn
	ModeOff
)

func (m Mode) String() string {
	switch m {
	case ModeOn:
		return "on"
	case ModeOff:
		return "off"
	default:
		return "auto"
	}
}

// Deps are the collaborators a Model shares with the rest of the program.
// Zero values are replaced with fresh ones.
type Deps struct {
	Bus     eventbus.EventBus
	Clock   clock.Clock
	Metrics *metrics.Registry
	Logger  *zerolog.Logger
}

// Model represents the UI state
type Model struct {
	cfg     *config.Config
	bus     eventbus.EventBus
	clock   clock.Clock
	metrics *metrics.Registry
	logger  zerolog.Logger

	layout *geometry.Layout
	feed   *feed.Feed
	trace  *trace.Recorder
	engine *engine.Engine
	mode   Mode

	width         int
	height        int
	help          help.Model
	statusMessage string
	lastLock      string
	inPagerMode   bool

	renderer     *views.Renderer
	inputHandler *input.Handler
	helpRenderer *HelpRenderer

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model for the page described by cfg
func NewModel(cfg *config.Config, deps Deps) *Model {
	m := &Model{
		cfg:          cfg,
		bus:          deps.Bus,
		clock:        deps.Clock,
		metrics:      deps.Metrics,
		logger:       log.Logger,
		layout:       cfg.NewLayout(),
		feed:         cfg.Feed(),
		help:         help.New(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		helpRenderer: NewHelpRenderer(),
	}
	if deps.Logger != nil {
		m.logger = *deps.Logger
	}
	if m.bus == nil {
		m.bus = eventbus.New()
	}
	if m.clock == nil {
		m.clock = clock.NewReal(m.post)
	}
	if m.metrics == nil {
		m.metrics = metrics.NewRegistry()
	}
	m.trace = trace.New(m.clock, 0)
	m.trace.Attach(m.bus)
	m.bus.Subscribe(eventbus.EventSectionLocked, func(e eventbus.CoordinationEvent) {
		if ev, ok := e.(domain.SectionLockedEvent); ok {
			m.lastLock = ev.SectionID
		}
	})

	m.rebuild()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// post hands a fired timer to the Bubble Tea loop. It runs on the
// timer goroutine.
func (m *Model) post(f func()) {
	if p := m.program; p != nil {
		p.Send(timerMsg{fire: f})
	}
}

// Engine returns the snap engine driving the page
func (m *Model) Engine() *engine.Engine {
	return m.engine
}

// Layout returns the page surface
func (m *Model) Layout() *geometry.Layout {
	return m.layout
}

// Trace returns the decision trace
func (m *Model) Trace() *trace.Recorder {
	return m.trace
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case tea.KeyMsg:
		actions := m.inputHandler.HandleKey(msg, m)
		cmds := []tea.Cmd{}
		for _, action := range actions {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case timerMsg:
		msg.fire()

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case pagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("pager failed: %v", msg.err)
			m.logger.Error().Err(msg.err).Msg("pager failed")
		}
	}
	return m, nil
}

// SectionCount implements the input context
func (m *Model) SectionCount() int {
	return len(m.layout.Blocks())
}

// PagerOpen implements the input context
func (m *Model) PagerOpen() bool {
	return m.inPagerMode
}

// resize matches the page viewport to the terminal. Default anchors depend
// on the viewport height, so a new height rebuilds the engine.
func (m *Model) resize() {
	vh := float64(views.PageRows(m.height)) * m.cfg.PixelsPerRow
	if vh != m.layout.ViewportHeight() {
		m.layout.SetViewportHeight(vh)
		m.rebuild()
		return
	}
	m.applyMode()
}

// rebuild replaces the engine with one configured for the current viewport
func (m *Model) rebuild() {
	if m.engine != nil {
		m.engine.Disable()
	}
	cfg := *m.cfg
	cfg.ViewportHeight = m.layout.ViewportHeight()

	cfg.DefineToggles(m.feed)
	opts := cfg.EngineOptions()
	opts.Feed = m.feed
	opts.Metrics = m.metrics
	opts.Logger = &m.logger
	opts.OnDecision = m.trace.Decision
	opts.OnSectionChange = m.trace.Active
	m.engine = engine.New(m.layout, m.bus, m.clock, opts)
	m.applyMode()
}

func (m *Model) hasToggle(name string) bool {
	for _, t := range m.feed.Toggles() {
		if t.Name == name {
			return true
		}
	}
	return false
}

// wantEnabled reports whether snapping should run at the current width
func (m *Model) wantEnabled() bool {
	switch m.mode {
	case ModeOn:
		return true
	case ModeOff:
		return false
	}
	return m.cfg.MobileMaxWidth == 0 || m.width <= m.cfg.MobileMaxWidth
}

func (m *Model) applyMode() {
	if m.wantEnabled() {
		if !m.engine.Enabled() && !m.engine.Enable() {
			m.statusMessage = "no sections to snap"
		}
		return
	}
	m.engine.Disable()
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.QuitAction:
		return tea.Quit

	case inputtypes.ScrollAction:
		m.scrollTo(m.layout.ScrollTop() + float64(a.Rows)*m.cfg.PixelsPerRow)

	case inputtypes.FlingAction:
		delta := m.layout.ViewportHeight() / 2
		if !a.Down {
			delta = -delta
		}
		m.scrollTo(m.layout.ScrollTop() + delta)

	case inputtypes.JumpAction:
		if a.End {
			m.scrollTo(m.layout.MaxScroll())
		} else {
			m.scrollTo(0)
		}

	case inputtypes.TouchEndAction:
		m.trace.Add(trace.KindInput, "touch end at %.0f", m.layout.ScrollTop())
		m.engine.TouchEnd()

	case inputtypes.SnapToAction:
		blocks := m.layout.Blocks()
		if a.Index < 0 || a.Index >= len(blocks) {
			return nil
		}
		id := blocks[a.Index].ID
		ok := m.engine.SnapToID(id)
		m.trace.Add(trace.KindInput, "snap to %s accepted=%t", id, ok)
		if !ok {
			m.statusMessage = fmt.Sprintf("cannot go to %s now", id)
		} else {
			m.statusMessage = ""
		}

	case inputtypes.ProgrammaticScrollAction:
		m.programmaticScroll()

	case inputtypes.ToggleFeedAction:
		if !m.hasToggle(config.BadgeToggle) {
			m.statusMessage = "no " + config.BadgeToggle + " toggle"
			return nil
		}
		on := m.feed.Flip(config.BadgeToggle)
		m.trace.Add(trace.KindInput, "toggle %s on=%t", config.BadgeToggle, on)

	case inputtypes.ToggleInteractAction:
		active, ok := m.engine.ActiveSection()
		if !ok {
			m.statusMessage = "no active section"
			return nil
		}
		on := !m.feed.Interacting(active.ID)
		m.feed.SetInteracting(active.ID, on)
		m.trace.Add(trace.KindInput, "interact %s on=%t", active.ID, on)

	case inputtypes.CycleModeAction:
		m.mode = (m.mode + 1) % 3
		m.applyMode()
		m.statusMessage = "mode " + m.mode.String()

	case inputtypes.ShowTraceAction:
		return m.pager(m.trace.String())

	case inputtypes.ShowHelpAction:
		ids := make([]string, 0, len(m.layout.Blocks()))
		for _, b := range m.layout.Blocks() {
			ids = append(ids, m.cfg.Title(b.ID))
		}
		return m.pager(m.helpRenderer.RenderHelpContent(ids))
	}
	return nil
}

// scrollTo moves the page and reports a scroll tick
func (m *Model) scrollTo(y float64) {
	m.layout.ScrollTo(y)
	m.engine.Scroll()
}

// programmaticScroll makes the FAQ scroll its tag selector under the
// header, announcing the write first
func (m *Model) programmaticScroll() {
	top, ok := m.layout.Top(faqSectionID)
	if !ok {
		m.statusMessage = "page has no faq section"
		return
	}
	target := top - m.cfg.HeaderHeight
	if target < 0 {
		target = 0
	}
	m.bus.Publish(domain.ProgrammaticScrollEvent{
		Source: faqSectionID,
		Target: target,
		Hold:   faqHold,
	})
	m.scrollTo(target)
}

// pager returns a command that shows content using ov pager
func (m *Model) pager(content string) tea.Cmd {
	if m.program == nil {
		m.statusMessage = "pager unavailable"
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := NewPagerOps(m.program).ShowInPager(content)

		return pagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	state := m.engine.State()
	active, hasActive := m.engine.ActiveSection()

	configs := make(map[string]domain.SnapConfig)
	for _, s := range m.engine.Sections() {
		configs[s.ID] = s.Config
	}

	sections := make([]views.SectionView, 0, len(m.layout.Blocks()))
	for i, b := range m.layout.Blocks() {
		top, _ := m.layout.Top(b.ID)
		_, visible := m.layout.Bounds(b.ID)
		sv := views.SectionView{
			ID:          b.ID,
			Title:       m.cfg.Title(b.ID),
			Index:       i,
			Top:         top,
			Height:      b.Height,
			Anchor:      -1,
			Active:      hasActive && active.ID == b.ID,
			Interacting: m.feed.Interacting(b.ID),
			Hidden:      !visible,
		}
		if c, ok := configs[b.ID]; ok {
			sv.SelfManaged = c.DisableSnap
			if !c.DisableSnap {
				sv.Anchor = top - c.AnchorOffset
				if sv.Anchor < 0 {
					sv.Anchor = 0
				}
			}
		}
		sections = append(sections, sv)
	}

	var toggles []string
	for _, t := range m.feed.Toggles() {
		if m.feed.IsOn(t.Name) {
			toggles = append(toggles, t.Name)
		}
	}

	status := views.StatusView{
		Enabled:  m.engine.Enabled(),
		Mode:     m.mode.String(),
		Velocity: state.Velocity,
		Snapping: state.IsSnapping,
		Cooling:  state.IsCoolingDown,
		LastLock: m.lastLock,
		Toggles:  toggles,
	}
	if hasActive {
		status.Active = m.cfg.Title(active.ID)
	}

	return views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Sections:      sections,
		Position:      m.layout.ScrollTop(),
		MaxScroll:     m.layout.MaxScroll(),
		PixelsPerRow:  m.cfg.PixelsPerRow,
		Status:        status,
		StatusMessage: m.statusMessage,
		HelpModel:     m.help,
		Keys:          m.inputHandler.Keys(),
	}
}
