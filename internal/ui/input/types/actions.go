package types

// Scroll actions
type ScrollAction struct {
	Rows int // negative scrolls up
}

func (a ScrollAction) Type() string { return "scroll" }

// FlingAction moves half a viewport in one tick
type FlingAction struct {
	Down bool
}

func (a FlingAction) Type() string { return "fling" }

type JumpAction struct {
	End bool // false jumps to the top
}

func (a JumpAction) Type() string { return "jump" }

type TouchEndAction struct{}

func (a TouchEndAction) Type() string { return "touch_end" }

// Navigation actions
type SnapToAction struct {
	Index int
}

func (a SnapToAction) Type() string { return "snap_to" }

// ProgrammaticScrollAction makes the FAQ scroll itself into view
type ProgrammaticScrollAction struct{}

func (a ProgrammaticScrollAction) Type() string { return "programmatic_scroll" }

// Feed actions
type ToggleFeedAction struct{}

func (a ToggleFeedAction) Type() string { return "toggle_feed" }

type ToggleInteractAction struct{}

func (a ToggleInteractAction) Type() string { return "toggle_interact" }

// CycleModeAction switches between auto, forced-on and forced-off snapping
type CycleModeAction struct{}

func (a CycleModeAction) Type() string { return "cycle_mode" }

// Pager actions
type ShowTraceAction struct{}

func (a ShowTraceAction) Type() string { return "show_trace" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
