// Package scenario replays scripted scroll input against the snap engine
// on a manual clock, so a run is deterministic and finishes instantly.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"storysnap/internal/config"
	"storysnap/internal/domain"
)

// Action names
const (
	ActionScroll       = "scroll"
	ActionTouchEnd     = "touch_end"
	ActionSnapTo       = "snap_to"
	ActionProgrammatic = "programmatic"
	ActionToggle       = "toggle"
	ActionInteract     = "interact"
	ActionSetHeight    = "set_height"
	ActionHide         = "hide"
	ActionDisable      = "disable"
	ActionEnable       = "enable"
)

// DefaultTail is how long a run continues after the last step
const DefaultTail = 3 * time.Second

// Scenario is a scripted input sequence
type Scenario struct {
	Name  string          `toml:"name"`
	Start float64         `toml:"start"` // initial scroll position
	Tail  config.Duration `toml:"tail"`
	Steps []Step          `toml:"steps"`
}

// Step is one scripted input. Which fields apply depends on Action.
type Step struct {
	At     config.Duration `toml:"at"` // offset from the start of the run
	Action string          `toml:"action"`

	// scroll, programmatic
	To    float64         `toml:"to"`
	Over  config.Duration `toml:"over"`  // scroll: spread the move over this long
	Ticks int             `toml:"ticks"` // scroll: number of scroll events

	// programmatic
	Source string          `toml:"source"`
	Hold   config.Duration `toml:"hold"`

	// snap_to, interact, set_height, hide
	Section string  `toml:"section"`
	Height  float64 `toml:"height"`

	// toggle
	Name string `toml:"name"`

	// toggle, interact, hide
	On bool `toml:"on"`
}

// LoadFile reads and validates a scenario file
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("scenario file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a scenario
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := toml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Tail.Duration <= 0 {
		sc.Tail.Duration = DefaultTail
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks step order and required fields
func (sc *Scenario) Validate() error {
	var last time.Duration
	for i, st := range sc.Steps {
		if st.At.Duration < last {
			return fmt.Errorf("step %d: at %s is before the previous step", i, st.At)
		}
		last = st.At.Duration

		switch st.Action {
		case ActionScroll:
			if st.Ticks < 0 || st.Over.Duration < 0 {
				return fmt.Errorf("step %d: ticks and over must not be negative", i)
			}
		case ActionProgrammatic:
			if st.Source == "" {
				return fmt.Errorf("step %d: programmatic scroll needs a source", i)
			}
			if st.Source == domain.EngineSource {
				return fmt.Errorf("step %d: source %q is reserved for the engine's own snaps", i, st.Source)
			}
		case ActionToggle:
			if st.Name == "" {
				return fmt.Errorf("step %d: toggle needs a name", i)
			}
		case ActionSnapTo, ActionInteract, ActionHide:
			if st.Section == "" {
				return fmt.Errorf("step %d: %s needs a section", i, st.Action)
			}
		case ActionSetHeight:
			if st.Section == "" || st.Height <= 0 {
				return fmt.Errorf("step %d: set_height needs a section and a positive height", i)
			}
		case ActionTouchEnd, ActionDisable, ActionEnable:
		default:
			return fmt.Errorf("step %d: unknown action %q", i, st.Action)
		}
	}
	return nil
}
