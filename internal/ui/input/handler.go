package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storysnap/internal/ui/input/types"
)

// Handler maps key presses to actions
type Handler struct {
	keys KeyMap
}

// New creates a handler with the default key map
func New() *Handler {
	return &Handler{keys: DefaultKeyMap()}
}

// Keys returns the key map, for help rendering
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// HandleKey processes a key message and returns the actions it triggers
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	if ctx.PagerOpen() {
		return nil
	}

	switch {
	case key.Matches(msg, h.keys.Quit):
		return []types.Action{types.QuitAction{}}
	case key.Matches(msg, h.keys.Up):
		return []types.Action{types.ScrollAction{Rows: -1}}
	case key.Matches(msg, h.keys.Down):
		return []types.Action{types.ScrollAction{Rows: 1}}
	case key.Matches(msg, h.keys.PageUp):
		return []types.Action{types.FlingAction{Down: false}}
	case key.Matches(msg, h.keys.PageDown):
		return []types.Action{types.FlingAction{Down: true}}
	case key.Matches(msg, h.keys.Top):
		return []types.Action{types.JumpAction{End: false}}
	case key.Matches(msg, h.keys.Bottom):
		return []types.Action{types.JumpAction{End: true}}
	case key.Matches(msg, h.keys.Release):
		return []types.Action{types.TouchEndAction{}}
	case key.Matches(msg, h.keys.SnapTo):
		if idx, ok := digitIndex(msg.String()); ok && idx < ctx.SectionCount() {
			return []types.Action{types.SnapToAction{Index: idx}}
		}
		return nil
	case key.Matches(msg, h.keys.Programmatic):
		return []types.Action{types.ProgrammaticScrollAction{}}
	case key.Matches(msg, h.keys.Feed):
		return []types.Action{types.ToggleFeedAction{}}
	case key.Matches(msg, h.keys.Interact):
		return []types.Action{types.ToggleInteractAction{}}
	case key.Matches(msg, h.keys.Mode):
		return []types.Action{types.CycleModeAction{}}
	case key.Matches(msg, h.keys.Trace):
		return []types.Action{types.ShowTraceAction{}}
	case key.Matches(msg, h.keys.Help):
		return []types.Action{types.ShowHelpAction{}}
	}
	return nil
}

// digitIndex maps "1".."9" to 0..8 and "0" to 9
func digitIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	if s[0] == '0' {
		return 9, true
	}
	return int(s[0] - '1'), true
}
