package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// ChromeRows is the number of rows used by the title, status and help lines
const ChromeRows = 3

// StatusView is the engine state shown in the status line
type StatusView struct {
	Enabled  bool
	Mode     string
	Velocity float64
	Active   string
	Snapping bool
	Cooling  bool
	LastLock string
	Toggles  []string // names of toggles that are on
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Sections      []SectionView
	Position      float64
	MaxScroll     float64
	PixelsPerRow  float64
	Status        StatusView
	StatusMessage string
	HelpModel     help.Model
	Keys          help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	sectionRender *SectionRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		sectionRender: NewSectionRenderer(styles),
	}
}

// PageRows returns how many rows of the page fit in a terminal of height
func PageRows(height int) int {
	rows := height - ChromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	var b strings.Builder

	b.WriteString(r.renderTitle(state))
	b.WriteString("\n")
	b.WriteString(strings.Join(r.RenderPage(state), "\n"))
	b.WriteString("\n")
	b.WriteString(r.renderStatus(state))
	b.WriteString("\n")
	if state.Keys != nil {
		b.WriteString(r.styles.Help.Render(state.HelpModel.View(state.Keys)))
	}
	return b.String()
}

// RenderPage renders the visible rows of the page, one string per row
func (r *Renderer) RenderPage(state ViewState) []string {
	rows := PageRows(state.Height)
	ppr := state.PixelsPerRow
	if ppr <= 0 {
		ppr = 1
	}

	lines := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		y := state.Position + float64(i)*ppr
		lines = append(lines, r.renderRow(state, y, ppr))
	}
	return lines
}

func (r *Renderer) renderRow(state ViewState, y, ppr float64) string {
	for _, s := range state.Sections {
		if s.Anchor >= 0 && s.Anchor < s.Top && s.Anchor >= y && s.Anchor < y+ppr {
			return r.sectionRender.RenderAnchorRow(s, state.Width)
		}
	}
	for _, s := range state.Sections {
		if y+ppr > s.Top && y < s.Bottom() {
			return r.sectionRender.RenderRow(s, y, ppr, state.Width)
		}
	}
	return r.styles.Empty.Width(state.Width).Render("·")
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("storysnap")

	pct := 0.0
	if state.MaxScroll > 0 {
		pct = state.Position / state.MaxScroll * 100
	}
	right := r.styles.Dim.Render(fmt.Sprintf("%.0fpx  %3.0f%%", state.Position, pct))

	padding := state.Width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderStatus(state ViewState) string {
	st := state.Status
	parts := []string{}

	if st.Enabled {
		parts = append(parts, r.styles.StatusSuccess.Render("snap on"))
	} else {
		parts = append(parts, r.styles.StatusError.Render("snap off"))
	}
	if st.Mode != "" {
		parts = append(parts, r.styles.Dim.Render("mode:"+st.Mode))
	}
	parts = append(parts, r.styles.Status.Render(fmt.Sprintf("v %.2fpx/ms", st.Velocity)))
	if st.Active != "" {
		parts = append(parts, r.styles.Highlight.Render(st.Active))
	}
	if st.Snapping {
		parts = append(parts, r.styles.StatusSnapping.Render("snapping"))
	} else if st.Cooling {
		parts = append(parts, r.styles.StatusCooling.Render("cooldown"))
	}
	if len(st.Toggles) > 0 {
		parts = append(parts, r.styles.StatusWarning.Render("+"+strings.Join(st.Toggles, ",")))
	}
	if st.LastLock != "" {
		parts = append(parts, r.styles.Status.Render("locked:"+st.LastLock))
	}
	if state.StatusMessage != "" {
		parts = append(parts, r.styles.Dim.Render(state.StatusMessage))
	}
	return strings.Join(parts, "  ")
}
