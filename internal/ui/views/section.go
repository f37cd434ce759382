package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionView is one section as the page renderer sees it
type SectionView struct {
	ID          string
	Title       string
	Index       int
	Top         float64 // absolute, px
	Height      float64
	Anchor      float64 // absolute anchored position; negative when not snappable
	SelfManaged bool
	Active      bool
	Interacting bool
	Hidden      bool
}

// Bottom returns the absolute bottom edge
func (s SectionView) Bottom() float64 {
	return s.Top + s.Height
}

// SectionRenderer draws rows of a section
type SectionRenderer struct {
	styles *Styles
}

// NewSectionRenderer creates a new section renderer
func NewSectionRenderer(styles *Styles) *SectionRenderer {
	return &SectionRenderer{styles: styles}
}

// RenderRow renders the row covering [y, y+rowHeight) of section s
func (r *SectionRenderer) RenderRow(s SectionView, y, rowHeight float64, width int) string {
	bg := lipgloss.Color(SectionColor(s.Index))
	base := lipgloss.NewStyle().Background(bg).Width(width)

	gutter := "│ "
	if s.Active {
		gutter = r.styles.Highlight.Background(bg).Render("┃ ")
	}

	text := ""
	if s.Top >= y && s.Top < y+rowHeight {
		text = r.header(s, bg)
	}
	return base.Render(gutter + text)
}

// RenderAnchorRow renders the row where s anchors, drawn over the
// section that row belongs to
func (r *SectionRenderer) RenderAnchorRow(s SectionView, width int) string {
	label := "── " + s.ID + " anchor "
	if pad := width - lipgloss.Width(label); pad > 0 {
		label += strings.Repeat("─", pad)
	}
	return r.styles.Anchor.Width(width).MaxWidth(width).Render(label)
}

func (r *SectionRenderer) header(s SectionView, bg lipgloss.Color) string {
	title := s.Title
	if title == "" {
		title = s.ID
	}
	style := lipgloss.NewStyle().Bold(true).Background(bg)
	if s.Active {
		style = style.Foreground(lipgloss.Color("226"))
	}
	parts := []string{style.Render(title)}
	if s.SelfManaged {
		parts = append(parts, r.styles.SelfManaged.Background(bg).Render("(scrolls itself)"))
	}
	if s.Interacting {
		parts = append(parts, r.styles.StatusWarning.Background(bg).Render("[interacting]"))
	}
	if s.Hidden {
		parts = append(parts, r.styles.StatusError.Background(bg).Render("[no bounds]"))
	}
	return strings.Join(parts, lipgloss.NewStyle().Background(bg).Render(" "))
}
