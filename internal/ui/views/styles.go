package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Help           lipgloss.Style
	Highlight      lipgloss.Style
	Anchor         lipgloss.Style
	SelfManaged    lipgloss.Style
	StatusError    lipgloss.Style
	StatusWarning  lipgloss.Style
	StatusSuccess  lipgloss.Style
	StatusSnapping lipgloss.Style
	StatusCooling  lipgloss.Style
	Empty          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:            lipgloss.NewStyle().Faint(true),
		Status:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:           lipgloss.NewStyle().Faint(true),
		Highlight:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Anchor:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		SelfManaged:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		StatusError:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusSnapping: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		StatusCooling:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // blue
		Empty:          lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	}
}

// sectionPalette is cycled through by section order
var sectionPalette = []string{"24", "29", "94", "53", "58", "23", "88", "60", "22", "95"}

// SectionColor returns the background color for the section at index
func SectionColor(index int) string {
	if index < 0 {
		return "236"
	}
	return sectionPalette[index%len(sectionPalette)]
}
