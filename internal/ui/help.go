package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent(sections []string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(key, desc string) string {
		return fmt.Sprintf("  %-12s %s\n", keyStyle.Render(key), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("storysnap Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Scrolling"))
	help.WriteString("\n")
	help.WriteString(line("↑/↓, j/k", "Scroll one row (a slow drag)"))
	help.WriteString(line("PgUp/PgDn", "Half a screen in one tick (a fling)"))
	help.WriteString(line("g/G", "Jump to top/bottom"))
	help.WriteString(line("r, Enter", "Release the finger; snapping waits a little longer"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	for i, id := range sections {
		if i >= 10 {
			break
		}
		help.WriteString(line(fmt.Sprintf("%d", (i+1)%10), "Go to "+id))
	}
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Coordination"))
	help.WriteString("\n")
	help.WriteString(line("p", "FAQ scrolls itself into view and holds the page"))
	help.WriteString(line("b", "Toggle the expanded badge (moves the welcome anchor)"))
	help.WriteString(line("i", "Start/stop interacting with the active section"))
	help.WriteString(line("m", "Cycle snapping: auto (narrow terminals), on, off"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line("t", "Show the decision trace"))
	help.WriteString(line("?", "Show this help"))
	help.WriteString(fmt.Sprintf("  %-12s %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	return help.String()
}

// PagerOps runs the ov pager over the Bubble Tea screen
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// ShowInPager shows content using ov pager
func (h *PagerOps) ShowInPager(content string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	configureVimKeyBindings(&config)

	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}

// configureVimKeyBindings adds j/k style movement to ov's defaults
func configureVimKeyBindings(config *oviewer.Config) {
	if config.Keybind == nil {
		config.Keybind = make(map[string][]string)
	}
	config.Keybind["down"] = append(config.Keybind["down"], "j")
	config.Keybind["up"] = append(config.Keybind["up"], "k")
	config.Keybind["top"] = append(config.Keybind["top"], "g")
	config.Keybind["bottom"] = append(config.Keybind["bottom"], "G")
	config.Keybind["exit"] = append(config.Keybind["exit"], "q")
}
