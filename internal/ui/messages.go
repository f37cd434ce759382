package ui

// timerMsg carries a fired engine timer onto the Bubble Tea loop
type timerMsg struct {
	fire func()
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
