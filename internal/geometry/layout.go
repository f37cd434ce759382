package geometry

import "storysnap/internal/domain"

// Block is one stacked section in a Layout
type Block struct {
	ID       string
	Height   float64
	Declared *domain.SnapOverride
}

// Layout is an in-memory Surface of vertically stacked blocks.
// The terminal viewer and the scenario replayer render pages with it.
type Layout struct {
	blocks      []Block
	unavailable map[string]bool
	viewport    float64
	scrollTop   float64
}

// NewLayout stacks blocks top to bottom in a viewport of the given height
func NewLayout(viewportHeight float64, blocks ...Block) *Layout {
	return &Layout{
		blocks:      append([]Block(nil), blocks...),
		unavailable: make(map[string]bool),
		viewport:    viewportHeight,
	}
}

// Elements returns the blocks as section elements
func (l *Layout) Elements() []Element {
	out := make([]Element, len(l.blocks))
	for i, b := range l.blocks {
		out[i] = Element{ID: b.ID, Declared: b.Declared}
	}
	return out
}

// Blocks returns a copy of the stacked blocks
func (l *Layout) Blocks() []Block {
	return append([]Block(nil), l.blocks...)
}

// Bounds returns the viewport-relative rectangle of the block with id
func (l *Layout) Bounds(id string) (Rect, bool) {
	if l.unavailable[id] {
		return Rect{}, false
	}
	top := 0.0
	for _, b := range l.blocks {
		if b.ID == id {
			return Rect{Top: top - l.scrollTop, Height: b.Height}, true
		}
		top += b.Height
	}
	return Rect{}, false
}

// Top returns the absolute top of the block with id
func (l *Layout) Top(id string) (float64, bool) {
	top := 0.0
	for _, b := range l.blocks {
		if b.ID == id {
			return top, true
		}
		top += b.Height
	}
	return 0, false
}

// ContentHeight returns the total height of all blocks
func (l *Layout) ContentHeight() float64 {
	total := 0.0
	for _, b := range l.blocks {
		total += b.Height
	}
	return total
}

// MaxScroll returns the largest reachable scroll position
func (l *Layout) MaxScroll() float64 {
	max := l.ContentHeight() - l.viewport
	if max < 0 {
		return 0
	}
	return max
}

// ViewportHeight returns the viewport height
func (l *Layout) ViewportHeight() float64 {
	return l.viewport
}

// SetViewportHeight resizes the viewport and re-clamps the scroll position
func (l *Layout) SetViewportHeight(h float64) {
	l.viewport = h
	l.ScrollTo(l.scrollTop)
}

// ScrollTop returns the current scroll position
func (l *Layout) ScrollTop() float64 {
	return l.scrollTop
}

// ScrollTo sets the scroll position, clamped to [0, MaxScroll]
func (l *Layout) ScrollTo(y float64) {
	if y > l.MaxScroll() {
		y = l.MaxScroll()
	}
	if y < 0 {
		y = 0
	}
	l.scrollTop = y
}

// SetHeight changes a block's height, shifting everything below it
func (l *Layout) SetHeight(id string, h float64) {
	for i := range l.blocks {
		if l.blocks[i].ID == id {
			l.blocks[i].Height = h
		}
	}
	l.ScrollTo(l.scrollTop)
}

// SetUnavailable marks a block's bounds as unreadable
func (l *Layout) SetUnavailable(id string, unavailable bool) {
	if unavailable {
		l.unavailable[id] = true
		return
	}
	delete(l.unavailable, id)
}
