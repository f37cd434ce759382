// Package geometry describes the scrollable surface the snap engine reads
// and writes, and captures per-decision snapshots of it.
package geometry

// Rect is a section's live rectangle relative to the viewport top
type Rect struct {
	Top    float64
	Height float64
}

// Bottom returns the bottom edge
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Contains reports whether y lies in [Top, Bottom)
func (r Rect) Contains(y float64) bool {
	return y >= r.Top && y < r.Bottom()
}

// Overlap returns the length of [a0,a1) ∩ [b0,b1)
func Overlap(a0, a1, b0, b1 float64) float64 {
	lo := a0
	if b0 > lo {
		lo = b0
	}
	hi := a1
	if b1 < hi {
		hi = b1
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}
