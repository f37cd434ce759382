package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storysnap/internal/domain"
)

func threeBlocks() *Layout {
	return NewLayout(800,
		Block{ID: "hero", Height: 1000},
		Block{ID: "welcome", Height: 1000},
		Block{ID: "footer", Height: 1000},
	)
}

func TestLayoutBoundsAreViewportRelative(t *testing.T) {
	l := threeBlocks()
	l.ScrollTo(650)

	r, ok := l.Bounds("welcome")
	require.True(t, ok)
	assert.Equal(t, 350.0, r.Top)
	assert.Equal(t, 1350.0, r.Bottom())

	_, ok = l.Bounds("missing")
	assert.False(t, ok)
}

func TestLayoutScrollClamps(t *testing.T) {
	l := threeBlocks()

	l.ScrollTo(-40)
	assert.Equal(t, 0.0, l.ScrollTop())

	l.ScrollTo(99999)
	assert.Equal(t, 2200.0, l.ScrollTop())
	assert.Equal(t, 2200.0, l.MaxScroll())
}

func TestLayoutSetHeightShiftsFollowingBlocks(t *testing.T) {
	l := threeBlocks()
	l.SetHeight("hero", 500)

	top, ok := l.Top("footer")
	require.True(t, ok)
	assert.Equal(t, 1500.0, top)
	assert.Equal(t, 2500.0, l.ContentHeight())
}

func TestTakeSnapshotSkipsUnavailableSections(t *testing.T) {
	l := threeBlocks()
	l.ScrollTo(650)
	l.SetUnavailable("welcome", true)

	sections := []domain.Section{{ID: "hero"}, {ID: "welcome", OrderIndex: 1}, {ID: "footer", OrderIndex: 2}}
	snap := Take(l, sections)

	assert.Equal(t, 650.0, snap.Position)
	assert.Equal(t, 800.0, snap.ViewportHeight)
	assert.Equal(t, 1050.0, snap.Midpoint())
	assert.Equal(t, 2200.0, snap.MaxScroll)
	assert.Equal(t, 2200.0, snap.Clamp(3000))
	assert.Equal(t, 0.0, snap.Clamp(-40))
	assert.Equal(t, 900.0, snap.Clamp(900))
	assert.Equal(t, SectionGeom{Top: 0, Height: 1000, OK: true}, snap.Sections[0])
	assert.False(t, snap.Sections[1].OK)
	assert.Equal(t, 2000.0, snap.Sections[2].Top)

	l.SetUnavailable("welcome", false)
	snap = Take(l, sections)
	assert.True(t, snap.Sections[1].OK)
	assert.Equal(t, 1000.0, snap.Sections[1].Top)
}

func TestOverlap(t *testing.T) {
	assert.Equal(t, 100.0, Overlap(0, 100, -50, 500))
	assert.Equal(t, 50.0, Overlap(0, 100, 50, 500))
	assert.Equal(t, 0.0, Overlap(0, 100, 100, 200))
	assert.Equal(t, 0.0, Overlap(0, 100, 300, 400))
}
