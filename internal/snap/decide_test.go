package snap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storysnap/internal/domain"
	"storysnap/internal/geometry"
)

func sections(thresh float64, ids ...string) []domain.Section {
	out := make([]domain.Section, len(ids))
	for i, id := range ids {
		out[i] = domain.Section{ID: id, OrderIndex: i, Config: domain.SnapConfig{Threshold: thresh}}
	}
	return out
}

func stacked(pos float64, heights ...float64) geometry.Snapshot {
	snap := geometry.Snapshot{Position: pos, ViewportHeight: 800}
	top := 0.0
	for _, h := range heights {
		snap.Sections = append(snap.Sections, geometry.SectionGeom{Top: top, Height: h, OK: true})
		top += h
	}
	snap.MaxScroll = math.Max(0, top-snap.ViewportHeight)
	return snap
}

func input(pos, velocity float64, secs []domain.Section, heights ...float64) Input {
	return Input{
		State:    domain.ScrollState{Position: pos, Velocity: velocity},
		Snapshot: stacked(pos, heights...),
		Sections: secs,
		Params:   DefaultParams(),
	}
}

func TestWorkedExample(t *testing.T) {
	in := input(650, 0, sections(0.5, "one", "two", "three"), 1000, 1000, 1000)

	d := Decide(in)
	require.Equal(t, Snap, d.Outcome)
	assert.Equal(t, "two", d.Target.ID)
	assert.Equal(t, 1, d.Target.Index)
	assert.Equal(t, 1000.0, d.Target.Position)
	assert.Equal(t, 350.0, d.Target.Distance)
}

func TestAlignedWithinEpsilon(t *testing.T) {
	for _, pos := range []float64{1000, 997, 1005} {
		d := Decide(input(pos, 0, sections(0.5, "one", "two", "three"), 1000, 1000, 1000))
		assert.Equal(t, Aligned, d.Outcome, "position %v", pos)
		assert.Equal(t, "two", d.Target.ID)
	}
}

func TestVelocityGate(t *testing.T) {
	secs := sections(1, "one", "two", "three")
	for _, v := range []float64{2, -2, 2.5, -40} {
		d := Decide(input(990, v, secs, 1000, 1000, 1000))
		assert.Equal(t, Rejected, d.Outcome, "velocity %v", v)
		assert.Equal(t, GateVelocity, d.Gate)
	}
	assert.Equal(t, Snap, Decide(input(990, 1.99, secs, 1000, 1000, 1000)).Outcome)
}

func TestThresholdGate(t *testing.T) {
	secs := sections(0.5, "one", "two", "three")

	// 0.5 * 800 = 400
	d := Decide(input(599, 0, secs, 1000, 1000, 1000))
	assert.Equal(t, Rejected, d.Outcome)
	assert.Equal(t, GateThreshold, d.Gate)

	d = Decide(input(600, 0, secs, 1000, 1000, 1000))
	assert.Equal(t, Rejected, d.Outcome, "distance equal to the threshold does not snap")

	d = Decide(input(601, 0, secs, 1000, 1000, 1000))
	assert.Equal(t, Snap, d.Outcome)
}

func TestBlockedWhileSnappingOrCooling(t *testing.T) {
	in := input(650, 0, sections(0.5, "one", "two"), 1000, 1000)

	in.State.IsSnapping = true
	assert.Equal(t, Blocked, Decide(in).Outcome)

	in.State.IsSnapping = false
	in.State.IsCoolingDown = true
	assert.Equal(t, Blocked, Decide(in).Outcome)
}

func TestTieBreakPrefersLowerOrderIndex(t *testing.T) {
	secs := sections(1, "upper", "lower")
	for i := 0; i < 50; i++ {
		d := Decide(input(500, 0, secs, 1000, 1000))
		require.Equal(t, Snap, d.Outcome)
		require.Equal(t, "upper", d.Target.ID)
	}
}

func TestExclusionZoneDefers(t *testing.T) {
	secs := sections(1, "reviews", "faq", "map")
	secs[1].Config.DisableSnap = true

	// Viewport [1900,2700) is fully inside faq [1000,3000) while map's
	// anchor at 3000 is numerically closer than reviews'.
	d := Decide(input(1900, 0, secs, 1000, 2000, 1000))
	assert.Equal(t, Deferred, d.Outcome)
	assert.Equal(t, "faq", d.Zone)
}

func TestExclusionZoneBoundary(t *testing.T) {
	secs := sections(1, "reviews", "faq", "map")
	secs[1].Config.DisableSnap = true

	// faq [1000,2000): at 1320 the viewport shows 680px of it
	assert.Equal(t, Deferred, Decide(input(1320, 0, secs, 1000, 1000, 1000)).Outcome)

	// at 1680 the viewport shows 320px = exactly 40%, not more
	d := Decide(input(1680, 0, secs, 1000, 1000, 1000))
	assert.Equal(t, Snap, d.Outcome)
	assert.Equal(t, "map", d.Target.ID)
}

func TestDisabledSectionIsNeverACandidate(t *testing.T) {
	secs := sections(1, "a", "b")
	secs[1].Config.DisableSnap = true

	// b is 200px tall and only 10% visible
	d := Decide(input(0, 0, secs, 780, 200))
	assert.Equal(t, Aligned, d.Outcome)
	assert.Equal(t, "a", d.Target.ID)
}

func TestInteractingSectionDefers(t *testing.T) {
	in := input(950, 0, sections(0.5, "reviews", "faq"), 1000, 1000)
	in.Interacting = func(id string) bool { return id == "faq" }

	d := Decide(in)
	assert.Equal(t, Deferred, d.Outcome)
	assert.Equal(t, "faq", d.Zone)
}

func TestAnchorOffsetShiftsIdealPosition(t *testing.T) {
	secs := sections(0.5, "hero", "welcome")
	secs[1].Config.AnchorOffset = 96

	d := Decide(input(850, 0, secs, 1000, 1000))
	require.Equal(t, Snap, d.Outcome)
	assert.Equal(t, 904.0, d.Target.Position)
	assert.Equal(t, 54.0, d.Target.Distance)
}

func TestNegativeAnchorIsClamped(t *testing.T) {
	secs := sections(0.5, "hero")
	secs[0].Config.AnchorOffset = 44

	d := Decide(input(0, 0, secs, 1000))
	assert.Equal(t, Aligned, d.Outcome)
	assert.Equal(t, 0.0, d.Target.Position)
}

func TestAnchorPastPageEndClampsToMaxScroll(t *testing.T) {
	// 2500px of content in an 800px viewport reaches 1700 at most
	secs := sections(0.5, "one", "two", "footer")

	d := Decide(input(1700, 0, secs, 1000, 1000, 500))
	require.Equal(t, Aligned, d.Outcome)
	assert.Equal(t, "footer", d.Target.ID)
	assert.Equal(t, 1700.0, d.Target.Position)

	d = Decide(input(1500, 0, secs, 1000, 1000, 500))
	require.Equal(t, Snap, d.Outcome)
	assert.Equal(t, 1700.0, d.Target.Position)
	assert.Equal(t, 200.0, d.Target.Distance)
}

func TestUnavailableBoundsAreSkipped(t *testing.T) {
	in := input(990, 0, sections(0.5, "one", "two", "three"), 1000, 1000, 1000)
	in.Snapshot.Sections[1].OK = false

	d := Decide(in)
	assert.Equal(t, Rejected, d.Outcome)
	assert.Equal(t, "one", d.Target.ID)

	in.Snapshot.Sections[0].OK = false
	in.Snapshot.Sections[2].OK = false
	assert.Equal(t, NoCandidate, Decide(in).Outcome)
}

func TestEmptyRegistry(t *testing.T) {
	d := Decide(Input{Snapshot: geometry.Snapshot{ViewportHeight: 800}, Params: DefaultParams()})
	assert.Equal(t, NoCandidate, d.Outcome)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "snap", Snap.String())
	assert.Equal(t, "no_candidate", NoCandidate.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
