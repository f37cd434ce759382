package feed

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnchorOverrideOnlyWhileActive(t *testing.T) {
	f := New()
	f.Define(Toggle{Name: "badge-expanded", SectionID: "welcome", AnchorOffset: 180})

	_, ok := f.AnchorOverride("welcome")
	require.False(t, ok)

	require.True(t, f.Set("badge-expanded", true))
	offset, ok := f.AnchorOverride("welcome")
	require.True(t, ok)
	require.Equal(t, 180.0, offset)

	_, ok = f.AnchorOverride("hero")
	require.False(t, ok)

	f.Set("badge-expanded", false)
	_, ok = f.AnchorOverride("welcome")
	require.False(t, ok)
}

func TestLargestActiveOverrideWins(t *testing.T) {
	f := New()
	f.Define(Toggle{Name: "badge", SectionID: "welcome", AnchorOffset: 120})
	f.Define(Toggle{Name: "banner", SectionID: "welcome", AnchorOffset: 200})
	f.Set("badge", true)
	f.Set("banner", true)

	offset, ok := f.AnchorOverride("welcome")
	require.True(t, ok)
	require.Equal(t, 200.0, offset)
}

func TestSetUnknownToggle(t *testing.T) {
	f := New()
	require.False(t, f.Set("nope", true))
	require.False(t, f.IsOn("nope"))
}

func TestFlip(t *testing.T) {
	f := New()
	f.Define(Toggle{Name: "badge", SectionID: "welcome", AnchorOffset: 120})

	require.True(t, f.Flip("badge"))
	require.False(t, f.Flip("badge"))
}

func TestInteracting(t *testing.T) {
	f := New()
	require.False(t, f.Interacting("faq"))

	f.SetInteracting("faq", true)
	require.True(t, f.Interacting("faq"))

	f.SetInteracting("faq", false)
	require.False(t, f.Interacting("faq"))
}

func TestNilFeedIsInert(t *testing.T) {
	var f *Feed
	_, ok := f.AnchorOverride("welcome")
	require.False(t, ok)
	require.False(t, f.Interacting("faq"))
}

func TestConcurrentToggling(t *testing.T) {
	f := New()
	f.Define(Toggle{Name: "badge", SectionID: "welcome", AnchorOffset: 120})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(on bool) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Set("badge", on)
				f.AnchorOverride("welcome")
			}
		}(i%2 == 0)
	}
	wg.Wait()
}
