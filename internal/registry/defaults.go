package registry

import "storysnap/internal/domain"

// HeaderHeight is the mobile header height the default anchors clear
const HeaderHeight = 44

// DefaultSections returns the landing page's per-section configs.
// Some anchors depend on the viewport height.
func DefaultSections(viewportHeight, headerHeight float64) map[string]domain.SnapOverride {
	below := headerHeight + 10
	return map[string]domain.SnapOverride{
		"hero":      override(0.7, 0),
		"welcome":   override(0.7, viewportHeight*0.12),
		"founder":   override(0.7, viewportHeight*0.10),
		"team":      override(0.7, below),
		"instagram": override(0.7, below),
		"reviews":   override(0.7, below),
		// Tag selector docks right below the header
		"faq":    override(0.7, headerHeight),
		"map":    override(0.7, 0),
		"footer": override(0.6, 0),
	}
}

func override(threshold, anchor float64) domain.SnapOverride {
	return domain.SnapOverride{Threshold: &threshold, AnchorOffset: &anchor}
}
