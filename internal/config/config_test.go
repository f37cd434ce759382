package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 150*time.Millisecond, cfg.Engine.SettleDelay.Duration)
	assert.Equal(t, "services", cfg.Layout[3].ID)
	assert.True(t, cfg.Layout[3].DisableSnap)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	svc := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	threshold := 0.55
	cfg.Sections["team"] = SectionSettings{Threshold: &threshold}
	cfg.Engine.Cooldown = Duration{900 * time.Millisecond}
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, 900*time.Millisecond, loaded.Engine.Cooldown.Duration)
	require.Contains(t, loaded.Sections, "team")
	assert.Equal(t, 0.55, *loaded.Sections["team"].Threshold)
	assert.Nil(t, loaded.Sections["team"].AnchorOffset)
	assert.Equal(t, cfg.Layout, loaded.Layout)
	assert.Equal(t, cfg.Toggles, loaded.Toggles)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigServiceAt(filepath.Join(t.TempDir(), "absent.toml"))
	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	svc := NewConfigServiceAt("")
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestParsePartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
version = 1

[engine]
settle_delay = "250ms"

[sections.faq]
disable_snap = true
`))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.SettleDelay.Duration)
	assert.Equal(t, 700*time.Millisecond, cfg.Engine.Cooldown.Duration)
	assert.Equal(t, DefaultConfig().Layout, cfg.Layout)
	assert.Empty(t, cfg.Toggles)
	require.NotNil(t, cfg.Sections["faq"].DisableSnap)
	assert.True(t, *cfg.Sections["faq"].DisableSnap)
}

func TestParseCustomLayout(t *testing.T) {
	cfg, err := Parse([]byte(`
version = 1
viewport_height = 600

[[layout]]
id = "a"
height = 600

[[layout]]
id = "b"
height = 900
disable_snap = true

[[toggles]]
name = "banner"
section = "b"
anchor_offset = 80
on = true
`))
	require.NoError(t, err)
	require.Len(t, cfg.Layout, 2)

	layout := cfg.NewLayout()
	assert.Equal(t, 600.0, layout.ViewportHeight())
	assert.Equal(t, 1500.0, layout.ContentHeight())
	els := layout.Elements()
	require.Len(t, els, 2)
	assert.Nil(t, els[0].Declared)
	require.NotNil(t, els[1].Declared)
	assert.True(t, *els[1].Declared.DisableSnap)

	f := cfg.Feed()
	assert.True(t, f.IsOn("banner"))
	offset, ok := f.AnchorOverride("b")
	require.True(t, ok)
	assert.Equal(t, 80.0, offset)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"version", "version = 2"},
		{"viewport", "version = 1\nviewport_height = 0"},
		{"duration", "version = 1\n[engine]\ncooldown = \"soon\""},
		{"exclusion", "version = 1\n[engine]\nexclusion_ratio = 1.5"},
		{"duplicate", "version = 1\n[[layout]]\nid = \"a\"\nheight = 1\n[[layout]]\nid = \"a\"\nheight = 1"},
		{"height", "version = 1\n[[layout]]\nid = \"a\"\nheight = -4"},
		{"toggle", "version = 1\n[[toggles]]\nname = \"x\""},
		{"syntax", "version = "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestEngineOptionsMergesSectionsOverDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.VelocityCeiling = 3
	cfg.Engine.SnapDuration = Duration{250 * time.Millisecond}
	anchor := 12.0
	cfg.Sections["team"] = SectionSettings{AnchorOffset: &anchor}

	opts := cfg.EngineOptions()
	assert.Equal(t, 3.0, opts.Snap.VelocityCeiling)
	assert.Equal(t, 250*time.Millisecond, opts.SnapDuration)
	assert.Equal(t, 150*time.Millisecond, opts.SettleDelay)

	team := opts.Registry.Sections["team"]
	require.NotNil(t, team.AnchorOffset)
	assert.Equal(t, 12.0, *team.AnchorOffset)
	// threshold still comes from the built-in default for team
	require.NotNil(t, team.Threshold)
	assert.Equal(t, 0.7, *team.Threshold)

	welcome := opts.Registry.Sections["welcome"]
	require.NotNil(t, welcome.AnchorOffset)
	assert.InDelta(t, 96.0, *welcome.AnchorOffset, 1e-9)
}

func TestToggleOffsetScalesWithViewport(t *testing.T) {
	cfg := DefaultConfig()
	offset, ok := cfg.Feed().AnchorOverride("welcome")
	assert.False(t, ok, "badge starts off")
	assert.Equal(t, 0.0, offset)

	f := cfg.Feed()
	f.Set(BadgeToggle, true)
	offset, _ = f.AnchorOverride("welcome")
	assert.InDelta(t, 216, offset, 1e-9)

	cfg.ViewportHeight = 1000
	cfg.DefineToggles(f)
	assert.True(t, f.IsOn(BadgeToggle))
	offset, _ = f.AnchorOverride("welcome")
	assert.InDelta(t, 240, offset, 1e-9)

	cfg.Toggles[0].AnchorRatio = -1
	assert.ErrorContains(t, cfg.Validate(), "anchor_ratio")
}

func TestTitleFallsBackToID(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "FAQ", cfg.Title("faq"))
	assert.Equal(t, "unknown", cfg.Title("unknown"))
}

func TestNewConfigServiceUsesUserConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	svc := NewConfigService()
	cfg, err := svc.Load()
	require.NoError(t, err)
	require.NoError(t, svc.Save(cfg))

	dir, err := os.UserConfigDir()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "storysnap", "config.toml"))
	assert.NoError(t, err)
}
