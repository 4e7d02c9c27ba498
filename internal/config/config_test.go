package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swipedeck/internal/domain"
	"swipedeck/internal/eventbus"
	"swipedeck/internal/keyboard"
	"swipedeck/internal/navigation"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	opts := cfg.NavigationOptions()
	def := navigation.DefaultOptions()
	assert.Equal(t, def.Gesture, opts.Gesture)
	assert.Equal(t, def.Wheel, opts.Wheel)
	assert.Equal(t, def.Visibility, opts.Visibility)
	assert.Equal(t, def.EndReachedThreshold, opts.EndReachedThreshold)
	assert.Equal(t, def.AriaLabel, opts.AriaLabel)
	assert.Nil(t, opts.ReducedMotion)
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Parse("inline", []byte(`
[deck]
orientation = "horizontal"
direction = "rtl"
loop = true

[wheel]
cooldown_ms = 400

[keyboard]
next = ["l", "right"]
`))
	require.NoError(t, err)

	assert.Equal(t, "horizontal", cfg.Deck.Orientation)
	assert.True(t, cfg.Deck.Loop)
	assert.Equal(t, 3, cfg.Deck.EndReachedThreshold)
	assert.Equal(t, 400, cfg.Wheel.CooldownMS)
	assert.Equal(t, 100.0, cfg.Wheel.Threshold)

	opts := cfg.NavigationOptions()
	assert.Equal(t, domain.OrientationHorizontal, opts.Orientation)
	assert.Equal(t, domain.DirectionRTL, opts.Direction)
	assert.Equal(t, 400*time.Millisecond, opts.Wheel.Cooldown)

	require.NotNil(t, opts.Keyboard.Bindings)
	r := keyboard.New(keyboard.Config{
		Orientation: opts.Orientation,
		Enabled:     true,
		Bindings:    *opts.Keyboard.Bindings,
	})
	assert.Equal(t, keyboard.IntentNext, r.Map(keyboard.Key("l")))
	assert.Equal(t, keyboard.IntentPrev, r.Map(keyboard.Key("left")))
}

func TestParseErrorHasPosition(t *testing.T) {
	_, err := Parse("broken.toml", []byte("[deck]\norientation = \n"))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "broken.toml", perr.Path)
	assert.Greater(t, perr.Line, 0)
}

func TestValidateJoinsProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Deck.Orientation = "diagonal"
	cfg.Wheel.Threshold = -1
	cfg.Visibility.IntersectionRatio = 2

	err := cfg.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "deck.orientation", verr.Field)
	assert.Contains(t, err.Error(), "wheel.threshold")
	assert.Contains(t, err.Error(), "visibility.intersection_ratio")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	bus := eventbus.New()
	defer bus.Close()

	loaded := make(chan eventbus.DomainEvent, 1)
	saved := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { loaded <- e })
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) { saved <- e })

	cs := NewConfigServiceAt(path, bus)
	assert.Equal(t, path, cs.Path())

	cfg := DefaultConfig()
	cfg.Deck.Loop = true
	cfg.UI.ItemCount = 12
	cfg.Keyboard.Prev = []string{"k"}
	require.NoError(t, cs.Save(cfg))

	got, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	for name, ch := range map[string]chan eventbus.DomainEvent{"saved": saved, "loaded": loaded} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("config %s event was not published", name)
		}
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cs := NewConfigServiceAt(filepath.Join(t.TempDir(), FileName), nil)
	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = cs.LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[deck]\ndirection = \"up\"\n"), 0644))

	_, err := NewConfigServiceAt(path, nil).Load()
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.ItemCount = -3
	err := NewConfigServiceAt(filepath.Join(t.TempDir(), FileName), nil).Save(cfg)
	assert.Error(t, err)
}

func TestVirtualOptionsCoverPreload(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Deck.Preload = 8
	cfg.Virtual.EstimatedSize = 12

	opts := cfg.VirtualOptions(20)
	assert.Equal(t, 20, opts.Count)
	assert.Equal(t, 8, opts.Overscan)
	require.NotNil(t, opts.EstimatedSize)
	assert.Equal(t, 12.0, opts.EstimatedSize(3))

	assert.Nil(t, DefaultConfig().VirtualOptions(1).EstimatedSize)
}

func TestReducedMotionOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.ReducedMotion = true
	opts := cfg.NavigationOptions()
	require.NotNil(t, opts.ReducedMotion)
	assert.True(t, *opts.ReducedMotion)
}
