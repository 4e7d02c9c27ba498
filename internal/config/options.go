package config

import (
	"time"

	"swipedeck/internal/domain"
	"swipedeck/internal/keyboard"
	"swipedeck/internal/navigation"
	"swipedeck/internal/virtual"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Orientation returns the deck orientation
func (c *Config) Orientation() domain.Orientation {
	return domain.Orientation(c.Deck.Orientation)
}

// KeyBindings builds the key map for the configured orientation
func (c *Config) KeyBindings() keyboard.Bindings {
	k := c.Keyboard
	return keyboard.NewBindings(keyboard.KeyNames{
		Prev:    k.Prev,
		Next:    k.Next,
		First:   k.First,
		Last:    k.Last,
		AltPrev: k.AltPrev,
		AltNext: k.AltNext,
	}, c.Orientation())
}

// NavigationOptions converts the settings into navigation options
func (c *Config) NavigationOptions() navigation.Options {
	opts := navigation.DefaultOptions()
	opts.Orientation = c.Orientation()
	opts.Direction = domain.Direction(c.Deck.Direction)
	opts.Loop = c.Deck.Loop
	opts.DefaultIndex = c.Deck.DefaultIndex
	opts.Preload = c.Deck.Preload
	opts.PreloadPrevious = c.Deck.PreloadPrevious
	opts.EndReachedThreshold = c.Deck.EndReachedThreshold
	opts.AriaLabel = c.Deck.AriaLabel
	opts.Element = c.Deck.Element

	opts.Gesture = navigation.GestureOptions{
		Threshold:            c.Gesture.Threshold,
		FlickVelocity:        c.Gesture.FlickVelocity,
		LockAxis:             c.Gesture.LockAxis,
		IgnoreWhileAnimating: c.Gesture.IgnoreWhileAnimating,
	}
	opts.Wheel = navigation.WheelOptions{
		DiscretePaging: c.Wheel.DiscretePaging,
		Threshold:      c.Wheel.Threshold,
		Debounce:       ms(c.Wheel.DebounceMS),
		Cooldown:       ms(c.Wheel.CooldownMS),
	}
	bindings := c.KeyBindings()
	opts.Keyboard = navigation.KeyboardOptions{
		Enabled:  c.Keyboard.Enabled,
		Global:   c.Keyboard.Global,
		Bindings: &bindings,
	}
	opts.Visibility = navigation.VisibilityOptions{
		Strategy:          navigation.VisibilityStrategy(c.Visibility.Strategy),
		IntersectionRatio: c.Visibility.IntersectionRatio,
		Debounce:          ms(c.Visibility.DebounceMS),
	}
	if c.UI.ReducedMotion {
		reduced := true
		opts.ReducedMotion = &reduced
	}
	return opts
}

// VirtualOptions converts the settings into virtualizer options for count
// items. Overscan is raised to cover the preload window.
func (c *Config) VirtualOptions(count int) virtual.Options {
	opts := virtual.Options{
		Count:    count,
		Overscan: max(c.Virtual.Overscan, c.Deck.Preload, c.Deck.PreloadPrevious),
	}
	if size := c.Virtual.EstimatedSize; size > 0 {
		opts.EstimatedSize = func(int) float64 { return size }
	}
	return opts
}
