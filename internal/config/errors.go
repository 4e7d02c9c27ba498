package config

import (
	"errors"
	"fmt"
)

// ParseError reports a TOML syntax or type error
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports one invalid setting
type ValidationError struct {
	// Field is the dotted TOML key, e.g. "wheel.threshold"
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// Validate checks every setting and returns all problems joined
func (c *Config) Validate() error {
	var errs []error
	add := func(field, msg string, v any) {
		errs = append(errs, &ValidationError{Field: field, Message: msg, Value: v})
	}

	switch c.Deck.Orientation {
	case "vertical", "horizontal":
	default:
		add("deck.orientation", `must be "vertical" or "horizontal"`, c.Deck.Orientation)
	}
	switch c.Deck.Direction {
	case "ltr", "rtl":
	default:
		add("deck.direction", `must be "ltr" or "rtl"`, c.Deck.Direction)
	}
	switch c.Visibility.Strategy {
	case "position", "intersection":
	default:
		add("visibility.strategy", `must be "position" or "intersection"`, c.Visibility.Strategy)
	}

	nonNegative := []struct {
		field string
		v     float64
	}{
		{"deck.default_index", float64(c.Deck.DefaultIndex)},
		{"deck.preload", float64(c.Deck.Preload)},
		{"deck.preload_previous", float64(c.Deck.PreloadPrevious)},
		{"deck.end_reached_threshold", float64(c.Deck.EndReachedThreshold)},
		{"gesture.threshold", c.Gesture.Threshold},
		{"gesture.flick_velocity", c.Gesture.FlickVelocity},
		{"wheel.threshold", c.Wheel.Threshold},
		{"wheel.debounce_ms", float64(c.Wheel.DebounceMS)},
		{"wheel.cooldown_ms", float64(c.Wheel.CooldownMS)},
		{"wheel.tick_delta", c.Wheel.TickDelta},
		{"visibility.debounce_ms", float64(c.Visibility.DebounceMS)},
		{"virtual.overscan", float64(c.Virtual.Overscan)},
		{"virtual.estimated_size", c.Virtual.EstimatedSize},
		{"ui.item_count", float64(c.UI.ItemCount)},
		{"ui.grow_by", float64(c.UI.GrowBy)},
		{"ui.max_items", float64(c.UI.MaxItems)},
		{"ui.scroll_duration_ms", float64(c.UI.ScrollDurationMS)},
	}
	for _, n := range nonNegative {
		if n.v < 0 {
			add(n.field, "must not be negative", n.v)
		}
	}

	if r := c.Visibility.IntersectionRatio; r < 0 || r > 1 {
		add("visibility.intersection_ratio", "must be between 0 and 1", r)
	}
	return errors.Join(errs...)
}
