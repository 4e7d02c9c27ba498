package navigation

import (
	"errors"
	"time"

	"swipedeck/internal/domain"
	"swipedeck/internal/keyboard"
	"swipedeck/internal/virtual"
)

// ErrOutsideItemScope is returned when per-item render info is requested for
// an item that is not currently rendered.
var ErrOutsideItemScope = errors.New("navigation: item context requested outside of a rendered item")

// Viewport is the scrollable surface owned by the host render layer
type Viewport interface {
	ScrollOffset() float64
	Size() float64
	ScrollTo(offset float64, behavior domain.Behavior)
	// SetSnap toggles the surface's own snapping while the core drives a scroll
	SetSnap(enabled bool)
}

// Geometry is the read/command surface of the virtualization collaborator
type Geometry interface {
	Offset(i int) float64
	Size(i int) float64
	TotalSize() float64
	ContainerSize() float64
	VirtualItems() []domain.VirtualItem
	ScrollToIndex(i int, opts virtual.ScrollToIndexOptions)
}

// geometryTracker is implemented by collaborators that want to be told about
// scroll position, container size and item count.
type geometryTracker interface {
	SetScrollOffset(offset float64)
	SetContainerSize(size float64)
	SetCount(n int)
}

// VisibilityStrategy selects how the active item is derived when the core is
// not driving the scroll.
type VisibilityStrategy string

const (
	// VisibilityPosition derives the active item from scroll position
	VisibilityPosition VisibilityStrategy = "position"
	// VisibilityIntersection takes the best intersection ratio reported by the host
	VisibilityIntersection VisibilityStrategy = "intersection"
)

// GestureOptions configures the pointer drag recognizer
type GestureOptions struct {
	Threshold            float64
	FlickVelocity        float64
	LockAxis             bool
	IgnoreWhileAnimating bool
}

// WheelOptions configures the wheel recognizer
type WheelOptions struct {
	DiscretePaging bool
	Threshold      float64
	Debounce       time.Duration
	Cooldown       time.Duration
}

// KeyboardOptions configures the keyboard recognizer. Zero Bindings fall back
// to the orientation defaults.
type KeyboardOptions struct {
	Enabled  bool
	Global   bool
	Bindings *keyboard.Bindings
}

// VisibilityOptions configures active-item detection
type VisibilityOptions struct {
	Strategy          VisibilityStrategy
	IntersectionRatio float64
	Debounce          time.Duration
}

// Timing holds the core's internal delays
type Timing struct {
	SmoothSettle    time.Duration // fallback completion for smooth scrolls
	InstantSettle   time.Duration // fallback completion for instant scrolls
	StaleLock       time.Duration // navigating flag older than this is cleared
	SafetySnap      time.Duration // quiet period before a misalignment check
	ResizeSettle    time.Duration
	Frame           time.Duration
	GestureCooldown time.Duration // minimum gap between gesture navigations
}

// Options configures a Service
type Options struct {
	Orientation  domain.Orientation
	Direction    domain.Direction
	Loop         bool
	DefaultIndex int

	Gesture    GestureOptions
	Wheel      WheelOptions
	Keyboard   KeyboardOptions
	Visibility VisibilityOptions

	Preload         int
	PreloadPrevious int

	EndReachedThreshold int
	AriaLabel           string
	// Element is the semantic tag the render layer should use for the viewport
	Element string

	// ReducedMotion overrides the process-wide preference when set
	ReducedMotion *bool
	// PixelRatio scales the misalignment tolerance; values below 1 are treated as 1
	PixelRatio float64

	Timing Timing
}

// Callbacks receive navigation output. Nil entries are skipped.
type Callbacks struct {
	OnIndexChange  func(index int, source domain.Source)
	OnEndReached   func(info domain.EndReachedInfo)
	OnItemActive   func(index int)
	OnItemInactive func(index int)
}

// DefaultTiming returns the stock delays
func DefaultTiming() Timing {
	return Timing{
		SmoothSettle:    600 * time.Millisecond,
		InstantSettle:   50 * time.Millisecond,
		StaleLock:       1500 * time.Millisecond,
		SafetySnap:      150 * time.Millisecond,
		ResizeSettle:    100 * time.Millisecond,
		Frame:           16 * time.Millisecond,
		GestureCooldown: 250 * time.Millisecond,
	}
}

// DefaultOptions returns a vertical, non-looping deck with the stock thresholds
func DefaultOptions() Options {
	return Options{
		Orientation: domain.OrientationVertical,
		Direction:   domain.DirectionLTR,
		Gesture: GestureOptions{
			Threshold:            10,
			FlickVelocity:        0.1,
			LockAxis:             true,
			IgnoreWhileAnimating: true,
		},
		Wheel: WheelOptions{
			DiscretePaging: true,
			Threshold:      100,
			Debounce:       120 * time.Millisecond,
			Cooldown:       800 * time.Millisecond,
		},
		Keyboard: KeyboardOptions{Enabled: true},
		Visibility: VisibilityOptions{
			Strategy:          VisibilityPosition,
			IntersectionRatio: 0.6,
			Debounce:          100 * time.Millisecond,
		},
		EndReachedThreshold: 3,
		AriaLabel:           "Swipe feed",
		Element:             "div",
		PixelRatio:          1,
		Timing:              DefaultTiming(),
	}
}

// State holds the core's mutable navigation state
type State struct {
	Index           int
	Animating       bool
	Navigating      bool
	NavigatingSince time.Time
	Dragging        bool
}
