// Package navigation owns a deck's active index. Every input source proposes
// changes through NavigateTo; the service drives the viewport and, when it is
// not driving it, derives the index back from scroll position.
package navigation

import (
	"log"
	"time"

	"swipedeck/internal/clock"
	"swipedeck/internal/domain"
	"swipedeck/internal/eventbus"
	"swipedeck/internal/gesture"
	"swipedeck/internal/keyboard"
	"swipedeck/internal/motion"
	"swipedeck/internal/wheel"
)

// Service is the navigation core of one deck. It is not safe for concurrent
// use; hosts deliver input, scroll notifications and timer callbacks from a
// single goroutine.
type Service struct {
	opts  Options
	cb    Callbacks
	clock clock.Clock
	bus   eventbus.EventBus

	viewport Viewport
	geometry Geometry

	state      State
	count      int
	controlled bool
	external   int

	gesture *gesture.Recognizer
	wheel   *wheel.Recognizer
	keys    *keyboard.Recognizer
	focused bool

	settleTimer     clock.Timer
	frameTimer      clock.Timer
	safetySnap      *clock.Debouncer
	resizeSettle    *clock.Debouncer
	visibility      *clock.Debouncer
	dragStartOffset float64
	wheelDrag       float64
	lastGestureNav  time.Time
}

// NewService creates a navigation core for count items. bus may be nil.
func NewService(count int, opts Options, cb Callbacks, c clock.Clock, bus eventbus.EventBus) *Service {
	if c == nil {
		c = clock.NewReal()
	}
	opts = normalize(opts)
	s := &Service{
		opts:         opts,
		cb:           cb,
		clock:        c,
		bus:          bus,
		count:        max(count, 0),
		safetySnap:   clock.NewDebouncer(c, opts.Timing.SafetySnap),
		resizeSettle: clock.NewDebouncer(c, opts.Timing.ResizeSettle),
		visibility:   clock.NewDebouncer(c, opts.Visibility.Debounce),
	}
	s.state.Index = clock.Clamp(opts.DefaultIndex, 0, max(s.count-1, 0))

	s.gesture = gesture.New(s.gestureConfig(), s, c, gesture.Callbacks{
		OnDragStart:  s.beginDrag,
		OnDrag:       s.dragTo,
		OnDragEnd:    s.endDrag,
		SetAnimating: func(v bool) { s.state.Animating = v && s.count > 0 },
		RequestIndex: func(next int) { s.NavigateTo(next, domain.SourceGesture, "") },
	})
	s.wheel = wheel.New(s.wheelConfig(), c, wheel.Callbacks{
		OnDragStart: s.beginDrag,
		OnDrag:      s.dragBy,
		OnDragEnd: func() {
			s.endDrag()
			s.NavigateTo(s.Index(), domain.SourceSnap, "")
		},
		RequestStep: func(step int) {
			s.endDrag()
			s.NavigateTo(s.Index()+step, domain.SourceWheel, "")
		},
	})
	s.keys = keyboard.New(s.keyboardConfig())
	return s
}

func normalize(opts Options) Options {
	if opts.Orientation == "" {
		opts.Orientation = domain.OrientationVertical
	}
	if opts.Direction == "" {
		opts.Direction = domain.DirectionLTR
	}
	if opts.Visibility.Strategy == "" {
		opts.Visibility.Strategy = VisibilityPosition
	}
	if opts.PixelRatio < 1 {
		opts.PixelRatio = 1
	}
	def := DefaultTiming()
	t := &opts.Timing
	for _, p := range []struct {
		v *time.Duration
		d time.Duration
	}{
		{&t.SmoothSettle, def.SmoothSettle},
		{&t.InstantSettle, def.InstantSettle},
		{&t.StaleLock, def.StaleLock},
		{&t.SafetySnap, def.SafetySnap},
		{&t.ResizeSettle, def.ResizeSettle},
		{&t.Frame, def.Frame},
		{&t.GestureCooldown, def.GestureCooldown},
	} {
		if *p.v <= 0 {
			*p.v = p.d
		}
	}
	return opts
}

func (s *Service) gestureConfig() gesture.Config {
	return gesture.Config{
		Orientation:          s.opts.Orientation,
		Direction:            s.opts.Direction,
		Threshold:            s.opts.Gesture.Threshold,
		FlickVelocity:        s.opts.Gesture.FlickVelocity,
		LockAxis:             s.opts.Gesture.LockAxis,
		IgnoreWhileAnimating: s.opts.Gesture.IgnoreWhileAnimating,
		Loop:                 s.opts.Loop,
	}
}

func (s *Service) wheelConfig() wheel.Config {
	return wheel.Config{
		Orientation:    s.opts.Orientation,
		Direction:      s.opts.Direction,
		DiscretePaging: s.opts.Wheel.DiscretePaging,
		Threshold:      s.opts.Wheel.Threshold,
		Debounce:       s.opts.Wheel.Debounce,
		Cooldown:       s.opts.Wheel.Cooldown,
	}
}

func (s *Service) keyboardConfig() keyboard.Config {
	b := keyboard.DefaultBindings(s.opts.Orientation)
	if s.opts.Keyboard.Bindings != nil {
		b = *s.opts.Keyboard.Bindings
	}
	return keyboard.Config{
		Orientation: s.opts.Orientation,
		Direction:   s.opts.Direction,
		Enabled:     s.opts.Keyboard.Enabled,
		Global:      s.opts.Keyboard.Global,
		Bindings:    b,
	}
}

// SetOptions replaces the configuration. The active index is kept, clamped
// when the deck shape no longer allows it.
func (s *Service) SetOptions(opts Options) {
	s.opts = normalize(opts)
	s.safetySnap.SetDuration(s.opts.Timing.SafetySnap)
	s.resizeSettle.SetDuration(s.opts.Timing.ResizeSettle)
	s.visibility.SetDuration(s.opts.Visibility.Debounce)
	s.gesture.SetConfig(s.gestureConfig())
	s.wheel.SetConfig(s.wheelConfig())
	s.keys.SetConfig(s.keyboardConfig())
}

// Options returns the active options
func (s *Service) Options() Options {
	return s.opts
}

// KeyBindings returns the bindings the keyboard recognizer uses
func (s *Service) KeyBindings() keyboard.Bindings {
	return s.keys.Config().Bindings
}

// Init announces the initial active item and end proximity. Hosts call it
// once after wiring callbacks.
func (s *Service) Init() {
	if s.count == 0 {
		return
	}
	s.afterIndexChange(-1)
}

// Index returns the active index
func (s *Service) Index() int {
	if s.controlled {
		return clock.Clamp(s.external, 0, max(s.count-1, 0))
	}
	return s.state.Index
}

// Count returns the number of items
func (s *Service) Count() int {
	return s.count
}

// IsAnimating reports whether a settle or scroll animation is in progress
func (s *Service) IsAnimating() bool {
	return s.state.Animating
}

// IsNavigating reports whether the core is driving the viewport
func (s *Service) IsNavigating() bool {
	return s.state.Navigating
}

// State returns the host-facing snapshot
func (s *Service) State() domain.State {
	idx := s.Index()
	return domain.State{
		Index:       idx,
		IsAnimating: s.state.Animating,
		CanPrev:     s.count > 0 && (s.opts.Loop || idx > 0),
		CanNext:     s.count > 0 && (s.opts.Loop || idx < s.count-1),
	}
}

// Prev moves one item back
func (s *Service) Prev() bool {
	return s.NavigateTo(s.Index()-1, domain.SourceKeyboard, "")
}

// Next moves one item forward
func (s *Service) Next() bool {
	return s.NavigateTo(s.Index()+1, domain.SourceKeyboard, "")
}

// First jumps to the first item
func (s *Service) First() bool {
	return s.NavigateTo(0, domain.SourceKeyboard, "")
}

// Last jumps to the last item
func (s *Service) Last() bool {
	return s.NavigateTo(s.count-1, domain.SourceKeyboard, "")
}

// ScrollTo navigates programmatically. An empty behavior follows the
// reduced-motion preference.
func (s *Service) ScrollTo(target int, behavior domain.Behavior) bool {
	return s.NavigateTo(target, domain.SourceProgrammatic, behavior)
}

// NavigateTo is the single entry point for index changes. It returns true when
// the request was accepted.
func (s *Service) NavigateTo(target int, source domain.Source, behavior domain.Behavior) bool {
	if s.count == 0 {
		return false
	}
	next := s.resolve(target)
	current := s.Index()

	// a drag that did not cross a threshold settles back in place
	if source == domain.SourceGesture && next == current {
		source = domain.SourceSnap
	}
	if next == current && source != domain.SourceSnap {
		return false
	}

	if source != domain.SourceSnap {
		if s.state.Navigating {
			log.Printf("navigation: dropping %s request to %d while navigating", source, next)
			return false
		}
		if source == domain.SourceGesture && s.withinGestureCooldown() {
			log.Printf("navigation: dropping gesture request to %d inside cooldown", next)
			source, next = domain.SourceSnap, current
		}
	}

	if source == domain.SourceGesture {
		s.lastGestureNav = s.clock.Now()
	}
	if next != current {
		s.commitIndex(next, source)
	}
	s.drive(next, behavior)
	return true
}

func (s *Service) withinGestureCooldown() bool {
	if s.lastGestureNav.IsZero() {
		return false
	}
	return s.clock.Now().Sub(s.lastGestureNav) < s.opts.Timing.GestureCooldown
}

func (s *Service) resolve(target int) int {
	if s.opts.Loop {
		return ((target % s.count) + s.count) % s.count
	}
	return clock.Clamp(target, 0, s.count-1)
}

// drive marks the core as navigating and commands the viewport to index
func (s *Service) drive(index int, behavior domain.Behavior) {
	s.state.Navigating = true
	s.state.NavigatingSince = s.clock.Now()
	s.state.Animating = true
	s.cancelFrame()
	s.safetySnap.Cancel()

	if s.viewport == nil {
		s.finishNavigation()
		return
	}

	behavior = s.resolveBehavior(behavior)
	s.viewport.SetSnap(false)
	s.viewport.ScrollTo(float64(index)*s.pageSize(), behavior)

	settle := s.opts.Timing.InstantSettle
	if behavior == domain.BehaviorSmooth {
		settle = s.opts.Timing.SmoothSettle
	}
	clock.Stop(s.settleTimer)
	s.settleTimer = s.clock.AfterFunc(settle, s.finishNavigation)
}

func (s *Service) resolveBehavior(b domain.Behavior) domain.Behavior {
	if b != "" {
		return b
	}
	if s.prefersReducedMotion() {
		return domain.BehaviorInstant
	}
	return domain.BehaviorSmooth
}

func (s *Service) prefersReducedMotion() bool {
	if s.opts.ReducedMotion != nil {
		return *s.opts.ReducedMotion
	}
	return motion.PrefersReducedMotion()
}

// finishNavigation clears the navigating flag and restores snapping
func (s *Service) finishNavigation() {
	clock.Stop(s.settleTimer)
	s.settleTimer = nil
	s.state.Navigating = false
	s.state.Animating = false
	if s.viewport != nil {
		s.viewport.SetSnap(true)
	}
}

// pageSize is the distance between consecutive items
func (s *Service) pageSize() float64 {
	if s.geometry != nil {
		if size := s.geometry.ContainerSize(); size > 0 {
			return size
		}
	}
	if s.viewport != nil {
		return s.viewport.Size()
	}
	return 0
}

// commitIndex records a change the core decided on
func (s *Service) commitIndex(next int, source domain.Source) {
	prev := s.Index()
	if !s.controlled {
		s.state.Index = next
	}
	if s.cb.OnIndexChange != nil {
		s.cb.OnIndexChange(next, source)
	}
	s.publish(domain.IndexChangedEvent{Index: next, Source: source})
	if !s.controlled {
		s.afterIndexChange(prev)
	}
}

// applyIndexChange records an index derived from scroll position
func (s *Service) applyIndexChange(next int) {
	if s.count == 0 || next == s.Index() {
		return
	}
	s.commitIndex(next, domain.SourceSnap)
	s.state.Animating = false
}

func (s *Service) afterIndexChange(prev int) {
	idx := s.Index()
	if prev >= 0 && prev != idx {
		if s.cb.OnItemInactive != nil {
			s.cb.OnItemInactive(prev)
		}
		s.publish(domain.ItemInactiveEvent{Index: prev})
	}
	if prev != idx {
		if s.cb.OnItemActive != nil {
			s.cb.OnItemActive(idx)
		}
		s.publish(domain.ItemActiveEvent{Index: idx})
		if hint := s.PreloadIndices(); len(hint) > 0 {
			s.publish(domain.PreloadHintEvent{Active: idx, Indices: hint})
		}
	}
	s.checkEndReached()
}

func (s *Service) checkEndReached() {
	if s.count == 0 {
		return
	}
	idx := s.Index()
	threshold := s.opts.EndReachedThreshold
	if dist := s.count - 1 - idx; dist <= threshold {
		s.endReached(domain.EndReachedInfo{DistanceFromEnd: dist, Direction: domain.EndForward})
	}
	if idx <= threshold {
		s.endReached(domain.EndReachedInfo{DistanceFromEnd: idx, Direction: domain.EndBackward})
	}
}

func (s *Service) endReached(info domain.EndReachedInfo) {
	if s.cb.OnEndReached != nil {
		s.cb.OnEndReached(info)
	}
	s.publish(domain.EndReachedEvent{Info: info})
}

// SetItemCount changes the number of items, clamping the index when the deck shrinks
func (s *Service) SetItemCount(n int) {
	n = max(n, 0)
	if n == s.count {
		return
	}
	prev := s.Index()
	s.count = n
	if t, ok := s.geometry.(geometryTracker); ok {
		t.SetCount(n)
	}
	if !s.controlled {
		s.state.Index = clock.Clamp(s.state.Index, 0, max(n-1, 0))
	}
	s.publish(domain.ItemCountChangedEvent{Count: n, Index: s.Index()})
	if n == 0 {
		return
	}
	if s.Index() != prev {
		s.afterIndexChange(prev)
		return
	}
	s.checkEndReached()
}

// SetControlledIndex hands ownership of the index to the caller. The core
// keeps emitting change requests through OnIndexChange but no longer moves
// the index itself.
func (s *Service) SetControlledIndex(index int) {
	prev := s.Index()
	wasControlled := s.controlled
	s.controlled = true
	s.external = index
	if s.count == 0 {
		return
	}
	if idx := s.Index(); idx != prev || !wasControlled {
		s.afterIndexChange(prev)
		if idx != prev && !s.state.Navigating {
			s.drive(idx, "")
		}
	}
}

// ReleaseControl returns ownership of the index to the core, starting from
// the last controlled value.
func (s *Service) ReleaseControl() {
	if !s.controlled {
		return
	}
	s.state.Index = s.Index()
	s.controlled = false
}

// Controlled reports whether the index is owned by the caller
func (s *Service) Controlled() bool {
	return s.controlled
}

// BindViewport attaches (or, with nil, detaches) the render surface
func (s *Service) BindViewport(v Viewport) {
	s.viewport = v
	if v == nil {
		s.cancelFrame()
		s.safetySnap.Cancel()
		s.resizeSettle.Cancel()
		s.gesture.Cancel()
		s.wheel.Reset()
		s.state.Dragging = false
		clock.Stop(s.settleTimer)
		s.settleTimer = nil
		s.state.Navigating = false
		s.state.Animating = false
		return
	}
	s.trackContainer()
	if s.count > 0 && s.Index() > 0 {
		v.ScrollTo(float64(s.Index())*s.pageSize(), domain.BehaviorInstant)
	}
}

// BindGeometry attaches the virtualization collaborator; nil detaches it
func (s *Service) BindGeometry(g Geometry) {
	s.geometry = g
	if t, ok := g.(geometryTracker); ok {
		t.SetCount(s.count)
	}
	s.trackContainer()
}

func (s *Service) trackContainer() {
	if s.viewport == nil {
		return
	}
	if t, ok := s.geometry.(geometryTracker); ok {
		t.SetContainerSize(s.viewport.Size())
		t.SetScrollOffset(s.viewport.ScrollOffset())
	}
}

func (s *Service) publish(e domain.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
