package navigation

import (
	"log"
	"math"

	"swipedeck/internal/clock"
	"swipedeck/internal/domain"
)

// HandleScroll is called by the host for every scroll notification of the
// viewport. Scrolls the core issued itself are ignored; user and momentum
// scrolls are reconciled into the active index once per frame.
func (s *Service) HandleScroll() {
	if s.viewport == nil {
		return
	}
	if t, ok := s.geometry.(geometryTracker); ok {
		t.SetScrollOffset(s.viewport.ScrollOffset())
	}

	if s.state.Navigating {
		elapsed := s.clock.Now().Sub(s.state.NavigatingSince)
		if elapsed <= s.opts.Timing.StaleLock {
			return
		}
		log.Printf("navigation: WARNING clearing stale navigation lock at index %d after %s", s.Index(), elapsed)
		s.publish(domain.NavigationStalledEvent{Index: s.Index(), Elapsed: elapsed})
		s.finishNavigation()
	}
	if s.state.Dragging {
		return
	}

	if s.frameTimer == nil {
		s.frameTimer = s.clock.AfterFunc(s.opts.Timing.Frame, s.reconcileFrame)
	}
	s.safetySnap.Debounce(s.checkAlignment)
}

// HandleScrollEnd is called when the viewport reports that a scroll finished
func (s *Service) HandleScrollEnd() {
	if s.state.Navigating {
		s.finishNavigation()
	}
}

// HandleResize is called when the viewport extent changed. After a settle
// delay the active item is brought back into place.
func (s *Service) HandleResize() {
	if s.viewport == nil {
		return
	}
	s.trackContainer()
	s.resizeSettle.Debounce(func() {
		if s.viewport == nil || s.count == 0 || s.state.Navigating || s.state.Dragging {
			return
		}
		s.trackContainer()
		s.NavigateTo(s.Index(), domain.SourceSnap, domain.BehaviorInstant)
	})
}

func (s *Service) cancelFrame() {
	clock.Stop(s.frameTimer)
	s.frameTimer = nil
}

func (s *Service) reconcileFrame() {
	s.frameTimer = nil
	if s.viewport == nil || s.count == 0 || s.state.Navigating || s.state.Dragging {
		return
	}
	if s.opts.Visibility.Strategy == VisibilityIntersection {
		return
	}
	s.applyIndexChange(s.indexAtCenter())
}

// indexAtCenter finds the item covering the viewport center. When no rendered
// item covers it the nearest rendered center wins, and without geometry the
// index is estimated from whole pages.
func (s *Service) indexAtCenter() int {
	offset := s.viewport.ScrollOffset()
	size := s.viewport.Size()
	center := offset + size/2

	if s.geometry != nil {
		items := s.geometry.VirtualItems()
		for _, item := range items {
			if center >= item.Offset && center < item.End() {
				return item.Index
			}
		}
		if idx, ok := ClosestToCenter(items, center); ok {
			return clock.Clamp(idx, 0, s.count-1)
		}
	}
	if page := s.pageSize(); page > 0 {
		size = page
	}
	if size <= 0 {
		return s.Index()
	}
	return clock.Clamp(int(math.Round(offset/size)), 0, s.count-1)
}

// checkAlignment corrects a viewport left between two pages
func (s *Service) checkAlignment() {
	if s.viewport == nil || s.count == 0 || s.state.Navigating || s.state.Dragging {
		return
	}
	// host visibility still settling; align against the index it produces
	if s.visibility.Pending() {
		s.safetySnap.Debounce(s.checkAlignment)
		return
	}
	ideal := float64(s.Index()) * s.pageSize()
	offset := s.viewport.ScrollOffset()
	if math.Abs(offset-ideal) <= s.alignmentTolerance() {
		return
	}
	log.Printf("navigation: snapping misaligned viewport (offset %.1f, want %.1f)", offset, ideal)
	s.NavigateTo(s.Index(), domain.SourceSnap, domain.BehaviorSmooth)
}

func (s *Service) alignmentTolerance() float64 {
	return 2 / s.opts.PixelRatio
}
