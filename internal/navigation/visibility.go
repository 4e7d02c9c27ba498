package navigation

import (
	"math"

	"swipedeck/internal/clock"
	"swipedeck/internal/domain"
)

// Intersection is a host-reported visible fraction of one item
type Intersection struct {
	Index int
	Ratio float64
}

// BestIntersection returns the entry with the highest ratio at or above
// minRatio. Ties keep the earlier entry.
func BestIntersection(entries []Intersection, minRatio float64) (int, bool) {
	best, bestRatio := -1, -1.0
	for _, e := range entries {
		if e.Ratio >= minRatio && e.Ratio > bestRatio {
			best, bestRatio = e.Index, e.Ratio
		}
	}
	return best, best >= 0
}

// Intersections measures how much of each item lies inside the window
// [offset, offset+size). Ratios are relative to the item's own size.
func Intersections(items []ItemProps, offset, size float64) []Intersection {
	out := make([]Intersection, 0, len(items))
	for _, it := range items {
		if it.Size <= 0 {
			continue
		}
		visible := math.Min(it.Offset+it.Size, offset+size) - math.Max(it.Offset, offset)
		out = append(out, Intersection{Index: it.Index, Ratio: clock.Clamp(visible/it.Size, 0, 1)})
	}
	return out
}

// ClosestToCenter returns the item whose center is nearest to center
func ClosestToCenter(items []domain.VirtualItem, center float64) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for _, it := range items {
		d := math.Abs(it.Offset + it.Size/2 - center)
		if d < bestDist {
			best, bestDist = it.Index, d
		}
	}
	return best, best >= 0
}

// HandleIntersections applies host-reported visibility when the deck uses
// the intersection strategy. The update is debounced and ignored while the
// core drives the viewport.
func (s *Service) HandleIntersections(entries []Intersection) {
	if s.opts.Visibility.Strategy != VisibilityIntersection {
		return
	}
	idx, ok := BestIntersection(entries, s.opts.Visibility.IntersectionRatio)
	if !ok {
		return
	}
	s.visibility.Debounce(func() {
		if s.state.Navigating || s.state.Dragging || idx >= s.count {
			return
		}
		s.applyIndexChange(idx)
	})
}

// ReportVisibility measures the rendered items against the bound viewport
// and feeds the result to HandleIntersections. Hosts call it after every
// scroll notification.
func (s *Service) ReportVisibility() {
	if s.viewport == nil || s.opts.Visibility.Strategy != VisibilityIntersection {
		return
	}
	s.HandleIntersections(Intersections(s.RenderedItems(), s.viewport.ScrollOffset(), s.viewport.Size()))
}
