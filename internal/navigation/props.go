package navigation

import (
	"fmt"
	"slices"

	"swipedeck/internal/domain"
)

// ViewportProps describe how the render layer should present the viewport
type ViewportProps struct {
	Element     string
	Role        string
	AriaLabel   string
	AriaBusy    bool
	TabIndex    int
	SnapType    string
	TouchAction string
	Orientation domain.Orientation
}

// ItemProps describe how the render layer should place one item
type ItemProps struct {
	Index     int
	Key       string
	Active    bool
	Offset    float64
	Size      float64
	SnapAlign string
	SnapStop  string
}

// ItemContext is the per-item render info handed to item renderers
type ItemContext struct {
	Index         int
	IsActive      bool
	ShouldPreload bool
	Props         ItemProps
}

// ViewportProps returns the current viewport presentation
func (s *Service) ViewportProps() ViewportProps {
	snap := s.opts.Orientation.Axis() + " mandatory"
	if s.state.Navigating {
		snap = "none"
	}
	touch := "pan-y"
	if !s.opts.Orientation.IsVertical() {
		touch = "pan-x"
	}
	return ViewportProps{
		Element:     s.opts.Element,
		Role:        "feed",
		AriaLabel:   s.opts.AriaLabel,
		AriaBusy:    s.state.Animating,
		TabIndex:    0,
		SnapType:    snap,
		TouchAction: touch,
		Orientation: s.opts.Orientation,
	}
}

// ItemProps returns placement for item i. Items that are not rendered get a
// zero offset and size.
func (s *Service) ItemProps(i int) ItemProps {
	p := ItemProps{
		Index:     i,
		Active:    i == s.Index(),
		SnapAlign: "start",
		SnapStop:  "always",
	}
	if it, ok := s.rendered(i); ok {
		p.Key, p.Offset, p.Size = it.Key, it.Offset, it.Size
	}
	return p
}

// RenderedItems returns props for every item the geometry currently renders
func (s *Service) RenderedItems() []ItemProps {
	if s.geometry == nil {
		return nil
	}
	items := s.geometry.VirtualItems()
	out := make([]ItemProps, 0, len(items))
	for _, it := range items {
		out = append(out, s.ItemProps(it.Index))
	}
	return out
}

// ItemContext returns render info for a rendered item, or
// ErrOutsideItemScope when i is not rendered.
func (s *Service) ItemContext(i int) (ItemContext, error) {
	if _, ok := s.rendered(i); !ok {
		return ItemContext{}, fmt.Errorf("item %d: %w", i, ErrOutsideItemScope)
	}
	return ItemContext{
		Index:         i,
		IsActive:      i == s.Index(),
		ShouldPreload: s.ShouldPreload(i),
		Props:         s.ItemProps(i),
	}, nil
}

func (s *Service) rendered(i int) (domain.VirtualItem, bool) {
	if s.geometry == nil || i < 0 || i >= s.count {
		return domain.VirtualItem{}, false
	}
	for _, it := range s.geometry.VirtualItems() {
		if it.Index == i {
			return it, true
		}
	}
	return domain.VirtualItem{}, false
}

// ShouldPreload reports whether item i lies within the preload window
// around the active item. The active item itself is never a preload target.
func (s *Service) ShouldPreload(i int) bool {
	ahead, behind := s.opts.Preload, s.opts.PreloadPrevious
	if (ahead <= 0 && behind <= 0) || s.count == 0 || i < 0 || i >= s.count {
		return false
	}
	cur := s.Index()
	if !s.opts.Loop {
		return (i > cur && i <= cur+ahead) || (i < cur && i >= cur-behind)
	}
	n := s.count
	fwd := (i - cur + n) % n
	back := (cur - i + n) % n
	return (fwd > 0 && fwd <= ahead) || (back > 0 && back <= behind)
}

// PreloadIndices lists the preload targets in ascending index order
func (s *Service) PreloadIndices() []int {
	if s.count == 0 {
		return nil
	}
	cur, n := s.Index(), s.count
	var out []int
	for d := -s.opts.PreloadPrevious; d <= s.opts.Preload; d++ {
		i := cur + d
		if s.opts.Loop {
			i = ((i % n) + n) % n
		}
		if s.ShouldPreload(i) {
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
