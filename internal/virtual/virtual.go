// Package virtual computes item geometry for long decks without laying out every item.
package virtual

import (
	"sort"
	"strconv"

	"swipedeck/internal/clock"
	"swipedeck/internal/domain"
)

// DefaultContainerSize is used before the container has been measured
const DefaultContainerSize = 24.0

// Align positions an item relative to the container in ScrollToIndex
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
	AlignAuto   Align = "auto"
)

// ScrollToIndexOptions configures ScrollToIndex
type ScrollToIndexOptions struct {
	Align    Align
	Behavior domain.Behavior
}

// ScrollTarget is the surface ScrollToIndex drives
type ScrollTarget interface {
	ScrollTo(offset float64, behavior domain.Behavior)
}

// Options configures a Virtualizer
type Options struct {
	Count    int
	Overscan int
	// EstimatedSize returns the size of item i. When nil, every item is one
	// container long (full-page decks).
	EstimatedSize func(i int) float64
	// ItemKey returns a stable key for item i; defaults to the index
	ItemKey func(i int) string
}

// Virtualizer tracks sizes, offsets and the visible window
type Virtualizer struct {
	opts          Options
	containerSize float64
	measured      bool
	sizes         map[int]float64
	scrollOffset  float64
	target        ScrollTarget

	offsets []float64 // offsets[i] is the start of item i; offsets[Count] is the total
	dirty   bool
}

// New creates a virtualizer
func New(opts Options) *Virtualizer {
	if opts.Overscan < 0 {
		opts.Overscan = 0
	}
	return &Virtualizer{
		opts:          opts,
		containerSize: DefaultContainerSize,
		sizes:         make(map[int]float64),
		dirty:         true,
	}
}

// Bind attaches the scroll surface used by ScrollToIndex; nil detaches it
func (v *Virtualizer) Bind(target ScrollTarget) {
	v.target = target
}

// Count returns the number of items
func (v *Virtualizer) Count() int {
	return v.opts.Count
}

// SetCount changes the number of items
func (v *Virtualizer) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	if n == v.opts.Count {
		return
	}
	v.opts.Count = n
	for i := range v.sizes {
		if i >= n {
			delete(v.sizes, i)
		}
	}
	v.dirty = true
}

// SetOverscan changes how many items beyond the visible window are rendered
func (v *Virtualizer) SetOverscan(n int) {
	v.opts.Overscan = max(n, 0)
}

// SetContainerSize records a measurement of the viewport extent. Zero or
// negative sizes are ignored.
func (v *Virtualizer) SetContainerSize(size float64) {
	if size <= 0 {
		return
	}
	if v.measured && size == v.containerSize {
		return
	}
	v.containerSize = size
	v.measured = true
	v.dirty = true
}

// Measured reports whether a real container size has been recorded
func (v *Virtualizer) Measured() bool {
	return v.measured
}

// Measure records the rendered size of item i
func (v *Virtualizer) Measure(i int, size float64) {
	if i < 0 || i >= v.opts.Count || size <= 0 {
		return
	}
	if v.sizes[i] == size {
		return
	}
	v.sizes[i] = size
	v.dirty = true
}

// SetScrollOffset tells the virtualizer where the viewport currently is
func (v *Virtualizer) SetScrollOffset(offset float64) {
	v.scrollOffset = offset
}

// ContainerSize returns the measured (or default) viewport extent
func (v *Virtualizer) ContainerSize() float64 {
	return v.containerSize
}

// Size returns the size of item i, or 0 when out of range
func (v *Virtualizer) Size(i int) float64 {
	if i < 0 || i >= v.opts.Count {
		return 0
	}
	if s, ok := v.sizes[i]; ok {
		return s
	}
	if v.opts.EstimatedSize != nil {
		if s := v.opts.EstimatedSize(i); s > 0 {
			return s
		}
	}
	return v.containerSize
}

// Offset returns the start of item i, clamped to the valid range
func (v *Virtualizer) Offset(i int) float64 {
	v.layout()
	if v.opts.Count == 0 {
		return 0
	}
	return v.offsets[clock.Clamp(i, 0, v.opts.Count)]
}

// TotalSize returns the extent of all items
func (v *Virtualizer) TotalSize() float64 {
	v.layout()
	return v.offsets[len(v.offsets)-1]
}

// VirtualItems returns the items intersecting the viewport plus overscan
func (v *Virtualizer) VirtualItems() []domain.VirtualItem {
	v.layout()
	n := v.opts.Count
	if n == 0 {
		return nil
	}

	start := v.scrollOffset
	end := start + v.containerSize

	// first item whose end is past the viewport start
	first := sort.Search(n, func(i int) bool { return v.offsets[i+1] > start })
	last := first
	for last < n-1 && v.offsets[last+1] < end {
		last++
	}
	first = max(first-v.opts.Overscan, 0)
	last = min(last+v.opts.Overscan, n-1)
	if first > last {
		first = last
	}

	items := make([]domain.VirtualItem, 0, last-first+1)
	for i := first; i <= last; i++ {
		items = append(items, domain.VirtualItem{
			Index:  i,
			Key:    v.key(i),
			Offset: v.offsets[i],
			Size:   v.offsets[i+1] - v.offsets[i],
		})
	}
	return items
}

// ScrollToIndex scrolls the bound target so item i is aligned as requested
func (v *Virtualizer) ScrollToIndex(i int, opts ScrollToIndexOptions) {
	if v.target == nil || v.opts.Count == 0 {
		return
	}
	i = clock.Clamp(i, 0, v.opts.Count-1)
	offset := v.Offset(i)
	size := v.Size(i)

	var target float64
	switch opts.Align {
	case AlignCenter:
		target = offset + size/2 - v.containerSize/2
	case AlignEnd:
		target = offset + size - v.containerSize
	case AlignAuto:
		viewEnd := v.scrollOffset + v.containerSize
		switch {
		case offset >= v.scrollOffset && offset+size <= viewEnd:
			return
		case offset < v.scrollOffset:
			target = offset
		default:
			target = offset + size - v.containerSize
		}
	default:
		target = offset
	}

	maxOffset := max(v.TotalSize()-v.containerSize, 0)
	behavior := opts.Behavior
	if behavior == "" {
		behavior = domain.BehaviorAuto
	}
	v.target.ScrollTo(clock.Clamp(target, 0, maxOffset), behavior)
}

func (v *Virtualizer) key(i int) string {
	if v.opts.ItemKey != nil {
		return v.opts.ItemKey(i)
	}
	return strconv.Itoa(i)
}

func (v *Virtualizer) layout() {
	if !v.dirty && len(v.offsets) == v.opts.Count+1 {
		return
	}
	offsets := make([]float64, v.opts.Count+1)
	for i := 0; i < v.opts.Count; i++ {
		offsets[i+1] = offsets[i] + v.Size(i)
	}
	v.offsets = offsets
	v.dirty = false
}
