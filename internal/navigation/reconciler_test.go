package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swipedeck/internal/domain"
	"swipedeck/internal/eventbus"
	"swipedeck/internal/virtual"
)

func withGeometry(s *Service, count int) *virtual.Virtualizer {
	v := virtual.New(virtual.Options{Count: count})
	s.BindGeometry(v)
	return v
}

func TestScrollReconcilesIndexFromGeometry(t *testing.T) {
	s, c, rec := newTestService(5, nil)
	vp := withViewport(s, 100)
	withGeometry(s, 5)

	vp.offset = 210
	s.HandleScroll()
	assert.Empty(t, rec.changes)

	c.Advance(16 * time.Millisecond)
	assert.Equal(t, []change{{2, domain.SourceSnap}}, rec.changes)
	assert.Equal(t, 2, s.Index())

	// misaligned by 10 units: the safety snap pulls it back
	c.Advance(150 * time.Millisecond)
	assert.Equal(t, scrollCall{200, domain.BehaviorSmooth}, vp.last())
	assert.Len(t, rec.changes, 1)
}

func TestScrollFallsBackToPageEstimate(t *testing.T) {
	s, c, rec := newTestService(5, nil)
	vp := withViewport(s, 100)

	vp.offset = 340
	s.HandleScroll()
	c.Advance(16 * time.Millisecond)
	assert.Equal(t, []change{{3, domain.SourceSnap}}, rec.changes)

	vp.offset = 9000
	s.HandleScroll()
	c.Advance(16 * time.Millisecond)
	assert.Equal(t, 4, s.Index())
}

// gappedGeometry lays items out with a gap between them
type gappedGeometry struct {
	items []domain.VirtualItem
	page  float64
}

func (g *gappedGeometry) Offset(i int) float64                            { return g.items[i].Offset }
func (g *gappedGeometry) Size(i int) float64                              { return g.items[i].Size }
func (g *gappedGeometry) TotalSize() float64                              { return g.items[len(g.items)-1].End() }
func (g *gappedGeometry) ContainerSize() float64                          { return g.page }
func (g *gappedGeometry) VirtualItems() []domain.VirtualItem              { return g.items }
func (g *gappedGeometry) ScrollToIndex(int, virtual.ScrollToIndexOptions) {}

func TestScrollBetweenItemsPicksNearestCenter(t *testing.T) {
	s, c, rec := newTestService(3, nil)
	vp := withViewport(s, 100)
	s.BindGeometry(&gappedGeometry{
		page: 100,
		items: []domain.VirtualItem{
			{Index: 0, Offset: 0, Size: 60},
			{Index: 1, Offset: 100, Size: 60},
			{Index: 2, Offset: 200, Size: 60},
		},
	})

	// center 185 falls in the gap after item 1; item 2's center (230) is nearer
	// than item 1's (130)
	vp.offset = 135
	s.HandleScroll()
	c.Advance(16 * time.Millisecond)
	assert.Equal(t, []change{{2, domain.SourceSnap}}, rec.changes)
}

func TestIntersectionsFromRenderedItems(t *testing.T) {
	items := []ItemProps{
		{Index: 0, Offset: 0, Size: 100},
		{Index: 1, Offset: 100, Size: 100},
		{Index: 2, Offset: 200, Size: 100},
		{Index: 3, Offset: 300, Size: 0},
	}
	got := Intersections(items, 130, 100)
	assert.Equal(t, []Intersection{{0, 0}, {1, 0.7}, {2, 0.3}}, got)
}

func TestReportVisibilityDrivesIntersectionStrategy(t *testing.T) {
	s, c, rec := newTestService(5, func(o *Options) {
		o.Visibility.Strategy = VisibilityIntersection
		o.Visibility.Debounce = 250 * time.Millisecond
	})
	vp := withViewport(s, 100)
	withGeometry(s, 5)

	vp.offset = 300
	s.HandleScroll()
	s.ReportVisibility()

	// the safety snap waits for the pending visibility update instead of
	// pulling the viewport back to the stale index
	c.Advance(time.Second)
	assert.Equal(t, []change{{3, domain.SourceSnap}}, rec.changes)
	assert.Empty(t, vp.calls)
}

func TestReportVisibilityIgnoredForPositionStrategy(t *testing.T) {
	s, c, rec := newTestService(5, nil)
	vp := withViewport(s, 100)
	withGeometry(s, 5)

	vp.offset = 300
	s.ReportVisibility()
	c.Advance(time.Second)
	assert.Empty(t, rec.changes)
}

func TestScrollBatchesPerFrame(t *testing.T) {
	s, c, rec := newTestService(5, nil)
	vp := withViewport(s, 100)

	vp.offset = 100
	s.HandleScroll()
	vp.offset = 200
	s.HandleScroll()
	c.Advance(16 * time.Millisecond)

	assert.Equal(t, []change{{2, domain.SourceSnap}}, rec.changes)
}

func TestAlignedScrollDoesNotSnap(t *testing.T) {
	s, c, _ := newTestService(5, func(o *Options) { o.PixelRatio = 2 })
	vp := withViewport(s, 100)

	vp.offset = 100.5
	s.HandleScroll()
	c.Advance(time.Second)
	assert.Equal(t, 1, s.Index())
	assert.Empty(t, vp.calls)
}

func TestScrollIgnoredWhileNavigating(t *testing.T) {
	s, c, rec := newTestService(5, nil)
	vp := withViewport(s, 100)

	s.Next()
	vp.offset = 40
	s.HandleScroll()
	c.Advance(100 * time.Millisecond)
	assert.Equal(t, []change{{1, domain.SourceKeyboard}}, rec.changes)
}

func TestScrollIgnoredWhileDragging(t *testing.T) {
	s, c, rec := newTestService(5, nil)
	vp := withViewport(s, 100)

	s.beginDrag()
	vp.offset = 300
	s.HandleScroll()
	c.Advance(time.Second)
	assert.Empty(t, rec.changes)
}

func TestStaleLockIsCleared(t *testing.T) {
	s, c, rec := newTestService(5, func(o *Options) { o.Timing.SmoothSettle = 10 * time.Second })
	bus := eventbus.New()
	defer bus.Close()
	s.bus = bus
	stalled := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventNavigationStalled, func(e eventbus.DomainEvent) { stalled <- e })
	vp := withViewport(s, 100)

	require.True(t, s.Next())
	c.Advance(time.Second)
	s.HandleScroll()
	assert.True(t, s.IsNavigating())

	c.Advance(600 * time.Millisecond)
	s.HandleScroll()
	assert.False(t, s.IsNavigating())
	assert.True(t, vp.snap)

	select {
	case e := <-stalled:
		ev, ok := e.(eventbus.NavigationStalledEvent)
		require.True(t, ok)
		assert.Equal(t, 1, ev.Index)
		assert.Equal(t, 1600*time.Millisecond, ev.Elapsed)
	case <-time.After(time.Second):
		t.Fatal("stall was not published")
	}

	assert.True(t, s.Next())
	assert.Len(t, rec.changes, 2)
}

func TestResizeRealignsActiveItem(t *testing.T) {
	s, c, rec := newTestService(5, func(o *Options) { o.DefaultIndex = 2 })
	vp := withViewport(s, 100)
	require.Equal(t, scrollCall{200, domain.BehaviorInstant}, vp.last())

	vp.size = 50
	s.HandleResize()
	s.HandleResize()
	c.Advance(100 * time.Millisecond)

	assert.Equal(t, scrollCall{100, domain.BehaviorInstant}, vp.last())
	assert.Len(t, vp.calls, 2)
	assert.Empty(t, rec.changes)
}

func TestResizeUpdatesGeometry(t *testing.T) {
	s, c, _ := newTestService(5, func(o *Options) { o.DefaultIndex = 1 })
	vp := withViewport(s, 100)
	v := withGeometry(s, 5)

	vp.size = 80
	s.HandleResize()
	assert.Equal(t, 80.0, v.ContainerSize())
	c.Advance(100 * time.Millisecond)
	assert.Equal(t, scrollCall{80, domain.BehaviorInstant}, vp.last())
}

func TestTouchStartRestoresSnap(t *testing.T) {
	s, _, _ := newTestService(5, nil)
	vp := withViewport(s, 100)

	vp.snap = false
	s.HandleTouchStart()
	assert.True(t, vp.snap)

	s.Next()
	s.HandleTouchStart()
	assert.False(t, vp.snap)
}

func TestNoViewportIsHarmless(t *testing.T) {
	s, c, _ := newTestService(5, nil)
	assert.NotPanics(t, func() {
		s.HandleScroll()
		s.HandleScrollEnd()
		s.HandleResize()
		s.HandleTouchStart()
		s.HandlePointerCancel()
		c.Advance(time.Second)
	})
}
