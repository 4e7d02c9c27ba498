package virtual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swipedeck/internal/domain"
)

type scrollCall struct {
	offset   float64
	behavior domain.Behavior
}

type fakeTarget struct {
	calls []scrollCall
}

func (f *fakeTarget) ScrollTo(offset float64, behavior domain.Behavior) {
	f.calls = append(f.calls, scrollCall{offset, behavior})
}

func indices(items []domain.VirtualItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Index
	}
	return out
}

func TestFullPageItemsUseContainerSize(t *testing.T) {
	v := New(Options{Count: 10})
	v.SetContainerSize(20)

	assert.InDelta(t, 20.0, v.Size(3), 0.001)
	assert.InDelta(t, 60.0, v.Offset(3), 0.001)
	assert.InDelta(t, 200.0, v.TotalSize(), 0.001)
	assert.True(t, v.Measured())
}

func TestVisibleWindowWithOverscan(t *testing.T) {
	v := New(Options{Count: 10, Overscan: 1})
	v.SetContainerSize(20)
	v.SetScrollOffset(40)

	assert.Equal(t, []int{1, 2, 3}, indices(v.VirtualItems()))

	v.SetScrollOffset(50)
	assert.Equal(t, []int{1, 2, 3, 4}, indices(v.VirtualItems()), "a split viewport shows two items")
}

func TestVisibleWindowClampsAtEdges(t *testing.T) {
	v := New(Options{Count: 3, Overscan: 5})
	v.SetContainerSize(10)
	assert.Equal(t, []int{0, 1, 2}, indices(v.VirtualItems()))

	v.SetScrollOffset(1000)
	items := v.VirtualItems()
	require.NotEmpty(t, items)
	assert.Equal(t, 2, items[len(items)-1].Index)
}

func TestEmpty(t *testing.T) {
	v := New(Options{})
	assert.Empty(t, v.VirtualItems())
	assert.Zero(t, v.TotalSize())
	assert.Zero(t, v.Offset(4))
}

func TestMeasureOverridesEstimate(t *testing.T) {
	v := New(Options{Count: 4, EstimatedSize: func(int) float64 { return 10 }})
	v.Measure(1, 30)
	assert.InDelta(t, 40.0, v.Offset(2), 0.001)
	assert.InDelta(t, 60.0, v.TotalSize(), 0.001)

	v.Measure(9, 100) // out of range
	assert.InDelta(t, 60.0, v.TotalSize(), 0.001)
}

func TestSetCountDropsMeasurements(t *testing.T) {
	v := New(Options{Count: 4, EstimatedSize: func(int) float64 { return 10 }})
	v.Measure(3, 50)
	v.SetCount(2)
	v.SetCount(4)
	assert.InDelta(t, 10.0, v.Size(3), 0.001)
}

func TestItemKeys(t *testing.T) {
	v := New(Options{Count: 2, ItemKey: func(i int) string { return []string{"a", "b"}[i] }})
	items := v.VirtualItems()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Key)
}

func TestScrollToIndexAlignments(t *testing.T) {
	target := &fakeTarget{}
	v := New(Options{Count: 10, EstimatedSize: func(int) float64 { return 10 }})
	v.SetContainerSize(30)
	v.Bind(target)

	v.ScrollToIndex(4, ScrollToIndexOptions{Align: AlignStart, Behavior: domain.BehaviorInstant})
	v.ScrollToIndex(4, ScrollToIndexOptions{Align: AlignCenter})
	v.ScrollToIndex(4, ScrollToIndexOptions{Align: AlignEnd})
	v.ScrollToIndex(9, ScrollToIndexOptions{})

	assert.Equal(t, []scrollCall{
		{40, domain.BehaviorInstant},
		{30, domain.BehaviorAuto},
		{20, domain.BehaviorAuto},
		{70, domain.BehaviorAuto}, // clamped to total - container
	}, target.calls)
}

func TestScrollToIndexAutoSkipsVisibleItems(t *testing.T) {
	target := &fakeTarget{}
	v := New(Options{Count: 10, EstimatedSize: func(int) float64 { return 10 }})
	v.SetContainerSize(30)
	v.Bind(target)
	v.SetScrollOffset(20)

	v.ScrollToIndex(3, ScrollToIndexOptions{Align: AlignAuto})
	assert.Empty(t, target.calls)

	v.ScrollToIndex(0, ScrollToIndexOptions{Align: AlignAuto})
	v.ScrollToIndex(8, ScrollToIndexOptions{Align: AlignAuto})
	assert.Equal(t, []scrollCall{{0, domain.BehaviorAuto}, {60, domain.BehaviorAuto}}, target.calls)
}

func TestScrollToIndexWithoutTarget(t *testing.T) {
	v := New(Options{Count: 3})
	assert.NotPanics(t, func() { v.ScrollToIndex(1, ScrollToIndexOptions{}) })
}
