package domain

// Orientation is the paging axis of a deck
type Orientation string

const (
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

// Direction is the text direction; it only matters for horizontal decks
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// Behavior selects how a scroll command is animated
type Behavior string

const (
	BehaviorSmooth  Behavior = "smooth"
	BehaviorInstant Behavior = "instant"
	BehaviorAuto    Behavior = "auto"
)

// Source identifies what caused an index change
type Source string

const (
	SourceGesture      Source = "user:gesture"
	SourceWheel        Source = "user:wheel"
	SourceKeyboard     Source = "user:keyboard"
	SourceProgrammatic Source = "programmatic"
	SourceSnap         Source = "snap"
)

// EndDirection tells which end of the deck is being approached
type EndDirection string

const (
	EndForward  EndDirection = "forward"
	EndBackward EndDirection = "backward"
)

// State is the host-facing snapshot of a deck
type State struct {
	Index       int
	IsAnimating bool
	CanPrev     bool
	CanNext     bool
}

// EndReachedInfo is passed to end-reached callbacks
type EndReachedInfo struct {
	DistanceFromEnd int
	Direction       EndDirection
}

// VirtualItem is one rendered entry of the virtualization collaborator
type VirtualItem struct {
	Index  int
	Key    string
	Offset float64
	Size   float64
}

// End returns the exclusive end offset of the item
func (v VirtualItem) End() float64 {
	return v.Offset + v.Size
}

// Intent is a requested index transition, consumed synchronously by the navigation core
type Intent struct {
	TargetIndex int
	Source      Source
	Behavior    Behavior
}

// IsVertical reports whether the orientation pages along the Y axis.
// Anything that is not explicitly horizontal is treated as vertical.
func (o Orientation) IsVertical() bool {
	return o != OrientationHorizontal
}

// Axis returns the CSS-style snap axis letter for the orientation
func (o Orientation) Axis() string {
	if o.IsVertical() {
		return "y"
	}
	return "x"
}
