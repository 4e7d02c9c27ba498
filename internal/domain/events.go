package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventIndexChanged      EventType = "IndexChanged"
	EventEndReached        EventType = "EndReached"
	EventItemActive        EventType = "ItemActive"
	EventItemInactive      EventType = "ItemInactive"
	EventPreloadHint       EventType = "PreloadHint"
	EventNavigationStalled EventType = "NavigationStalled"
	EventItemCountChanged  EventType = "ItemCountChanged"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// IndexChangedEvent is emitted after the navigation core accepts an index change
type IndexChangedEvent struct {
	Index  int
	Source Source
}

func (e IndexChangedEvent) Type() EventType { return EventIndexChanged }

// EndReachedEvent is emitted when the active index comes within the end-reached threshold
type EndReachedEvent struct {
	Info EndReachedInfo
}

func (e EndReachedEvent) Type() EventType { return EventEndReached }

// ItemActiveEvent is emitted when an item becomes the active one
type ItemActiveEvent struct {
	Index int
}

func (e ItemActiveEvent) Type() EventType { return EventItemActive }

// ItemInactiveEvent is emitted when an item stops being the active one
type ItemInactiveEvent struct {
	Index int
}

func (e ItemInactiveEvent) Type() EventType { return EventItemInactive }

// PreloadHintEvent lists the indices that should be preloaded around the active item
type PreloadHintEvent struct {
	Active  int
	Indices []int
}

func (e PreloadHintEvent) Type() EventType { return EventPreloadHint }

// NavigationStalledEvent is emitted when a stale navigation lock had to be cleared
type NavigationStalledEvent struct {
	Index   int
	Elapsed time.Duration
}

func (e NavigationStalledEvent) Type() EventType { return EventNavigationStalled }

// ItemCountChangedEvent is emitted when the host changes the number of items
type ItemCountChangedEvent struct {
	Count int
	Index int
}

func (e ItemCountChangedEvent) Type() EventType { return EventItemCountChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
