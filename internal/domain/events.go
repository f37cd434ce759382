package domain

import "time"

// EventType represents the type of coordination event
type EventType string

// Event types
const (
	EventProgrammaticScroll EventType = "ProgrammaticScroll"
	EventSectionLocked      EventType = "SectionLocked"
)

// EngineSource identifies scroll writes made by the snap engine itself
const EngineSource = "engine"

// CoordinationEvent is the interface for all coordination bus messages.
// The set is closed: only types in this package implement it.
type CoordinationEvent interface {
	Type() EventType
	coordination()
}

// ProgrammaticScrollEvent is published immediately before a component
// imperatively changes the scroll position
type ProgrammaticScrollEvent struct {
	Source string        // publishing component, EngineSource for the animator
	Target float64       // scroll position about to be written
	Hold   time.Duration // how long the source keeps control after the write
}

func (e ProgrammaticScrollEvent) Type() EventType { return EventProgrammaticScroll }
func (ProgrammaticScrollEvent) coordination()     {}

// SectionLockedEvent is published when a section becomes the authoritative current section
type SectionLockedEvent struct {
	SectionID string
	Index     int
	Position  float64
}

func (e SectionLockedEvent) Type() EventType { return EventSectionLocked }
func (SectionLockedEvent) coordination()     {}
