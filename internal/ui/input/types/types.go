package types

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	SectionCount() int
	PagerOpen() bool
}
