package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog/log"

	"storysnap/internal/domain"
)

// Re-export domain types for convenience
type CoordinationEvent = domain.CoordinationEvent
type EventType = domain.EventType

// Event type constants
const (
	EventProgrammaticScroll = domain.EventProgrammaticScroll
	EventSectionLocked      = domain.EventSectionLocked
)

// Re-export domain event types
type ProgrammaticScrollEvent = domain.ProgrammaticScrollEvent
type SectionLockedEvent = domain.SectionLockedEvent

// EventHandler is a function that handles coordination events
type EventHandler func(CoordinationEvent)

// EventBus is the interface for the coordination bus
type EventBus interface {
	Publish(event CoordinationEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Delivery is synchronous on the publisher's goroutine so that handlers
// observe events in the order the engine produced them.
type bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[EventType][]subscription
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish delivers an event to all current subscribers in subscription order
func (b *bus) Publish(event CoordinationEvent) {
	if event == nil {
		return
	}

	b.mu.RLock()
	handlers := b.handlers[event.Type()]
	// Copy so handlers may subscribe or unsubscribe while we iterate
	handlersCopy := make([]subscription, len(handlers))
	copy(handlersCopy, handlers)
	b.mu.RUnlock()

	log.Debug().Str("event", string(event.Type())).Int("handlers", len(handlersCopy)).Msg("publishing")

	for _, sub := range handlersCopy {
		b.deliver(sub.handler, event)
	}
}

func (b *bus) deliver(h EventHandler, event CoordinationEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("event", string(event.Type())).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("event handler panic")
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			handlers := b.handlers[eventType]
			for i, s := range handlers {
				if s.id == id {
					// Fresh slice so in-flight copies are unaffected
					next := make([]subscription, 0, len(handlers)-1)
					next = append(next, handlers[:i]...)
					next = append(next, handlers[i+1:]...)
					b.handlers[eventType] = next
					break
				}
			}
		})
	}
}
