package event

import (
	"sync"

	"github.com/google/uuid"
)

// Event is anything published on the bus.
type Event interface{}

// Handler receives published events.
type Handler func(Event)

type subscription struct {
	id uuid.UUID
	fn Handler
}

// Bus dispatches events synchronously on the publishing goroutine, in
// subscription order.
type Bus struct {
	mu   sync.RWMutex
	subs []subscription
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a handle for Unsubscribe.
func (b *Bus) Subscribe(fn Handler) uuid.UUID {
	id := uuid.New()
	b.mu.Lock()
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	b.mu.Unlock()
	return id
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every handler with e. Handlers may subscribe or unsubscribe
// while being called; the change applies from the next Publish.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(e)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
