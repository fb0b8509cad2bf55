// Package event carries host notifications to the effect's handlers.
package event

import "sync"

// Kind identifies an event type for subscription.
type Kind int

const (
	KindLevelChanged Kind = iota
	KindTap
)

func (k Kind) String() string {
	switch k {
	case KindLevelChanged:
		return "level-changed"
	case KindTap:
		return "tap"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers of its Kind.
type Event interface {
	Kind() Kind
}

// LevelChanged is published when the picker selection moves.
type LevelChanged struct {
	Old int
	New int
}

func (LevelChanged) Kind() Kind { return KindLevelChanged }

// Tap is published when a scene object is tapped.
type Tap struct {
	Target string // object name
}

func (Tap) Kind() Kind { return KindTap }

// Handler consumes one event.
type Handler func(Event)

type subscription struct {
	id uint64
	fn Handler
}

// Bus dispatches events synchronously. Handlers run to completion in
// registration order before Publish returns.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Kind][]subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]subscription)}
}

// Subscribe registers fn for events of kind and returns a function that
// removes the subscription. Calling it more than once is harmless.
func (b *Bus) Subscribe(kind Kind, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		list := b.subs[kind]
		for i, s := range list {
			if s.id == id {
				b.subs[kind] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every subscriber of its kind.
// Handlers may subscribe or publish; they see the subscriber list as it was
// when Publish was called.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	list := append([]subscription(nil), b.subs[e.Kind()]...)
	b.mu.Unlock()

	for _, s := range list {
		s.fn(e)
	}
}

// Subscribers returns the number of handlers registered for kind.
func (b *Bus) Subscribers(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[kind])
}
