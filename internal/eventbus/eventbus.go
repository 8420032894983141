// ABOUTME: Typed event bus with ordered, synchronous delivery for console components
// ABOUTME: Subscribers run in subscription order; unsubscribe is safe during Publish

package eventbus

// Handler is a callback function for events.
type Handler[T any] func(T)

type subscription[T any] struct {
	id      int
	handler Handler[T]
}

// Bus delivers events to handlers in the order they subscribed. It is
// owned by a single logical thread; it performs no locking.
type Bus[T any] struct {
	subs   []subscription[T]
	nextID int
}

// New creates a new event bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers a handler and returns an unsubscribe function.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription[T]{id: id, handler: handler})

	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all registered handlers synchronously.
// Handlers added or removed during delivery take effect on the next event.
func (b *Bus[T]) Publish(event T) {
	snapshot := b.subs
	for _, s := range snapshot {
		s.handler(event)
	}
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	return len(b.subs)
}
