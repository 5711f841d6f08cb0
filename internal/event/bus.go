package event

import "sync"

// Handler processes a delivered event.
type Handler func(Event)

// PanicHandler is called when a handler panics during delivery.
type PanicHandler func(ev Event, recovered any)

// Subscription is a token used to unsubscribe a handler.
type Subscription int

// Bus delivers events synchronously, in publish order, to handlers in
// subscription order. Delivery matches the engine's single-threaded model:
// Publish returns only after every handler has run.
type Bus struct {
	mu      sync.Mutex
	subs    map[Topic][]subscriber
	nextSub Subscription
	onPanic PanicHandler
}

type subscriber struct {
	id      Subscription
	handler Handler
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPanicHandler installs a handler-panic callback. Without one, panics
// are swallowed so one bad subscriber cannot take down delivery.
func WithPanicHandler(fn PanicHandler) BusOption {
	return func(b *Bus) {
		b.onPanic = fn
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{subs: make(map[Topic][]subscriber)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(t Topic, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSub++
	b.subs[t] = append(b.subs[t], subscriber{id: b.nextSub, handler: h})
	return b.nextSub
}

// Unsubscribe removes a previously registered handler.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for t, list := range b.subs {
		for i, s := range list {
			if s.id == sub {
				b.subs[t] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every subscriber of its topic.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	list := make([]subscriber, len(b.subs[ev.Topic]))
	copy(list, b.subs[ev.Topic])
	b.mu.Unlock()

	for _, s := range list {
		b.deliver(s.handler, ev)
	}
}

// deliver runs one handler with panic isolation.
func (b *Bus) deliver(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil && b.onPanic != nil {
			b.onPanic(ev, r)
		}
	}()
	h(ev)
}

// SubscriberCount returns the number of handlers for a topic.
func (b *Bus) SubscriberCount(t Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[t])
}
