package events

import (
	"runtime/debug"
	"sync"

	"github.com/MrSnakeDoc/waypoint/internal/logger"
)

// Handler is invoked synchronously for each published event.
type Handler func(Event)

// Bus is a synchronous in-process pub-sub mechanism. Handlers run on the
// publishing goroutine, in subscription order, before Publish returns.
// UI behaviors depend on that ordering, so delivery is never queued.
type Bus struct {
	mu     sync.Mutex
	subs   map[Type][]subscription
	nextID int
	logger logger.Logger
}

type subscription struct {
	id      int
	handler Handler
}

// NewBus creates an empty event bus.
func NewBus(log logger.Logger) *Bus {
	return &Bus{
		subs:   make(map[Type][]subscription),
		logger: log,
	}
}

// Subscribe registers a handler for an event type and returns an
// unsubscribe function.
func (b *Bus) Subscribe(t Type, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[t] = append(b.subs[t], subscription{id: id, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subs[t]
		for i, s := range subs {
			if s.id == id {
				b.subs[t] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every current subscriber of its type.
// A panicking handler is recovered and logged; remaining handlers still run.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs[e.Type]))
	copy(subs, b.subs[e.Type])
	b.mu.Unlock()

	for _, s := range subs {
		b.deliver(s.handler, e)
	}
}

func (b *Bus) deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic",
				logger.String("event", string(e.Type)),
				logger.String("panic", debugString(r)),
				logger.String("stack", string(debug.Stack())))
		}
	}()
	h(e)
}

func debugString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return "unknown panic"
}
