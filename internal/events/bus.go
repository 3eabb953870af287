// Package events carries changed-entity notifications between application
// contexts (server handlers, admin tooling, catalog caches). Delivery is
// at-most-once with no persistence: a subscriber that attaches after a
// publish never sees that event, and there is no ordering guarantee across
// publishers. Each subscriber receives events in publish order.
package events

import (
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/rs/zerolog"
)

// Type tags an event with the entity collection that changed.
type Type string

const (
	ProductsChanged   Type = "products/changed"
	CategoriesChanged Type = "categories/changed"
)

// Event is a changed-entity notification. It carries no payload beyond its
// tag; consumers are expected to re-fetch rather than patch local state.
type Event struct {
	Type Type
}

const topic = "nagabalm/events"

// Bus is a fire-and-forget publish/subscribe channel for Events.
//
// Subscriptions are tracked by id inside Bus rather than handed to the
// underlying EventBus: EventBus.Unsubscribe matches handlers by function
// code pointer, so two closures from the same call site are
// indistinguishable to it. A single dispatcher is registered on the topic
// and fans out to the registry.
type Bus struct {
	bus    EventBus.Bus
	logger zerolog.Logger

	mu     sync.Mutex
	nextID uint64
	subs   []subscriber
}

type subscriber struct {
	id uint64
	fn func(Event)
}

// NewBus creates an event bus.
func NewBus(logger zerolog.Logger) *Bus {
	b := &Bus{
		bus:    EventBus.New(),
		logger: logger.With().Str("component", "event-bus").Logger(),
	}
	if err := b.bus.Subscribe(topic, b.dispatch); err != nil {
		b.logger.Error().Err(err).Msg("failed to attach event dispatcher")
	}
	return b
}

func (b *Bus) dispatch(evt Event) {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(evt)
	}
}

// Publish delivers the event to all current subscribers and returns.
// There is no delivery guarantee for subscribers attached afterwards.
func (b *Bus) Publish(evt Event) {
	b.logger.Debug().Str("event", string(evt.Type)).Msg("publishing event")
	b.bus.Publish(topic, evt)
}

// Subscribe attaches a handler and returns an unsubscribe function that
// detaches it. The handler is invoked synchronously on the publisher's
// goroutine, in publish order.
func (b *Bus) Subscribe(handler func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}
