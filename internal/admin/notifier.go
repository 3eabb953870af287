package admin

import "nagabalm/internal/events"

// BusNotifier publishes changed events on the shared event bus. The
// catalog stores subscribed to the same bus invalidate their caches in
// response.
type BusNotifier struct {
	bus *events.Bus
}

// NewBusNotifier creates a notifier over the given bus.
func NewBusNotifier(bus *events.Bus) *BusNotifier {
	return &BusNotifier{bus: bus}
}

// ProductsChanged publishes a products changed event.
func (n *BusNotifier) ProductsChanged() {
	n.bus.Publish(events.Event{Type: events.ProductsChanged})
}

// CategoriesChanged publishes a categories changed event.
func (n *BusNotifier) CategoriesChanged() {
	n.bus.Publish(events.Event{Type: events.CategoriesChanged})
}
