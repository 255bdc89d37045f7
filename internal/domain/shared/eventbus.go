package shared

import "context"

// EventHandler consumes domain events dispatched by the bus.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes names the events the handler wants; empty means all.
	EventTypes() []string
}

// EventPublisher is the side services see: fire events after commit.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers handlers. Subscribing with no event types
// delivers everything.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the full in-process bus: publish, subscribe, and lifecycle.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
