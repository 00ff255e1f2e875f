package websocket

// EventPublisher is how services announce ledger changes
type EventPublisher interface {
	Publish(event Event)
}

var _ EventPublisher = (*Hub)(nil)

// Publish broadcasts the event to interested clients
func (h *Hub) Publish(event Event) {
	h.Broadcast(event)
}

// PublisherFunc adapts a function to EventPublisher
type PublisherFunc func(event Event)

func (f PublisherFunc) Publish(event Event) {
	f(event)
}

// MultiPublisher publishes every event to each of its publishers in order
type MultiPublisher []EventPublisher

func (m MultiPublisher) Publish(event Event) {
	for _, p := range m {
		p.Publish(event)
	}
}
