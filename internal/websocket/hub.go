package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrClientClosed is returned when sending to a closed client
	ErrClientClosed = errors.New("client is closed")
	// ErrSendBufferFull is returned when a client is not draining its queue
	ErrSendBufferFull = errors.New("client send buffer full")
)

// ClientInterface is what the hub needs from a connection. Clients that also
// implement Subscriber only receive the events they want.
type ClientInterface interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Hub fans ledger change events out to connected clients. Safe for concurrent use.
type Hub struct {
	clients map[string]ClientInterface
	mu      sync.RWMutex
	logger  zerolog.Logger
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]ClientInterface),
		logger:  log.With().Str("component", "ws_hub").Logger(),
	}
}

// Register adds a client
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	h.clients[client.ID()] = client
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug().
		Str("client_id", client.ID()).
		Int("client_count", count).
		Msg("WebSocket client registered")
}

// Unregister removes a client; unknown clients are ignored
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	_, exists := h.clients[client.ID()]
	delete(h.clients, client.ID())
	h.mu.Unlock()

	if exists {
		h.logger.Debug().
			Str("client_id", client.ID()).
			Msg("WebSocket client unregistered")
	}
}

// Broadcast serializes event once and sends it to every interested client
func (h *Hub) Broadcast(event Event) {
	data, err := event.ToJSON()
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	recipients := h.recipients(event)
	for _, client := range recipients {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				h.logger.Warn().
					Err(err).
					Str("client_id", c.ID()).
					Msg("Failed to send to client")
			}
		}(client)
	}

	h.logger.Debug().
		Str("event_type", event.Type).
		Str("month", event.Month).
		Int("recipients", len(recipients)).
		Msg("Broadcast event")
}

// recipients snapshots the interested clients so sends happen outside the lock
func (h *Hub) recipients(event Event) []ClientInterface {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]ClientInterface, 0, len(h.clients))
	for _, client := range h.clients {
		if s, ok := client.(Subscriber); ok && !s.Wants(event) {
			continue
		}
		result = append(result, client)
	}
	return result
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
