package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// writeWait is time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// pongWait is time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds inbound subscription frames
	maxMessageSize = 512

	sendBufferSize = 256
)

// Client is one ledger viewer connected over WebSocket. It receives template
// events and the status events of the months it subscribed to.
type Client struct {
	id      string
	conn    *websocket.Conn
	hub     *Hub
	send    chan []byte
	filter  *MonthFilter
	logger  zerolog.Logger
	closed  bool
	mu      sync.RWMutex
	closeMu sync.Once
}

// NewClient creates a client watching months (all months when none are given)
func NewClient(conn *websocket.Conn, hub *Hub, months ...string) *Client {
	id := uuid.NewString()
	return &Client{
		id:     id,
		conn:   conn,
		hub:    hub,
		send:   make(chan []byte, sendBufferSize),
		filter: NewMonthFilter(months...),
		logger: log.With().Str("component", "ws_client").Str("client_id", id).Logger(),
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() string {
	return c.id
}

// Wants implements Subscriber
func (c *Client) Wants(event Event) bool {
	return c.filter.Wants(event)
}

// Send queues a message. A full buffer means the client is too slow and the
// message is dropped.
func (c *Client) Send(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close closes the connection. Safe to call more than once.
func (c *Client) Close() error {
	var closeErr error
	c.closeMu.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()

		closeErr = c.conn.Close()
	})
	return closeErr
}

// ReadPump reads subscription commands until the connection drops, then
// unregisters the client. Run it in its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("WebSocket unexpected close")
			}
			return
		}
		c.handleCommand(data)
	}
}

func (c *Client) handleCommand(data []byte) {
	var cmd command
	if err := json.Unmarshal(data, &cmd); err != nil {
		c.logger.Debug().Err(err).Msg("Ignoring malformed frame")
		return
	}
	if err := c.filter.apply(cmd); err != nil {
		c.logger.Debug().Err(err).Msg("Ignoring invalid command")
		return
	}
	c.logger.Debug().
		Str("action", cmd.Action).
		Str("month", cmd.Month).
		Msg("Subscription changed")
}

// WritePump writes queued events and keepalive pings. Run it in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Warn().Err(err).Msg("WebSocket write error")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
