package handler

import (
	"net/http"
	"strings"

	"github.com/dafibh/fortuna/ledger-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades ledger viewers to a change-notification stream
type WebSocketHandler struct {
	hub            *websocket.Hub
	allowedOrigins map[string]bool
	allowAny       bool
	upgrader       ws.Upgrader
}

// NewWebSocketHandler creates a handler accepting the given browser origins.
// A "*" entry accepts every origin.
func NewWebSocketHandler(hub *websocket.Hub, allowedOrigins []string) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:            hub,
		allowedOrigins: make(map[string]bool, len(allowedOrigins)),
	}
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			h.allowAny = true
		}
		h.allowedOrigins[origin] = true
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	// Non-browser clients send no Origin
	if origin == "" || h.allowAny || h.allowedOrigins[origin] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles GET /ws[?months=YYYY-MM,YYYY-MM]. Without months the client
// receives the status events of every month; it can change its subscription
// later with subscribe/unsubscribe frames.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	months, err := parseMonthsParam(c.QueryParam("months"))
	if err != nil {
		return NewValidationError(c, "Invalid months", []ValidationError{
			{Field: "months", Message: err.Error()},
		})
	}

	// On failure the upgrader has already written the error response
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket upgrade failed")
		return nil
	}

	client := websocket.NewClient(conn, h.hub, months...)
	h.hub.Register(client)

	log.Info().
		Str("client_id", client.ID()).
		Str("remote_addr", c.RealIP()).
		Strs("months", months).
		Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}

func parseMonthsParam(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	months := make([]string, 0, len(parts))
	for _, p := range parts {
		month, err := websocket.ParseMonthKey(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		months = append(months, month)
	}
	return months, nil
}
