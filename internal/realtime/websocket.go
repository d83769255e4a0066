// internal/realtime/websocket.go
package realtime

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebSocketConn wraps websocket.Conn so the hub does not depend on it.
type WebSocketConn struct {
	Conn *websocket.Conn
}

func NewWebSocketConn(c *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}

func NewClient(email string, c *websocket.Conn) *Client {
	return &Client{
		ID:    uuid.NewString(),
		Email: email,
		Conn:  NewWebSocketConn(c),
		Send:  make(chan []byte, 64),
	}
}

// WritePump copies queued messages to the socket until Send is closed.
func (c *Client) WritePump() {
	for msg := range c.Send {
		if err := c.Conn.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.Conn.Conn.WriteMessage(websocket.CloseMessage, nil)
}
