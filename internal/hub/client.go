package hub

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/logger"
)

// Controls are the session operations a status client may trigger.
type Controls interface {
	StartConfiguration()
	StopConfiguration()
	SetControllerType(gamepad.ControllerType)
	SetShowIndicators(bool)
	HideKeyboard()
}

// Poster runs a function on the flight loop.
type Poster interface {
	Post(fn func())
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Send queues a message without blocking; it is dropped when the buffer is
// full.
func (c *Client) Send(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// ReadPumpWithHandler reads client commands and posts them onto the flight
// loop.
func (c *Client) ReadPumpWithHandler(loop Poster, controls Controls) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			logger.Warningf("parsing client message: %v", err)
			continue
		}
		if err := handleCommand(clientMsg, loop, controls); err != nil {
			data, _ := json.Marshal(NewErrorMessage(err.Error()))
			c.Send(data)
		}
	}
}
