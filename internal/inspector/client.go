package inspector

import (
	"context"
	"time"

	"github.com/coder/websocket"

	"cubefield/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client is a middleman between one inspector's websocket and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// ID identifies the subscriber in logs.
	ID string
}

// NewClient creates a new Client.
func NewClient(hub *Hub, conn *websocket.Conn, id string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		ID:   id,
	}
}

// ReadPump reads inspector messages until the connection closes.
func (c *Client) ReadPump() {
	logger := c.hub.logger.With("id", c.ID)
	logger.Debug("read pump started")
	defer func() {
		logger.Debug("read pump stopped")
		c.hub.leave(c)
		_ = c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	ctx := context.Background()

	for {
		msgType, message, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure &&
				websocket.CloseStatus(err) != websocket.StatusGoingAway {
				logger.Debug("websocket read ended", "error", err)
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		env, err := protocol.Unmarshal(message)
		if err != nil {
			logger.Warn("unmarshal inspector message", "error", err)
			continue
		}

		switch env.Type {
		case protocol.MsgPing:
			c.hub.ping(c)
		default:
			logger.Warn("unknown message type", "type", env.Type)
		}
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for message := range c.send {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		err := c.conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			return
		}
	}
}
