// Package inspector streams frame statistics of a running game to websocket
// subscribers, and provides the client that watches them.
package inspector

import (
	"sync"

	"github.com/charmbracelet/log"

	"cubefield/internal/protocol"
)

const broadcastBufferSize = 64

// Hub maintains the set of subscribed inspectors and broadcasts frame
// reports to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Outbound messages for every client.
	broadcast chan []byte

	// Register requests from clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Clients that sent a ping and are owed a pong.
	pings chan *Client

	// Stop signals the hub to shut down and close all clients.
	stop     chan struct{}
	stopOnce sync.Once

	info   protocol.HelloData
	logger *log.Logger
}

// NewHub creates a Hub that greets subscribers with info.
func NewHub(info protocol.HelloData, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		broadcast:  make(chan []byte, broadcastBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		pings:      make(chan *Client),
		stop:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		info:       info,
		logger:     logger.WithPrefix("inspector"),
	}
}

// Stop shuts down the hub: closes all client send channels and exits the Run loop.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// Run starts the hub's main event loop. It should be called in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case <-h.stop:
			h.flush()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			if msg, err := protocol.Marshal(protocol.MsgHello, h.info); err == nil {
				client.send <- msg
			}
			h.logger.Info("inspector attached", "id", client.ID, "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("inspector detached", "id", client.ID, "total", len(h.clients))
			}

		case client := <-h.pings:
			if _, ok := h.clients[client]; ok {
				if msg, err := protocol.Marshal(protocol.MsgPong, struct{}{}); err == nil {
					h.sendTo(client, msg)
				}
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				h.sendTo(client, message)
			}
		}
	}
}

// flush delivers whatever is still queued, so the final stop message
// reaches subscribers before they are closed.
func (h *Hub) flush() {
	for {
		select {
		case message := <-h.broadcast:
			for client := range h.clients {
				h.sendTo(client, message)
			}
		default:
			return
		}
	}
}

// Report queues a frame report for every subscriber. It never blocks: when
// the queue is full the report is dropped.
func (h *Hub) Report(f protocol.FrameData) {
	msg, err := protocol.Marshal(protocol.MsgFrame, f)
	if err != nil {
		h.logger.Error("marshal frame report", "error", err)
		return
	}
	h.enqueue(msg)
}

// Stopped tells subscribers that the game loop has ended.
func (h *Hub) Stopped(frames uint64) {
	msg, err := protocol.Marshal(protocol.MsgStop, protocol.StopData{Frames: frames})
	if err != nil {
		h.logger.Error("marshal stop", "error", err)
		return
	}
	h.enqueue(msg)
}

func (h *Hub) enqueue(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Debug("broadcast queue full, dropping message")
	}
}

// sendTo delivers msg or drops a client whose buffer is full.
// MUST be called only from the Hub.Run goroutine (which owns the clients map).
func (h *Hub) sendTo(client *Client, msg []byte) {
	select {
	case client.send <- msg:
	default:
		close(client.send)
		delete(h.clients, client)
		h.logger.Warn("inspector too slow, dropped", "id", client.ID)
	}
}

// join hands c to the hub unless it is stopping.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.stop:
		return false
	}
}

// leave removes c from the hub unless it is stopping.
func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stop:
	}
}

func (h *Hub) ping(c *Client) {
	select {
	case h.pings <- c:
	case <-h.stop:
	}
}
