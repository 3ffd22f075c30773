package inspector

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"

	"cubefield/internal/protocol"
)

const (
	reconnectInitial = 1 * time.Second
	reconnectMax     = 30 * time.Second

	// DefaultURL is where Watch connects when given an empty URL.
	DefaultURL = "ws://localhost:7878/ws"
)

// ErrNotConnected is returned by Ping while the watcher has no connection.
var ErrNotConnected = errors.New("inspector not connected")

// Watcher subscribes to a running game's inspector, reconnecting as needed.
type Watcher struct {
	serverURL string
	messages  chan protocol.Envelope
	logger    *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	done      chan struct{}
}

// Watch creates a Watcher and starts connecting to url.
func Watch(url string, logger *log.Logger) *Watcher {
	if url == "" {
		url = DefaultURL
	}
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		serverURL: url,
		messages:  make(chan protocol.Envelope, 256),
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go w.connectLoop()
	return w
}

func (w *Watcher) connectLoop() {
	defer close(w.done)
	delay := reconnectInitial
	for {
		if w.ctx.Err() != nil {
			return
		}

		w.logger.Debug("connecting", "url", w.serverURL)
		conn, _, err := websocket.Dial(w.ctx, w.serverURL, nil)
		if err != nil {
			w.logger.Warn("dial failed", "url", w.serverURL, "error", err, "retry", delay)
			select {
			case <-w.ctx.Done():
				return
			case <-time.After(delay):
			}
			if delay < reconnectMax {
				delay *= 2
				if delay > reconnectMax {
					delay = reconnectMax
				}
			}
			continue
		}

		w.mu.Lock()
		w.conn = conn
		w.connected = true
		w.mu.Unlock()
		delay = reconnectInitial
		w.logger.Info("connected", "url", w.serverURL)

		w.readLoop(conn)

		w.mu.Lock()
		w.connected = false
		w.conn = nil
		w.mu.Unlock()
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}
}

func (w *Watcher) readLoop(conn *websocket.Conn) {
	for {
		msgType, data, err := conn.Read(w.ctx)
		if err != nil {
			if w.ctx.Err() == nil &&
				websocket.CloseStatus(err) != websocket.StatusNormalClosure &&
				websocket.CloseStatus(err) != websocket.StatusGoingAway {
				w.logger.Warn("read failed", "error", err)
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		env, err := protocol.Unmarshal(data)
		if err != nil {
			w.logger.Warn("unmarshal failed", "error", err)
			continue
		}

		select {
		case w.messages <- env:
		default:
			w.logger.Warn("message channel full, dropping message", "type", env.Type)
		}
	}
}

// Messages delivers every envelope received from the game.
func (w *Watcher) Messages() <-chan protocol.Envelope {
	return w.messages
}

// IsConnected reports whether the WebSocket is open.
func (w *Watcher) IsConnected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

// Ping asks the game for a pong.
func (w *Watcher) Ping(ctx context.Context) error {
	w.mu.Lock()
	conn := w.conn
	w.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	data, err := protocol.Marshal(protocol.MsgPing, struct{}{})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}

// Close shuts down the WebSocket connection and stops reconnecting.
func (w *Watcher) Close() {
	w.cancel()
	w.mu.Lock()
	conn := w.conn
	w.mu.Unlock()
	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}
	<-w.done
}
