package inspector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/coder/websocket"
)

// Server exposes the hub over HTTP.
type Server struct {
	Hub  *Hub
	Addr string
	http *http.Server

	subscribers atomic.Uint64
}

// NewServer creates a Server on the given address.
func NewServer(addr string, hub *Hub) *Server {
	s := &Server{
		Hub:  hub,
		Addr: addr,
	}
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	return s
}

// nextID returns a unique subscriber ID.
func (s *Server) nextID() string {
	return fmt.Sprintf("inspector-%d", s.subscribers.Add(1))
}

// Handler serves the websocket endpoint at /ws and the app description at /.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/", s.handleInfo)
	return mux
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Hub.info)
}

// handleWebSocket upgrades the HTTP connection to a WebSocket and registers
// the new client with the hub.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // local development tool
	})
	if err != nil {
		s.Hub.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	remoteAddr := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		remoteAddr = host
	}

	client := NewClient(s.Hub, conn, s.nextID())
	if !s.Hub.join(client) {
		_ = conn.Close(websocket.StatusGoingAway, "shutting down")
		return
	}
	s.Hub.logger.Debug("websocket connected", "remote", remoteAddr, "id", client.ID)

	// Start the read and write pumps in separate goroutines.
	go client.WritePump()
	go client.ReadPump()
}

// Run starts the hub and the HTTP server. It blocks until Shutdown.
func (s *Server) Run() error {
	go s.Hub.Run()

	s.Hub.logger.Info("inspector listening", "addr", s.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the HTTP server and the hub.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Hub.Stop()
	return s.http.Shutdown(ctx)
}
