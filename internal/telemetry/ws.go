package telemetry

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	clientSendBuf  = 32
	wsWriteTimeout = 10 * time.Second
)

// Hub fans reading frames out to connected websocket clients. Each client
// gets a buffered send queue and its own write pump so one slow consumer
// can't stall the rest; a client whose queue fills is dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*hubClient]struct{}
	latest  []byte
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*hubClient]struct{})}
}

// Broadcast queues a frame for every connected client and keeps it as the
// latest snapshot for new connections and the REST endpoint.
func (h *Hub) Broadcast(frame []byte) {
	if frame == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = frame
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			// Queue full: the client can't keep up at frame rate.
			delete(h.clients, c)
			close(c.send)
			if c.conn != nil {
				_ = c.conn.Close()
			}
		}
	}
}

// Latest returns the most recent broadcast frame, if any.
func (h *Hub) Latest() ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest, h.latest != nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	// Seed new clients with the latest reading immediately.
	if h.latest != nil {
		select {
		case c.send <- h.latest:
		default:
		}
	}
}

func (h *Hub) remove(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Server exposes the live reading over HTTP: /api/reading returns the
// latest JSON snapshot, /ws streams every reading as JSON text frames.
type Server struct {
	hub *Hub
	srv *http.Server
}

var upgrader = websocket.Upgrader{
	// The meter serves on a LAN for its own companion pages; any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewServer builds a server around the hub on the given listen address.
func NewServer(addr string, hub *Hub) *Server {
	mux := http.NewServeMux()
	s := &Server{hub: hub}

	mux.HandleFunc("/api/reading", func(w http.ResponseWriter, r *http.Request) {
		frame, ok := hub.Latest()
		if !ok {
			http.Error(w, "no reading yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(frame)
	})
	mux.HandleFunc("/ws", s.handleWS)

	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("telemetry server: %v", err)
		}
	}()
}

// Close shuts the server down.
func (s *Server) Close() {
	_ = s.srv.Close()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &hubClient{conn: conn, send: make(chan []byte, clientSendBuf)}
	s.hub.add(c)

	// Read pump: we never expect client frames, but reading surfaces
	// disconnects.
	go func() {
		defer s.hub.remove(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Write pump.
	go func() {
		defer conn.Close()
		for frame := range c.send {
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		}
	}()
}
