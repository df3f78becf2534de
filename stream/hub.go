// Package stream serves simulation frames to websocket clients.
//
// A Hub is an http.Handler: each upgraded connection gets a uuid session id
// and its own write mutex, receives the latest frame on connect and every
// frame passed to Broadcast afterwards. Clients may send Commands back.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/katalvlaran/metatopia/manifold"
)

const writeWait = 5 * time.Second

// Command is a control message sent by a client.
type Command struct {
	// SetActiveChart asks the simulation to switch the active chart.
	SetActiveChart *uint32 `json:"set_active_chart,omitempty"`
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithCommandHandler installs fn to receive client commands. fn runs on
// the client's read goroutine.
func WithCommandHandler(fn func(session uuid.UUID, cmd Command)) HubOption {
	return func(h *Hub) { h.onCommand = fn }
}

// WithCheckOrigin replaces the origin check; the default accepts all
// origins.
func WithCheckOrigin(fn func(*http.Request) bool) HubOption {
	return func(h *Hub) { h.upgrader.CheckOrigin = fn }
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	mu   sync.Mutex // serialises writes
}

func (c *client) write(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Hub tracks connected clients.
type Hub struct {
	upgrader  websocket.Upgrader
	onCommand func(uuid.UUID, Command)

	mu      sync.RWMutex // guards clients and latest
	clients map[uuid.UUID]*client
	latest  []byte
}

// NewHub returns a Hub with no clients.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[uuid.UUID]*client),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request and serves the client until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		manifold.Logger().Warn("stream: upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := &client{id: uuid.New(), conn: conn}

	h.mu.Lock()
	h.clients[c.id] = c
	latest := h.latest
	h.mu.Unlock()
	manifold.Logger().Debug("stream: client connected", "session", c.id.String(), "remote", r.RemoteAddr)

	defer h.drop(c)

	if latest != nil {
		if err := c.write(latest); err != nil {
			return
		}
	}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			manifold.Logger().Warn("stream: bad command", "session", c.id.String(), "err", err)
			continue
		}
		if h.onCommand != nil {
			h.onCommand(c.id, cmd)
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()
	if ok {
		_ = c.conn.Close()
		manifold.Logger().Debug("stream: client gone", "session", c.id.String())
	}
}

// Broadcast sends f to every client and remembers it for new ones. Clients
// whose write fails are disconnected. It returns the number of clients
// reached.
func (h *Hub) Broadcast(f Frame) (int, error) {
	msg, err := json.Marshal(f)
	if err != nil {
		return 0, err
	}

	h.mu.Lock()
	h.latest = msg
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	sent := 0
	for _, c := range targets {
		if err := c.write(msg); err != nil {
			manifold.Logger().Warn("stream: write failed", "session", c.id.String(), "err", err)
			h.drop(c)
			continue
		}
		sent++
	}
	return sent, nil
}

// Sessions returns the ids of connected clients.
func (h *Hub) Sessions() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]uuid.UUID, 0, len(h.clients))
	for id := range h.clients {
		out = append(out, id)
	}
	return out
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[uuid.UUID]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.mu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"), time.Now().Add(writeWait))
		c.mu.Unlock()
		_ = c.conn.Close()
	}
}
