// Package live pushes change notifications to browsers over a websocket so
// open pages can reload after a revalidation.
package live

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

// Event is the message sent to every connected client.
type Event struct {
	Type string `json:"type"` // "revalidated", "theme" or "hello"
	Path string `json:"path,omitempty"`
	At   int64  `json:"at"` // unix millis
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	conn     *websocket.Conn
	send     chan Event
	identity string
}

// Hub fans events out to websocket clients. Slow clients are dropped rather
// than allowed to block a broadcast.
type Hub struct {
	identify func(*http.Request) string

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// Option configures a Hub.
type Option func(*Hub)

// WithIdentity tags each connection with fn(request) so SendTo can address
// it. Typically the visitor id from the session cookie.
func WithIdentity(fn func(*http.Request) string) Option {
	return func(h *Hub) { h.identify = fn }
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{clients: map[*client]struct{}{}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Broadcast queues ev for every client.
func (h *Hub) Broadcast(ev Event) {
	h.deliver(ev, func(*client) bool { return true })
}

// SendTo queues ev for the clients whose identity is id. An empty id
// matches nobody.
func (h *Hub) SendTo(id string, ev Event) {
	if id == "" {
		return
	}
	h.deliver(ev, func(c *client) bool { return c.identity == id })
}

func (h *Hub) deliver(ev Event, match func(*client) bool) {
	if ev.At == 0 {
		ev.At = time.Now().UnixMilli()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !match(c) {
			continue
		}
		select {
		case c.send <- ev:
		default:
			log.Warn("live: dropping slow client", "remote", c.conn.RemoteAddr())
			h.removeLocked(c)
		}
	}
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// ServeHTTP upgrades the request and streams events until the client goes
// away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("live: websocket upgrade", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan Event, sendBuffer)}
	if h.identify != nil {
		c.identity = h.identify(r)
	}
	c.send <- Event{Type: "hello", At: time.Now().UnixMilli()}
	if !h.add(c) {
		conn.Close()
		return
	}

	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop only exists to notice disconnects and answer pings.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("live: websocket read", "err", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				log.Debug("live: websocket write", "err", err)
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
