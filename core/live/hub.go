package live

import (
	"net/http"
	"sync"
	"time"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"

	"github.com/gorilla/websocket"
)

// EventType is the kind of lifecycle event pushed to listeners.
type EventType string

const (
	EventStarted EventType = "started"
	EventEnded   EventType = "ended"
)

// Event is one live-session lifecycle notification.
type Event struct {
	Type       EventType `json:"type"`
	SessionID  string    `json:"sessionId"`
	ArtistID   string    `json:"artistId"`
	ArtistName string    `json:"artistName,omitempty"`
	Name       string    `json:"name,omitempty"`
	Timestamp  int64     `json:"timestamp"`
}

const (
	writeWait      = 10 * time.Second
	clientBuffer   = 16
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API gateway already terminates auth; origins are not re-checked here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans live-session events out to every connected websocket listener.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Broadcast queues an event for every connected listener. Slow listeners are
// dropped rather than allowed to stall the rest.
func (h *Hub) Broadcast(ev Event) {
	ev.Timestamp = time.Now().Unix()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			go h.remove(c)
		}
	}
}

// ServeWS upgrades the request and subscribes the connection to events.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", logger.ErrorField(err))
		return
	}

	c := &client{conn: conn, send: make(chan Event, clientBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump(h)
	go c.readPump(h)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

// readPump discards inbound frames; the stream is one-way. It exists to
// notice the close handshake and ping/pong traffic.
func (c *client) readPump(h *Hub) {
	defer h.remove(c)
	c.conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump(h *Hub) {
	defer h.remove(c)
	for ev := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(ev); err != nil {
			return
		}
	}
	// Channel closed by remove; send the close frame.
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
