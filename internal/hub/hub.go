// internal/hub/hub.go
//
// Websocket fan-out of room events.
//
// Browsers open /ws?room=CODE and then only listen; every player action goes
// through the HTTP routes, which publish the outcome here with Broadcast.
// Messages are JSON objects {"action": ..., "data": ...}.

package hub

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32 // queued messages per client before it is dropped
)

// Message is the envelope written to every client.
type Message struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

// client owns one connection. Only writePump writes to conn; Broadcast
// queues onto send and never blocks.
type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// writePump drains send until it is closed or a write fails, then closes
// the connection, which also ends the read loop in ServeWS.
func (c *client) writePump(room string) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Warn().Err(err).Str("room", room).Msg("websocket write")
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// Hub tracks websocket clients per room code.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

// New returns a Hub accepting browser connections from origin. Requests
// without an Origin header (non-browser clients) are always accepted.
func New(origin string) *Hub {
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				o := r.Header.Get("Origin")
				return o == "" || o == origin
			},
		},
	}
}

// ServeWS upgrades the request and keeps the connection registered under
// room until the client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, room string) {
	room = strings.ToUpper(room)
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		log.Debug().Err(err).Str("room", room).Msg("websocket upgrade")
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(room, c)
	go c.writePump(room)
	log.Debug().Str("room", room).Msg("websocket connected")

	defer func() {
		h.remove(room, c)
		log.Debug().Str("room", room).Msg("websocket closed")
	}()

	// Inbound frames are ignored; reading surfaces the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) add(room string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]struct{})
	}
	h.rooms[room][c] = struct{}{}
}

// remove unregisters c and stops its writer.
func (h *Hub) remove(room string, c *client) {
	h.mu.Lock()
	delete(h.rooms[room], c)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
	h.mu.Unlock()
	c.close()
}

// Broadcast queues action/data for every client in room. A client whose
// queue is full is dropped rather than waited on.
func (h *Hub) Broadcast(room, action string, data any) {
	if h == nil {
		return
	}
	room = strings.ToUpper(room)
	msg, err := json.Marshal(Message{Action: action, Data: data})
	if err != nil {
		log.Error().Err(err).Str("room", room).Str("action", action).Msg("encode broadcast")
		return
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.rooms[room] {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Warn().Str("room", room).Str("action", action).Msg("websocket client too slow, dropping")
		h.remove(room, c)
	}
}

// Count returns the number of clients connected to room.
func (h *Hub) Count(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[strings.ToUpper(room)])
}
