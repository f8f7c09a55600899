package stream

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub is the set of connected clients. Each connection has its own write
// lock since gorilla connections allow one concurrent writer.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*sync.Mutex)}
}

func (h *Hub) Add(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = &sync.Mutex{}
	h.mu.Unlock()
}

func (h *Hub) Remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send writes v as JSON to one client.
func (h *Hub) Send(c *websocket.Conn, v any) error {
	h.mu.RLock()
	lock, ok := h.clients[c]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	lock.Lock()
	defer lock.Unlock()
	return c.WriteJSON(v)
}

// Broadcast writes msg to every client and drops the ones that fail. It
// returns the number of dropped clients.
func (h *Hub) Broadcast(msg *websocket.PreparedMessage) int {
	var failed []*websocket.Conn
	h.mu.RLock()
	for c, lock := range h.clients {
		lock.Lock()
		err := c.WritePreparedMessage(msg)
		lock.Unlock()
		if err != nil {
			failed = append(failed, c)
		}
	}
	h.mu.RUnlock()

	if len(failed) > 0 {
		h.mu.Lock()
		for _, c := range failed {
			delete(h.clients, c)
			c.Close()
		}
		h.mu.Unlock()
	}
	return len(failed)
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.Close()
		delete(h.clients, c)
	}
}
