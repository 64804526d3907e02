package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type ConnectionStore interface {
	AddConnection(clientID string, conn *websocket.Conn)
	RemoveConnection(clientID string, conn *websocket.Conn)
	Count() int
	CloseAll()
}

// InMemoryConnectionStore tracks open play channels. A client may hold
// several at once, for example from two browser tabs.
type InMemoryConnectionStore struct {
	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]struct{}
}

func NewConnectionStore() ConnectionStore {
	return &InMemoryConnectionStore{
		conns: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (c *InMemoryConnectionStore) AddConnection(clientID string, wssConn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clientConns, exists := c.conns[clientID]
	if !exists {
		clientConns = make(map[*websocket.Conn]struct{})
		c.conns[clientID] = clientConns
	}
	clientConns[wssConn] = struct{}{}
}

func (c *InMemoryConnectionStore) RemoveConnection(clientID string, wssConn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clientConns, exists := c.conns[clientID]
	if !exists {
		return
	}
	delete(clientConns, wssConn)
	if len(clientConns) == 0 {
		delete(c.conns, clientID)
	}
}

func (c *InMemoryConnectionStore) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, clientConns := range c.conns {
		n += len(clientConns)
	}
	return n
}

// CloseAll sends a going-away close frame on every connection and closes it.
func (c *InMemoryConnectionStore) CloseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for clientID, clientConns := range c.conns {
		for wssConn := range clientConns {
			_ = wssConn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			_ = wssConn.Close()
		}
		delete(c.conns, clientID)
	}
}
