package state

import "sync"

// ClientLocks hands out one mutex per client id. Entries are dropped once no
// goroutine holds or waits for them, so the map only grows with concurrency.
type ClientLocks struct {
	mu    sync.Mutex
	locks map[string]*clientLock
}

type clientLock struct {
	mut  sync.Mutex
	refs int
}

func NewClientLocks() *ClientLocks {
	return &ClientLocks{locks: make(map[string]*clientLock)}
}

// Lock blocks until the client's lock is held and returns its release func.
func (c *ClientLocks) Lock(clientID string) (unlock func()) {
	c.mu.Lock()
	l, exists := c.locks[clientID]
	if !exists {
		l = &clientLock{}
		c.locks[clientID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mut.Lock()
	return func() {
		l.mut.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, clientID)
		}
		c.mu.Unlock()
	}
}

func (c *ClientLocks) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.locks)
}
