package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionStoreCloseAll(t *testing.T) {
	store := NewConnectionStore()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		store.AddConnection(r.UserAgent(), conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	var clients []*websocket.Conn
	for _, ua := range []string{"a", "a", "b"} {
		conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"User-Agent": {ua}})
		require.NoError(t, err)
		defer conn.Close()
		clients = append(clients, conn)
	}
	require.Eventually(t, func() bool { return store.Count() == 3 }, time.Second, 10*time.Millisecond)

	store.CloseAll()
	assert.Zero(t, store.Count())
	for _, conn := range clients {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, _, err := conn.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	}
}

func TestConnectionStoreRemove(t *testing.T) {
	store := NewConnectionStore()
	a, b := &websocket.Conn{}, &websocket.Conn{}
	store.AddConnection("client", a)
	store.AddConnection("client", b)
	assert.Equal(t, 2, store.Count())

	store.RemoveConnection("client", a)
	assert.Equal(t, 1, store.Count())
	store.RemoveConnection("client", a)
	store.RemoveConnection("nobody", b)
	assert.Equal(t, 1, store.Count())
	store.RemoveConnection("client", b)
	assert.Zero(t, store.Count())
}
