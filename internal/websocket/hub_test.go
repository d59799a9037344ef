package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/dispatch"
)

var testUpgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

// startHub serves a socket for userID and returns the browser side of it.
func startHub(t *testing.T, userID uuid.UUID) (*Hub, *websocket.Conn) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, userID)
		if !hub.Register(client) {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		srv.Close()
	})
	return hub, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestHubOpenPushesLinkToOwner(t *testing.T) {
	owner := uuid.New()
	hub, conn := startHub(t, owner)

	assert.Equal(t, EventConnected, readMessage(t, conn).Type)

	err := hub.Open(context.Background(), owner, "job-1", dispatch.Item{
		LeadID: uuid.New(),
		Name:   "Maria",
		Link:   "https://wa.me/5585999990000?text=Oi",
	})
	require.NoError(t, err)

	msg := readMessage(t, conn)
	assert.Equal(t, EventDispatchOpen, msg.Type)
	data := msg.Data.(map[string]any)
	assert.Equal(t, "job-1", data["job_id"])
	assert.Equal(t, "https://wa.me/5585999990000?text=Oi", data["url"])
}

func TestHubOpenWithoutBrowser(t *testing.T) {
	hub, conn := startHub(t, uuid.New())
	readMessage(t, conn)

	err := hub.Open(context.Background(), uuid.New(), "job-2", dispatch.Item{})
	assert.ErrorIs(t, err, ErrNoClients)
}

func TestHubAfterShutdownDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	client := &Client{hub: hub, userID: uuid.New(), send: make(chan []byte, 1)}

	registered := make(chan bool, 1)
	go func() { registered <- hub.Register(client) }()

	select {
	case ok := <-registered:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Register blocked after the hub stopped")
	}

	left := make(chan struct{})
	go func() {
		hub.leave(client)
		close(left)
	}()

	select {
	case <-left:
	case <-time.After(time.Second):
		t.Fatal("leave blocked after the hub stopped")
	}

	_, open := <-client.send
	assert.False(t, open)
}

func TestHubLeaveRemovesClient(t *testing.T) {
	owner := uuid.New()
	hub, conn := startHub(t, owner)
	readMessage(t, conn)

	require.NoError(t, hub.SendTo(owner, NewMessage(EventConnected, nil)))
	readMessage(t, conn)

	hub.mu.RLock()
	var client *Client
	for c := range hub.clients[owner] {
		client = c
	}
	hub.mu.RUnlock()
	require.NotNil(t, client)

	hub.leave(client)
	assert.Eventually(t, func() bool {
		return errors.Is(hub.SendTo(owner, NewMessage(EventConnected, nil)), ErrNoClients)
	}, time.Second, 10*time.Millisecond)
}
