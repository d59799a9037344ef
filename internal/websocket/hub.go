package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-crm/internal/dispatch"
)

var ErrNoClients = errors.New("websocket: account has no open browser session")

const (
	EventConnected    = "connected"
	EventDispatchOpen = "dispatch.open"
	EventDispatchDone = "dispatch.done"
)

type Message struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessage(eventType string, data any) *Message {
	return &Message{Type: eventType, Data: data, Timestamp: time.Now().UTC()}
}

// Hub keeps the open browser sockets per account.
type Hub struct {
	clients map[uuid.UUID]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	// done is closed once Run has returned.
	done chan struct{}

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// Register hands client to the running hub. After Run has returned the
// client is closed instead and Register reports false.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		client.Close()
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true
	h.mu.Unlock()

	h.logger.Debug("websocket client connected", zap.String("user_id", client.userID.String()))

	client.Send(NewMessage(EventConnected, map[string]any{
		"user_id": client.userID,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()
			if len(clients) == 0 {
				delete(h.clients, client.userID)
			}
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
	h.clients = make(map[uuid.UUID]map[*Client]bool)
}

// SendTo pushes msg to every socket of the account.
func (h *Hub) SendTo(userID uuid.UUID, msg *Message) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.clients[userID]
	if len(clients) == 0 {
		return ErrNoClients
	}
	for client := range clients {
		client.Send(msg)
	}
	return nil
}

type dispatchOpen struct {
	JobID  string    `json:"job_id"`
	LeadID uuid.UUID `json:"lead_id"`
	Name   string    `json:"name"`
	URL    string    `json:"url"`
}

// Open hands the WhatsApp link to the browser, which opens the tab.
func (h *Hub) Open(_ context.Context, ownerID uuid.UUID, jobID string, item dispatch.Item) error {
	return h.SendTo(ownerID, NewMessage(EventDispatchOpen, dispatchOpen{
		JobID:  jobID,
		LeadID: item.LeadID,
		Name:   item.Name,
		URL:    item.Link,
	}))
}

// NotifyDone tells the browser a bulk dispatch settled.
func (h *Hub) NotifyDone(ownerID uuid.UUID, res dispatch.Result) {
	if err := h.SendTo(ownerID, NewMessage(EventDispatchDone, res)); err != nil && !errors.Is(err, ErrNoClients) {
		h.logger.Warn("dispatch completion not delivered", zap.Error(err))
	}
}

func encode(msg *Message) ([]byte, error) {
	return json.Marshal(msg)
}
