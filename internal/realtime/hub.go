// internal/realtime/hub.go
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EventUserRoleChanged = "user.role_changed"
	EventGuideApproved   = "guide.approved"
	EventBookingCreated  = "booking.created"
)

// Event is what websocket clients receive. Empty Audience means everyone.
type Event struct {
	Type     string    `json:"type"`
	Audience string    `json:"audience,omitempty"`
	Data     any       `json:"data,omitempty"`
	At       time.Time `json:"at"`
}

func NewEvent(typ, audience string, data any) Event {
	return Event{Type: typ, Audience: audience, Data: data, At: time.Now().UTC()}
}

// Publisher is implemented by Hub and RedisRelay.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type Client struct {
	ID    string
	Email string
	Conn  *WebSocketConn
	Send  chan []byte
}

type Hub struct {
	clients    map[string]*Client
	events     chan Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	log        *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		events:     make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) RegisterClient(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues ev for local delivery.
func (h *Hub) Publish(ctx context.Context, ev Event) error {
	select {
	case h.events <- ev:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run owns the client set until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.log.WithFields(logrus.Fields{"client": client.ID, "email": client.Email}).Debug("ws client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(old.Send)
				h.log.WithField("client", client.ID).Debug("ws client unregistered")
			}
			h.mu.Unlock()

		case ev := <-h.events:
			h.deliver(ev)
		}
	}
}

func (h *Hub) deliver(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).WithField("type", ev.Type).Error("marshal event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		if ev.Audience != "" && client.Email != ev.Audience {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			// slow reader, drop it
			close(client.Send)
			delete(h.clients, id)
		}
	}
}
