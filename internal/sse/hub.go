package sse

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/models"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ProfileEvent mirrors one row-level change in the profiles collection.
type ProfileEvent struct {
	ProfileID uuid.UUID   `json:"profile_id"`
	Email     string      `json:"email,omitempty"`
	Role      models.Role `json:"role,omitempty"`
	ChangedBy uuid.UUID   `json:"changed_by,omitempty"`
}

// Client is one open event stream. Send is closed by the hub on unregister.
type Client struct {
	ID     string
	UserID uuid.UUID
	Send   chan []byte
}

// Hub fans profile change events out to connected admin-management streams.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(event)
			for _, client := range h.clients {
				select {
				case client.Send <- data:
				default:
					// Client buffer full, skip
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) BroadcastProfileCreated(profileID uuid.UUID, email string, role models.Role) {
	h.broadcast <- Event{
		Type: "profile_created",
		Data: ProfileEvent{ProfileID: profileID, Email: email, Role: role},
	}
}

func (h *Hub) BroadcastProfileUpdated(profileID uuid.UUID, email string, role models.Role) {
	h.broadcast <- Event{
		Type: "profile_updated",
		Data: ProfileEvent{ProfileID: profileID, Email: email, Role: role},
	}
}

func (h *Hub) BroadcastProfileDeleted(profileID uuid.UUID) {
	h.broadcast <- Event{
		Type: "profile_deleted",
		Data: ProfileEvent{ProfileID: profileID},
	}
}

func (h *Hub) BroadcastRoleChanged(profileID uuid.UUID, role models.Role, changedBy uuid.UUID) {
	h.broadcast <- Event{
		Type: "role_changed",
		Data: ProfileEvent{ProfileID: profileID, Role: role, ChangedBy: changedBy},
	}
}
