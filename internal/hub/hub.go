package hub

import (
	"sync"

	"github.com/google/uuid"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents one live connection for one user (one device). The
// handle stays bound to a single user id for its whole lifetime; the
// SSE handler reads events from it until the channel closes.
type Client struct {
	ID   string
	send chan Event
}

// NewClient creates a client handle with a fresh id and a small buffer so
// a slow reader never blocks fan-out.
func NewClient() *Client {
	return &Client{
		ID:   uuid.NewString(),
		send: make(chan Event, 16),
	}
}

// Events returns the channel the connection handler reads from. It is
// closed by Leave.
func (c *Client) Events() <-chan Event {
	return c.send
}

// Hub is the presence registry: for each user id, the set of live
// connections currently joined to that user's room.
type Hub struct {
	rooms map[uint]map[*Client]bool
	mu    sync.RWMutex
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{
		rooms: make(map[uint]map[*Client]bool),
	}
}

// Join registers the client under userID's room. Idempotent per handle.
func (h *Hub) Join(userID uint, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[userID]; !ok {
		h.rooms[userID] = make(map[*Client]bool)
	}
	h.rooms[userID][client] = true
}

// Leave removes the client from userID's room and closes its channel to
// signal the connection handler to stop. No-op if the client is absent.
// Empty rooms are dropped.
func (h *Hub) Leave(userID uint, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)
			if len(clients) == 0 {
				delete(h.rooms, userID)
			}
		}
	}
}

// Publish delivers an event to every client currently in userID's room.
// Delivery is best-effort and fire-and-forget: an empty room drops the
// event, and a client whose buffer is full is skipped. Joins that complete
// before Publish begins are always visible; Leave holds the write lock, so
// a send can never race a close.
func (h *Hub) Publish(userID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[userID]
	if !ok {
		return
	}

	for client := range clients {
		select {
		case client.send <- event:
		default:
			// Client buffer is full; they are slow or already gone.
			// Leave will clean the handle up.
		}
	}
}
