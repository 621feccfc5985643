// Package ws pushes order events to chefs over websockets. Each chef has a
// room; every connection in the room receives the chef's order events.
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Event types published to chef rooms.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
)

// Event is a websocket message.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// roomEvent routes an event to one chef's room.
type roomEvent struct {
	ChefID string
	Event  Event
}

// Hub tracks connected clients by chef and fans events out to them.
// Room membership is owned by the Run goroutine.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *roomEvent

	// done is closed when Run returns; sends after that are dropped.
	done chan struct{}

	mu     sync.RWMutex
	logger *zap.Logger
}

// NewHub creates a new Hub. Call Run to start it.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *roomEvent, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// closes every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.chefID] == nil {
				h.rooms[client.chefID] = make(map[*Client]bool)
			}
			h.rooms[client.chefID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case ev := <-h.broadcast:
			message, err := json.Marshal(ev.Event)
			if err != nil {
				h.logger.Error("marshal ws event", zap.String("type", ev.Event.Type), zap.Error(err))
				continue
			}

			h.mu.Lock()
			for client := range h.rooms[ev.ChefID] {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it.
					h.logger.Warn("ws client too slow, disconnecting",
						zap.String("chef_id", ev.ChefID),
						zap.String("client_id", client.id),
					)
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove deletes client from its room and closes its send channel. The
// caller holds h.mu.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.chefID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.chefID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for chefID, clients := range h.rooms {
		for client := range clients {
			close(client.send)
		}
		delete(h.rooms, chefID)
	}
}

// Publish sends an event to every client in the chef's room. It never
// blocks once the hub has stopped.
func (h *Hub) Publish(chefID string, event Event) {
	select {
	case h.broadcast <- &roomEvent{ChefID: chefID, Event: event}:
	case <-h.done:
	}
}

// PublishJSON marshals payload and publishes it as an event of type
// eventType.
func (h *Hub) PublishJSON(chefID, eventType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	h.Publish(chefID, Event{Type: eventType, Payload: raw})
	return nil
}

// ClientCount returns the number of connections in a chef's room.
func (h *Hub) ClientCount(chefID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[chefID])
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
