// Package ws delivers live pantry snapshots over WebSocket
// connections.
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	domain "github.com/jpmardones/despensa/pkg/types"
)

// snapshotMessage is the wire format for a pantry push.
type snapshotMessage struct {
	Type   string                 `json:"type"`
	UserID string                 `json:"user_id"`
	Items  []domain.EnrichedEntry `json:"items"`
}

// Hub maintains the set of active WebSocket clients keyed by user and
// fans pantry snapshots out to them. It implements pantry.Sink.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client under its user. It reports whether this is
// the user's first active connection.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.userID]
	if !ok {
		conns = make(map[*Client]struct{})
		h.clients[c.userID] = conns
	}
	conns[c] = struct{}{}
	return len(conns) == 1
}

// Unregister removes a client and closes its send channel. It reports
// whether the user has no connections left.
func (h *Hub) Unregister(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.userID]
	if !ok {
		return false
	}
	if _, ok := conns[c]; ok {
		delete(conns, c)
		close(c.send)
	}
	if len(conns) == 0 {
		delete(h.clients, c.userID)
		return true
	}
	return false
}

// PushPantry sends an enriched pantry snapshot to every connection the
// user has open.
func (h *Hub) PushPantry(userID string, items []domain.EnrichedEntry) {
	data, err := json.Marshal(snapshotMessage{
		Type:   "pantry_snapshot",
		UserID: userID,
		Items:  items,
	})
	if err != nil {
		h.logger.Error("marshal pantry snapshot", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop message to avoid blocking
		}
	}
}

// ClientCount returns the number of connected clients across all users.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, conns := range h.clients {
		n += len(conns)
	}
	return n
}
