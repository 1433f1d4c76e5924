package ws

import (
	"errors"
	"slices"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxConnsPerUser = 8

var ErrTooManyConnections = errors.New("too many connections for user")

// Hub tracks live connections per user.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{clients: make(map[int64]map[*Client]struct{}), logger: logger}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[userID] = set
	}
	if len(set) >= maxConnsPerUser {
		return nil, ErrTooManyConnections
	}

	c := newClient(h, conn, userID)
	set[c] = struct{}{}
	h.logger.Debug("ws connected", zap.Int64("user_id", userID), zap.Int("user_clients", len(set)))
	return c, nil
}

// Unregister removes c and closes its send channel. Repeated calls are no-ops.
func (h *Hub) Unregister(c *Client) {
	if c == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	h.logger.Debug("ws disconnected", zap.Int64("user_id", c.userID))
}

// SendToUser queues message on every connection of userID and reports how
// many accepted it.
func (h *Hub) SendToUser(userID int64, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.clients[userID] {
		if c.trySend(message) {
			delivered++
			continue
		}
		h.logger.Warn("ws message dropped", zap.Int64("user_id", userID), zap.String("reason", "buffer_full"))
	}
	return delivered
}

// ConnectedUserIDs returns the ids of users with at least one connection,
// ascending.
func (h *Hub) ConnectedUserIDs() []int64 {
	h.mu.RLock()
	ids := make([]int64, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, id)
	}
}
