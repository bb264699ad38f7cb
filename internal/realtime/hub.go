package realtime

import (
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
)

const (
	EventUsersOnline     = "users:online"
	EventUserOnline      = "user:online"
	EventUserOffline     = "user:offline"
	EventNotificationNew = "notification:new"
)

const sendBuffer = 32

// Envelope is the wire format of every server to client message.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub tracks which users are connected and on which sockets.
// Pushes are best effort: a slow client drops messages.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[uint]map[*Client]struct{}),
		logger:  logger,
	}
}

// Client is one socket of one user.
type Client struct {
	userID uint
	send   chan []byte
}

func newClient(userID uint) *Client {
	return &Client{userID: userID, send: make(chan []byte, sendBuffer)}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	conns, ok := h.clients[c.userID]
	if !ok {
		conns = make(map[*Client]struct{})
		h.clients[c.userID] = conns
	}
	conns[c] = struct{}{}
	first := !ok
	online := h.onlineLocked()
	h.mu.Unlock()

	h.sendTo(c, EventUsersOnline, online)
	if first {
		h.broadcastExcept(c.userID, EventUserOnline, c.userID)
	}
	h.logger.Debug("socket connected", "user_id", c.userID)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	conns, ok := h.clients[c.userID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := conns[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(conns, c)
	close(c.send)
	last := len(conns) == 0
	if last {
		delete(h.clients, c.userID)
	}
	h.mu.Unlock()

	if last {
		h.broadcastExcept(c.userID, EventUserOffline, c.userID)
	}
	h.logger.Debug("socket disconnected", "user_id", c.userID)
}

// Push sends event to every socket of userID and returns how many sockets
// accepted it.
func (h *Hub) Push(userID uint, event string, payload any) int {
	msg, err := encode(event, payload)
	if err != nil {
		h.logger.Warn("cannot encode push", "event", event, "err", err)
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for c := range h.clients[userID] {
		if h.enqueue(c, msg) {
			n++
		}
	}
	return n
}

func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) Online() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.onlineLocked()
}

func (h *Hub) onlineLocked() []uint {
	ids := make([]uint, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (h *Hub) sendTo(c *Client, event string, payload any) {
	msg, err := encode(event, payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c.userID][c]; ok {
		h.enqueue(c, msg)
	}
}

func (h *Hub) broadcastExcept(userID uint, event string, payload any) {
	msg, err := encode(event, payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, conns := range h.clients {
		if id == userID {
			continue
		}
		for c := range conns {
			h.enqueue(c, msg)
		}
	}
}

// enqueue must be called with h.mu held.
func (h *Hub) enqueue(c *Client, msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		h.logger.Warn("socket send buffer full, message dropped", "user_id", c.userID)
		return false
	}
}

func encode(event string, payload any) ([]byte, error) {
	return json.Marshal(Envelope{Event: event, Data: payload})
}
