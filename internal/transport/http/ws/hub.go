package ws

import (
	"sync"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"github.com/gofiber/contrib/websocket"
)

// wsConn is the write surface of a websocket connection.
type wsConn interface {
	WriteJSON(v interface{}) error
}

// client guards one connection with a write lock; the websocket library
// permits at most one concurrent writer per connection.
type client struct {
	mu   sync.Mutex
	conn wsConn
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub tracks live websocket connections per user and pushes new-message
// events to recipients. A user may hold several connections (tabs).
type Hub struct {
	mu     sync.RWMutex
	conns  map[uint]map[*client]bool
	auth   ports.AuthService
	logger *logger.Logger
}

func NewHub(auth ports.AuthService, logger *logger.Logger) *Hub {
	return &Hub{
		conns:  make(map[uint]map[*client]bool),
		auth:   auth,
		logger: logger,
	}
}

type messageEvent struct {
	Type string          `json:"type"`
	Data *domain.Message `json:"data"`
}

// Notify implements ports.MessageNotifier. Dead connections are dropped.
func (h *Hub) Notify(userID uint, message *domain.Message) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.conns[userID]))
	for cl := range h.conns[userID] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	event := messageEvent{Type: "message", Data: message}
	for _, cl := range clients {
		if err := cl.writeJSON(event); err != nil {
			h.logger.Warnw("ws_push_failed", "user_id", userID, "error", err)
			h.remove(userID, cl)
		}
	}
	h.logger.Infow("ws_push_ok", "user_id", userID, "connections", len(clients))
}

// Handle runs for the lifetime of one websocket connection. The token comes
// in as a query parameter because browsers cannot set headers on upgrades.
func (h *Hub) Handle(conn *websocket.Conn) {
	token := conn.Query("token")
	actor, err := h.auth.VerifyToken(token)
	if err != nil {
		h.logger.Warnw("ws_auth_failed", "error", err)
		conn.Close()
		return
	}

	cl := &client{conn: conn}
	h.add(actor.ID, cl)
	h.logger.Infow("ws_connected", "user_id", actor.ID)
	defer func() {
		h.remove(actor.ID, cl)
		conn.Close()
		h.logger.Infow("ws_disconnected", "user_id", actor.ID)
	}()

	// Drain client frames; the socket is push-only from our side.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) add(userID uint, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*client]bool)
	}
	h.conns[userID][cl] = true
}

func (h *Hub) remove(userID uint, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[userID], cl)
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}
