package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/engageiq/go-engage/internal/log"
	"github.com/engageiq/go-engage/pkg/engage"
	"github.com/engageiq/go-engage/pkg/protocol"
)

// Client is one connected call participant stream.
type Client struct {
	ID        string
	Conn      *websocket.Conn
	Connected time.Time
	LastSeen  time.Time

	session *Session

	mu sync.Mutex
}

// Send writes a message to the client. Safe for concurrent use.
func (c *Client) Send(msg *protocol.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	return c.Conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages WebSocket connections and spawns one Session per client.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	cfg    Config
	scorer *engage.Scorer
	collab Collaborators

	// Stats
	messagesReceived atomic.Uint64
	messagesSent     atomic.Uint64
	framesReceived   atomic.Uint64
}

// NewHub creates a hub. The scorer and collaborators are shared by every
// session; each session gets its own tracker.
func NewHub(cfg Config, scorer *engage.Scorer, collab Collaborators) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		cfg:     cfg,
		scorer:  scorer,
		collab:  collab,
	}
}

// RegisterRoutes registers WebSocket routes on a Fiber app.
func (h *Hub) RegisterRoutes(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/session", websocket.New(h.handleClient))
	app.Get("/ws/session/:id", websocket.New(h.handleClient))
}

// handleClient owns one connection: register, sequential read loop,
// deregister on any read or write error.
func (h *Hub) handleClient(c *websocket.Conn) {
	clientID := c.Params("id")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	client := &Client{
		ID:        clientID,
		Conn:      c,
		Connected: time.Now(),
		LastSeen:  time.Now(),
		session:   New(clientID, h.cfg, h.scorer, h.collab),
	}

	h.mu.Lock()
	h.clients[clientID] = client
	count := len(h.clients)
	h.mu.Unlock()

	log.Info("client connected", "client", clientID, "total", count)

	defer func() {
		h.mu.Lock()
		delete(h.clients, clientID)
		count := len(h.clients)
		h.mu.Unlock()
		log.Info("client disconnected", "client", clientID, "total", count)
	}()

	ctx := context.Background()
	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			log.Debug("read error", "client", clientID, "err", err)
			return
		}

		client.mu.Lock()
		client.LastSeen = time.Now()
		client.mu.Unlock()

		h.messagesReceived.Add(1)

		resp := client.session.Handle(ctx, data)
		if resp == nil {
			continue
		}
		if resp.Type == protocol.TypeEngagementUpdate {
			h.framesReceived.Add(1)
		}
		h.messagesSent.Add(1)
		if err := client.Send(resp); err != nil {
			log.Debug("write error", "client", clientID, "err", err)
			return
		}
	}
}

// GetClient returns a client by ID.
func (h *Hub) GetClient(clientID string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[clientID]
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stats contains hub counters.
type Stats struct {
	ClientCount      int    `json:"client_count"`
	MessagesReceived uint64 `json:"messages_received"`
	MessagesSent     uint64 `json:"messages_sent"`
	UpdatesSent      uint64 `json:"updates_sent"`
}

// GetStats returns hub counters.
func (h *Hub) GetStats() Stats {
	return Stats{
		ClientCount:      h.ClientCount(),
		MessagesReceived: h.messagesReceived.Load(),
		MessagesSent:     h.messagesSent.Load(),
		UpdatesSent:      h.framesReceived.Load(),
	}
}

// ClientInfo describes one connected client.
type ClientInfo struct {
	ID        string    `json:"id"`
	Connected time.Time `json:"connected"`
	LastSeen  time.Time `json:"last_seen"`
}

// GetClientInfos returns info about all connected clients.
func (h *Hub) GetClientInfos() []ClientInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	infos := make([]ClientInfo, 0, len(h.clients))
	for _, c := range h.clients {
		c.mu.Lock()
		infos = append(infos, ClientInfo{
			ID:        c.ID,
			Connected: c.Connected,
			LastSeen:  c.LastSeen,
		})
		c.mu.Unlock()
	}
	return infos
}

// RegisterAPIRoutes registers session inspection routes.
func (h *Hub) RegisterAPIRoutes(api fiber.Router) {
	sessions := api.Group("/sessions")

	sessions.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"sessions": h.GetClientInfos(),
			"count":    h.ClientCount(),
		})
	})

	sessions.Get("/stats", func(c *fiber.Ctx) error {
		return c.JSON(h.GetStats())
	})
}
