package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// UpdateMessage is pushed to clients subscribed to a category when a league
// in that category finishes reloading.
type UpdateMessage struct {
	Type     string      `json:"type"` // e.g. "LEAGUE_UPDATED"
	Payload  interface{} `json:"payload"`
	Category string      `json:"category,omitempty"`
}

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Category string
	isClosed bool
	mu       sync.Mutex
}

// Hub tracks websocket clients grouped by category slug and fans update
// messages out to them. Register/Unregister are serviced by Run.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	mu         sync.RWMutex
	categories map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		categories: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.categories[client.Category]; !ok {
				h.categories[client.Category] = make(map[*Client]bool)
			}
			h.categories[client.Category][client] = true
			log.Printf("live: client registered to category %s (%d connected)", client.Category, len(h.categories[client.Category]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.categories[client.Category]; ok {
				if _, known := clients[client]; known {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.categories, client.Category)
					}
					log.Printf("live: client unregistered from category %s", client.Category)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToCategory sends a message to every client subscribed to the
// category. Clients with a full send buffer are skipped, not blocked on.
func (h *Hub) BroadcastToCategory(categorySlug string, message UpdateMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.categories[categorySlug]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("live: failed to marshal message for category %s: %v", categorySlug, err)
		return
	}

	for client := range clients {
		client.mu.Lock()
		if client.isClosed {
			client.mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			log.Printf("live: send buffer full for a client in category %s, skipping", categorySlug)
		}
		client.mu.Unlock()
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isClosed {
		close(c.Send)
		c.isClosed = true
	}
}

// ReadPump drains and discards client messages; the protocol is push-only.
// It exists to service pong handlers and to detect disconnects.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("live: unexpected close in category %s: %v", c.Category, err)
			}
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
