package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/Dosada05/music-league-system/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin is not restricted: the API itself is read-only and the
		// pushed payloads are the same public standings the REST surface
		// serves.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs subscribes a client to league updates for one category.
// Clients connect to /ws/categories/{category}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "category")
	if categorySlug == "" {
		http.Error(w, "Missing category", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client.
		log.Printf("live: failed to upgrade connection for category %s: %v", categorySlug, err)
		return
	}

	client := &live.Client{
		Hub:      h.hub,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Category: categorySlug,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
