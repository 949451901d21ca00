package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/baco-dev/baco/internal/services"
	"github.com/baco-dev/baco/internal/types"
	"github.com/baco-dev/baco/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// ChatHub tracks the open sockets per event chat and pushes "refresh"
// hints after each append. The poll-based GET endpoint stays the source
// of truth; the socket only tells clients when to poll.
type ChatHub struct {
	clients map[uint]map[*websocket.Conn]bool
	mu      sync.RWMutex
}

func NewChatHub() *ChatHub {
	return &ChatHub{clients: make(map[uint]map[*websocket.Conn]bool)}
}

func (h *ChatHub) add(eventID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[eventID] == nil {
		h.clients[eventID] = make(map[*websocket.Conn]bool)
	}
	h.clients[eventID][conn] = true
}

func (h *ChatHub) remove(eventID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[eventID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.clients, eventID)
		}
	}
}

func (h *ChatHub) BroadcastRefresh(eventID uint) {
	h.mu.RLock()
	clients, exists := h.clients[eventID]
	if !exists || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy so the lock is not held while writing to sockets.
	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	h.mu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]interface{}{
			"type":     "refresh",
			"message":  "New chat activity",
			"event_id": eventID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			h.remove(eventID, conn)
			conn.Close()
		}
	}
}

type ChatSocketHandler struct {
	chat *services.ChatService
	hub  *ChatHub
}

func NewChatSocketHandler(chat *services.ChatService, hub *ChatHub) *ChatSocketHandler {
	return &ChatSocketHandler{chat: chat, hub: hub}
}

// Subscribe upgrades an authorized chat member's connection and keeps it
// registered until the peer goes away. Authorization is the same gate as
// the HTTP chat endpoints.
func (h *ChatSocketHandler) Subscribe(c *gin.Context) {
	eventID, err := idParam(c, "id")

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	if _, _, err := h.chat.Authorize(eventID, userID); err != nil {
		respondError(c, err)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.hub.add(eventID, conn)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go h.ping(eventID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.hub.remove(eventID, conn)
	conn.Close()
}

func (h *ChatSocketHandler) ping(eventID uint, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			h.hub.remove(eventID, conn)
			return
		}
	}
}
