package handlers

import (
	"net/http"
	"time"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/services"
	"github.com/baco-dev/baco/internal/utils"
	"github.com/gin-gonic/gin"
)

type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type ChatMessageResponse struct {
	ID         uint      `json:"id"`
	EventID    uint      `json:"event_id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sent_at"`
}

func chatMessageResponse(m *models.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:         m.ID,
		EventID:    m.EventID,
		SenderID:   m.SenderID,
		SenderName: m.Sender.Name,
		Content:    m.Content,
		SentAt:     m.SentAt,
	}
}

type ChatHandler struct {
	chat *services.ChatService
	hub  *ChatHub
}

func NewChatHandler(chat *services.ChatService, hub *ChatHub) *ChatHandler {
	return &ChatHandler{chat: chat, hub: hub}
}

func (h *ChatHandler) List(ctx *gin.Context) {
	eventID, err := idParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	messages, err := h.chat.Messages(eventID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]ChatMessageResponse, 0, len(messages))
	for i := range messages {
		response = append(response, chatMessageResponse(&messages[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *ChatHandler) Post(ctx *gin.Context) {
	eventID, err := idParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	var req PostMessageRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Message content is required"})
		return
	}

	m, err := h.chat.Post(eventID, userID, req.Content)

	if err != nil {
		respondError(ctx, err)
		return
	}

	// Nudge polling clients that are also connected over the socket.
	h.hub.BroadcastRefresh(eventID)

	ctx.JSON(http.StatusCreated, chatMessageResponse(m))
}
