package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/baco-dev/baco/internal/services"
	"github.com/baco-dev/baco/internal/utils"
	"github.com/gin-gonic/gin"
)

type NotificationResponse struct {
	ID        uint      `json:"id"` // recipient row ID; read/delete target
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	EventID   *uint     `json:"event_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationHandler struct {
	notifier *services.NotificationService
}

func NewNotificationHandler(notifier *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

func (h *NotificationHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	notifications, err := h.notifier.ListForUser(userID)

	if err != nil {
		log.Printf("Failed to list notifications: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, NotificationResponse{
			ID:        n.Recipient.ID,
			Type:      n.Notification.Type,
			Title:     n.Notification.Title,
			Message:   n.Notification.Message,
			EventID:   n.Notification.EventID,
			Read:      n.Recipient.Read,
			CreatedAt: n.Notification.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// MarkRead also serves PATCH /api/notifications/all/read: the literal "all"
// in the id segment marks every notification of the caller.
func (h *NotificationHandler) MarkRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	if ctx.Param("id") == "all" {
		if err := h.notifier.MarkAllRead(userID); err != nil {
			log.Printf("Failed to mark notifications read: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
		return
	}

	recipientID, err := idParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.notifier.MarkRead(recipientID, userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) Delete(ctx *gin.Context) {
	recipientID, err := idParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	if err := h.notifier.DeleteForUser(recipientID, userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
