package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
	"github.com/gin-gonic/gin"
)

type ReviewDocumentRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// AdminHandler serves the document-verification review queue. Routes are
// mounted behind AdminOnly.
type AdminHandler struct {
	store store.Store
}

func NewAdminHandler(s store.Store) *AdminHandler {
	return &AdminHandler{store: s}
}

func (h *AdminHandler) ListUsers(ctx *gin.Context) {
	users, err := h.store.ListUsers()

	if err != nil {
		log.Printf("Failed to list users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, userResponse(&users[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *AdminHandler) ReviewDocument(ctx *gin.Context) {
	userID, err := idParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var req ReviewDocumentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Status must be approved or rejected"})
		return
	}

	user, err := h.store.UserByID(userID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if user.DocumentStatus != models.DocumentStatusPending {
		ctx.JSON(http.StatusConflict, gin.H{"message": "User has no document pending review"})
		return
	}

	user.DocumentStatus = req.Status

	if err := h.store.UpdateUser(user); err != nil {
		log.Printf("Failed to update user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}
