package handlers

import (
	"net/http"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/services"
	"github.com/baco-dev/baco/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type InviteResponse struct {
	ID      uint   `json:"id"`
	EventID uint   `json:"event_id"`
	Email   string `json:"email"`
	Token   string `json:"token"`
	Status  string `json:"status"`
}

func inviteResponse(inv *models.EventCoOrganizerInvite) InviteResponse {
	return InviteResponse{
		ID:      inv.ID,
		EventID: inv.EventID,
		Email:   inv.Email,
		Token:   inv.Token,
		Status:  inv.Status,
	}
}

type InviteHandler struct {
	invites *services.InviteService
}

func NewInviteHandler(invites *services.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

func (h *InviteHandler) Create(ctx *gin.Context) {
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

	var req CreateInviteRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "A valid email is required"})
		return
	}

	inv, err := h.invites.Invite(userID, eventID, req.Email)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, inviteResponse(inv))
}

// Get serves the invite landing page lookup; it is unauthenticated since
// the invitee may not have an account yet.
func (h *InviteHandler) Get(ctx *gin.Context) {
	inv, event, err := h.invites.ByToken(ctx.Param("token"))

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"invite": inviteResponse(inv),
		"event":  eventResponse(event),
	})
}

func (h *InviteHandler) Accept(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	inv, err := h.invites.Accept(ctx.Param("token"), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, inviteResponse(inv))
}

func (h *InviteHandler) Reject(ctx *gin.Context) {
	if _, err := utils.GetCurrentUserID(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	inv, err := h.invites.Reject(ctx.Param("token"))

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, inviteResponse(inv))
}

func (h *InviteHandler) CoOrganizers(ctx *gin.Context) {
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

	users, err := h.invites.CoOrganizers(userID, eventID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, userResponse(&users[i]))
	}

	ctx.JSON(http.StatusOK, response)
}
