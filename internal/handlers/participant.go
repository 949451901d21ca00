package handlers

import (
	"net/http"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/services"
	"github.com/baco-dev/baco/internal/utils"
	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	participations *services.ParticipationService
}

func NewParticipantHandler(participations *services.ParticipationService) *ParticipantHandler {
	return &ParticipantHandler{participations: participations}
}

// Join creates the caller's participation on an event. Application-based
// events leave it pending for the organizer; everything else confirms on
// the spot.
func (h *ParticipantHandler) Join(ctx *gin.Context) {
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

	p, err := h.participations.Join(eventID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, participantResponse(p))
}

// Mine returns the caller's own participation for an event.
func (h *ParticipantHandler) Mine(ctx *gin.Context) {
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

	p, err := h.participations.Get(eventID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, participantResponse(p))
}

func (h *ParticipantHandler) Remove(ctx *gin.Context) {
	participationID, err := idParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	if err := h.participations.Remove(userID, participationID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ParticipantHandler) Approve(ctx *gin.Context) {
	h.decide(ctx, h.participations.Approve)
}

func (h *ParticipantHandler) Reject(ctx *gin.Context) {
	h.decide(ctx, h.participations.Reject)
}

func (h *ParticipantHandler) Revert(ctx *gin.Context) {
	h.decide(ctx, h.participations.Revert)
}

func (h *ParticipantHandler) decide(ctx *gin.Context, transition func(actorID, participationID uint) (*models.EventParticipant, error)) {
	participationID, err := idParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	p, err := transition(userID, participationID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, participantResponse(p))
}
