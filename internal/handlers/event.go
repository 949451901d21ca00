package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/services"
	"github.com/baco-dev/baco/internal/store"
	"github.com/baco-dev/baco/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateEventRequest struct {
	Name          string                 `json:"name" binding:"required"`
	Description   string                 `json:"description"`
	Date          string                 `json:"date" binding:"required"` // "2006-01-02"
	StartTime     string                 `json:"start_time" binding:"required"`
	EndTime       string                 `json:"end_time"`
	Location      map[string]interface{} `json:"location"`
	Capacity      int                    `json:"capacity" binding:"omitempty,gte=0"`
	EventType     string                 `json:"event_type"`
	CoverImageURL string                 `json:"cover_image_url" binding:"omitempty,url"`
	CategoryID    *uint                  `json:"category_id"`
	SubcategoryID *uint                  `json:"subcategory_id"`
}

type UpdateEventRequest struct {
	Name          string                 `json:"name"`
	Description   *string                `json:"description"`
	Date          string                 `json:"date"`
	StartTime     string                 `json:"start_time"`
	EndTime       *string                `json:"end_time"`
	Location      map[string]interface{} `json:"location"`
	Capacity      *int                   `json:"capacity" binding:"omitempty,gte=0"`
	CoverImageURL *string                `json:"cover_image_url"`
	CategoryID    *uint                  `json:"category_id"`
	SubcategoryID *uint                  `json:"subcategory_id"`
}

type EventResponse struct {
	ID            uint                   `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Date          string                 `json:"date"`
	StartTime     string                 `json:"start_time"`
	EndTime       string                 `json:"end_time,omitempty"`
	Location      map[string]interface{} `json:"location,omitempty"`
	Capacity      int                    `json:"capacity"`
	EventType     string                 `json:"event_type"`
	CoverImageURL string                 `json:"cover_image_url,omitempty"`
	CreatorID     uint                   `json:"creator_id"`
	CategoryID    *uint                  `json:"category_id,omitempty"`
	SubcategoryID *uint                  `json:"subcategory_id,omitempty"`
}

type ParticipantResponse struct {
	ID      uint   `json:"id"`
	EventID uint   `json:"event_id"`
	UserID  uint   `json:"user_id"`
	Name    string `json:"name,omitempty"`
	Status  string `json:"status"`
}

func eventResponse(e *models.Event) EventResponse {
	var location map[string]interface{}
	if len(e.Location) > 0 {
		_ = json.Unmarshal(e.Location, &location)
	}

	return EventResponse{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		Date:          e.Date.Format("2006-01-02"),
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Location:      location,
		Capacity:      e.Capacity,
		EventType:     e.EventType,
		CoverImageURL: e.CoverImageURL,
		CreatorID:     e.CreatorID,
		CategoryID:    e.CategoryID,
		SubcategoryID: e.SubcategoryID,
	}
}

func participantResponse(p *models.EventParticipant) ParticipantResponse {
	return ParticipantResponse{
		ID:      p.ID,
		EventID: p.EventID,
		UserID:  p.UserID,
		Name:    p.User.Name,
		Status:  p.Status,
	}
}

type EventHandler struct {
	store store.Store
}

func NewEventHandler(s store.Store) *EventHandler {
	return &EventHandler{store: s}
}

func (h *EventHandler) Create(ctx *gin.Context) {
	var req CreateEventRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Date must be formatted as YYYY-MM-DD"})
		return
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = models.EventTypePublic
	}
	if !models.ValidEventType(eventType) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event type"})
		return
	}

	event := models.Event{
		Name:          req.Name,
		Description:   req.Description,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Capacity:      req.Capacity,
		EventType:     eventType,
		CoverImageURL: req.CoverImageURL,
		CreatorID:     userID,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
	}

	if req.Location != nil {
		locationJSON, err := json.Marshal(req.Location)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid location format"})
			return
		}
		event.Location = locationJSON
	}

	if err := h.store.CreateEvent(&event); err != nil {
		log.Printf("Failed to create event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, eventResponse(&event))
}

func (h *EventHandler) List(ctx *gin.Context) {
	filter := store.EventFilter{
		Query:     ctx.Query("q"),
		EventType: ctx.Query("event_type"),
	}

	if raw := ctx.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid category_id"})
			return
		}
		filter.CategoryID = uint(categoryID)
	}

	events, err := h.store.ListEvents(filter)

	if err != nil {
		log.Printf("Failed to list events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]EventResponse, 0, len(events))
	for i := range events {
		response = append(response, eventResponse(&events[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *EventHandler) Get(ctx *gin.Context) {
	eventID, err := idParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	event, err := h.store.EventByID(eventID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		log.Printf("Failed to fetch event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	active, err := h.store.CountActiveParticipants(eventID)

	if err != nil {
		log.Printf("Failed to count participants: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"event":             eventResponse(event),
		"participant_count": active,
	})
}

func (h *EventHandler) Update(ctx *gin.Context) {
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

	var req UpdateEventRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	event, err := h.store.EventByID(eventID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		log.Printf("Failed to fetch event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	organizer, err := services.IsOrganizer(h.store, event, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}
	if !organizer {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Only the event organizer can edit this event"})
		return
	}

	if req.Name != "" {
		event.Name = req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Date must be formatted as YYYY-MM-DD"})
			return
		}
		event.Date = date
	}
	if req.StartTime != "" {
		event.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}
	if req.CoverImageURL != nil {
		event.CoverImageURL = *req.CoverImageURL
	}
	if req.CategoryID != nil {
		event.CategoryID = req.CategoryID
	}
	if req.SubcategoryID != nil {
		event.SubcategoryID = req.SubcategoryID
	}
	if req.Location != nil {
		locationJSON, err := json.Marshal(req.Location)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid location format"})
			return
		}
		event.Location = locationJSON
	}

	if err := h.store.UpdateEvent(event); err != nil {
		log.Printf("Failed to update event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, eventResponse(event))
}

// Delete is creator-only: co-organizers manage an event but do not own it.
func (h *EventHandler) Delete(ctx *gin.Context) {
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

	event, err := h.store.EventByID(eventID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		log.Printf("Failed to fetch event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if event.CreatorID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Only the event creator can delete this event"})
		return
	}

	if err := h.store.DeleteEvent(eventID); err != nil {
		log.Printf("Failed to delete event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *EventHandler) Participants(ctx *gin.Context) {
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

	event, err := h.store.EventByID(eventID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		log.Printf("Failed to fetch event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	organizer, err := services.IsOrganizer(h.store, event, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}
	if !organizer {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Only the event organizer can list participants"})
		return
	}

	participants, err := h.store.ListParticipantsByEvent(eventID)

	if err != nil {
		log.Printf("Failed to list participants: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]ParticipantResponse, 0, len(participants))
	for i := range participants {
		response = append(response, participantResponse(&participants[i]))
	}

	ctx.JSON(http.StatusOK, response)
}
