package services

import (
	"errors"
	"time"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
)

// ChatService gates per-event chat. Only application-based events have a
// chat at all; within one, organizers see the full history and approved
// participants see messages from their join time onward.
type ChatService struct {
	store store.Store
}

func NewChatService(s store.Store) *ChatService {
	return &ChatService{store: s}
}

// Authorize returns the reader's visibility cutoff: nil for organizers
// (full history), the participation's creation time for approved
// participants.
func (s *ChatService) Authorize(eventID, userID uint) (*models.Event, *time.Time, error) {
	event, err := s.store.EventByID(eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrEventNotFound
		}
		return nil, nil, err
	}
	if event.EventType != models.EventTypePrivateApplication {
		return nil, nil, ErrChatUnavailable
	}

	organizer, err := IsOrganizer(s.store, event, userID)
	if err != nil {
		return nil, nil, err
	}
	if organizer {
		return event, nil, nil
	}

	p, err := s.store.ParticipationByEventAndUser(eventID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrChatForbidden
		}
		return nil, nil, err
	}
	if p.Status != models.ParticipantStatusApproved {
		return nil, nil, ErrChatForbidden
	}
	since := p.CreatedAt
	return event, &since, nil
}

func (s *ChatService) Messages(eventID, readerID uint) ([]models.ChatMessage, error) {
	_, since, err := s.Authorize(eventID, readerID)
	if err != nil {
		return nil, err
	}
	return s.store.ListChatMessages(eventID, since)
}

func (s *ChatService) Post(eventID, senderID uint, content string) (*models.ChatMessage, error) {
	if _, _, err := s.Authorize(eventID, senderID); err != nil {
		return nil, err
	}

	m := &models.ChatMessage{
		EventID:  eventID,
		SenderID: senderID,
		Content:  content,
		SentAt:   time.Now(),
	}
	if err := s.store.CreateChatMessage(m); err != nil {
		return nil, err
	}
	return m, nil
}
