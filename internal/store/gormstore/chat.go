package gormstore

import (
	"time"

	"github.com/baco-dev/baco/internal/models"
)

func (s *Gormstore) CreateChatMessage(m *models.ChatMessage) error {
	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}
	return translate(s.db.Create(m).Error)
}

func (s *Gormstore) ListChatMessages(eventID uint, since *time.Time) ([]models.ChatMessage, error) {
	query := s.db.Preload("Sender").Where("event_id = ?", eventID)
	if since != nil {
		query = query.Where("sent_at >= ?", *since)
	}

	var messages []models.ChatMessage
	if err := query.Order("id").Find(&messages).Error; err != nil {
		return nil, translate(err)
	}
	return messages, nil
}
