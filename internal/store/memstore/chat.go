package memstore

import (
	"sort"
	"time"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
)

func (s *Memstore) CreateChatMessage(m *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[m.EventID]; !ok {
		return store.ErrNotFound
	}

	stamp(&m.Model, s.nextMessageID)
	s.nextMessageID++
	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}
	s.messages[m.ID] = *m
	return nil
}

// ListChatMessages returns messages in append order, which is also
// chronological since SentAt is assigned at append time. A non-nil since
// hides messages sent before the reader joined.
func (s *Memstore) ListChatMessages(eventID uint, since *time.Time) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]models.ChatMessage, 0)
	for _, m := range s.messages {
		if m.EventID != eventID {
			continue
		}
		if since != nil && m.SentAt.Before(*since) {
			continue
		}
		messages = append(messages, m)
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })
	return messages, nil
}
