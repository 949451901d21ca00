package memstore

import (
	"sort"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
)

func (s *Memstore) CreateNotification(n *models.Notification, recipientIDs []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(&n.Model, s.nextNotificationID)
	s.nextNotificationID++
	s.notifications[n.ID] = *n

	for _, userID := range recipientIDs {
		r := models.NotificationRecipient{
			NotificationID: n.ID,
			UserID:         userID,
		}
		stamp(&r.Model, s.nextRecipientID)
		s.nextRecipientID++
		s.recipients[r.ID] = r
	}
	return nil
}

func (s *Memstore) FindNotification(ntype string, eventID, sourceID uint) (*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notifications {
		if n.Type == ntype &&
			n.EventID != nil && *n.EventID == eventID &&
			n.SourceID != nil && *n.SourceID == sourceID {
			notification := n
			return &notification, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Memstore) NotificationsForUser(userID uint) ([]store.UserNotification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]store.UserNotification, 0)
	for _, r := range s.recipients {
		if r.UserID != userID {
			continue
		}
		n, ok := s.notifications[r.NotificationID]
		if !ok {
			continue
		}
		result = append(result, store.UserNotification{Recipient: r, Notification: n})
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Notification, result[j].Notification
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return result, nil
}

func (s *Memstore) RecipientByID(id uint) (*models.NotificationRecipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipients[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &r, nil
}

func (s *Memstore) MarkRecipientRead(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipients[id]
	if !ok {
		return store.ErrNotFound
	}
	r.Read = true
	s.recipients[id] = r
	return nil
}

func (s *Memstore) MarkAllRead(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, r := range s.recipients {
		if r.UserID == userID && !r.Read {
			r.Read = true
			s.recipients[id] = r
		}
	}
	return nil
}

// DeleteRecipient garbage-collects the parent notification once its last
// recipient row is gone.
func (s *Memstore) DeleteRecipient(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipients[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.recipients, id)

	for _, other := range s.recipients {
		if other.NotificationID == r.NotificationID {
			return nil
		}
	}
	delete(s.notifications, r.NotificationID)
	return nil
}
