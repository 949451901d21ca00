package services

import (
	"errors"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
)

// NotificationService owns the fan-out: one Notification row plus one
// unread recipient row per target user, and the per-recipient read/delete
// lifecycle afterwards.
type NotificationService struct {
	store store.Store
}

func NewNotificationService(s store.Store) *NotificationService {
	return &NotificationService{store: s}
}

func (s *NotificationService) Notify(ntype, title, message string, eventID, sourceID *uint, sourceType string, recipientIDs []uint) (*models.Notification, error) {
	n := &models.Notification{
		Type:       ntype,
		Title:      title,
		Message:    message,
		EventID:    eventID,
		SourceID:   sourceID,
		SourceType: sourceType,
	}
	if err := s.store.CreateNotification(n, recipientIDs); err != nil {
		return nil, err
	}
	return n, nil
}

// NotifyOnce skips the fan-out when a notification with the same
// (type, event, source) already exists. Approval notifications go through
// here so a revert/approve cycle cannot spam the participant.
func (s *NotificationService) NotifyOnce(ntype, title, message string, eventID, sourceID uint, sourceType string, recipientIDs []uint) (*models.Notification, error) {
	existing, err := s.store.FindNotification(ntype, eventID, sourceID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return s.Notify(ntype, title, message, &eventID, &sourceID, sourceType, recipientIDs)
}

func (s *NotificationService) ListForUser(userID uint) ([]store.UserNotification, error) {
	return s.store.NotificationsForUser(userID)
}

func (s *NotificationService) MarkRead(recipientID, userID uint) error {
	r, err := s.store.RecipientByID(recipientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if r.UserID != userID {
		return ErrNotYourNotification
	}
	return s.store.MarkRecipientRead(recipientID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.store.MarkAllRead(userID)
}

// DeleteForUser removes the caller's recipient row; the store collects the
// parent notification when that was the last reference.
func (s *NotificationService) DeleteForUser(recipientID, userID uint) error {
	r, err := s.store.RecipientByID(recipientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if r.UserID != userID {
		return ErrNotYourNotification
	}
	return s.store.DeleteRecipient(recipientID)
}
