package gormstore

import (
	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
	"gorm.io/gorm"
)

func (s *Gormstore) CreateNotification(n *models.Notification, recipientIDs []uint) error {
	return translate(s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		if len(recipientIDs) == 0 {
			return nil
		}
		recipients := make([]models.NotificationRecipient, 0, len(recipientIDs))
		for _, userID := range recipientIDs {
			recipients = append(recipients, models.NotificationRecipient{
				NotificationID: n.ID,
				UserID:         userID,
			})
		}
		return tx.Create(&recipients).Error
	}))
}

func (s *Gormstore) FindNotification(ntype string, eventID, sourceID uint) (*models.Notification, error) {
	var n models.Notification
	err := s.db.Where("type = ? AND event_id = ? AND source_id = ?", ntype, eventID, sourceID).First(&n).Error
	if err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (s *Gormstore) NotificationsForUser(userID uint) ([]store.UserNotification, error) {
	var recipients []models.NotificationRecipient
	err := s.db.Preload("Notification").
		Joins("JOIN notifications ON notifications.id = notification_recipients.notification_id").
		Where("notification_recipients.user_id = ?", userID).
		Where("notifications.deleted_at IS NULL").
		Order("notifications.created_at DESC, notifications.id DESC").
		Find(&recipients).Error
	if err != nil {
		return nil, translate(err)
	}

	result := make([]store.UserNotification, 0, len(recipients))
	for _, r := range recipients {
		result = append(result, store.UserNotification{Recipient: r, Notification: r.Notification})
	}
	return result, nil
}

func (s *Gormstore) RecipientByID(id uint) (*models.NotificationRecipient, error) {
	var r models.NotificationRecipient
	if err := s.db.First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *Gormstore) MarkRecipientRead(id uint) error {
	result := s.db.Model(&models.NotificationRecipient{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Gormstore) MarkAllRead(userID uint) error {
	return translate(s.db.Model(&models.NotificationRecipient{}).
		Where("user_id = ? AND read = false", userID).
		Update("read", true).Error)
}

// DeleteRecipient removes the row and garbage-collects the parent
// notification when it was the last one, all in one transaction.
func (s *Gormstore) DeleteRecipient(id uint) error {
	return translate(s.db.Transaction(func(tx *gorm.DB) error {
		var r models.NotificationRecipient
		if err := tx.First(&r, id).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&r).Error; err != nil {
			return err
		}
		var remaining int64
		if err := tx.Model(&models.NotificationRecipient{}).
			Where("notification_id = ?", r.NotificationID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return tx.Unscoped().Delete(&models.Notification{}, r.NotificationID).Error
		}
		return nil
	}))
}
