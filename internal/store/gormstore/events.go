package gormstore

import (
	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
	"gorm.io/gorm"
)

func (s *Gormstore) CreateEvent(e *models.Event) error {
	return translate(s.db.Create(e).Error)
}

func (s *Gormstore) EventByID(id uint) (*models.Event, error) {
	var e models.Event
	if err := s.db.First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *Gormstore) UpdateEvent(e *models.Event) error {
	return translate(s.db.Save(e).Error)
}

// DeleteEvent runs the cascade in one transaction. Children are removed
// unscoped so the composite unique indexes free up immediately; the event
// row itself keeps the usual soft delete.
func (s *Gormstore) DeleteEvent(id uint) error {
	return translate(s.db.Transaction(func(tx *gorm.DB) error {
		var e models.Event
		if err := tx.First(&e, id).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("event_id = ?", id).Delete(&models.EventParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("event_id = ?", id).Delete(&models.EventCoOrganizer{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("event_id = ?", id).Delete(&models.EventCoOrganizerInvite{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("event_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&e).Error
	}))
}

func (s *Gormstore) ListEvents(f store.EventFilter) ([]models.Event, error) {
	query := s.db.Model(&models.Event{})

	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if f.CategoryID != 0 {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.EventType != "" {
		query = query.Where("event_type = ?", f.EventType)
	}

	var events []models.Event
	if err := query.Order("id DESC").Find(&events).Error; err != nil {
		return nil, translate(err)
	}
	return events, nil
}
