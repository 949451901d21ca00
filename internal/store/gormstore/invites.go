package gormstore

import (
	"github.com/baco-dev/baco/internal/models"
)

func (s *Gormstore) CreateInvite(inv *models.EventCoOrganizerInvite) error {
	return translate(s.db.Create(inv).Error)
}

func (s *Gormstore) InviteByToken(token string) (*models.EventCoOrganizerInvite, error) {
	var inv models.EventCoOrganizerInvite
	if err := s.db.Where("token = ?", token).First(&inv).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (s *Gormstore) UpdateInvite(inv *models.EventCoOrganizerInvite) error {
	return translate(s.db.Save(inv).Error)
}

func (s *Gormstore) AddCoOrganizer(eventID, userID uint) error {
	c := models.EventCoOrganizer{EventID: eventID, UserID: userID}
	return translate(s.db.Create(&c).Error)
}

func (s *Gormstore) IsCoOrganizer(eventID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.EventCoOrganizer{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *Gormstore) ListCoOrganizers(eventID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.
		Joins("JOIN event_co_organizers ON event_co_organizers.user_id = users.id").
		Where("event_co_organizers.event_id = ? AND event_co_organizers.deleted_at IS NULL", eventID).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}
