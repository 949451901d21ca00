package gormstore

import (
	"github.com/baco-dev/baco/internal/models"
)

func (s *Gormstore) CreateParticipation(p *models.EventParticipant) error {
	// idx_event_user decides duplicates; no pre-check needed.
	return translate(s.db.Create(p).Error)
}

func (s *Gormstore) ParticipationByID(id uint) (*models.EventParticipant, error) {
	var p models.EventParticipant
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Gormstore) ParticipationByEventAndUser(eventID, userID uint) (*models.EventParticipant, error) {
	var p models.EventParticipant
	if err := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Gormstore) ListParticipantsByEvent(eventID uint) ([]models.EventParticipant, error) {
	var participants []models.EventParticipant
	if err := s.db.Preload("User").Where("event_id = ?", eventID).Order("id").Find(&participants).Error; err != nil {
		return nil, translate(err)
	}
	return participants, nil
}

func (s *Gormstore) UpdateParticipation(p *models.EventParticipant) error {
	return translate(s.db.Save(p).Error)
}

// DeleteParticipation removes the row for real so idx_event_user lets the
// user rejoin later.
func (s *Gormstore) DeleteParticipation(id uint) error {
	result := s.db.Unscoped().Delete(&models.EventParticipant{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	return nil
}

func (s *Gormstore) CountActiveParticipants(eventID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.EventParticipant{}).
		Where("event_id = ? AND status IN ?", eventID,
			[]string{models.ParticipantStatusApproved, models.ParticipantStatusConfirmed}).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}
