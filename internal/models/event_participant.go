package models

import "gorm.io/gorm"

const (
	ParticipantStatusPending   = "pending"
	ParticipantStatusApproved  = "approved"
	ParticipantStatusConfirmed = "confirmed"
	ParticipantStatusRejected  = "rejected"
)

// EventParticipant rows are hard-deleted so the composite unique index
// keeps allowing a rejoin after a withdrawal.
type EventParticipant struct {
	gorm.Model

	EventID uint   `gorm:"not null;uniqueIndex:idx_event_user"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_event_user"`
	Status  string `gorm:"not null;default:'pending'"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// Active reports whether the participant counts against event capacity.
func (p *EventParticipant) Active() bool {
	return p.Status == ParticipantStatusApproved || p.Status == ParticipantStatusConfirmed
}
