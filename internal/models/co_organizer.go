package models

import "gorm.io/gorm"

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusRejected = "rejected"
)

// EventCoOrganizer grants a user creator-equivalent management rights on
// an event. Created only through an accepted invite.
type EventCoOrganizer struct {
	gorm.Model

	EventID uint `gorm:"not null;uniqueIndex:idx_event_co_organizer"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_event_co_organizer"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type EventCoOrganizerInvite struct {
	gorm.Model

	EventID   uint   `gorm:"not null;index"`
	InviterID uint   `gorm:"not null"`
	Email     string `gorm:"not null"`
	Token     string `gorm:"uniqueIndex;not null"`
	Status    string `gorm:"not null;default:'pending'"`

	// Relationships
	Event   Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Inviter User  `gorm:"foreignKey:InviterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
