package models

import "gorm.io/gorm"

const (
	NotificationTypeRequest  = "participant_request"
	NotificationTypeApproved = "participation_approved"
	NotificationTypeRejected = "participation_rejected"
	NotificationTypeInvite   = "co_organizer_invite"
)

const (
	SourceTypeParticipation = "participation"
	SourceTypeInvite        = "invite"
)

type Notification struct {
	gorm.Model

	Type       string `gorm:"not null;index"`
	Title      string `gorm:"not null"`
	Message    string
	EventID    *uint `gorm:"index"`
	SourceID   *uint
	SourceType string

	// Relationships
	Recipients []NotificationRecipient `gorm:"foreignKey:NotificationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
