package models

import "gorm.io/gorm"

// Document verification states. Verified() derives from these; there is no
// separate verified column to drift out of sync.
const (
	DocumentStatusNone     = "none"
	DocumentStatusPending  = "pending"
	DocumentStatusApproved = "approved"
	DocumentStatusRejected = "rejected"
)

type User struct {
	gorm.Model

	Name           string `gorm:"not null"`
	Email          string `gorm:"uniqueIndex;not null"`
	PasswordHash   string `gorm:"not null"`
	Phone          string
	Bio            string
	AvatarURL      string
	DocumentURL    string
	DocumentStatus string `gorm:"not null;default:'none'"`
	IsAdmin        bool   `gorm:"not null;default:false"`

	// Relationships
	CreatedEvents          []Event                  `gorm:"foreignKey:CreatorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Participations         []EventParticipant       `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	NotificationRecipients []NotificationRecipient  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CoOrganizerRoles       []EventCoOrganizer       `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	SentInvites            []EventCoOrganizerInvite `gorm:"foreignKey:InviterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (u *User) Verified() bool {
	return u.DocumentStatus == DocumentStatusApproved
}
