package models

import "gorm.io/gorm"

// NotificationRecipient is the per-user read state of a Notification.
// When the last recipient row goes away the parent Notification is
// garbage and must be deleted with it.
type NotificationRecipient struct {
	gorm.Model

	NotificationID uint `gorm:"not null;index"`
	UserID         uint `gorm:"not null;index"`
	Read           bool `gorm:"not null;default:false"`

	// Relationships
	Notification Notification `gorm:"foreignKey:NotificationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User         User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
