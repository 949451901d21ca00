package models

import (
	"time"

	"gorm.io/gorm"
)

type ChatMessage struct {
	gorm.Model

	EventID  uint      `gorm:"not null;index"`
	SenderID uint      `gorm:"not null;index"`
	Content  string    `gorm:"not null"`
	SentAt   time.Time `gorm:"not null;index"`

	// Relationships
	Event  Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Sender User  `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
