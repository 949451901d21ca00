package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventTypePublic             = "public"
	EventTypePrivateTicket      = "private_ticket"
	EventTypePrivateApplication = "private_application"
)

func ValidEventType(t string) bool {
	switch t {
	case EventTypePublic, EventTypePrivateTicket, EventTypePrivateApplication:
		return true
	}
	return false
}

type Event struct {
	gorm.Model

	Name          string    `gorm:"not null"`
	Description   string
	Date          time.Time `gorm:"not null"`
	StartTime     string    `gorm:"not null"` // "19:00"
	EndTime       string
	Location      datatypes.JSON `gorm:"type:jsonb"` // {address, lat, lng}
	Capacity      int            `gorm:"not null;default:0"` // 0 = unbounded
	EventType     string         `gorm:"not null;default:'public'"`
	CoverImageURL string
	CreatorID     uint  `gorm:"not null;index"`
	CategoryID    *uint `gorm:"index"`
	SubcategoryID *uint

	// Relationships
	Creator      User                     `gorm:"foreignKey:CreatorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Participants []EventParticipant       `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CoOrganizers []EventCoOrganizer       `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Invites      []EventCoOrganizerInvite `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Messages     []ChatMessage            `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
