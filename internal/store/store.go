package store

import (
	"errors"
	"time"

	"github.com/baco-dev/baco/internal/models"
)

// Store errors. Services translate these into caller-facing errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// EventFilter narrows ListEvents. Zero values mean "no filter"; Query is a
// case-insensitive substring match over name and description.
type EventFilter struct {
	Query      string
	CategoryID uint
	EventType  string
}

// UserNotification pairs a recipient row with its parent notification for
// a single reader.
type UserNotification struct {
	Recipient    models.NotificationRecipient
	Notification models.Notification
}

// Store is the entity store behind all business logic. Production uses the
// Postgres-backed gormstore; tests and STORE=memory deployments use the
// in-memory memstore. Both enforce the (event_id, user_id) uniqueness of
// participations and co-organizers atomically.
type Store interface {
	// Users
	CreateUser(u *models.User) error
	UserByID(id uint) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	UpdateUser(u *models.User) error
	ListUsers() ([]models.User, error)

	// Categories
	CreateCategory(c *models.Category) error
	ListCategories() ([]models.Category, error)
	CreateSubcategory(sc *models.Subcategory) error
	ListSubcategories(categoryID uint) ([]models.Subcategory, error)

	// Events
	CreateEvent(e *models.Event) error
	EventByID(id uint) (*models.Event, error)
	UpdateEvent(e *models.Event) error
	// DeleteEvent removes the event and cascades to its participations,
	// co-organizers, invites and chat messages in one atomic step.
	DeleteEvent(id uint) error
	ListEvents(f EventFilter) ([]models.Event, error)

	// Participations
	CreateParticipation(p *models.EventParticipant) error
	ParticipationByID(id uint) (*models.EventParticipant, error)
	ParticipationByEventAndUser(eventID, userID uint) (*models.EventParticipant, error)
	ListParticipantsByEvent(eventID uint) ([]models.EventParticipant, error)
	UpdateParticipation(p *models.EventParticipant) error
	DeleteParticipation(id uint) error
	CountActiveParticipants(eventID uint) (int64, error)

	// Notifications
	CreateNotification(n *models.Notification, recipientIDs []uint) error
	FindNotification(ntype string, eventID, sourceID uint) (*models.Notification, error)
	NotificationsForUser(userID uint) ([]UserNotification, error)
	RecipientByID(id uint) (*models.NotificationRecipient, error)
	MarkRecipientRead(id uint) error
	MarkAllRead(userID uint) error
	// DeleteRecipient removes a recipient row and deletes the parent
	// notification when no recipients remain.
	DeleteRecipient(id uint) error

	// Chat
	CreateChatMessage(m *models.ChatMessage) error
	ListChatMessages(eventID uint, since *time.Time) ([]models.ChatMessage, error)

	// Co-organizers
	CreateInvite(inv *models.EventCoOrganizerInvite) error
	InviteByToken(token string) (*models.EventCoOrganizerInvite, error)
	UpdateInvite(inv *models.EventCoOrganizerInvite) error
	AddCoOrganizer(eventID, userID uint) error
	IsCoOrganizer(eventID, userID uint) (bool, error)
	ListCoOrganizers(eventID uint) ([]models.User, error)
}
