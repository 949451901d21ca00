// Package memstore is the in-memory Store implementation. It backs tests
// and STORE=memory deployments. All methods take one lock, so multi-row
// operations (cascade deletes, recipient garbage collection, uniqueness
// checks) are atomic with respect to each other.
package memstore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
	"gorm.io/gorm"
)

// AdminUserID is the reserved seed user. Counters start above it.
const AdminUserID uint = 1

type Memstore struct {
	mu sync.RWMutex

	users          map[uint]models.User
	categories     map[uint]models.Category
	subcategories  map[uint]models.Subcategory
	events         map[uint]models.Event
	participations map[uint]models.EventParticipant
	notifications  map[uint]models.Notification
	recipients     map[uint]models.NotificationRecipient
	messages       map[uint]models.ChatMessage
	invites        map[uint]models.EventCoOrganizerInvite
	coOrganizers   map[uint]models.EventCoOrganizer

	nextUserID          uint
	nextCategoryID      uint
	nextSubcategoryID   uint
	nextEventID         uint
	nextParticipationID uint
	nextNotificationID  uint
	nextRecipientID     uint
	nextMessageID       uint
	nextInviteID        uint
	nextCoOrganizerID   uint
}

func New() *Memstore {
	s := &Memstore{
		users:          make(map[uint]models.User),
		categories:     make(map[uint]models.Category),
		subcategories:  make(map[uint]models.Subcategory),
		events:         make(map[uint]models.Event),
		participations: make(map[uint]models.EventParticipant),
		notifications:  make(map[uint]models.Notification),
		recipients:     make(map[uint]models.NotificationRecipient),
		messages:       make(map[uint]models.ChatMessage),
		invites:        make(map[uint]models.EventCoOrganizerInvite),
		coOrganizers:   make(map[uint]models.EventCoOrganizer),

		nextUserID:          AdminUserID + 1,
		nextCategoryID:      1,
		nextSubcategoryID:   1,
		nextEventID:         1,
		nextParticipationID: 1,
		nextNotificationID:  1,
		nextRecipientID:     1,
		nextMessageID:       1,
		nextInviteID:        1,
		nextCoOrganizerID:   1,
	}

	admin := models.User{
		Name:           "Baco Admin",
		Email:          "admin@baco.app",
		PasswordHash:   "!", // never matches a bcrypt comparison
		DocumentStatus: models.DocumentStatusApproved,
		IsAdmin:        true,
	}
	admin.ID = AdminUserID
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	s.users[AdminUserID] = admin

	return s
}

func stamp(m *gorm.Model, id uint) {
	m.ID = id
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
}

// Users

func (s *Memstore) CreateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return store.ErrDuplicate
		}
	}

	stamp(&u.Model, s.nextUserID)
	s.nextUserID++
	s.users[u.ID] = *u
	return nil
}

func (s *Memstore) UserByID(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Memstore) UserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Memstore) UpdateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *Memstore) ListUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Categories

func (s *Memstore) CreateCategory(c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return store.ErrDuplicate
		}
	}

	stamp(&c.Model, s.nextCategoryID)
	s.nextCategoryID++
	s.categories[c.ID] = *c
	return nil
}

func (s *Memstore) ListCategories() ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (s *Memstore) CreateSubcategory(sc *models.Subcategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[sc.CategoryID]; !ok {
		return store.ErrNotFound
	}

	stamp(&sc.Model, s.nextSubcategoryID)
	s.nextSubcategoryID++
	s.subcategories[sc.ID] = *sc
	return nil
}

func (s *Memstore) ListSubcategories(categoryID uint) ([]models.Subcategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subcategories := make([]models.Subcategory, 0)
	for _, sc := range s.subcategories {
		if sc.CategoryID == categoryID {
			subcategories = append(subcategories, sc)
		}
	}
	sort.Slice(subcategories, func(i, j int) bool { return subcategories[i].ID < subcategories[j].ID })
	return subcategories, nil
}
