package memstore

import (
	"sort"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
)

func (s *Memstore) CreateInvite(inv *models.EventCoOrganizerInvite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[inv.EventID]; !ok {
		return store.ErrNotFound
	}

	stamp(&inv.Model, s.nextInviteID)
	s.nextInviteID++
	s.invites[inv.ID] = *inv
	return nil
}

func (s *Memstore) InviteByToken(token string) (*models.EventCoOrganizerInvite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invites {
		if inv.Token == token {
			invite := inv
			return &invite, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Memstore) UpdateInvite(inv *models.EventCoOrganizerInvite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invites[inv.ID]; !ok {
		return store.ErrNotFound
	}
	s.invites[inv.ID] = *inv
	return nil
}

func (s *Memstore) AddCoOrganizer(eventID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		return store.ErrNotFound
	}
	for _, c := range s.coOrganizers {
		if c.EventID == eventID && c.UserID == userID {
			return store.ErrDuplicate
		}
	}

	c := models.EventCoOrganizer{EventID: eventID, UserID: userID}
	stamp(&c.Model, s.nextCoOrganizerID)
	s.nextCoOrganizerID++
	s.coOrganizers[c.ID] = c
	return nil
}

func (s *Memstore) IsCoOrganizer(eventID, userID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.coOrganizers {
		if c.EventID == eventID && c.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Memstore) ListCoOrganizers(eventID uint) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint, 0)
	for _, c := range s.coOrganizers {
		if c.EventID == eventID {
			ids = append(ids, c.UserID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}
