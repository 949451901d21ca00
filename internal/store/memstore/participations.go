package memstore

import (
	"sort"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
)

// CreateParticipation enforces the (event, user) uniqueness under the lock,
// closing the check-then-create race a handler-level existence check would
// leave open.
func (s *Memstore) CreateParticipation(p *models.EventParticipant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[p.EventID]; !ok {
		return store.ErrNotFound
	}
	if _, ok := s.users[p.UserID]; !ok {
		return store.ErrNotFound
	}
	for _, existing := range s.participations {
		if existing.EventID == p.EventID && existing.UserID == p.UserID {
			return store.ErrDuplicate
		}
	}

	stamp(&p.Model, s.nextParticipationID)
	s.nextParticipationID++
	s.participations[p.ID] = *p
	return nil
}

func (s *Memstore) ParticipationByID(id uint) (*models.EventParticipant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Memstore) ParticipationByEventAndUser(eventID, userID uint) (*models.EventParticipant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.participations {
		if p.EventID == eventID && p.UserID == userID {
			participation := p
			return &participation, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Memstore) ListParticipantsByEvent(eventID uint) ([]models.EventParticipant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	participants := make([]models.EventParticipant, 0)
	for _, p := range s.participations {
		if p.EventID == eventID {
			participants = append(participants, p)
		}
	}
	sort.Slice(participants, func(i, j int) bool { return participants[i].ID < participants[j].ID })
	return participants, nil
}

func (s *Memstore) UpdateParticipation(p *models.EventParticipant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participations[p.ID]; !ok {
		return store.ErrNotFound
	}
	s.participations[p.ID] = *p
	return nil
}

func (s *Memstore) DeleteParticipation(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participations[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.participations, id)
	return nil
}

func (s *Memstore) CountActiveParticipants(eventID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, p := range s.participations {
		if p.EventID == eventID && p.Active() {
			count++
		}
	}
	return count, nil
}
