package memstore

import (
	"sort"
	"strings"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
)

func (s *Memstore) CreateEvent(e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[e.CreatorID]; !ok {
		return store.ErrNotFound
	}

	stamp(&e.Model, s.nextEventID)
	s.nextEventID++
	s.events[e.ID] = *e
	return nil
}

func (s *Memstore) EventByID(id uint) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (s *Memstore) UpdateEvent(e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[e.ID]; !ok {
		return store.ErrNotFound
	}
	s.events[e.ID] = *e
	return nil
}

// DeleteEvent cascades under the single lock, so no request can observe a
// half-removed event.
func (s *Memstore) DeleteEvent(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.events, id)

	for pid, p := range s.participations {
		if p.EventID == id {
			delete(s.participations, pid)
		}
	}
	for cid, c := range s.coOrganizers {
		if c.EventID == id {
			delete(s.coOrganizers, cid)
		}
	}
	for iid, inv := range s.invites {
		if inv.EventID == id {
			delete(s.invites, iid)
		}
	}
	for mid, m := range s.messages {
		if m.EventID == id {
			delete(s.messages, mid)
		}
	}
	return nil
}

func (s *Memstore) ListEvents(f store.EventFilter) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0)
	query := strings.ToLower(f.Query)
	for _, e := range s.events {
		if f.CategoryID != 0 && (e.CategoryID == nil || *e.CategoryID != f.CategoryID) {
			continue
		}
		if f.EventType != "" && e.EventType != f.EventType {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Name), query) &&
			!strings.Contains(strings.ToLower(e.Description), query) {
			continue
		}
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID > events[j].ID })
	return events, nil
}
