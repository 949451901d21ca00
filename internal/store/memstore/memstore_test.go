package memstore

import (
	"errors"
	"testing"
	"time"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
)

func newUser(t *testing.T, s *Memstore, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, PasswordHash: "x", DocumentStatus: models.DocumentStatusNone}
	if err := s.CreateUser(u); err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return u
}

func newEvent(t *testing.T, s *Memstore, creatorID uint, eventType string) *models.Event {
	t.Helper()
	e := &models.Event{
		Name:      "Picnic",
		Date:      time.Now().Add(24 * time.Hour),
		StartTime: "12:00",
		EventType: eventType,
		CreatorID: creatorID,
	}
	if err := s.CreateEvent(e); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	return e
}

func TestSeededAdminAndIDAllocation(t *testing.T) {
	s := New()

	admin, err := s.UserByID(AdminUserID)
	if err != nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	if !admin.IsAdmin {
		t.Error("seeded admin is not flagged as admin")
	}

	u := newUser(t, s, "Ana", "ana@example.com")
	if u.ID != AdminUserID+1 {
		t.Errorf("first created user got ID %d, want %d", u.ID, AdminUserID+1)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := New()
	newUser(t, s, "Ana", "ana@example.com")

	err := s.CreateUser(&models.User{Name: "Other", Email: "ANA@example.com", PasswordHash: "x"})
	if !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("duplicate email: got %v, want ErrDuplicate", err)
	}
}

func TestParticipationUniqueness(t *testing.T) {
	s := New()
	creator := newUser(t, s, "Ana", "ana@example.com")
	joiner := newUser(t, s, "Bruno", "bruno@example.com")
	event := newEvent(t, s, creator.ID, models.EventTypePublic)

	p := &models.EventParticipant{EventID: event.ID, UserID: joiner.ID, Status: models.ParticipantStatusConfirmed}
	if err := s.CreateParticipation(p); err != nil {
		t.Fatalf("first join: %v", err)
	}

	dup := &models.EventParticipant{EventID: event.ID, UserID: joiner.ID, Status: models.ParticipantStatusConfirmed}
	if err := s.CreateParticipation(dup); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("second join: got %v, want ErrDuplicate", err)
	}

	// Withdrawing frees the pair for a rejoin.
	if err := s.DeleteParticipation(p.ID); err != nil {
		t.Fatalf("DeleteParticipation: %v", err)
	}
	if err := s.CreateParticipation(dup); err != nil {
		t.Errorf("rejoin after withdrawal: %v", err)
	}
}

func TestDeleteEventCascades(t *testing.T) {
	s := New()
	creator := newUser(t, s, "Ana", "ana@example.com")
	joiner := newUser(t, s, "Bruno", "bruno@example.com")
	event := newEvent(t, s, creator.ID, models.EventTypePrivateApplication)

	p := &models.EventParticipant{EventID: event.ID, UserID: joiner.ID, Status: models.ParticipantStatusApproved}
	if err := s.CreateParticipation(p); err != nil {
		t.Fatalf("CreateParticipation: %v", err)
	}
	m := &models.ChatMessage{EventID: event.ID, SenderID: creator.ID, Content: "hi", SentAt: time.Now()}
	if err := s.CreateChatMessage(m); err != nil {
		t.Fatalf("CreateChatMessage: %v", err)
	}
	if err := s.AddCoOrganizer(event.ID, joiner.ID); err != nil {
		t.Fatalf("AddCoOrganizer: %v", err)
	}
	inv := &models.EventCoOrganizerInvite{EventID: event.ID, InviterID: creator.ID, Email: "x@example.com", Token: "tok", Status: models.InviteStatusPending}
	if err := s.CreateInvite(inv); err != nil {
		t.Fatalf("CreateInvite: %v", err)
	}

	if err := s.DeleteEvent(event.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}

	if _, err := s.EventByID(event.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("event still present after delete: %v", err)
	}
	if _, err := s.ParticipationByID(p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("participation survived cascade: %v", err)
	}
	messages, err := s.ListChatMessages(event.ID, nil)
	if err != nil || len(messages) != 0 {
		t.Errorf("chat messages survived cascade: %v, %d left", err, len(messages))
	}
	if ok, _ := s.IsCoOrganizer(event.ID, joiner.ID); ok {
		t.Error("co-organizer survived cascade")
	}
	if _, err := s.InviteByToken("tok"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("invite survived cascade: %v", err)
	}
}

func TestDeleteRecipientGarbageCollects(t *testing.T) {
	s := New()
	a := newUser(t, s, "Ana", "ana@example.com")
	b := newUser(t, s, "Bruno", "bruno@example.com")

	eventID, sourceID := uint(7), uint(9)
	n := &models.Notification{Type: "participant_request", Title: "t", EventID: &eventID, SourceID: &sourceID}
	if err := s.CreateNotification(n, []uint{a.ID, b.ID}); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	forA, err := s.NotificationsForUser(a.ID)
	if err != nil || len(forA) != 1 {
		t.Fatalf("NotificationsForUser(a): %v, got %d", err, len(forA))
	}

	if err := s.DeleteRecipient(forA[0].Recipient.ID); err != nil {
		t.Fatalf("DeleteRecipient: %v", err)
	}
	if _, err := s.FindNotification("participant_request", eventID, sourceID); err != nil {
		t.Errorf("notification collected while a recipient remained: %v", err)
	}

	forB, err := s.NotificationsForUser(b.ID)
	if err != nil || len(forB) != 1 {
		t.Fatalf("NotificationsForUser(b): %v, got %d", err, len(forB))
	}
	if err := s.DeleteRecipient(forB[0].Recipient.ID); err != nil {
		t.Fatalf("DeleteRecipient: %v", err)
	}
	if _, err := s.FindNotification("participant_request", eventID, sourceID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("orphaned notification not collected: %v", err)
	}
}

func TestListEventsFilters(t *testing.T) {
	s := New()
	creator := newUser(t, s, "Ana", "ana@example.com")

	categoryID := uint(1)
	if err := s.CreateCategory(&models.Category{Name: "Sports"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	run := &models.Event{Name: "Morning Run", Description: "5k by the river", Date: time.Now(), StartTime: "08:00", EventType: models.EventTypePublic, CreatorID: creator.ID, CategoryID: &categoryID}
	dinner := &models.Event{Name: "Secret Dinner", Description: "invite only", Date: time.Now(), StartTime: "20:00", EventType: models.EventTypePrivateApplication, CreatorID: creator.ID}
	for _, e := range []*models.Event{run, dinner} {
		if err := s.CreateEvent(e); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	byQuery, _ := s.ListEvents(store.EventFilter{Query: "river"})
	if len(byQuery) != 1 || byQuery[0].ID != run.ID {
		t.Errorf("query filter: got %d events", len(byQuery))
	}

	byCategory, _ := s.ListEvents(store.EventFilter{CategoryID: categoryID})
	if len(byCategory) != 1 || byCategory[0].ID != run.ID {
		t.Errorf("category filter: got %d events", len(byCategory))
	}

	byType, _ := s.ListEvents(store.EventFilter{EventType: models.EventTypePrivateApplication})
	if len(byType) != 1 || byType[0].ID != dinner.ID {
		t.Errorf("type filter: got %d events", len(byType))
	}

	all, _ := s.ListEvents(store.EventFilter{})
	if len(all) != 2 {
		t.Errorf("unfiltered list: got %d events, want 2", len(all))
	}
}
