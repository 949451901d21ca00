package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/services"
	"github.com/baco-dev/baco/internal/store/memstore"
)

type env struct {
	store          *memstore.Memstore
	notifier       *services.NotificationService
	participations *services.ParticipationService
}

func newEnv() *env {
	s := memstore.New()
	notifier := services.NewNotificationService(s)
	return &env{
		store:          s,
		notifier:       notifier,
		participations: services.NewParticipationService(s, notifier),
	}
}

func (e *env) user(t *testing.T, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, PasswordHash: "x", DocumentStatus: models.DocumentStatusNone}
	if err := e.store.CreateUser(u); err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return u
}

func (e *env) event(t *testing.T, creatorID uint, eventType string, capacity int) *models.Event {
	t.Helper()
	ev := &models.Event{
		Name:      "Rooftop Dinner",
		Date:      time.Now().Add(48 * time.Hour),
		StartTime: "20:00",
		EventType: eventType,
		Capacity:  capacity,
		CreatorID: creatorID,
	}
	if err := e.store.CreateEvent(ev); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	return ev
}

func countByType(t *testing.T, e *env, userID uint, ntype string) int {
	t.Helper()
	list, err := e.notifier.ListForUser(userID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	count := 0
	for _, n := range list {
		if n.Notification.Type == ntype {
			count++
		}
	}
	return count
}

func TestJoinPublicEventAutoConfirms(t *testing.T) {
	e := newEnv()
	a := e.user(t, "Ana", "ana@example.com")
	b := e.user(t, "Bruno", "bruno@example.com")
	ev := e.event(t, a.ID, models.EventTypePublic, 0)

	p, err := e.participations.Join(ev.ID, b.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if p.Status != models.ParticipantStatusConfirmed {
		t.Errorf("status = %q, want confirmed", p.Status)
	}

	// Only application-based events notify the organizer.
	if got := countByType(t, e, a.ID, models.NotificationTypeRequest); got != 0 {
		t.Errorf("creator got %d request notifications for a public join, want 0", got)
	}
}

func TestJoinApplicationEventStartsPending(t *testing.T) {
	e := newEnv()
	a := e.user(t, "Ana", "ana@example.com")
	b := e.user(t, "Bruno", "bruno@example.com")
	ev := e.event(t, a.ID, models.EventTypePrivateApplication, 0)

	p, err := e.participations.Join(ev.ID, b.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if p.Status != models.ParticipantStatusPending {
		t.Errorf("status = %q, want pending", p.Status)
	}

	if got := countByType(t, e, a.ID, models.NotificationTypeRequest); got != 1 {
		t.Errorf("creator got %d request notifications, want 1", got)
	}
	if got := countByType(t, e, b.ID, models.NotificationTypeApproved); got != 0 {
		t.Errorf("participant already has %d approval notifications", got)
	}
}

func TestJoinOwnEvent(t *testing.T) {
	e := newEnv()
	a := e.user(t, "Ana", "ana@example.com")
	ev := e.event(t, a.ID, models.EventTypePublic, 0)

	if _, err := e.participations.Join(ev.ID, a.ID); !errors.Is(err, services.ErrOwnEvent) {
		t.Errorf("joining own event: got %v, want ErrOwnEvent", err)
	}
}

func TestJoinTwice(t *testing.T) {
	e := newEnv()
	a := e.user(t, "Ana", "ana@example.com")
	b := e.user(t, "Bruno", "bruno@example.com")
	ev := e.event(t, a.ID, models.EventTypePublic, 0)

	if _, err := e.participations.Join(ev.ID, b.ID); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := e.participations.Join(ev.ID, b.ID); !errors.Is(err, services.ErrAlreadyParticipating) {
		t.Errorf("second join: got %v, want ErrAlreadyParticipating", err)
	}
}

func TestJoinMissingEvent(t *testing.T) {
	e := newEnv()
	b := e.user(t, "Bruno", "bruno@example.com")

	if _, err := e.participations.Join(999, b.ID); !errors.Is(err, services.ErrEventNotFound) {
		t.Errorf("join on missing event: got %v, want ErrEventNotFound", err)
	}
}

func TestApproveLifecycle(t *testing.T) {
	e := newEnv()
	a := e.user(t, "Ana", "ana@example.com")
	b := e.user(t, "Bruno", "bruno@example.com")
	ev := e.event(t, a.ID, models.EventTypePrivateApplication, 0)

	p, err := e.participations.Join(ev.ID, b.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	approved, err := e.participations.Approve(a.ID, p.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != models.ParticipantStatusApproved {
		t.Errorf("status = %q, want approved", approved.Status)
	}
	if got := countByType(t, e, b.ID, models.NotificationTypeApproved); got != 1 {
		t.Errorf("participant has %d approval notifications, want 1", got)
	}

	// Approving anything but a pending participation is a conflict.
	if _, err := e.participations.Approve(a.ID, p.ID); !errors.Is(err, services.ErrNotPending) {
		t.Errorf("double approve: got %v, want ErrNotPending", err)
	}

	// A revert/approve cycle must not notify the participant twice.
	if _, err := e.participations.Revert(a.ID, p.ID); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if _, err := e.participations.Approve(a.ID, p.ID); err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	if got := countByType(t, e, b.ID, models.NotificationTypeApproved); got != 1 {
		t.Errorf("participant has %d approval notifications after re-approve, want 1", got)
	}
}

func TestRejectNotifiesEveryTime(t *testing.T) {
	e := newEnv()
	a := e.user(t, "Ana", "ana@example.com")
	b := e.user(t, "Bruno", "bruno@example.com")
	ev := e.event(t, a.ID, models.EventTypePrivateApplication, 0)

	p, err := e.participations.Join(ev.ID, b.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	if _, err := e.participations.Reject(a.ID, p.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if _, err := e.participations.Reject(a.ID, p.ID); !errors.Is(err, services.ErrNotPending) {
		t.Errorf("double reject: got %v, want ErrNotPending", err)
	}

	// Each fresh decision after a revert notifies again.
	if _, err := e.participations.Revert(a.ID, p.ID); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if _, err := e.participations.Reject(a.ID, p.ID); err != nil {
		t.Fatalf("re-reject: %v", err)
	}
	if got := countByType(t, e, b.ID, models.NotificationTypeRejected); got != 2 {
		t.Errorf("participant has %d rejection notifications, want 2", got)
	}
}

func TestRevertEmitsNoNotification(t *testing.T) {
	e := newEnv()
	a := e.user(t, "Ana", "ana@example.com")
	b := e.user(t, "Bruno", "bruno@example.com")
	ev := e.event(t, a.ID, models.EventTypePrivateApplication, 0)

	p, _ := e.participations.Join(ev.ID, b.ID)
	if _, err := e.participations.Approve(a.ID, p.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	before, _ := e.notifier.ListForUser(b.ID)
	if _, err := e.participations.Revert(a.ID, p.ID); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	after, _ := e.notifier.ListForUser(b.ID)

	if len(after) != len(before) {
		t.Errorf("revert changed notification count from %d to %d", len(before), len(after))
	}
}

func TestRevertRequiresDecision(t *testing.T) {
	e := newEnv()
	a := e.user(t, "Ana", "ana@example.com")
	b := e.user(t, "Bruno", "bruno@example.com")
	ev := e.event(t, a.ID, models.EventTypePrivateApplication, 0)

	p, _ := e.participations.Join(ev.ID, b.ID)
	if _, err := e.participations.Revert(a.ID, p.ID); !errors.Is(err, services.ErrNotDecided) {
		t.Errorf("revert on pending: got %v, want ErrNotDecided", err)
	}
}

func TestDecisionsRequireOrganizer(t *testing.T) {
	e := newEnv()
	a := e.user(t, "Ana", "ana@example.com")
	b := e.user(t, "Bruno", "bruno@example.com")
	c := e.user(t, "Clara", "clara@example.com")
	ev := e.event(t, a.ID, models.EventTypePrivateApplication, 0)

	p, _ := e.participations.Join(ev.ID, b.ID)

	if _, err := e.participations.Approve(c.ID, p.ID); !errors.Is(err, services.ErrNotOrganizer) {
		t.Errorf("stranger approve: got %v, want ErrNotOrganizer", err)
	}

	// A co-organizer holds creator-equivalent rights.
	if err := e.store.AddCoOrganizer(ev.ID, c.ID); err != nil {
		t.Fatalf("AddCoOrganizer: %v", err)
	}
	if _, err := e.participations.Approve(c.ID, p.ID); err != nil {
		t.Errorf("co-organizer approve: %v", err)
	}
}

func TestRemove(t *testing.T) {
	e := newEnv()
	a := e.user(t, "Ana", "ana@example.com")
	b := e.user(t, "Bruno", "bruno@example.com")
	c := e.user(t, "Clara", "clara@example.com")
	ev := e.event(t, a.ID, models.EventTypePublic, 0)

	p, _ := e.participations.Join(ev.ID, b.ID)

	if err := e.participations.Remove(c.ID, p.ID); !errors.Is(err, services.ErrNotYourParticipation) {
		t.Errorf("stranger remove: got %v, want ErrNotYourParticipation", err)
	}

	// Self-withdrawal, then rejoin.
	if err := e.participations.Remove(b.ID, p.ID); err != nil {
		t.Fatalf("self remove: %v", err)
	}
	p2, err := e.participations.Join(ev.ID, b.ID)
	if err != nil {
		t.Fatalf("rejoin after withdrawal: %v", err)
	}

	// The creator can remove any participant.
	if err := e.participations.Remove(a.ID, p2.ID); err != nil {
		t.Errorf("creator remove: %v", err)
	}
	if _, err := e.participations.Get(ev.ID, b.ID); !errors.Is(err, services.ErrParticipationNotFound) {
		t.Errorf("participation still present after removal: %v", err)
	}
}

func TestCapacity(t *testing.T) {
	e := newEnv()
	a := e.user(t, "Ana", "ana@example.com")
	b := e.user(t, "Bruno", "bruno@example.com")
	c := e.user(t, "Clara", "clara@example.com")

	public := e.event(t, a.ID, models.EventTypePublic, 1)
	if _, err := e.participations.Join(public.ID, b.ID); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := e.participations.Join(public.ID, c.ID); !errors.Is(err, services.ErrEventFull) {
		t.Errorf("join past capacity: got %v, want ErrEventFull", err)
	}

	// Pending requests do not hold seats; the check moves to approval.
	gated := e.event(t, a.ID, models.EventTypePrivateApplication, 1)
	pb, err := e.participations.Join(gated.ID, b.ID)
	if err != nil {
		t.Fatalf("pending join b: %v", err)
	}
	pc, err := e.participations.Join(gated.ID, c.ID)
	if err != nil {
		t.Fatalf("pending join c: %v", err)
	}
	if _, err := e.participations.Approve(a.ID, pb.ID); err != nil {
		t.Fatalf("approve b: %v", err)
	}
	if _, err := e.participations.Approve(a.ID, pc.ID); !errors.Is(err, services.ErrEventFull) {
		t.Errorf("approve past capacity: got %v, want ErrEventFull", err)
	}
}
