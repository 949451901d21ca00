package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
	"github.com/google/uuid"
)

// InviteService issues and resolves co-organizer invites. An accepted
// invite grants the accepting user creator-equivalent rights on the event.
type InviteService struct {
	store    store.Store
	notifier *NotificationService
	mailer   Mailer
}

func NewInviteService(s store.Store, notifier *NotificationService, mailer Mailer) *InviteService {
	return &InviteService{store: s, notifier: notifier, mailer: mailer}
}

func (s *InviteService) Invite(actorID, eventID uint, email string) (*models.EventCoOrganizerInvite, error) {
	event, err := s.store.EventByID(eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	organizer, err := IsOrganizer(s.store, event, actorID)
	if err != nil {
		return nil, err
	}
	if !organizer {
		return nil, ErrNotOrganizer
	}

	inv := &models.EventCoOrganizerInvite{
		EventID:   eventID,
		InviterID: actorID,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Token:     uuid.NewString(),
		Status:    models.InviteStatusPending,
	}
	if err := s.store.CreateInvite(inv); err != nil {
		return nil, err
	}

	// Delivery is best effort; the invite stays valid either way.
	s.mailer.SendCoOrganizerInvite(inv.Email, event, inv.Token)

	// Invitees with an account also hear about it in-app.
	if invitee, err := s.store.UserByEmail(inv.Email); err == nil {
		eventID, sourceID := event.ID, inv.ID
		if _, err := s.notifier.Notify(
			models.NotificationTypeInvite,
			"Co-organizer invite",
			fmt.Sprintf("You were invited to co-organize %q.", event.Name),
			&eventID, &sourceID, models.SourceTypeInvite,
			[]uint{invitee.ID},
		); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	return inv, nil
}

func (s *InviteService) ByToken(token string) (*models.EventCoOrganizerInvite, *models.Event, error) {
	inv, err := s.store.InviteByToken(token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInviteNotFound
		}
		return nil, nil, err
	}
	event, err := s.store.EventByID(inv.EventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrEventNotFound
		}
		return nil, nil, err
	}
	return inv, event, nil
}

// Accept turns a pending invite into a co-organizer grant. Accepting an
// already-accepted invite again is a no-op for the same user and a
// conflict for anyone else.
func (s *InviteService) Accept(token string, userID uint) (*models.EventCoOrganizerInvite, error) {
	inv, event, err := s.ByToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.store.UserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	switch inv.Status {
	case models.InviteStatusAccepted:
		already, err := s.store.IsCoOrganizer(event.ID, userID)
		if err != nil {
			return nil, err
		}
		if already {
			return inv, nil
		}
		return nil, ErrInviteClosed
	case models.InviteStatusRejected:
		return nil, ErrInviteClosed
	}

	if !strings.EqualFold(user.Email, inv.Email) {
		return nil, ErrInviteEmailMismatch
	}

	if event.CreatorID != userID {
		if err := s.store.AddCoOrganizer(event.ID, userID); err != nil && !errors.Is(err, store.ErrDuplicate) {
			return nil, err
		}
	}

	inv.Status = models.InviteStatusAccepted
	if err := s.store.UpdateInvite(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InviteService) Reject(token string) (*models.EventCoOrganizerInvite, error) {
	inv, _, err := s.ByToken(token)
	if err != nil {
		return nil, err
	}
	if inv.Status != models.InviteStatusPending {
		return nil, ErrInviteClosed
	}

	inv.Status = models.InviteStatusRejected
	if err := s.store.UpdateInvite(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InviteService) CoOrganizers(actorID, eventID uint) ([]models.User, error) {
	event, err := s.store.EventByID(eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	organizer, err := IsOrganizer(s.store, event, actorID)
	if err != nil {
		return nil, err
	}
	if !organizer {
		return nil, ErrNotOrganizer
	}
	return s.store.ListCoOrganizers(eventID)
}
