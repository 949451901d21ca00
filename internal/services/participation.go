package services

import (
	"errors"
	"fmt"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
)

// ParticipationService runs the lifecycle of a user's attachment to an
// event. Application-based events start participants at pending and the
// organizer decides; every other event type auto-confirms.
//
// Transitions are strictly guarded: approve/reject require pending, revert
// requires approved or rejected. approve and reject each fan out exactly
// one notification; revert stays silent since it only re-opens review.
type ParticipationService struct {
	store    store.Store
	notifier *NotificationService
}

func NewParticipationService(s store.Store, notifier *NotificationService) *ParticipationService {
	return &ParticipationService{store: s, notifier: notifier}
}

func (s *ParticipationService) Join(eventID, userID uint) (*models.EventParticipant, error) {
	event, err := s.store.EventByID(eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.CreatorID == userID {
		return nil, ErrOwnEvent
	}

	status := models.ParticipantStatusConfirmed
	if event.EventType == models.EventTypePrivateApplication {
		status = models.ParticipantStatusPending
	}

	// Pending requests do not hold a seat; their capacity check happens
	// at approval time.
	if status == models.ParticipantStatusConfirmed && event.Capacity > 0 {
		active, err := s.store.CountActiveParticipants(eventID)
		if err != nil {
			return nil, err
		}
		if active >= int64(event.Capacity) {
			return nil, ErrEventFull
		}
	}

	p := &models.EventParticipant{
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	}
	if err := s.store.CreateParticipation(p); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadyParticipating
		}
		return nil, err
	}

	if status == models.ParticipantStatusPending {
		if err := s.notifyRequest(event, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (s *ParticipationService) Get(eventID, userID uint) (*models.EventParticipant, error) {
	p, err := s.store.ParticipationByEventAndUser(eventID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrParticipationNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ParticipationService) Approve(actorID, participationID uint) (*models.EventParticipant, error) {
	p, event, err := s.loadForDecision(actorID, participationID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.ParticipantStatusPending {
		return nil, ErrNotPending
	}
	if event.Capacity > 0 {
		active, err := s.store.CountActiveParticipants(event.ID)
		if err != nil {
			return nil, err
		}
		if active >= int64(event.Capacity) {
			return nil, ErrEventFull
		}
	}

	p.Status = models.ParticipantStatusApproved
	if err := s.store.UpdateParticipation(p); err != nil {
		return nil, err
	}

	// Deduped by (type, event, source) so a revert/approve cycle does not
	// notify the participant twice.
	_, err = s.notifier.NotifyOnce(
		models.NotificationTypeApproved,
		"Participation approved",
		fmt.Sprintf("You are in! Your request to join %q was approved.", event.Name),
		event.ID, p.ID, models.SourceTypeParticipation,
		[]uint{p.UserID},
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ParticipationService) Reject(actorID, participationID uint) (*models.EventParticipant, error) {
	p, event, err := s.loadForDecision(actorID, participationID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.ParticipantStatusPending {
		return nil, ErrNotPending
	}

	p.Status = models.ParticipantStatusRejected
	if err := s.store.UpdateParticipation(p); err != nil {
		return nil, err
	}

	// Not deduped: a rejection after a revert is a fresh decision and the
	// participant hears about it again.
	eventID, sourceID := event.ID, p.ID
	_, err = s.notifier.Notify(
		models.NotificationTypeRejected,
		"Participation rejected",
		fmt.Sprintf("Your request to join %q was declined.", event.Name),
		&eventID, &sourceID, models.SourceTypeParticipation,
		[]uint{p.UserID},
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Revert re-opens an approved or rejected participation for review. No
// notification goes out: the participant should not see churn before a
// final decision exists.
func (s *ParticipationService) Revert(actorID, participationID uint) (*models.EventParticipant, error) {
	p, _, err := s.loadForDecision(actorID, participationID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.ParticipantStatusApproved && p.Status != models.ParticipantStatusRejected {
		return nil, ErrNotDecided
	}

	p.Status = models.ParticipantStatusPending
	if err := s.store.UpdateParticipation(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Remove deletes a participation. The participant may withdraw themselves;
// the organizer may remove anyone.
func (s *ParticipationService) Remove(actorID, participationID uint) error {
	p, err := s.store.ParticipationByID(participationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrParticipationNotFound
		}
		return err
	}

	if p.UserID != actorID {
		event, err := s.store.EventByID(p.EventID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		organizer, err := IsOrganizer(s.store, event, actorID)
		if err != nil {
			return err
		}
		if !organizer {
			return ErrNotYourParticipation
		}
	}

	return s.store.DeleteParticipation(participationID)
}

func (s *ParticipationService) loadForDecision(actorID, participationID uint) (*models.EventParticipant, *models.Event, error) {
	p, err := s.store.ParticipationByID(participationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrParticipationNotFound
		}
		return nil, nil, err
	}
	event, err := s.store.EventByID(p.EventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrEventNotFound
		}
		return nil, nil, err
	}
	organizer, err := IsOrganizer(s.store, event, actorID)
	if err != nil {
		return nil, nil, err
	}
	if !organizer {
		return nil, nil, ErrNotOrganizer
	}
	return p, event, nil
}

// notifyRequest tells every organizer about a new pending request.
func (s *ParticipationService) notifyRequest(event *models.Event, p *models.EventParticipant) error {
	user, err := s.store.UserByID(p.UserID)
	if err != nil {
		return err
	}

	recipients := []uint{event.CreatorID}
	coOrganizers, err := s.store.ListCoOrganizers(event.ID)
	if err != nil {
		return err
	}
	for _, c := range coOrganizers {
		recipients = append(recipients, c.ID)
	}

	eventID, sourceID := event.ID, p.ID
	_, err = s.notifier.Notify(
		models.NotificationTypeRequest,
		"New participation request",
		fmt.Sprintf("%s wants to join %q.", user.Name, event.Name),
		&eventID, &sourceID, models.SourceTypeParticipation,
		recipients,
	)
	return err
}
