package services

import "errors"

// Service errors. Handlers map these onto HTTP statuses.
var (
	ErrEventNotFound         = errors.New("event not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrParticipationNotFound = errors.New("participation not found")
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrInviteNotFound        = errors.New("invite not found")

	ErrNotOrganizer          = errors.New("only the event organizer can perform this action")
	ErrNotYourNotification   = errors.New("notification does not belong to you")
	ErrNotYourParticipation  = errors.New("only the organizer or the participant can remove a participation")
	ErrChatUnavailable       = errors.New("chat is only available for application-based events")
	ErrChatForbidden         = errors.New("chat is restricted to the organizer and approved participants")
	ErrInviteEmailMismatch   = errors.New("invite was issued for a different email address")

	ErrOwnEvent             = errors.New("cannot join your own event")
	ErrAlreadyParticipating = errors.New("already participating in this event")
	ErrEventFull            = errors.New("event is at capacity")
	ErrNotPending           = errors.New("participation is not pending review")
	ErrNotDecided           = errors.New("participation has not been approved or rejected")
	ErrInviteClosed         = errors.New("invite has already been answered")
)

var notFoundErrors = []error{
	ErrEventNotFound,
	ErrUserNotFound,
	ErrParticipationNotFound,
	ErrNotificationNotFound,
	ErrInviteNotFound,
}

var forbiddenErrors = []error{
	ErrNotOrganizer,
	ErrNotYourNotification,
	ErrNotYourParticipation,
	ErrChatUnavailable,
	ErrChatForbidden,
	ErrInviteEmailMismatch,
}

var conflictErrors = []error{
	ErrOwnEvent,
	ErrAlreadyParticipating,
	ErrEventFull,
	ErrNotPending,
	ErrNotDecided,
	ErrInviteClosed,
}

func IsNotFound(err error) bool  { return matches(err, notFoundErrors) }
func IsForbidden(err error) bool { return matches(err, forbiddenErrors) }
func IsConflict(err error) bool  { return matches(err, conflictErrors) }

func matches(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
