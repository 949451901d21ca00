package services

import (
	"log"

	"github.com/baco-dev/baco/internal/models"
)

// Mailer delivers co-organizer invites. Delivery is an external concern;
// deployments plug in their provider.
type Mailer interface {
	SendCoOrganizerInvite(to string, event *models.Event, token string)
}

// LogMailer writes the invite to the log instead of sending mail. Default
// for development and tests.
type LogMailer struct{}

func (LogMailer) SendCoOrganizerInvite(to string, event *models.Event, token string) {
	log.Printf("invite: co-organizer invite for event %q (%d) to %s, token %s", event.Name, event.ID, to, token)
}
