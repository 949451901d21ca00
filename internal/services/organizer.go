package services

import (
	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
)

// IsOrganizer reports whether the user holds management rights on the
// event: the creator, or a co-organizer added through an accepted invite.
func IsOrganizer(s store.Store, event *models.Event, userID uint) (bool, error) {
	if event.CreatorID == userID {
		return true, nil
	}
	return s.IsCoOrganizer(event.ID, userID)
}
