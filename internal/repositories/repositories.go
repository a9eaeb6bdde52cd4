package repositories

import (
	"fmt"
	"time"

	"github.com/desertthunder/tokengen/internal/models"
	"github.com/desertthunder/tokengen/internal/shared"
)

// checkSave validates a record and stamps LastSeenAt before it is written.
func checkSave(session *models.Session, now time.Time) error {
	if session == nil {
		return fmt.Errorf("%w: nil session", shared.ErrInvalidSession)
	}
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.LastSeenAt = now
	return nil
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
}

func clockOrNow(c models.Clock) models.Clock {
	if c == nil {
		return time.Now
	}
	return c
}
