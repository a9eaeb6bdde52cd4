// package models defines the data model for the token generator web service
package models

import (
	"context"
	"time"
)

// Model defines the base interface for persistent models.
type Model interface {
	GetID() string // GetID returns the unique identifier for this model
	Validate() error
}

// SessionStore persists [Session] records keyed by id.
//
// Get returns shared.ErrSessionNotFound for unknown or expired sessions.
// Save stamps LastSeenAt and restarts the inactivity window.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
	Prune(ctx context.Context) (int, error) // Prune removes expired sessions and returns how many were dropped
}

// Clock returns the current time; stores take one so tests can move time forward.
type Clock func() time.Time
