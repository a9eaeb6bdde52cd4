package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/tokengen/internal/shared"
)

// State is the position of a [Session] in the authorization flow.
type State int

const (
	StateEmpty        State = iota // no credentials submitted yet
	StateCredentialed              // client id/secret stored, waiting for the provider callback
	StateAuthorized                // tokens and user id stored
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateCredentialed:
		return "credentialed"
	case StateAuthorized:
		return "authorized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is the server-side state of one browser session.
type Session struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id,omitempty"`
	ClientSecret string    `json:"client_secret,omitempty"`
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastSeenAt   time.Time `json:"last_seen_at"`
}

// NewSession creates an empty session with a fresh id.
func NewSession(now time.Time) *Session {
	return &Session{ID: shared.GenerateID(), CreatedAt: now, LastSeenAt: now}
}

func (s *Session) GetID() string { return s.ID }

// SetCredentials resets the session and stores a new client id/secret pair.
//
// Both values are trimmed and must be non-empty.
func (s *Session) SetCredentials(clientID, clientSecret string) error {
	clientID, clientSecret = strings.TrimSpace(clientID), strings.TrimSpace(clientSecret)
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("%w: client_id and client_secret are required", shared.ErrInvalidInput)
	}

	s.Reset()
	s.ClientID = clientID
	s.ClientSecret = clientSecret
	return nil
}

// Reset discards credentials, tokens and identity, keeping id and timestamps.
func (s *Session) Reset() {
	s.ClientID, s.ClientSecret = "", ""
	s.AccessToken, s.RefreshToken = "", ""
	s.UserID = ""
}

// HasCredentials reports whether both halves of the client credential pair are present.
func (s *Session) HasCredentials() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// HasRefreshToken reports whether a refresh grant can be attempted.
func (s *Session) HasRefreshToken() bool {
	return s.HasCredentials() && s.RefreshToken != ""
}

// Authorize records the result of a successful authorization code exchange.
func (s *Session) Authorize(accessToken, refreshToken, userID string) error {
	if !s.HasCredentials() {
		return shared.ErrMissingCredentials
	}
	s.AccessToken = accessToken
	s.RefreshToken = refreshToken
	s.UserID = userID
	return nil
}

// ApplyRefresh stores a refreshed access token. The refresh token is replaced only when the
// provider rotated it.
func (s *Session) ApplyRefresh(accessToken, refreshToken string) error {
	if !s.HasRefreshToken() {
		return shared.ErrNoRefreshToken
	}
	s.AccessToken = accessToken
	if refreshToken != "" {
		s.RefreshToken = refreshToken
	}
	return nil
}

// State reports where the session is in the flow.
func (s *Session) State() State {
	switch {
	case s.HasCredentials() && s.AccessToken != "":
		return StateAuthorized
	case s.HasCredentials():
		return StateCredentialed
	default:
		return StateEmpty
	}
}

// Expired reports whether the session has been idle for longer than idle.
func (s *Session) Expired(now time.Time, idle time.Duration) bool {
	return now.Sub(s.LastSeenAt) > idle
}

// Validate checks the record invariants.
func (s *Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: missing id", shared.ErrInvalidSession)
	}
	if (s.ClientID == "") != (s.ClientSecret == "") {
		return fmt.Errorf("%w: client id and secret must be set together", shared.ErrInvalidSession)
	}
	if !s.HasCredentials() && (s.AccessToken != "" || s.RefreshToken != "" || s.UserID != "") {
		return fmt.Errorf("%w: tokens without client credentials", shared.ErrInvalidSession)
	}
	return nil
}

// Clone returns a copy that shares nothing with s.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}
