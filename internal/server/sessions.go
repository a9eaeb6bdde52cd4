package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tokengen/internal/models"
	"github.com/desertthunder/tokengen/internal/shared"
	"github.com/gorilla/securecookie"
)

type sessionKey struct{}

// SessionOpts configures a [SessionManager].
type SessionOpts struct {
	Store      models.SessionStore
	Secret     string
	CookieName string
	Secure     bool
	Idle       time.Duration
	Now        models.Clock
	Logger     *log.Logger
}

// SessionManager maps the signed session cookie to a server-side [models.Session].
type SessionManager struct {
	store  models.SessionStore
	codec  *securecookie.SecureCookie
	name   string
	secure bool
	idle   time.Duration
	now    models.Clock
	logger *log.Logger
}

// NewSessionManager creates a session manager. The secret signs the cookie and must be at least
// [shared.MinSecretKeyLength] bytes.
func NewSessionManager(opts SessionOpts) (*SessionManager, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("%w: session store", shared.ErrMissingConfig)
	}
	if len(opts.Secret) < shared.MinSecretKeyLength {
		return nil, shared.ErrMissingSecret
	}
	if opts.CookieName == "" {
		opts.CookieName = "tokengen_session"
	}
	if opts.Idle <= 0 {
		opts.Idle = 30 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	codec := securecookie.New([]byte(opts.Secret), nil)
	codec.MaxAge(int(opts.Idle.Seconds()))

	return &SessionManager{
		store:  opts.Store,
		codec:  codec,
		name:   opts.CookieName,
		secure: opts.Secure,
		idle:   opts.Idle,
		now:    opts.Now,
		logger: shared.WithLogger(opts.Logger, "component", "sessions"),
	}, nil
}

// Middleware loads the request's session (creating one when the cookie is absent, invalid or
// points at an expired session), saves it to restart the idle window and re-issues the cookie.
func (m *SessionManager) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := m.load(r)
			if err != nil {
				writeError(w, r, m.logger, err)
				return
			}

			if err := m.store.Save(r.Context(), session); err != nil {
				writeError(w, r, m.logger, fmt.Errorf("failed to touch session: %w", err))
				return
			}

			if err := m.setCookie(w, session.ID); err != nil {
				writeError(w, r, m.logger, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// Save persists the session after a handler changed it.
func (m *SessionManager) Save(ctx context.Context, session *models.Session) error {
	if err := m.store.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (m *SessionManager) load(r *http.Request) (*models.Session, error) {
	cookie, err := r.Cookie(m.name)
	if err != nil {
		return models.NewSession(m.now()), nil
	}

	var id string
	if err := m.codec.Decode(m.name, cookie.Value, &id); err != nil {
		m.logger.Debug("discarding invalid session cookie", "error", err)
		return models.NewSession(m.now()), nil
	}

	session, err := m.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, shared.ErrSessionNotFound):
		return models.NewSession(m.now()), nil
	case err != nil:
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

func (m *SessionManager) setCookie(w http.ResponseWriter, id string) error {
	encoded, err := m.codec.Encode(m.name, id)
	if err != nil {
		return fmt.Errorf("failed to encode session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(m.idle.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFrom returns the session placed in ctx by [SessionManager.Middleware].
func SessionFrom(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*models.Session)
	return s, ok
}
