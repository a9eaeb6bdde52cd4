package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/desertthunder/tokengen/internal/services"
	"github.com/desertthunder/tokengen/internal/shared"
	"golang.org/x/oauth2"
)

// OAuthResult contains the result of an OAuth authorization flow.
type OAuthResult struct {
	Token  *oauth2.Token
	UserID string
	err    error
}

func (o *OAuthResult) Error() error {
	return o.err
}

// OAuthHandler handles the provider callback for the CLI login flow.
// Implements the Handler interface for registration with a Router.
type OAuthHandler struct {
	provider    services.OAuthProvider
	creds       services.Credentials
	state       string
	path        string
	resultChan  chan OAuthResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewOAuthHandler creates a callback handler for creds. The route is taken from redirectURI.
// The state token should be cryptographically random for CSRF protection.
func NewOAuthHandler(provider services.OAuthProvider, creds services.Credentials, redirectURI, state string) (*OAuthHandler, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("%w: redirect_uri: %v", shared.ErrInvalidConfig, err)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	return &OAuthHandler{
		provider:   provider,
		creds:      creds,
		state:      state,
		path:       path,
		resultChan: make(chan OAuthResult, 1),
	}, nil
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"GET " + h.path}
}

// ServeHTTP handles the OAuth callback request.
//
// Validates state parameter, exchanges the authorization code, resolves the user and sends the result through the result channel.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	query := r.URL.Query()
	if query.Get("state") != h.state {
		h.Send(OAuthResult{err: shared.ErrInvalidState})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		err := fmt.Errorf("%w: %s - %s", shared.ErrMissingCode, query.Get("error"), query.Get("error_description"))
		h.Send(OAuthResult{err: err})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	token, err := h.provider.Exchange(ctx, h.creds, code)
	if err != nil {
		h.Send(OAuthResult{err: fmt.Errorf("%w: token exchange: %w", shared.ErrAuthFailed, err)})
		status, view := classify(err)
		_ = render(w, status, "error", view)
		return
	}

	user, err := h.provider.UserProfile(ctx, token.AccessToken)
	if err != nil {
		h.Send(OAuthResult{Token: token, err: fmt.Errorf("%w: user lookup: %w", shared.ErrAuthFailed, err)})
		status, view := classify(err)
		_ = render(w, status, "error", view)
		return
	}

	h.Send(OAuthResult{Token: token, UserID: user.ID})
	_ = render(w, http.StatusOK, "done", struct{ Title string }{"Authorization Successful"})
}

// Send sends the OAuth result through the channel (only once).
func (h *OAuthHandler) Send(result OAuthResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving OAuth flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.resultChan
}
