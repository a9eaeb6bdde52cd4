// package services defines the OAuth provider interface and its Spotify implementation
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/tokengen/internal/shared"
	"golang.org/x/oauth2"
)

// Credentials is a client id/secret pair registered with the provider.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// OAuthProvider defines the calls the authorization code flow makes against a provider.
type OAuthProvider interface {
	// AuthorizeURL returns the consent screen URL for clientID. No network call is made.
	AuthorizeURL(clientID string) string

	// Exchange trades an authorization code for an access/refresh token pair.
	Exchange(ctx context.Context, creds Credentials, code string) (*oauth2.Token, error)

	// Refresh mints a new access token from refreshToken.
	// The returned token keeps refreshToken when the provider does not rotate it.
	Refresh(ctx context.Context, creds Credentials, refreshToken string) (*oauth2.Token, error)

	// UserProfile resolves the user the access token belongs to.
	UserProfile(ctx context.Context, accessToken string) (*SpotifyUser, error)

	// Name returns the name of the provider (e.g., "Spotify")
	Name() string
}

// UpstreamError is a non-2xx reply from the provider.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", shared.ErrUpstreamRejected, e.StatusCode, e.Body)
}

// Is lets errors.Is(err, shared.ErrUpstreamRejected) match.
func (e *UpstreamError) Is(target error) bool {
	return target == shared.ErrUpstreamRejected
}

// fromTokenError converts errors returned by the oauth2 package into this package's taxonomy.
func fromTokenError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		ue := &UpstreamError{Body: string(re.Body)}
		if re.Response != nil {
			ue.StatusCode = re.Response.StatusCode
		}
		return ue
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w: %v", shared.ErrAPIRequest, shared.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
}
