// Spotify implementation of [OAuthProvider]
//
// Endpoint reference: https://developer.spotify.com/documentation/web-api/tutorials/code-flow
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tokengen/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// maxErrorBody caps how much of an upstream error body is kept.
const maxErrorBody = 64 << 10

type followers struct {
	Total int `json:"total"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Product     string         `json:"product"` // premium, free, etc.
	Followers   followers      `json:"followers"`
	Images      []SpotifyImage `json:"images"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyOpts configures a [SpotifyService].
type SpotifyOpts struct {
	Provider    shared.ProviderConfig
	RedirectURI string
	HTTPClient  *http.Client // defaults to a client with Provider.Timeout()
	Logger      *log.Logger
}

// SpotifyService talks to the Spotify accounts service and Web API.
type SpotifyService struct {
	endpoint    oauth2.Endpoint
	apiURL      string
	redirectURI string
	scopes      []string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *log.Logger
}

// NewSpotifyService creates a new Spotify service from the provider settings.
func NewSpotifyService(opts SpotifyOpts) (*SpotifyService, error) {
	if opts.RedirectURI == "" {
		return nil, fmt.Errorf("%w: missing redirect_uri", shared.ErrInvalidConfig)
	}
	if opts.Provider.AuthorizeURL == "" || opts.Provider.TokenURL == "" || opts.Provider.APIURL == "" {
		return nil, fmt.Errorf("%w: missing provider endpoints", shared.ErrInvalidConfig)
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Provider.Timeout()}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	limit := rate.Inf
	if opts.Provider.RateLimit > 0 {
		limit = rate.Limit(opts.Provider.RateLimit)
	}
	burst := opts.Provider.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &SpotifyService{
		endpoint: oauth2.Endpoint{
			AuthURL:   opts.Provider.AuthorizeURL,
			TokenURL:  opts.Provider.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		apiURL:      strings.TrimRight(opts.Provider.APIURL, "/"),
		redirectURI: opts.RedirectURI,
		scopes:      strings.Fields(opts.Provider.Scope),
		httpClient:  opts.HTTPClient,
		limiter:     rate.NewLimiter(limit, burst),
		logger:      shared.WithLogger(opts.Logger, "service", "spotify"),
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// RedirectURI returns the callback address registered with the provider.
func (s *SpotifyService) RedirectURI() string {
	return s.redirectURI
}

// oauthConfig builds a per-call [oauth2.Config] for the given credentials.
func (s *SpotifyService) oauthConfig(creds Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  s.redirectURI,
		Scopes:       s.scopes,
		Endpoint:     s.endpoint,
	}
}

// AuthorizeURL returns the consent screen URL carrying client_id, response_type=code, redirect_uri and scope.
func (s *SpotifyService) AuthorizeURL(clientID string) string {
	return s.oauthConfig(Credentials{ClientID: clientID}).AuthCodeURL("")
}

// AuthorizeURLWithState is [SpotifyService.AuthorizeURL] plus a CSRF state parameter, used by the CLI login flow.
func (s *SpotifyService) AuthorizeURLWithState(clientID, state string) string {
	return s.oauthConfig(Credentials{ClientID: clientID}).AuthCodeURL(state)
}

// withClient waits for the rate limiter and attaches the service's HTTP client for the oauth2 package.
func (s *SpotifyService) withClient(ctx context.Context) (context.Context, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", shared.ErrAPIRequest, err)
	}
	return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient), nil
}

// Exchange performs the authorization_code grant.
func (s *SpotifyService) Exchange(ctx context.Context, creds Credentials, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, shared.ErrMissingCode
	}

	ctx, err := s.withClient(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("exchanging authorization code", "client_id", creds.ClientID)

	token, err := s.oauthConfig(creds).Exchange(ctx, code)
	if err != nil {
		return nil, fromTokenError(err)
	}

	if token.RefreshToken == "" {
		s.logger.Warn("token response carried no refresh token", "client_id", creds.ClientID)
	}

	return token, nil
}

// Refresh performs the refresh_token grant.
func (s *SpotifyService) Refresh(ctx context.Context, creds Credentials, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	ctx, err := s.withClient(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("refreshing access token", "client_id", creds.ClientID)

	token, err := s.oauthConfig(creds).TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, fromTokenError(err)
	}

	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}

	return token, nil
}

// UserProfile retrieves the profile of the user the access token belongs to.
func (s *SpotifyService) UserProfile(ctx context.Context, accessToken string) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, http.MethodGet, "/me", accessToken, &user); err != nil {
		return nil, err
	}

	if user.ID == "" {
		return nil, fmt.Errorf("%w: profile response missing id", shared.ErrAPIRequest)
	}

	return &user, nil
}

// doRequest performs a bearer-authenticated request against the Web API and decodes the JSON reply into result.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint, accessToken string, result any) error {
	if accessToken == "" {
		return fmt.Errorf("%w: missing access token", shared.ErrInvalidArgument)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", shared.ErrAPIRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.apiURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrAPIRequest, err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fromTokenError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
		}
	}

	return nil
}
