package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tokengen/internal/server"
	"github.com/desertthunder/tokengen/internal/shared"
	"github.com/desertthunder/tokengen/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const loginTimeout = 2 * time.Minute

// tokenOutput is the printed result of login and refresh.
type tokenOutput struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitzero"`
	UserID       string    `json:"user_id,omitempty"`
}

func newTokenOutput(token *oauth2.Token, userID string) tokenOutput {
	return tokenOutput{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
		UserID:       userID,
	}
}

// Login runs the authorization code flow against a local callback server.
//
// The callback server listens on the host and port of the configured redirect URI, which must be
// registered with the Spotify application.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	creds, err := r.credentials(cmd, config)
	if err != nil {
		return err
	}

	spotify, err := r.spotify(config)
	if err != nil {
		return err
	}

	state, err := shared.GenerateState()
	if err != nil {
		return fmt.Errorf("failed to generate state token: %w", err)
	}

	handler, err := server.NewOAuthHandler(spotify, creds, spotify.RedirectURI(), state)
	if err != nil {
		return err
	}
	router := server.NewBasicRouter()
	router.Use(server.SecurityHeaders())
	router.Handler(handler)

	addr, err := callbackAddr(spotify.RedirectURI())
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	httpServer := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Debug("starting callback server", "addr", addr)
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	authURL := spotify.AuthorizeURLWithState(creds.ClientID, state)
	if !cmd.Bool("no-browser") {
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warn("failed to open browser automatically", "error", err)
		}
	}

	if cmd.Bool("json") {
		r.logger.Info("waiting for authorization", "url", authURL)
		token, userID, err := r.waitForResult(ctx, handler, serverErrors)
		if err != nil {
			return err
		}
		return r.writeJSON(newTokenOutput(token, userID), true)
	}

	return r.runLoginView(ctx, authURL, handler, serverErrors)
}

// waitForResult blocks until the callback fired, the server failed or the flow timed out.
func (r *Runner) waitForResult(ctx context.Context, handler *server.OAuthHandler, serverErrors <-chan error) (*oauth2.Token, string, error) {
	timeout := time.NewTimer(loginTimeout)
	defer timeout.Stop()

	select {
	case result := <-handler.Result():
		if err := result.Error(); err != nil {
			return nil, "", fmt.Errorf("authorization failed: %w", err)
		}
		return result.Token, result.UserID, nil
	case err := <-serverErrors:
		return nil, "", fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, "", fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, loginTimeout)
	case <-ctx.Done():
		return nil, "", ctx.Err()
	}
}

func (r *Runner) runLoginView(ctx context.Context, authURL string, handler *server.OAuthHandler, serverErrors <-chan error) error {
	results := make(chan server.OAuthResult, 1)
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	go func() {
		defer close(results)
		select {
		case result := <-handler.Result():
			results <- result
		case err := <-serverErrors:
			r.logger.Error("callback server failed", "error", err)
		case <-ctx.Done():
		}
	}()

	model := ui.NewLoginModel(authURL, results)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(r.input), tea.WithOutput(r.output))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run login view: %w", err)
	}

	if _, _, err := model.Result(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, loginTimeout)
		}
		return err
	}
	return nil
}

// callbackAddr returns the host:port the local callback server must listen on.
func callbackAddr(redirectURI string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: redirect_uri %q", shared.ErrInvalidConfig, redirectURI)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
