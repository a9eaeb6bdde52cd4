package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Refresh performs one refresh token grant and prints the new token.
//
// When Spotify does not rotate the refresh token, the one passed in is printed back.
func (r *Runner) Refresh(ctx context.Context, cmd *cli.Command) error {
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

	r.logger.Info("refreshing access token")
	token, err := spotify.Refresh(ctx, creds, cmd.String("refresh-token"))
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	out := newTokenOutput(token, "")
	if cmd.Bool("json") {
		return r.writeJSON(out, true)
	}

	r.writePlainHeader("Access Token Refreshed")
	r.writePlain("Access Token:  %s\n", out.AccessToken)
	r.writePlain("Refresh Token: %s\n", out.RefreshToken)
	if !out.Expiry.IsZero() {
		r.writePlain("Expires:       %s\n", out.Expiry.Format("2006-01-02 15:04:05"))
	}
	return nil
}
