// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "client-id",
			Usage:   "Spotify application client ID (defaults to credentials.spotify.client_id)",
			Sources: cli.EnvVars("SPOTIFY_CLIENT_ID"),
		},
		&cli.StringFlag{
			Name:    "client-secret",
			Usage:   "Spotify application client secret (defaults to credentials.spotify.client_secret)",
			Sources: cli.EnvVars("SPOTIFY_CLIENT_SECRET"),
		},
	}
}

// serveCommand runs the web application
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the token generator web server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Address to listen on (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides server.port)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Action: r.Serve,
	}
}

// loginCommand runs the authorization code flow from the terminal
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authorize with Spotify from the terminal and print the tokens",
		Flags: append([]cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "no-browser",
				Usage: "Print the consent URL instead of opening a browser",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON instead of the interactive view",
			},
		}, credentialFlags()...),
		Action: r.Login,
	}
}

// refreshCommand performs a single refresh token grant
func refreshCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "refresh",
		Usage: "Mint a new access token from a refresh token",
		Flags: append([]cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "refresh-token",
				Usage:    "Refresh token issued by a previous authorization",
				Sources:  cli.EnvVars("SPOTIFY_REFRESH_TOKEN"),
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		}, credentialFlags()...),
		Action: r.Refresh,
	}
}

// setupCommand prepares the SQLite session database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize the session database and run migrations",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent migration instead",
			},
		},
		Action: r.Setup,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file helpers",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the example configuration file",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ConfigInit,
			},
		},
	}
}
