package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tokengen/internal/services"
	"github.com/desertthunder/tokengen/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config // when nil, each command resolves --config plus the environment
	HTTPClient *http.Client   // when nil, services build a client with the provider timeout
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, loginCommand, refreshCommand, setupCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig returns the injected config or resolves --config and the environment.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	if r.config != nil {
		return r.config, nil
	}

	config, err := shared.ResolveConfig(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := shared.SetLogLevel(r.logger, config.Log.Level); err != nil {
		r.logger.Warn("ignoring log level from config", "error", err)
	}
	return config, nil
}

// credentials reads the client id/secret from flags, falling back to the config file.
func (r *Runner) credentials(cmd *cli.Command, config *shared.Config) (services.Credentials, error) {
	creds := services.Credentials{
		ClientID:     cmd.String("client-id"),
		ClientSecret: cmd.String("client-secret"),
	}
	if creds.ClientID == "" {
		creds.ClientID = config.Credentials.Spotify.ClientID
	}
	if creds.ClientSecret == "" {
		creds.ClientSecret = config.Credentials.Spotify.ClientSecret
	}

	if creds.ClientID == "" || creds.ClientSecret == "" {
		return creds, fmt.Errorf("%w: --client-id and --client-secret (or credentials.spotify in the config) are required", shared.ErrMissingArgument)
	}
	return creds, nil
}

func (r *Runner) spotify(config *shared.Config) (*services.SpotifyService, error) {
	srv, err := services.NewSpotifyService(services.SpotifyOpts{
		Provider:    config.Provider,
		RedirectURI: config.Server.RedirectURI,
		HTTPClient:  r.httpClient,
		Logger:      r.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Spotify service: %w", err)
	}
	return srv, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
