package shared

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// MinSecretKeyLength is the shortest accepted session secret, in bytes.
const MinSecretKeyLength = 32

// Session backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Session     SessionConfig     `toml:"session"`
	Provider    ProviderConfig    `toml:"provider"`
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	Log         LogConfig         `toml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	RedirectURI string `toml:"redirect_uri"`
	SecretKey   string `toml:"secret_key"`
}

// SessionConfig controls the server-side session store and its cookie.
type SessionConfig struct {
	Backend            string `toml:"backend"`
	CookieName         string `toml:"cookie_name"`
	IdleTimeoutMinutes int    `toml:"idle_timeout_minutes"`
	SecureCookie       bool   `toml:"secure_cookie"`
}

// ProviderConfig holds the Spotify endpoints and outbound call limits.
type ProviderConfig struct {
	AuthorizeURL   string  `toml:"authorize_url"`
	TokenURL       string  `toml:"token_url"`
	APIURL         string  `toml:"api_url"`
	Scope          string  `toml:"scope"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
	RateBurst      int     `toml:"rate_burst"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials used by the CLI commands.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// RedisConfig contains Redis connection settings for the redis session backend.
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// LogConfig sets the logger level.
type LogConfig struct {
	Level string `toml:"level"`
}

// envOverrides holds raw environment values applied on top of the file config.
type envOverrides struct {
	SecretKey      string `env:"SECRET_KEY"`
	RedirectURI    string `env:"REDIRECT_URI"`
	Host           string `env:"HOST"`
	Port           int    `env:"PORT"`
	SessionBackend string `env:"SESSION_BACKEND"`
	DatabasePath   string `env:"DATABASE_PATH"`
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	LogLevel       string `env:"LOG_LEVEL"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ResolveConfig loads path when it exists (defaults otherwise) and applies environment overrides.
func ResolveConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides config values with any non-empty environment variables.
func (c *Config) ApplyEnv() error {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("%w: parse env: %v", ErrInvalidConfig, err)
	}

	setString(&c.Server.SecretKey, raw.SecretKey)
	setString(&c.Server.RedirectURI, raw.RedirectURI)
	setString(&c.Server.Host, raw.Host)
	setString(&c.Session.Backend, raw.SessionBackend)
	setString(&c.Database.Path, raw.DatabasePath)
	setString(&c.Redis.Addr, raw.RedisAddr)
	setString(&c.Redis.Password, raw.RedisPassword)
	setString(&c.Log.Level, raw.LogLevel)
	if raw.Port > 0 {
		c.Server.Port = raw.Port
	}
	return nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.RedirectURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: redirect_uri %q must be an absolute URL", ErrInvalidConfig, c.Server.RedirectURI)
	}

	switch c.Session.Backend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("%w: unknown session backend %q", ErrInvalidConfig, c.Session.Backend)
	}

	if c.Provider.AuthorizeURL == "" || c.Provider.TokenURL == "" || c.Provider.APIURL == "" {
		return fmt.Errorf("%w: provider endpoints must be set", ErrInvalidConfig)
	}
	return nil
}

// ValidateServer checks [Config.Validate] plus the session secret, which has no fallback value.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Server.SecretKey == "" {
		return fmt.Errorf("%w: set SECRET_KEY or server.secret_key", ErrMissingSecret)
	}
	if len(c.Server.SecretKey) < MinSecretKeyLength {
		return fmt.Errorf("%w: secret key must be at least %d bytes", ErrInvalidConfig, MinSecretKeyLength)
	}
	return nil
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IdleTimeout is the inactivity window after which a session expires.
func (s SessionConfig) IdleTimeout() time.Duration {
	if s.IdleTimeoutMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// Timeout is the per-call deadline for requests to the provider.
func (p ProviderConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
