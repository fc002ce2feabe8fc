// Package config loads the server configuration from an optional TOML file,
// an optional .env file and the process environment, in increasing order of
// precedence.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// ErrMissingCredentials is returned when SPOTIFY_CLIENT_ID or
// SPOTIFY_CLIENT_SECRET is not set.
var ErrMissingCredentials = errors.New("missing SPOTIFY_CLIENT_ID or SPOTIFY_CLIENT_SECRET")

// Production is the APP_ENV value that hides upstream error bodies.
const Production = "production"

// Config is the immutable process configuration.
type Config struct {
	Env      string        `toml:"env"`
	LogLevel string        `toml:"log_level"`
	Server   ServerConfig  `toml:"server"`
	Cookie   CookieConfig  `toml:"cookie"`
	Spotify  SpotifyConfig `toml:"spotify"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	FrontendURL string `toml:"frontend_url"`
}

// CookieConfig contains token cookie attributes.
type CookieConfig struct {
	Domain   string `toml:"domain"`
	SameSite string `toml:"same_site"`
}

// SpotifyConfig contains Spotify API credentials and endpoints.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	APIURL       string `toml:"api_url"`
	AccountsURL  string `toml:"accounts_url"`
}

// Options selects the files Load reads. Empty fields skip that source,
// except EnvFile which defaults to ".env" and is ignored when missing.
type Options struct {
	File    string
	EnvFile string
}

// Default returns the configuration described by the embedded example file.
func Default() *Config {
	var cfg Config
	if err := toml.Unmarshal(exampleConf, &cfg); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &cfg
}

// Load builds the configuration and validates it.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	if opts.File != "" {
		if _, err := toml.DecodeFile(opts.File, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables already set in the environment.
	if err := godotenv.Load(envFile); err != nil && (opts.EnvFile != "" || !errors.Is(err, fs.ErrNotExist)) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"APP_ENV":               &c.Env,
		"LOG_LEVEL":             &c.LogLevel,
		"ADDR":                  &c.Server.Addr,
		"FRONTEND_URL":          &c.Server.FrontendURL,
		"COOKIE_DOMAIN":         &c.Cookie.Domain,
		"COOKIE_SAMESITE":       &c.Cookie.SameSite,
		"SPOTIFY_CLIENT_ID":     &c.Spotify.ClientID,
		"SPOTIFY_CLIENT_SECRET": &c.Spotify.ClientSecret,
		"SPOTIFY_REDIRECT_URI":  &c.Spotify.RedirectURI,
		"SPOTIFY_API_URL":       &c.Spotify.APIURL,
		"SPOTIFY_ACCOUNTS_URL":  &c.Spotify.AccountsURL,
	}
	for key, field := range overrides {
		if value, ok := os.LookupEnv(key); ok {
			*field = value
		}
	}
}

// Validate reports missing credentials and unsupported values.
func (c *Config) Validate() error {
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		return ErrMissingCredentials
	}
	switch strings.ToLower(c.Cookie.SameSite) {
	case "lax", "none":
	default:
		return fmt.Errorf("unsupported cookie same_site %q: want lax or none", c.Cookie.SameSite)
	}
	if c.Spotify.RedirectURI == "" {
		return errors.New("missing SPOTIFY_REDIRECT_URI")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, Production)
}
