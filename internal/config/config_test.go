package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var envKeys = []string{
	"APP_ENV", "LOG_LEVEL", "ADDR", "FRONTEND_URL", "COOKIE_DOMAIN", "COOKIE_SAMESITE",
	"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "SPOTIFY_REDIRECT_URI",
	"SPOTIFY_API_URL", "SPOTIFY_ACCOUNTS_URL",
}

// clearEnv unsets every configuration variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8000" {
		t.Errorf("expected addr :8000, got %s", cfg.Server.Addr)
	}
	if cfg.Cookie.SameSite != "lax" {
		t.Errorf("expected same_site lax, got %s", cfg.Cookie.SameSite)
	}
	if cfg.Spotify.APIURL != "https://api.spotify.com/v1" {
		t.Errorf("expected spotify api url, got %s", cfg.Spotify.APIURL)
	}
	if cfg.IsProduction() {
		t.Error("default config should not be production")
	}
}

func TestLoad(t *testing.T) {
	t.Run("MissingCredentials", func(t *testing.T) {
		clearEnv(t)

		_, err := Load(Options{EnvFile: writeFile(t, ".env", "")})
		if !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("FromEnvironment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SPOTIFY_CLIENT_ID", "id")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
		t.Setenv("APP_ENV", "production")
		t.Setenv("COOKIE_SAMESITE", "none")

		cfg, err := Load(Options{EnvFile: writeFile(t, ".env", "")})
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if cfg.Spotify.ClientID != "id" || cfg.Spotify.ClientSecret != "secret" {
			t.Errorf("credentials not read from environment: %+v", cfg.Spotify)
		}
		if !cfg.IsProduction() {
			t.Error("expected production mode")
		}
		if cfg.Cookie.SameSite != "none" {
			t.Errorf("expected same_site none, got %s", cfg.Cookie.SameSite)
		}
	})

	t.Run("Precedence", func(t *testing.T) {
		clearEnv(t)
		file := writeFile(t, "config.toml", `
log_level = "debug"

[server]
addr = ":9000"
frontend_url = "https://stats.example.com"

[spotify]
client_id = "file-id"
client_secret = "file-secret"
`)
		envFile := writeFile(t, ".env", "SPOTIFY_CLIENT_ID=dotenv-id\nADDR=:9100\n")
		t.Setenv("ADDR", ":9200")

		cfg, err := Load(Options{File: file, EnvFile: envFile})
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if cfg.LogLevel != "debug" {
			t.Errorf("expected log level from file, got %s", cfg.LogLevel)
		}
		if cfg.Spotify.ClientID != "dotenv-id" {
			t.Errorf("expected client id from env file, got %s", cfg.Spotify.ClientID)
		}
		if cfg.Spotify.ClientSecret != "file-secret" {
			t.Errorf("expected client secret from file, got %s", cfg.Spotify.ClientSecret)
		}
		if cfg.Server.Addr != ":9200" {
			t.Errorf("expected addr from environment, got %s", cfg.Server.Addr)
		}
		if cfg.Server.FrontendURL != "https://stats.example.com" {
			t.Errorf("expected frontend url from file, got %s", cfg.Server.FrontendURL)
		}
		if cfg.Spotify.RedirectURI != "http://127.0.0.1:8000/auth/callback" {
			t.Errorf("expected default redirect uri, got %s", cfg.Spotify.RedirectURI)
		}
	})

	t.Run("MissingExplicitEnvFile", func(t *testing.T) {
		clearEnv(t)

		_, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), "nope.env")})
		if err == nil {
			t.Error("expected error for missing env file")
		}
	})

	t.Run("InvalidSameSite", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SPOTIFY_CLIENT_ID", "id")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
		t.Setenv("COOKIE_SAMESITE", "strict")

		if _, err := Load(Options{EnvFile: writeFile(t, ".env", "")}); err == nil {
			t.Error("expected error for unsupported same_site")
		}
	})

	t.Run("InvalidFile", func(t *testing.T) {
		clearEnv(t)

		if _, err := Load(Options{File: writeFile(t, "config.toml", "not = [valid")}); err == nil {
			t.Error("expected error for malformed config file")
		}
	})
}
