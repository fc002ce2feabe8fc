package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/justestif/go-spotify-stats/internal/config"
)

func TestRun_MissingCredentials(t *testing.T) {
	for _, key := range []string{"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "CONFIG_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, nil, 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	err := newCommand().Run(context.Background(), []string{"spotify-stats", "--env-file", envFile, "--addr", "127.0.0.1:0"})
	if !errors.Is(err, config.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestRun_InvalidLogLevel(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
	t.Setenv("COOKIE_SAMESITE", "lax")
	t.Setenv("SPOTIFY_REDIRECT_URI", "http://127.0.0.1:8000/auth/callback")

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, nil, 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	err := newCommand().Run(context.Background(), []string{"spotify-stats", "--env-file", envFile, "--log-level", "chatty"})
	if err == nil {
		t.Error("expected error for unknown log level")
	}
}
