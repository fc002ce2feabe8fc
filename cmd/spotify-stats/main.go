// Command spotify-stats runs the Spotify statistics backend-for-frontend.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/justestif/go-spotify-stats/internal/config"
	"github.com/justestif/go-spotify-stats/internal/logger"
	"github.com/justestif/go-spotify-stats/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "spotify-stats",
		Usage: "Serve Spotify listening statistics to the frontend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file",
				Sources: cli.EnvVars("CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file (default .env, ignored when missing)",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address, overrides ADDR",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error), overrides LOG_LEVEL",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(config.Options{
		File:    cmd.String("config"),
		EnvFile: cmd.String("env-file"),
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.IsSet("addr") {
		cfg.Server.Addr = cmd.String("addr")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}

	log, err := logger.New(cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("frontend_url", cfg.Server.FrontendURL),
		zap.String("redirect_uri", cfg.Spotify.RedirectURI),
	)

	server := web.NewServer(web.ServerConfig{
		Addr:           cfg.Server.Addr,
		FrontendURL:    cfg.Server.FrontendURL,
		ClientID:       cfg.Spotify.ClientID,
		ClientSecret:   cfg.Spotify.ClientSecret,
		RedirectURI:    cfg.Spotify.RedirectURI,
		APIURL:         cfg.Spotify.APIURL,
		AccountsURL:    cfg.Spotify.AccountsURL,
		CookieDomain:   cfg.Cookie.Domain,
		CookieSameSite: cfg.Cookie.SameSite,
		Production:     cfg.IsProduction(),
		HTTPClient:     &http.Client{Timeout: web.DefaultUpstreamTimeout},
		Logger:         log,
	})

	return server.Run(ctx)
}
