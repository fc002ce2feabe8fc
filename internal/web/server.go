// Package web exposes the Spotify statistics API over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/justestif/go-spotify-stats/internal/auth"
	"github.com/justestif/go-spotify-stats/internal/spotify"
	"github.com/justestif/go-spotify-stats/internal/stats"
)

const (
	// DefaultAddr is the default server address.
	DefaultAddr = ":8000"
	// DefaultUpstreamTimeout bounds each call to Spotify.
	DefaultUpstreamTimeout = 30 * time.Second
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr         string
	FrontendURL  string
	ClientID     string
	ClientSecret string
	// RedirectURI must match the Spotify app configuration.
	RedirectURI    string
	APIURL         string
	AccountsURL    string
	CookieDomain   string
	CookieSameSite string
	// Production hides upstream error bodies from responses.
	Production bool
	// HTTPClient is used for every outbound call. Nil gives the server a
	// client of its own, shared by the accounts and Web API calls.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Server is the HTTP server for the API.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	logger   *zap.Logger
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultUpstreamTimeout}
	}

	flow := auth.New(auth.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		AccountsURL:  cfg.AccountsURL,
		HTTPClient:   cfg.HTTPClient,
	})
	store := auth.NewTokenStore(auth.StoreOptions{
		Domain:   cfg.CookieDomain,
		SameSite: cfg.CookieSameSite,
	})
	gate := auth.NewGate(store, flow, logger.Named("gate"))
	service := stats.New(spotify.New(cfg.HTTPClient, cfg.APIURL))

	handlers := &Handlers{
		flow:        flow,
		store:       store,
		gate:        gate,
		stats:       service,
		frontendURL: cfg.FrontendURL,
		redirectURI: cfg.RedirectURI,
		production:  cfg.Production,
		logger:      logger,
	}

	s := &Server{
		router:   chi.NewRouter(),
		handlers: handlers,
		logger:   logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5, "application/json"))
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.NotFound(h.NotFound)
	s.router.MethodNotAllowed(h.MethodNotAllowed)

	s.router.Get("/healthz", h.Health)

	// Auth routes
	s.router.Get("/auth/login", h.Login)
	s.router.Get("/auth/callback", h.Callback)
	s.router.Post("/auth/logout", h.Logout)

	// Everything below needs a Spotify access token.
	s.router.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Get("/me", h.Me)

		r.Get("/top/artists", h.TopArtists)
		r.Get("/top/tracks", h.TopTracks)
		r.Get("/following/artists", h.FollowedArtists)

		r.Get("/albums/saved", h.SavedAlbums)
		r.Get("/albums/{id}", h.Album)
		r.Get("/albums/{id}/tracks", h.AlbumTracks)

		r.Route("/player", func(r chi.Router) {
			r.Get("/recently_played", h.RecentlyPlayed)
			r.Get("/playback_state", h.PlaybackState)
			r.Put("/{device}/pause", h.Pause)
			r.Put("/{device}/play", h.Play)
			r.Get("/{device}/skip_next", h.SkipNext)
			r.Get("/{device}/skip_previous", h.SkipPrevious)
		})
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and shuts it down gracefully once ctx is done.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
