package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/justestif/go-spotify-stats/internal/auth"
	"github.com/justestif/go-spotify-stats/internal/stats"
)

const (
	stateCookie = "oauth_state"
	// stateMaxAge bounds how long a login may take, in seconds.
	stateMaxAge = 300

	successPath = "/success-vinculation"
)

var (
	errMissingCallbackParam = errors.New("callback is missing code or state")
	errStateMismatch        = errors.New("OAuth state mismatch")
	errAuthorizationDenied  = errors.New("spotify authorization failed")
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	flow        *auth.Flow
	store       *auth.TokenStore
	gate        *auth.Gate
	stats       *stats.Service
	frontendURL string
	redirectURI string
	production  bool
	logger      *zap.Logger
}

// Health reports that the process is serving (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Login initiates the Spotify OAuth flow (GET /auth/login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	// Generate state for CSRF protection
	state, err := auth.NewState()
	if err != nil {
		h.fail(w, r, fmt.Errorf("generating state: %w", err))
		return
	}

	// Store state in cookie for validation on callback
	http.SetCookie(w, h.store.Cookie(stateCookie, state, stateMaxAge))

	http.Redirect(w, r, h.flow.AuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles the OAuth callback from Spotify (GET /auth/callback).
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// The state is single use whatever the outcome.
	http.SetCookie(w, h.store.Cookie(stateCookie, "", -1))

	// Check for error from Spotify
	if errMsg := query.Get("error"); errMsg != "" {
		h.fail(w, r, fmt.Errorf("%w: %s", errAuthorizationDenied, errMsg))
		return
	}

	code, state := query.Get("code"), query.Get("state")
	if code == "" || state == "" {
		h.fail(w, r, errMissingCallbackParam)
		return
	}

	// Verify state
	expected, err := r.Cookie(stateCookie)
	if err != nil || expected.Value != state {
		h.fail(w, r, errStateMismatch)
		return
	}

	pair, err := h.flow.Exchange(r.Context(), code, h.redirectURI)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.store.Write(w, pair)
	http.Redirect(w, r, strings.TrimRight(h.frontendURL, "/")+successPath, http.StatusTemporaryRedirect)
}

// Logout clears the token cookies (POST /auth/logout).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// NotFound answers unknown routes with a JSON error.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusNotFound, errorBody{Error: "not_found", Message: "route not found"})
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusMethodNotAllowed, errorBody{Error: "method_not_allowed", Message: "method not allowed"})
}
