package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// defaultExpiresIn applies when the token endpoint reports no lifetime.
const defaultExpiresIn = 3600

// DefaultScopes are requested on every authorization.
var DefaultScopes = []string{
	spotifyauth.ScopeUserReadPrivate,
	spotifyauth.ScopeUserReadEmail,
	spotifyauth.ScopeUserTopRead,
	spotifyauth.ScopeUserReadPlaybackState,
	spotifyauth.ScopeUserModifyPlaybackState,
	spotifyauth.ScopeUserFollowRead,
	spotifyauth.ScopeUserReadRecentlyPlayed,
	spotifyauth.ScopeUserLibraryRead,
}

// UpstreamAuthError is returned when the accounts service answers a token
// request with a non-2xx status.
type UpstreamAuthError struct {
	Status int
	Body   string
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("spotify accounts: token request failed with status %d", e.Status)
}

// TokenPair is the result of a code exchange or a refresh. RefreshToken is
// empty when the accounts service did not issue a new one.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
}

// Config configures a Flow.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// AccountsURL overrides https://accounts.spotify.com, mostly for tests.
	AccountsURL string
	Scopes      []string
	HTTPClient  *http.Client
}

// Flow performs the authorization-code exchange and token refresh against
// the Spotify accounts service.
//
// The code exchange authenticates with HTTP Basic client credentials while
// the refresh sends only client_id in the form, so each grant gets its own
// oauth2.Config.
type Flow struct {
	exchange   *oauth2.Config
	refresh    *oauth2.Config
	httpClient *http.Client
}

// New creates a Flow.
func New(cfg Config) *Flow {
	authURL, tokenURL := spotifyauth.AuthURL, spotifyauth.TokenURL
	if cfg.AccountsURL != "" {
		base := strings.TrimRight(cfg.AccountsURL, "/")
		authURL, tokenURL = base+"/authorize", base+"/api/token"
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Flow{
		exchange: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		refresh: &oauth2.Config{
			ClientID: cfg.ClientID,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
	}
}

// AuthURL returns the authorize URL the user agent is sent to.
func (f *Flow) AuthURL(state string) string {
	return f.exchange.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token pair. redirectURI must
// match the one used for the authorize request; empty means the configured one.
func (f *Flow) Exchange(ctx context.Context, code, redirectURI string) (TokenPair, error) {
	var opts []oauth2.AuthCodeOption
	if redirectURI != "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	}

	tok, err := f.exchange.Exchange(f.withClient(ctx), code, opts...)
	if err != nil {
		return TokenPair{}, upstreamError("exchanging code", err)
	}
	return pairFrom(tok), nil
}

// Refresh obtains a new access token for refreshToken.
func (f *Flow) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	src := f.refresh.TokenSource(f.withClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return TokenPair{}, upstreamError("refreshing token", err)
	}

	pair := pairFrom(tok)
	// oauth2 copies the old refresh token into the result when the response
	// carries none, so only trust the raw response field.
	issued, _ := tok.Extra("refresh_token").(string)
	pair.RefreshToken = issued
	return pair, nil
}

func (f *Flow) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
}

func pairFrom(tok *oauth2.Token) TokenPair {
	expiresIn := int(tok.ExpiresIn)
	if expiresIn <= 0 && !tok.Expiry.IsZero() {
		expiresIn = int(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}
	return TokenPair{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    expiresIn,
	}
}

func upstreamError(op string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return &UpstreamAuthError{
			Status: retrieveErr.Response.StatusCode,
			Body:   string(retrieveErr.Body),
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// NewState creates a random state string for OAuth.
func NewState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
