// Package auth implements the Spotify OAuth2 token lifecycle: code exchange,
// refresh and cookie-backed token storage.
package auth

import (
	"net/http"
	"strings"
)

const (
	// AccessCookie holds the bearer token for the Spotify Web API.
	AccessCookie = "access_token"
	// RefreshCookie holds the refresh token.
	RefreshCookie = "refresh_token"

	refreshMaxAge = 24 * 60 * 60
)

// Tokens are the values found on an incoming request. Either may be empty.
type Tokens struct {
	Access  string
	Refresh string
}

// StoreOptions configures cookie attributes.
type StoreOptions struct {
	Domain string
	// SameSite is "lax" or "none"; anything else is treated as "lax".
	SameSite string
}

// TokenStore reads and writes the token cookies. Tokens are never kept on
// the server.
type TokenStore struct {
	domain   string
	sameSite http.SameSite
}

// NewTokenStore creates a TokenStore.
func NewTokenStore(opts StoreOptions) *TokenStore {
	sameSite := http.SameSiteLaxMode
	if strings.EqualFold(opts.SameSite, "none") {
		sameSite = http.SameSiteNoneMode
	}
	return &TokenStore{domain: opts.Domain, sameSite: sameSite}
}

// Read returns the tokens carried by r. It never fails; a missing cookie
// yields an empty value.
func (s *TokenStore) Read(r *http.Request) Tokens {
	var t Tokens
	if c, err := r.Cookie(AccessCookie); err == nil {
		t.Access = c.Value
	}
	if c, err := r.Cookie(RefreshCookie); err == nil {
		t.Refresh = c.Value
	}
	return t
}

// Write sets the access cookie for pair.ExpiresIn seconds and, when pair
// carries one, the refresh cookie for a day.
func (s *TokenStore) Write(w http.ResponseWriter, pair TokenPair) {
	http.SetCookie(w, s.Cookie(AccessCookie, pair.AccessToken, pair.ExpiresIn))
	if pair.RefreshToken != "" {
		http.SetCookie(w, s.Cookie(RefreshCookie, pair.RefreshToken, refreshMaxAge))
	}
}

// Clear expires both token cookies.
func (s *TokenStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.Cookie(AccessCookie, "", -1))
	http.SetCookie(w, s.Cookie(RefreshCookie, "", -1))
}

// Cookie builds a cookie with the store's attributes. Other short-lived
// cookies (such as the OAuth state) share them.
func (s *TokenStore) Cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: s.sameSite,
	}
}
