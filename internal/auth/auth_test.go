package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

type tokenRequest struct {
	authHeader string
	form       url.Values
}

// newAccountsServer fakes the accounts service token endpoint. Every request
// is recorded and answered with status and body.
func newAccountsServer(t *testing.T, status int, body string) (*httptest.Server, *[]tokenRequest) {
	t.Helper()
	var requests []tokenRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/token" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		requests = append(requests, tokenRequest{authHeader: r.Header.Get("Authorization"), form: r.PostForm})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func newTestFlow(srv *httptest.Server) *Flow {
	return New(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://127.0.0.1:8000/auth/callback",
		AccountsURL:  srv.URL,
		HTTPClient:   srv.Client(),
	})
}

func TestFlow_Exchange(t *testing.T) {
	srv, requests := newAccountsServer(t, http.StatusOK,
		`{"access_token":"A1","token_type":"Bearer","refresh_token":"R1","expires_in":3600,"scope":"user-read-private"}`)
	flow := newTestFlow(srv)

	pair, err := flow.Exchange(context.Background(), "C", "http://127.0.0.1:8000/auth/callback")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}

	want := TokenPair{AccessToken: "A1", RefreshToken: "R1", ExpiresIn: 3600}
	if pair != want {
		t.Errorf("Exchange() = %+v, want %+v", pair, want)
	}

	if len(*requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(*requests))
	}
	req := (*requests)[0]

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("client-id:client-secret"))
	if req.authHeader != wantAuth {
		t.Errorf("Authorization = %q, want %q", req.authHeader, wantAuth)
	}
	if got := req.form.Get("grant_type"); got != "authorization_code" {
		t.Errorf("grant_type = %q, want authorization_code", got)
	}
	if got := req.form.Get("code"); got != "C" {
		t.Errorf("code = %q, want C", got)
	}
	if got := req.form.Get("redirect_uri"); got != "http://127.0.0.1:8000/auth/callback" {
		t.Errorf("redirect_uri = %q", got)
	}
	if req.form.Has("client_secret") {
		t.Error("client_secret must not be sent in the form")
	}
}

func TestFlow_ExchangeEscapesCredentials(t *testing.T) {
	srv, requests := newAccountsServer(t, http.StatusOK,
		`{"access_token":"A1","token_type":"Bearer","expires_in":3600}`)
	flow := New(Config{
		ClientID:     "id+1",
		ClientSecret: "s/ec=",
		AccountsURL:  srv.URL,
		HTTPClient:   srv.Client(),
	})

	if _, err := flow.Exchange(context.Background(), "C", ""); err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}

	// Credentials are form-encoded before base64 (RFC 6749 section 2.3.1).
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("id%2B1:s%2Fec%3D"))
	if got := (*requests)[0].authHeader; got != want {
		t.Errorf("Authorization = %q, want %q", got, want)
	}
}

func TestNew_OwnHTTPClient(t *testing.T) {
	a := New(Config{ClientID: "client-id"})
	b := New(Config{ClientID: "client-id"})

	if a.httpClient == nil || a.httpClient == http.DefaultClient {
		t.Errorf("httpClient = %p, want a client other than http.DefaultClient", a.httpClient)
	}
	if a.httpClient == b.httpClient {
		t.Error("flows without an injected client must not share one")
	}

	injected := &http.Client{}
	if got := New(Config{HTTPClient: injected}).httpClient; got != injected {
		t.Errorf("httpClient = %p, want injected %p", got, injected)
	}
}

func TestFlow_Refresh(t *testing.T) {
	tests := []struct {
		name string
		body string
		want TokenPair
	}{
		{
			name: "no new refresh token",
			body: `{"access_token":"A2","token_type":"Bearer","expires_in":3600}`,
			want: TokenPair{AccessToken: "A2", ExpiresIn: 3600},
		},
		{
			name: "same refresh token reissued",
			body: `{"access_token":"A2","token_type":"Bearer","refresh_token":"R1","expires_in":3600}`,
			want: TokenPair{AccessToken: "A2", RefreshToken: "R1", ExpiresIn: 3600},
		},
		{
			name: "rotated refresh token",
			body: `{"access_token":"A2","token_type":"Bearer","refresh_token":"R2","expires_in":1800}`,
			want: TokenPair{AccessToken: "A2", RefreshToken: "R2", ExpiresIn: 1800},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, requests := newAccountsServer(t, http.StatusOK, tt.body)
			flow := newTestFlow(srv)

			pair, err := flow.Refresh(context.Background(), "R1")
			if err != nil {
				t.Fatalf("Refresh() error = %v", err)
			}
			if pair != tt.want {
				t.Errorf("Refresh() = %+v, want %+v", pair, tt.want)
			}

			req := (*requests)[0]
			if req.authHeader != "" {
				t.Errorf("Authorization = %q, want none", req.authHeader)
			}
			if got := req.form.Get("grant_type"); got != "refresh_token" {
				t.Errorf("grant_type = %q, want refresh_token", got)
			}
			if got := req.form.Get("refresh_token"); got != "R1" {
				t.Errorf("refresh_token = %q, want R1", got)
			}
			if got := req.form.Get("client_id"); got != "client-id" {
				t.Errorf("client_id = %q, want client-id", got)
			}
			if req.form.Has("client_secret") {
				t.Error("refresh must not send client_secret")
			}
		})
	}
}

func TestFlow_UpstreamFailure(t *testing.T) {
	const body = `{"error":"invalid_grant","error_description":"Invalid refresh token"}`
	srv, _ := newAccountsServer(t, http.StatusBadRequest, body)
	flow := newTestFlow(srv)

	calls := map[string]func() error{
		"exchange": func() error {
			_, err := flow.Exchange(context.Background(), "C", "")
			return err
		},
		"refresh": func() error {
			_, err := flow.Refresh(context.Background(), "R1")
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			var authErr *UpstreamAuthError
			if err := call(); !errors.As(err, &authErr) {
				t.Fatalf("error = %v, want *UpstreamAuthError", err)
			}
			if authErr.Status != http.StatusBadRequest {
				t.Errorf("Status = %d, want 400", authErr.Status)
			}
			if authErr.Body != body {
				t.Errorf("Body = %q, want %q", authErr.Body, body)
			}
		})
	}
}

func TestFlow_AuthURL(t *testing.T) {
	flow := New(Config{
		ClientID:    "client-id",
		RedirectURL: "http://127.0.0.1:8000/auth/callback",
		Scopes:      []string{"user-read-private", "user-top-read"},
	})

	raw := flow.AuthURL("xyz")
	if !strings.HasPrefix(raw, "https://accounts.spotify.com/authorize?") {
		t.Fatalf("AuthURL() = %q", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}
	q := u.Query()

	want := map[string]string{
		"response_type": "code",
		"client_id":     "client-id",
		"redirect_uri":  "http://127.0.0.1:8000/auth/callback",
		"scope":         "user-read-private user-top-read",
		"state":         "xyz",
	}
	for key, value := range want {
		if got := q.Get(key); got != value {
			t.Errorf("%s = %q, want %q", key, got, value)
		}
	}
}

func TestNew_DefaultScopes(t *testing.T) {
	flow := New(Config{ClientID: "id"})
	if len(flow.exchange.Scopes) != len(DefaultScopes) {
		t.Errorf("scopes = %v, want %v", flow.exchange.Scopes, DefaultScopes)
	}
	if flow.refresh.ClientSecret != "" {
		t.Error("refresh config must not carry the client secret")
	}
}

func TestNewState(t *testing.T) {
	state1, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}

	if len(state1) != 32 { // 16 bytes = 32 hex chars
		t.Errorf("NewState() length = %d, want 32", len(state1))
	}

	state2, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}

	if state1 == state2 {
		t.Error("NewState() returned same value twice")
	}
}
