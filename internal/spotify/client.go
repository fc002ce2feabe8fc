// Package spotify provides an authenticated accessor for the Spotify Web API.
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DefaultBaseURL is the root of the Spotify Web API.
const DefaultBaseURL = "https://api.spotify.com/v1"

// ErrMissingToken is returned when a request is attempted without a bearer token.
var ErrMissingToken = errors.New("missing bearer token")

// RequestError is returned for any upstream response outside the 2xx range.
// Body holds the response text verbatim; it is never parsed.
type RequestError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("spotify: %s %s: status %d", e.Method, e.Path, e.Status)
}

// Client issues authenticated requests against the Spotify Web API.
// It performs exactly one round trip per call: no retries, no caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a Client. A nil httpClient gets a fresh client of its own and an
// empty baseURL falls back to DefaultBaseURL.
func New(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// Do sends method+path with the given query and optional JSON body, authorized
// with token, and decodes a JSON response into out. A 204 or empty body leaves
// out untouched.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any, token string, out any) error {
	if token == "" {
		return ErrMissingToken
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   string(data),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
