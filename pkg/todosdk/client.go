// Package todosdk is a small client for the todohub API, used by the worker
// process. It authenticates against the identity provider with the
// client-credentials grant, caches the access token until near expiry, and
// transparently re-authenticates once when the API answers 401.
package todosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds everything the client needs to reach the API and the
// identity provider.
type Config struct {
	// APIBaseURL is the todohub API root, e.g. "http://localhost:8080".
	APIBaseURL string

	// TokenURL is the identity provider's token endpoint.
	TokenURL string

	ClientID     string
	ClientSecret string

	// Audience is the API identifier the token is minted for.
	Audience string
}

// Client talks to the todohub API as a machine caller.
type Client struct {
	cfg        Config
	HTTPClient *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClient creates a client with a short request timeout. Worker jobs run
// on a tight interval, so a slow API call should fail rather than pile up.
func NewClient(cfg Config) *Client {
	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")
	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: 4 * time.Second,
		},
	}
}

// getValidToken returns a cached access token, fetching a new one from the
// provider when none is held or the held one is near expiry.
func (c *Client) getValidToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expiresAt) {
		return c.token, nil
	}

	resp, err := c.requestToken(ctx)
	if err != nil {
		return "", err
	}

	c.token = resp.AccessToken
	// Refresh 30 seconds before actual expiry
	c.expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn)*time.Second - 30*time.Second)

	return c.token, nil
}

// invalidateToken drops the cached token so the next call re-authenticates.
func (c *Client) invalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.expiresAt = time.Time{}
}

// requestToken performs the client-credentials grant. Caller holds c.mu.
func (c *Client) requestToken(ctx context.Context) (*tokenResponse, error) {
	body, err := json.Marshal(tokenRequest{
		GrantType:    "client_credentials",
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		Audience:     c.cfg.Audience,
	})
	if err != nil {
		return nil, fmt.Errorf("todosdk: marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, &AuthError{Status: resp.StatusCode, Body: string(b)}
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("todosdk: provider returned empty access token")
	}

	return &tok, nil
}

// doAuthRequest performs an authenticated request against the API. A 401
// response invalidates the cached token and retries once with a fresh one.
func (c *Client) doAuthRequest(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.getValidToken(ctx)
		if err != nil {
			return nil, err
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBaseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			resp.Body.Close()
			c.invalidateToken()
			continue
		}

		return resp, nil
	}

	// Unreachable, the loop always returns on the second attempt
	return nil, fmt.Errorf("todosdk: request retries exhausted")
}

// decodeEnvelope reads an API response envelope and unmarshals its data
// field into target. Non-OK statuses become an *APIError.
func decodeEnvelope(resp *http.Response, target any) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Code != nil {
			apiErr.Code = *env.Code
		}
		if env.Message != nil {
			apiErr.Message = *env.Message
		}
		return apiErr
	}

	if target != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, target); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}
