// Package idp is a thin client for the identity provider's userinfo
// endpoint, used to resolve a token subject to an email on first contact.
package idp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	URL        string
	HTTPClient *http.Client
}

// New builds a userinfo client for the provider's issuer URL. The timeout
// is short; this call sits on the request path of first-time users.
func New(issuerURL string) *Client {
	return &Client{
		URL: strings.TrimSuffix(issuerURL, "/") + "/userinfo",
		HTTPClient: &http.Client{
			Timeout: 4 * time.Second,
		},
	}
}

// UserEmail fetches the email claim for the bearer of accessToken.
func (c *Client) UserEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo: unexpected status %d", resp.StatusCode)
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("userinfo decode: %w", err)
	}
	if info.Email == "" {
		return "", fmt.Errorf("userinfo: no email claim")
	}

	return info.Email, nil
}
