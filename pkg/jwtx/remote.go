package jwtx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RemoteKeySource fetches the identity provider's JWKS over HTTP. Keys are
// fetched once at startup and periodically refreshed so provider key
// rotation doesn't require a redeploy.
type RemoteKeySource struct {
	URL        string
	HTTPClient *http.Client
}

// NewRemoteKeySource builds a key source for the provider's issuer URL. The
// standard well-known path is appended to the issuer.
func NewRemoteKeySource(issuerURL string) *RemoteKeySource {
	return &RemoteKeySource{
		URL: strings.TrimSuffix(issuerURL, "/") + "/.well-known/jwks.json",
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves the current JWKS from the provider.
func (s *RemoteKeySource) Fetch(ctx context.Context) (JWKS, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return JWKS{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwks fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return JWKS{}, fmt.Errorf("jwks fetch: unexpected status %d", resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return JWKS{}, fmt.Errorf("jwks decode: %w", err)
	}
	if len(jwks.Keys) == 0 {
		return JWKS{}, fmt.Errorf("jwks fetch: empty key set")
	}

	return jwks, nil
}

// Refresh fetches the JWKS and loads it into the given KeySet.
func (s *RemoteKeySource) Refresh(ctx context.Context, keys *KeySet) error {
	jwks, err := s.Fetch(ctx)
	if err != nil {
		return err
	}
	return keys.ResetFromJWKS(jwks)
}
