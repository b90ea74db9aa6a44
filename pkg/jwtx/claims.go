// Package jwtx verifies access tokens issued by the external identity
// provider. The provider signs with RS256 and publishes its public keys via
// a JWKS endpoint; we only ever verify here, never sign.
package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GrantTypeClientCredentials marks machine-to-machine tokens. These have no
// human subject behind them, so user resolution is skipped for them.
const GrantTypeClientCredentials = "client-credentials"

// Claims are the access-token claims we care about. The identity provider
// adds a few custom fields on top of the registered set; we keep the parsing
// additive so unknown claims don't break us.
type Claims struct {
	jwt.RegisteredClaims

	// Permissions granted to this token, e.g. ["read:todo", "write:todo"].
	Permissions []string `json:"permissions,omitempty"`

	// GrantType is set to "client-credentials" for machine-to-machine
	// tokens. User tokens leave it empty.
	GrantType string `json:"gty,omitempty"`

	// Scope is the space-delimited OAuth2 scope string. Informational;
	// authorization decisions use Permissions.
	Scope string `json:"scope,omitempty"`
}

// IsMachine reports whether the token was issued via the client-credentials
// grant, i.e. there is no end user to resolve.
func (c *Claims) IsMachine() bool {
	return c.GrantType == GrantTypeClientCredentials
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
